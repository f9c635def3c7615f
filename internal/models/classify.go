package models

import "math"

// Moisture thresholds in percent.
const (
	DryBelowPercent      = 40
	OversaturatedAbove   = 80
	MinPercent           = 0
	MaxPercent           = 100
	unknownCategoryLabel = "--"
)

// Category is the coarse classification of a moisture percentage.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryTooDry
	CategoryHealthy
	CategoryOversaturated
)

var categoryCodes = map[Category]string{
	CategoryUnknown:       "UNKNOWN",
	CategoryTooDry:        "TOO_DRY",
	CategoryHealthy:       "HEALTHY",
	CategoryOversaturated: "OVERSATURATED",
}

// Classify maps a moisture percentage to a Category. First match wins:
// below 40 is too dry, 40..80 inclusive is healthy, above 80 is oversaturated.
// Non-finite input yields CategoryUnknown.
func Classify(percent float64) Category {
	switch {
	case math.IsNaN(percent) || math.IsInf(percent, 0):
		return CategoryUnknown
	case percent < DryBelowPercent:
		return CategoryTooDry
	case percent <= OversaturatedAbove:
		return CategoryHealthy
	default:
		return CategoryOversaturated
	}
}

// IsOversaturated reports whether watering must be blocked at this percentage.
func IsOversaturated(percent int) bool {
	return percent > OversaturatedAbove
}

// Label is the human-readable category shown on the dashboard.
func (c Category) Label() string {
	switch c {
	case CategoryTooDry:
		return "Too dry"
	case CategoryHealthy:
		return "Healthy"
	case CategoryOversaturated:
		return "Oversaturated"
	default:
		return unknownCategoryLabel
	}
}

func (c Category) String() string {
	if code, ok := categoryCodes[c]; ok {
		return code
	}
	return categoryCodes[CategoryUnknown]
}

// MarshalText encodes the category as its stable code (e.g. "TOO_DRY").
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts the codes produced by MarshalText. Unrecognized codes decode to CategoryUnknown.
func (c *Category) UnmarshalText(b []byte) error {
	for k, v := range categoryCodes {
		if v == string(b) {
			*c = k
			return nil
		}
	}
	*c = CategoryUnknown
	return nil
}
