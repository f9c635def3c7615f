package models

import (
	"fmt"
	"strconv"
	"time"
)

// WateringState is the derived per-zone state. It is never set directly.
type WateringState string

const (
	StateOff     WateringState = "OFF"
	StateOn      WateringState = "ON"
	StateBlocked WateringState = "BLOCKED"
)

// SourceKind identifies where a zone's readings come from.
type SourceKind string

const (
	SourceLive      SourceKind = "live"      // polled from the ESP32 backend
	SourceSimulated SourceKind = "simulated" // slider input, no network
)

// ZoneState is a snapshot of one irrigation zone.
type ZoneState struct {
	ZoneID          int        `json:"zone_id"`
	Source          SourceKind `json:"source"`
	MoisturePercent int        `json:"moisture_percent"`
	SensorRaw       *float64   `json:"sensor_raw,omitempty"`
	Watering        bool       `json:"watering"`
	Blocked         bool       `json:"blocked"`
	ManualOverride  bool       `json:"manual_override"`
	Category        Category   `json:"category"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// State derives OFF/ON/BLOCKED from the flags.
func (z ZoneState) State() WateringState {
	switch {
	case z.Blocked:
		return StateBlocked
	case z.Watering:
		return StateOn
	default:
		return StateOff
	}
}

// HasReading reports whether the zone has seen at least one valid reading.
func (z ZoneState) HasReading() bool {
	return z.Category != CategoryUnknown
}

// Reading is a single moisture sample. Percent-based samples (slider input) set
// RawMax to 100. Watering carries the actuator state reported by a live backend.
type Reading struct {
	Raw      float64
	RawMax   float64
	Watering *bool
}

// PercentReading builds a Reading from a value that is already a percentage.
func PercentReading(p float64) Reading {
	return Reading{Raw: p, RawMax: MaxPercent}
}

// Status labels shown on the status chip.
const (
	LabelBlocked   = "Watering blocked (oversaturated)"
	LabelOn        = "Watering is ON"
	LabelOnManual  = "Watering is ON (manual override)"
	LabelOff       = "Watering is OFF"
	percentSuffix  = " %"
	sensorPrefix   = "Sensor: "
	categoryPrefix = "Status: "
)

// StatusLabel is the status chip text for a zone.
func StatusLabel(z ZoneState) string {
	switch {
	case z.Blocked:
		return LabelBlocked
	case z.Watering && z.ManualOverride:
		return LabelOnManual
	case z.Watering:
		return LabelOn
	default:
		return LabelOff
	}
}

// PercentText renders "<N> %", or "--" before the first reading.
func PercentText(z ZoneState) string {
	if !z.HasReading() {
		return unknownCategoryLabel + percentSuffix
	}
	return strconv.Itoa(z.MoisturePercent) + percentSuffix
}

// SensorText renders "Sensor: <raw>". Zones without a raw sensor value render empty.
func SensorText(z ZoneState) string {
	if z.SensorRaw == nil {
		return ""
	}
	return sensorPrefix + strconv.FormatFloat(*z.SensorRaw, 'f', -1, 64)
}

// CategoryText renders "Status: <label>".
func CategoryText(z ZoneState) string {
	return categoryPrefix + z.Category.Label()
}

// ZoneView is a ZoneState plus every display string the dashboard renders.
type ZoneView struct {
	ZoneState
	State         WateringState `json:"state"`
	PercentText   string        `json:"percent_text"`
	SensorText    string        `json:"sensor_text,omitempty"`
	CategoryLabel string        `json:"category_label"`
	CategoryText  string        `json:"category_text"`
	StatusLabel   string        `json:"status_label"`
}

// NewZoneView renders a ZoneState.
func NewZoneView(z ZoneState) ZoneView {
	return ZoneView{
		ZoneState:     z,
		State:         z.State(),
		PercentText:   PercentText(z),
		SensorText:    SensorText(z),
		CategoryLabel: z.Category.Label(),
		CategoryText:  CategoryText(z),
		StatusLabel:   StatusLabel(z),
	}
}

func (z ZoneState) String() string {
	return fmt.Sprintf("zone %d: %d%% %s %s", z.ZoneID, z.MoisturePercent, z.Category, z.State())
}
