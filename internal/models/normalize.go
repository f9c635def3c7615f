package models

import (
	"errors"
	"math"
)

// DefaultRawMax is the full-scale value of the ESP32 12-bit ADC.
const DefaultRawMax = 4095

// ErrInvalidReading is returned for non-finite readings or an unusable sensor range.
// Callers skip the update cycle instead of writing the value into zone state.
var ErrInvalidReading = errors.New("invalid moisture reading")

// Normalize converts a raw sensor value into a percentage in [0,100].
// The ratio is rounded half away from zero and then clamped.
// Clamping happens before the int conversion so readings far outside the
// sensor range, including a ratio that overflows to infinity, still saturate.
func Normalize(raw, rawMax float64) (int, error) {
	if !isFinite(raw) || !isFinite(rawMax) || rawMax <= 0 {
		return 0, ErrInvalidReading
	}
	p := math.Round(raw / rawMax * 100)
	p = math.Max(MinPercent, math.Min(MaxPercent, p))
	return int(p), nil
}

// ClampPercent bounds p to [0,100].
func ClampPercent(p int) int {
	if p < MinPercent {
		return MinPercent
	}
	if p > MaxPercent {
		return MaxPercent
	}
	return p
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
