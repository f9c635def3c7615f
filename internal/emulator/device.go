// Package emulator stands in for the ESP32 irrigation firmware so the live
// dashboard can run without hardware.
package emulator

import (
	"context"
	"sync"
	"time"
)

// ----------- Simulation constants -----------
const (
	RawMax         = 4095.0
	InitialRaw     = 1400.0 // ~34%, dry enough to start watering
	DryRatePerSec  = 15.0   // raw units lost per second while idle
	WetRatePerSec  = 90.0   // raw units gained per second while watering
	defaultWaterOn = 10 * time.Second
)

// State is the emulated controller state.
type State struct {
	Raw              float64
	Watering         bool
	RemainingSeconds float64
	UpdatedAt        time.Time
}

// Device emulates the soil sensor and the pump timer.
type Device struct {
	mu          sync.Mutex
	st          State
	wateringFor time.Duration
}

func NewDevice(initialRaw float64, wateringFor time.Duration, now time.Time) *Device {
	if wateringFor <= 0 {
		wateringFor = defaultWaterOn
	}
	return &Device{
		st:          State{Raw: clampRaw(initialRaw), UpdatedAt: now},
		wateringFor: wateringFor,
	}
}

// Run advances the emulation at the given interval until ctx is canceled.
func (d *Device) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			d.Advance(now)
		}
	}
}

// Advance moves the emulation forward to now. Returns true if state changed.
func (d *Device) Advance(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.st
	d.advanceLocked(now)
	return prev.Raw != d.st.Raw || prev.Watering != d.st.Watering
}

// handleWatering raises moisture for the part of elapsed the pump ran and
// counts down the pump timer; any remainder dries.
func (d *Device) handleWatering(elapsed float64) {
	wet := elapsed
	if wet > d.st.RemainingSeconds {
		wet = d.st.RemainingSeconds
	}
	d.st.Raw = clampRaw(d.st.Raw + WetRatePerSec*wet)
	d.st.RemainingSeconds -= wet
	if d.st.RemainingSeconds <= 0 {
		d.st.RemainingSeconds = 0
		d.st.Watering = false
		d.st.Raw = clampRaw(d.st.Raw - DryRatePerSec*(elapsed-wet))
	}
}

// StartWatering runs the pump for the configured duration, restarting the timer if already on.
func (d *Device) StartWatering(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.advanceLocked(now)
	d.st.Watering = true
	d.st.RemainingSeconds = d.wateringFor.Seconds()
}

// SetRaw overrides the sensor value.
func (d *Device) SetRaw(raw float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.Raw = clampRaw(raw)
}

// Snapshot returns the current state.
func (d *Device) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.st
}

func (d *Device) advanceLocked(now time.Time) {
	elapsed := now.Sub(d.st.UpdatedAt).Seconds()
	if elapsed <= 0 {
		return
	}
	if d.st.Watering {
		d.handleWatering(elapsed)
	} else {
		d.st.Raw = clampRaw(d.st.Raw - DryRatePerSec*elapsed)
	}
	d.st.UpdatedAt = now
}

func clampRaw(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > RawMax {
		return RawMax
	}
	return v
}
