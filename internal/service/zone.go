package service

import (
	"fmt"
	"sync"
	"time"

	"irrigation_dashboard/internal/models"
)

// OverridePolicy decides how long a manual start/stop survives new readings.
type OverridePolicy string

const (
	// OverridePersist keeps a manual override until the category changes or the zone is blocked.
	OverridePersist OverridePolicy = "persist"
	// OverrideReset drops any manual override on every reading.
	OverrideReset OverridePolicy = "reset"
)

// ParseOverridePolicy accepts "persist" or "reset"; empty selects OverridePersist.
func ParseOverridePolicy(s string) (OverridePolicy, error) {
	switch OverridePolicy(s) {
	case "", OverridePersist:
		return OverridePersist, nil
	case OverrideReset:
		return OverrideReset, nil
	default:
		return "", fmt.Errorf("invalid override policy %q: must be %q or %q", s, OverridePersist, OverrideReset)
	}
}

type override int

const (
	overrideNone override = iota
	overrideStart
	overrideStop
)

// Outcome is the result of one zone transition.
type Outcome struct {
	State   models.ZoneState
	Changed bool     // derived state, category or override marker changed
	Notes   []string // activity log messages, in order
}

// Zone is the reconciler for one irrigation zone. It owns the zone's state;
// everything else reads snapshots and issues commands.
type Zone struct {
	id     int
	source models.SourceKind

	mu       sync.Mutex
	state    models.ZoneState
	override override
	policy   OverridePolicy
}

// NewZone creates a zone with no reading yet.
func NewZone(id int, source models.SourceKind, policy OverridePolicy) *Zone {
	if policy == "" {
		policy = OverridePersist
	}
	return &Zone{
		id:     id,
		source: source,
		state:  models.ZoneState{ZoneID: id, Source: source, Category: models.CategoryUnknown},
		policy: policy,
	}
}

// ID returns the zone id.
func (z *Zone) ID() int { return z.id }

// Source returns the zone's source kind.
func (z *Zone) Source() models.SourceKind { return z.source }

// Snapshot returns a copy of the current state.
func (z *Zone) Snapshot() models.ZoneState {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.state
}

// ApplyReading normalizes r and recomputes the zone. An invalid reading returns
// models.ErrInvalidReading and leaves the zone untouched.
func (z *Zone) ApplyReading(r models.Reading, now time.Time) (Outcome, error) {
	pct, err := models.Normalize(r.Raw, r.RawMax)
	if err != nil {
		return Outcome{State: z.Snapshot()}, err
	}
	var raw *float64
	if r.RawMax != models.MaxPercent {
		v := r.Raw
		raw = &v
	}

	z.mu.Lock()
	defer z.mu.Unlock()

	prev := z.state
	prevOverride := z.override
	cat := models.Classify(float64(pct))

	if z.policy == OverrideReset || cat != prev.Category {
		z.override = overrideNone
	}

	st := prev
	st.MoisturePercent = pct
	st.SensorRaw = raw
	st.Category = cat
	st.Blocked = models.IsOversaturated(pct)
	st.UpdatedAt = now

	switch {
	case st.Blocked:
		z.override = overrideNone
		st.Watering = false
	case r.Watering != nil:
		st.Watering = *r.Watering
		if !st.Watering && z.override == overrideStart {
			z.override = overrideNone
		}
	case z.override == overrideStart:
		st.Watering = true
	case z.override == overrideStop:
		st.Watering = false
	default:
		st.Watering = cat == models.CategoryTooDry
	}
	st.ManualOverride = st.Watering && z.override == overrideStart
	z.state = st

	changed := prev.State() != st.State() || prev.Category != st.Category ||
		prev.ManualOverride != st.ManualOverride || prevOverride != z.override
	return Outcome{State: st, Changed: changed, Notes: []string{z.autoNote(st)}}, nil
}

// SetMoisture handles a slider move: the value is clamped before classification.
func (z *Zone) SetMoisture(percent int, now time.Time) Outcome {
	out, _ := z.ApplyReading(models.PercentReading(float64(models.ClampPercent(percent))), now)
	return out
}

// CheckStart reports ErrManualStartRejected when the zone is blocked.
func (z *Zone) CheckStart() error {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.state.Blocked {
		return ErrManualStartRejected
	}
	return nil
}

// StartManual turns watering on as a manual override unless the zone is blocked,
// in which case the state is unchanged and ErrManualStartRejected is returned.
func (z *Zone) StartManual(now time.Time) (Outcome, error) {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.state.Blocked {
		return Outcome{
			State: z.state,
			Notes: []string{rejectionNote(z.id)},
		}, ErrManualStartRejected
	}
	prev := z.state
	z.override = overrideStart
	z.state.Watering = true
	z.state.ManualOverride = true
	z.state.UpdatedAt = now
	return Outcome{
		State:   z.state,
		Changed: prev.State() != z.state.State() || !prev.ManualOverride,
		Notes:   []string{z.note("manual watering ON.")},
	}, nil
}

// StopManual is always accepted and turns watering off.
func (z *Zone) StopManual(now time.Time) Outcome {
	z.mu.Lock()
	defer z.mu.Unlock()

	prev := z.state
	if !z.state.Blocked {
		z.override = overrideStop
	}
	z.state.Watering = false
	z.state.ManualOverride = false
	z.state.UpdatedAt = now
	return Outcome{
		State:   z.state,
		Changed: prev.State() != z.state.State() || prev.ManualOverride,
		Notes:   []string{z.note("manual watering OFF.")},
	}
}

func (z *Zone) autoNote(st models.ZoneState) string {
	switch {
	case st.Blocked:
		return z.note(fmt.Sprintf("auto -> soil (%d%%) oversaturated -> watering blocked.", st.MoisturePercent))
	case st.ManualOverride:
		return z.note(fmt.Sprintf("soil %s (%d%%) -> manual override keeps watering ON.", categoryWord(st.Category), st.MoisturePercent))
	case st.Watering:
		return z.note(fmt.Sprintf("auto -> soil %s (%d%%) -> watering ON.", categoryWord(st.Category), st.MoisturePercent))
	default:
		return z.note(fmt.Sprintf("auto -> soil %s (%d%%) -> watering OFF.", categoryWord(st.Category), st.MoisturePercent))
	}
}

func (z *Zone) note(msg string) string {
	return zoneNote(z.id, msg)
}

func zoneNote(id int, msg string) string {
	return fmt.Sprintf("Zone %d: %s", id, msg)
}

func rejectionNote(id int) string {
	return zoneNote(id, "manual override blocked (oversaturated).")
}

func categoryWord(c models.Category) string {
	switch c {
	case models.CategoryTooDry:
		return "dry"
	case models.CategoryHealthy:
		return "healthy"
	case models.CategoryOversaturated:
		return "oversaturated"
	default:
		return "unknown"
	}
}
