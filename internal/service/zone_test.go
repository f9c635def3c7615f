package service

import (
	"math"
	"testing"

	"irrigation_dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawReading(raw float64) models.Reading {
	return models.Reading{Raw: raw, RawMax: models.DefaultRawMax}
}

func reportedReading(raw float64, watering bool) models.Reading {
	r := rawReading(raw)
	r.Watering = &watering
	return r
}

func TestZone_InitialState(t *testing.T) {
	z := NewZone(1, models.SourceSimulated, "")
	st := z.Snapshot()

	assert.Equal(t, 1, z.ID())
	assert.Equal(t, models.SourceSimulated, z.Source())
	assert.Equal(t, models.CategoryUnknown, st.Category)
	assert.Equal(t, models.StateOff, st.State())
	assert.False(t, st.HasReading())
	assert.NoError(t, z.CheckStart())
}

func TestZone_ApplyReading_RawScenarios(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		percent  int
		category models.Category
		state    models.WateringState
		note     string
	}{
		{"dry", 0, 0, models.CategoryTooDry, models.StateOn, "Zone 1: auto -> soil dry (0%) -> watering ON."},
		{"healthy", 2048, 50, models.CategoryHealthy, models.StateOff, "Zone 1: auto -> soil healthy (50%) -> watering OFF."},
		{"oversaturated", 4095, 100, models.CategoryOversaturated, models.StateBlocked, "Zone 1: auto -> soil (100%) oversaturated -> watering blocked."},
		{"far above full scale", 1e21, 100, models.CategoryOversaturated, models.StateBlocked, "Zone 1: auto -> soil (100%) oversaturated -> watering blocked."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := NewZone(1, models.SourceLive, OverridePersist)

			out, err := z.ApplyReading(rawReading(tt.raw), testNow)
			require.NoError(t, err)

			assert.Equal(t, tt.percent, out.State.MoisturePercent)
			assert.Equal(t, tt.category, out.State.Category)
			assert.Equal(t, tt.state, out.State.State())
			assert.True(t, out.Changed)
			assert.Equal(t, []string{tt.note}, out.Notes)
			require.NotNil(t, out.State.SensorRaw)
			assert.Equal(t, tt.raw, *out.State.SensorRaw)
			assert.Equal(t, testNow, out.State.UpdatedAt)
		})
	}
}

func TestZone_StartRejectedWhenOversaturated(t *testing.T) {
	z := NewZone(1, models.SourceLive, OverridePersist)
	_, err := z.ApplyReading(rawReading(4095), testNow)
	require.NoError(t, err)
	before := z.Snapshot()

	assert.ErrorIs(t, z.CheckStart(), ErrManualStartRejected)

	out, err := z.StartManual(testNow.Add(1))
	assert.ErrorIs(t, err, ErrManualStartRejected)
	assert.False(t, out.Changed)
	assert.Equal(t, []string{"Zone 1: manual override blocked (oversaturated)."}, out.Notes)
	assert.Equal(t, before, z.Snapshot())
	assert.False(t, z.Snapshot().Watering)
}

func TestZone_InvalidReadingLeavesStateUntouched(t *testing.T) {
	z := NewZone(1, models.SourceLive, OverridePersist)
	_, err := z.ApplyReading(rawReading(2048), testNow)
	require.NoError(t, err)
	before := z.Snapshot()

	for _, raw := range []float64{math.NaN(), math.Inf(1)} {
		_, err := z.ApplyReading(rawReading(raw), testNow.Add(1))
		assert.ErrorIs(t, err, models.ErrInvalidReading)
		assert.Equal(t, before, z.Snapshot())
	}
}

func TestZone_UnchangedReadingNotChanged(t *testing.T) {
	z := NewZone(1, models.SourceSimulated, OverridePersist)
	z.SetMoisture(50, testNow)

	out := z.SetMoisture(55, testNow)
	assert.False(t, out.Changed)
	assert.Equal(t, 55, out.State.MoisturePercent)

	out = z.SetMoisture(30, testNow)
	assert.True(t, out.Changed)
}

func TestZone_SetMoistureClamps(t *testing.T) {
	z := NewZone(2, models.SourceSimulated, OverridePersist)

	out := z.SetMoisture(150, testNow)
	assert.Equal(t, 100, out.State.MoisturePercent)
	assert.True(t, out.State.Blocked)
	assert.Nil(t, out.State.SensorRaw)

	out = z.SetMoisture(-20, testNow)
	assert.Equal(t, 0, out.State.MoisturePercent)
	assert.Equal(t, models.StateOn, out.State.State())
}

func TestZone_ManualStartPersistsUntilCategoryChanges(t *testing.T) {
	z := NewZone(1, models.SourceSimulated, OverridePersist)
	z.SetMoisture(50, testNow)

	out, err := z.StartManual(testNow)
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, []string{"Zone 1: manual watering ON."}, out.Notes)
	assert.Equal(t, models.LabelOnManual, models.StatusLabel(out.State))

	// same category: override survives
	out = z.SetMoisture(60, testNow)
	assert.True(t, out.State.Watering)
	assert.True(t, out.State.ManualOverride)
	assert.False(t, out.Changed)
	assert.Equal(t, []string{"Zone 1: soil healthy (60%) -> manual override keeps watering ON."}, out.Notes)

	// oversaturated blocks and drops the override
	out = z.SetMoisture(85, testNow)
	assert.Equal(t, models.StateBlocked, out.State.State())
	assert.False(t, out.State.Watering)
	assert.False(t, out.State.ManualOverride)

	out = z.SetMoisture(50, testNow)
	assert.Equal(t, models.StateOff, out.State.State())
	assert.False(t, out.State.ManualOverride)
}

func TestZone_ManualStartDroppedOnCategoryChange(t *testing.T) {
	z := NewZone(1, models.SourceSimulated, OverridePersist)
	z.SetMoisture(50, testNow)
	_, err := z.StartManual(testNow)
	require.NoError(t, err)

	out := z.SetMoisture(30, testNow)
	assert.True(t, out.State.Watering)
	assert.False(t, out.State.ManualOverride, "dry soil waters automatically")
	assert.Equal(t, models.LabelOn, models.StatusLabel(out.State))
}

func TestZone_ManualStopPersistsWhileDry(t *testing.T) {
	z := NewZone(1, models.SourceSimulated, OverridePersist)
	out := z.SetMoisture(10, testNow)
	require.True(t, out.State.Watering)

	out = z.StopManual(testNow)
	assert.False(t, out.State.Watering)
	assert.True(t, out.Changed)
	assert.Equal(t, []string{"Zone 1: manual watering OFF."}, out.Notes)

	out = z.SetMoisture(12, testNow)
	assert.False(t, out.State.Watering)

	z.SetMoisture(50, testNow)
	out = z.SetMoisture(10, testNow)
	assert.True(t, out.State.Watering)
}

func TestZone_ResetPolicyDropsOverrideOnEveryReading(t *testing.T) {
	z := NewZone(1, models.SourceSimulated, OverrideReset)
	z.SetMoisture(50, testNow)
	_, err := z.StartManual(testNow)
	require.NoError(t, err)

	out := z.SetMoisture(50, testNow)
	assert.False(t, out.State.Watering)
	assert.False(t, out.State.ManualOverride)
	assert.True(t, out.Changed)
}

func TestZone_StopAlwaysAccepted(t *testing.T) {
	z := NewZone(1, models.SourceSimulated, OverridePersist)
	z.SetMoisture(95, testNow)

	out := z.StopManual(testNow)
	assert.Equal(t, models.StateBlocked, out.State.State())
	assert.False(t, out.State.Watering)
	assert.Equal(t, []string{"Zone 1: manual watering OFF."}, out.Notes)
}

func TestZone_ReportedWateringIsAuthoritative(t *testing.T) {
	z := NewZone(1, models.SourceLive, OverridePersist)

	out, err := z.ApplyReading(reportedReading(2048, true), testNow)
	require.NoError(t, err)
	assert.True(t, out.State.Watering)
	assert.False(t, out.State.ManualOverride)

	out, err = z.ApplyReading(reportedReading(0, false), testNow)
	require.NoError(t, err)
	assert.False(t, out.State.Watering, "controller reports idle even though soil is dry")

	out, err = z.ApplyReading(reportedReading(4095, true), testNow)
	require.NoError(t, err)
	assert.False(t, out.State.Watering, "blocked wins over reported state")
	assert.True(t, out.State.Blocked)
}

func TestZone_ReportedIdleEndsManualStart(t *testing.T) {
	z := NewZone(1, models.SourceLive, OverridePersist)
	_, err := z.ApplyReading(reportedReading(2048, false), testNow)
	require.NoError(t, err)
	_, err = z.StartManual(testNow)
	require.NoError(t, err)

	out, err := z.ApplyReading(reportedReading(2048, true), testNow)
	require.NoError(t, err)
	assert.True(t, out.State.ManualOverride)

	out, err = z.ApplyReading(reportedReading(2048, false), testNow)
	require.NoError(t, err)
	assert.False(t, out.State.Watering)
	assert.False(t, out.State.ManualOverride)
}

func TestZone_BlockedNeverWaters(t *testing.T) {
	for _, policy := range []OverridePolicy{OverridePersist, OverrideReset} {
		z := NewZone(1, models.SourceSimulated, policy)
		for p := 0; p <= 100; p++ {
			z.SetMoisture(p, testNow)
			_, _ = z.StartManual(testNow)
			st := z.Snapshot()
			if st.Blocked {
				assert.False(t, st.Watering, "policy=%s p=%d", policy, p)
				assert.False(t, st.ManualOverride, "policy=%s p=%d", policy, p)
			}
			assert.Equal(t, p > models.OversaturatedAbove, st.Blocked, "p=%d", p)
			assert.Equal(t, models.Classify(float64(st.MoisturePercent)), st.Category)
		}
	}
}

func TestParseOverridePolicy(t *testing.T) {
	p, err := ParseOverridePolicy("")
	require.NoError(t, err)
	assert.Equal(t, OverridePersist, p)

	p, err = ParseOverridePolicy("reset")
	require.NoError(t, err)
	assert.Equal(t, OverrideReset, p)

	_, err = ParseOverridePolicy("forever")
	assert.Error(t, err)
}
