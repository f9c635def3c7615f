package service

import (
	"context"
	"testing"

	"irrigation_dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneTable_Add(t *testing.T) {
	tbl := NewZoneTable()

	require.NoError(t, tbl.Add(NewZone(3, models.SourceSimulated, ""), SimulatedSource{}))
	require.NoError(t, tbl.Add(NewZone(1, models.SourceSimulated, ""), SimulatedSource{}))

	assert.Error(t, tbl.Add(NewZone(1, models.SourceSimulated, ""), SimulatedSource{}), "duplicate id")
	assert.Error(t, tbl.Add(NewZone(0, models.SourceSimulated, ""), SimulatedSource{}), "zero id")
	assert.Error(t, tbl.Add(NewZone(4, models.SourceLive, ""), SimulatedSource{}), "kind mismatch")

	assert.Equal(t, 2, tbl.Len())
	zones := tbl.Zones()
	require.Len(t, zones, 2)
	assert.Equal(t, 1, zones[0].ID())
	assert.Equal(t, 3, zones[1].ID())
}

func TestZoneTable_Get(t *testing.T) {
	tbl := NewZoneTable()
	require.NoError(t, tbl.Add(NewZone(1, models.SourceSimulated, ""), SimulatedSource{}))

	z, src, err := tbl.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 1, z.ID())
	assert.Equal(t, models.SourceSimulated, src.Kind())

	_, _, err = tbl.Get(2)
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestSimulatedSource_NotPolled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	_, err := SimulatedSource{}.Fetch(ctx)
	assert.ErrorIs(t, err, ErrNotPolled)
}
