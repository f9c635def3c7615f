package service

import (
	"fmt"
	"sort"
)

type zoneEntry struct {
	zone   *Zone
	source Source
}

// ZoneTable is the explicit container of all zones and their sources.
type ZoneTable struct {
	ids     []int
	entries map[int]zoneEntry
}

func NewZoneTable() *ZoneTable {
	return &ZoneTable{entries: make(map[int]zoneEntry)}
}

// Add registers a zone with its source. Zone ids must be unique and positive.
// Zones are not added after the services start.
func (t *ZoneTable) Add(z *Zone, src Source) error {
	if z.ID() < 1 {
		return fmt.Errorf("invalid zone id %d", z.ID())
	}
	if _, ok := t.entries[z.ID()]; ok {
		return fmt.Errorf("duplicate zone id %d", z.ID())
	}
	if src.Kind() != z.Source() {
		return fmt.Errorf("zone %d: source kind %q does not match zone kind %q", z.ID(), src.Kind(), z.Source())
	}
	t.entries[z.ID()] = zoneEntry{zone: z, source: src}
	t.ids = append(t.ids, z.ID())
	sort.Ints(t.ids)
	return nil
}

// Get returns the zone and its source, or ErrZoneNotFound.
func (t *ZoneTable) Get(id int) (*Zone, Source, error) {
	e, ok := t.entries[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrZoneNotFound, id)
	}
	return e.zone, e.source, nil
}

// Zones returns all zones ordered by id.
func (t *ZoneTable) Zones() []*Zone {
	out := make([]*Zone, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, t.entries[id].zone)
	}
	return out
}

func (t *ZoneTable) each(fn func(*Zone, Source)) {
	for _, id := range t.ids {
		e := t.entries[id]
		fn(e.zone, e.source)
	}
}

// Len returns the number of zones.
func (t *ZoneTable) Len() int { return len(t.ids) }
