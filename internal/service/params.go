package service

// LogFilter narrows the activity log. Zero values mean no filter.
type LogFilter struct {
	ZoneID int    // 0 = all zones
	Type   string // "", "SYSTEM", "AUTO", "MANUAL", "REJECTED", "NETWORK"
}

// Options carries the tuning knobs shared by the services.
type Options struct {
	RawMax  float64 // full scale for pushed raw readings; 0 selects models.DefaultRawMax
	Metrics Metrics // nil disables metrics
}
