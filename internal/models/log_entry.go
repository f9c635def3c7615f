package models

import "time"

// Log entry types.
const (
	LogTypeSystem   = "SYSTEM"
	LogTypeAuto     = "AUTO"
	LogTypeManual   = "MANUAL"
	LogTypeRejected = "REJECTED"
	LogTypeNetwork  = "NETWORK"
)

// LogTimeLayout is the localized wall-clock format used in log lines.
const LogTimeLayout = "15:04:05"

// LogEntry is a single activity log line. ZoneID 0 means the entry is not zone specific.
type LogEntry struct {
	EntryID    string    `json:"entry_id"`
	OccurredAt time.Time `json:"occurred_at"`
	ZoneID     int       `json:"zone_id,omitempty"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
}

// Line renders "[<local time>] <message>".
func (e LogEntry) Line() string {
	return "[" + e.OccurredAt.Local().Format(LogTimeLayout) + "] " + e.Message
}

// LogLine pairs an entry with its rendered line for API consumers.
type LogLine struct {
	LogEntry
	Line string `json:"line"`
}

// NewLogLines renders entries in the order given.
func NewLogLines(entries []LogEntry) []LogLine {
	out := make([]LogLine, 0, len(entries))
	for _, e := range entries {
		out = append(out, LogLine{LogEntry: e, Line: e.Line()})
	}
	return out
}

// Dashboard is the full snapshot pushed to browsers.
type Dashboard struct {
	Alert     string     `json:"alert,omitempty"`
	Zones     []ZoneView `json:"zones"`
	Logs      []LogLine  `json:"logs"`
	UpdatedAt time.Time  `json:"updated_at"`
}
