package service

import "sync"

// Alert texts shown on the dashboard banner.
const (
	AlertBackend      = "Error talking to backend."
	AlertManualFailed = "Failed to send manual watering request."
)

// Health tracks backend reachability and the sticky alert banner.
// Only transitions are reported so callers log once per outage.
type Health struct {
	mu          sync.Mutex
	backendDown bool
	alert       string
}

func NewHealth() *Health {
	return &Health{}
}

// PollFailed marks the backend down. It returns true on the transition into the error state.
func (h *Health) PollFailed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alert = AlertBackend
	if h.backendDown {
		return false
	}
	h.backendDown = true
	return true
}

// PollSucceeded clears the alert. It returns true when recovering from an outage.
func (h *Health) PollSucceeded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alert = ""
	recovered := h.backendDown
	h.backendDown = false
	return recovered
}

// CommandFailed shows a command-specific alert without marking the backend down.
func (h *Health) CommandFailed(alert string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alert = alert
}

// CommandSucceeded clears a command alert. A backend outage alert stays until a poll succeeds.
func (h *Health) CommandSucceeded() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.backendDown {
		h.alert = ""
	}
}

// Alert returns the current banner text; empty means hidden.
func (h *Health) Alert() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.alert
}

// BackendDown reports whether the last poll failed.
func (h *Health) BackendDown() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.backendDown
}
