package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"irrigation_dashboard/internal/models"
	"irrigation_dashboard/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	entries := []models.LogEntry{
		{EntryID: "e1", OccurredAt: now, Type: models.LogTypeSystem, Message: "Dashboard started."},
		{EntryID: "e2", OccurredAt: now.Add(time.Second), ZoneID: 1, Type: models.LogTypeManual, Message: "Zone 1: manual watering ON."},
	}
	logs := &mockActivityLog{resp: entries}
	r := newTestRouter(&service.Service{ActivityLog: logs})

	// Invalid zone -> 400
	for _, q := range []string{"?zone=abc", "?zone=0", "?zone=-2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs"+q, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", q, w.Code)
		}
	}

	// Valid zone and type (lowercase type normalized before the service call)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?zone=1&type=manual", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count   int              `json:"count"`
		Entries []models.LogLine `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || len(out.Entries) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if out.Entries[0].EntryID != "e1" || out.Entries[1].Message != "Zone 1: manual watering ON." {
		t.Fatalf("unexpected order: %+v", out.Entries)
	}
	if out.Entries[1].Line != entries[1].Line() {
		t.Fatalf("line = %q, want %q", out.Entries[1].Line, entries[1].Line())
	}
	if logs.lastFilter.ZoneID != 1 || logs.lastFilter.Type != models.LogTypeManual {
		t.Fatalf("filter not forwarded: %+v", logs.lastFilter)
	}
}

func TestLogsHandler_ServiceError(t *testing.T) {
	r := newTestRouter(&service.Service{ActivityLog: &mockActivityLog{err: errors.New("db down")}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
