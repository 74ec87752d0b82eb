package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"IrCar/internal/model"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	j, err := OpenJournal(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return NewServer(":0", j)
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t)

	// before any publish: 404
	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("empty status code = %d, want 404", rec.Code)
	}

	s.Publish(model.Status{CarID: "CAR01", Mode: "smart-forward", Motion: "right", Buzzer: true})

	rec = httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", rec.Code)
	}
	var got model.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CarID != "CAR01" || got.Mode != "smart-forward" || !got.Buzzer {
		t.Fatalf("got %+v", got)
	}
}

func TestEventsEndpointNewestFirst(t *testing.T) {
	s := newTestServer(t)

	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, detail := range []string{"smart-forward", "avoiding", "clear"} {
		s.Record(model.Event{
			ID:     detail, // stable ids keep the assertion simple
			CarID:  "CAR01",
			Time:   t0.Add(time.Duration(i) * time.Second),
			Kind:   "mode",
			Detail: detail,
		})
	}

	rec := httptest.NewRecorder()
	s.handleEvents(rec, httptest.NewRequest(http.MethodGet, "/api/events?n=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("events code = %d, want 200", rec.Code)
	}
	var events []model.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Detail != "clear" || events[1].Detail != "avoiding" {
		t.Fatalf("order wrong: %s, %s", events[0].Detail, events[1].Detail)
	}
}

func TestJournalRecentEmpty(t *testing.T) {
	s := newTestServer(t)
	events, err := s.journal.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("got %d events from empty journal", len(events))
	}
}
