package trip

import (
	"context"
	"errors"
	"testing"

	"github.com/triprec/trips-backend-go/internal/models"
)

func TestEngineGeneratesSessionID(t *testing.T) {
	e := NewEngine(newMemStore(), &fakeUploader{})

	s, err := e.Start("", nil)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.ID == "" {
		t.Error("Expected a generated session id")
	}
	if s.State() != StateRecording {
		t.Errorf("State = %v, want recording", s.State())
	}
}

func TestEngineRejectsSecondActiveSession(t *testing.T) {
	e := NewEngine(newMemStore(), &fakeUploader{})

	if _, err := e.Start("first", nil); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := e.Start("second", nil); !errors.Is(err, ErrSessionActive) {
		t.Errorf("Expected ErrSessionActive, got %v", err)
	}

	// After the active session terminates, a new one may start
	if _, err := e.Stop(context.Background(), "first"); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if _, err := e.Start("second", nil); err != nil {
		t.Errorf("Start after terminate failed: %v", err)
	}
}

func TestEngineRejectsDuplicateID(t *testing.T) {
	e := NewEngine(newMemStore(), &fakeUploader{})

	if _, err := e.Start("dup", nil); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := e.Stop(context.Background(), "dup"); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if _, err := e.Start("dup", nil); !errors.Is(err, ErrDuplicateSession) {
		t.Errorf("Expected ErrDuplicateSession, got %v", err)
	}
}

func TestEngineUnknownSession(t *testing.T) {
	e := NewEngine(newMemStore(), &fakeUploader{})

	if _, err := e.Stop(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
	if _, _, err := e.Ingest(context.Background(), "missing", []models.Fix{{Lat: 0, Lng: 0, Accuracy: 10}}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestEngineEndToEnd(t *testing.T) {
	store := newMemStore()
	up := &fakeUploader{}
	e := NewEngine(store, up)

	s, err := e.Start("trip-1", nil)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	fixes := []models.Fix{
		{Lat: 0, Lng: 0, TimeMillis: 0, Accuracy: 10},
		{Lat: 0.001, Lng: 0.001, TimeMillis: 5000, Accuracy: 20},
		{Lat: 0.002, Lng: 0.002, TimeMillis: 10000, Accuracy: 30},
	}
	if _, _, err := e.Ingest(context.Background(), "trip-1", fixes); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	summary, err := e.Stop(context.Background(), "trip-1")
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if summary == nil {
		t.Fatal("Expected a summary")
	}
	if summary.TripID != "trip-1" {
		t.Errorf("TripID = %q, want trip-1", summary.TripID)
	}
	if summary.AverageAccuracyMeters != 20 {
		t.Errorf("AverageAccuracyMeters = %f, want 20", summary.AverageAccuracyMeters)
	}
	if up.calls() != 1 {
		t.Errorf("Uploads = %d, want 1", up.calls())
	}
	if s.State() != StateTerminated {
		t.Errorf("State = %v, want terminated", s.State())
	}
}
