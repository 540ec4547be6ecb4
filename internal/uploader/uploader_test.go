package uploader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/triprec/trips-backend-go/internal/models"
)

func TestUploadPostsTripPayload(t *testing.T) {
	var got models.TripSummary
	var path, contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	summary := models.TripSummary{
		TripID:                "trip-1",
		EncodedPolyline:       "_p~iF~ps|U",
		DistanceMeters:        222,
		DurationSeconds:       10,
		StartedAt:             0,
		EndedAt:               10000,
		AverageAccuracyMeters: 10,
		RawPointsCount:        3,
	}

	if err := client.Upload(context.Background(), summary); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if path != "/trips" {
		t.Errorf("Path = %q, want /trips", path)
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", contentType)
	}
	if got != summary {
		t.Errorf("Payload = %+v, want %+v", got, summary)
	}
}

func TestUploadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	if err := client.Upload(context.Background(), models.TripSummary{TripID: "x"}); err == nil {
		t.Error("Expected an error for a 500 response")
	}
}

func TestUploadConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second)
	if err := client.Upload(context.Background(), models.TripSummary{TripID: "x"}); err == nil {
		t.Error("Expected an error when the collector is unreachable")
	}
}
