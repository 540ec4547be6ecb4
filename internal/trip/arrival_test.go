package trip

import (
	"testing"

	"github.com/triprec/trips-backend-go/internal/models"
)

func TestHasArrivedWithoutDestination(t *testing.T) {
	f := models.Fix{Lat: 46, Lng: 7, Accuracy: 0}
	if HasArrived(f, nil) {
		t.Error("Arrival must be false without a destination")
	}
}

func TestHasArrivedAtExactDestination(t *testing.T) {
	dest := &models.Destination{Lat: 46, Lng: 7}
	f := models.Fix{Lat: 46, Lng: 7, Accuracy: 0}
	if !HasArrived(f, dest) {
		t.Error("Exact position with accuracy 0 should arrive")
	}
}

func TestHasArrivedFarAway(t *testing.T) {
	dest := &models.Destination{Lat: 46, Lng: 7}
	// Roughly 1100 meters north
	f := models.Fix{Lat: 46.01, Lng: 7, Accuracy: 0}
	if HasArrived(f, dest) {
		t.Error("A fix 1km away should not arrive regardless of accuracy")
	}
}

func TestHasArrivedRequiresTightFix(t *testing.T) {
	dest := &models.Destination{Lat: 46, Lng: 7}
	f := models.Fix{Lat: 46, Lng: 7, Accuracy: 80}
	if HasArrived(f, dest) {
		t.Error("A loose fix at the destination should not trigger arrival")
	}

	f.Accuracy = 50
	if !HasArrived(f, dest) {
		t.Error("Accuracy at the gate boundary should still arrive")
	}
}

func TestHasArrivedWithinRadius(t *testing.T) {
	dest := &models.Destination{Lat: 46, Lng: 7}
	// About 44 meters north of the destination
	f := models.Fix{Lat: 46.0004, Lng: 7, Accuracy: 40}
	if !HasArrived(f, dest) {
		t.Error("A tight fix 44m from the destination should arrive")
	}
}
