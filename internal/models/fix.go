package models

import (
	"errors"
	"math"
)

// Fix represents a single positional reading from the location source
type Fix struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	TimeMillis int64   `json:"timeMillis"` // Unix timestamp in milliseconds
	Accuracy   float64 `json:"accuracy"`   // Horizontal accuracy in meters
}

// Valid checks the fix for out-of-range or non-finite values
func (f Fix) Valid() bool {
	if math.IsNaN(f.Lat) || math.IsNaN(f.Lng) || math.IsNaN(f.Accuracy) {
		return false
	}
	if f.Lat < -90 || f.Lat > 90 || f.Lng < -180 || f.Lng > 180 {
		return false
	}
	return f.Accuracy >= 0
}

// Coordinate is a latitude/longitude pair without time or accuracy
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ErrInvalidDestination is returned when only one of lat/lng is supplied
// or the pair is out of range
var ErrInvalidDestination = errors.New("destination requires both lat and lng in range")

// Destination is an optional session target; nil means no arrival detection
type Destination struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewDestination validates a lat/lng pair where either value may be missing.
// Returns (nil, nil) when both are omitted.
func NewDestination(lat, lng *float64) (*Destination, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, ErrInvalidDestination
	}
	if math.IsNaN(*lat) || math.IsNaN(*lng) || *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
		return nil, ErrInvalidDestination
	}
	return &Destination{Lat: *lat, Lng: *lng}, nil
}
