package models

// RecordedPoint is a Fix tagged with its session, the unit stored in the
// point store
type RecordedPoint struct {
	ID         int64   `json:"id" db:"id"`
	SessionID  string  `json:"sessionId" db:"session_id"`
	Lat        float64 `json:"lat" db:"lat"`
	Lng        float64 `json:"lng" db:"lng"`
	TimeMillis int64   `json:"timeMillis" db:"time_millis"`
	Accuracy   float64 `json:"accuracy" db:"accuracy"`
}

// Fix returns the positional reading carried by the point
func (p RecordedPoint) Fix() Fix {
	return Fix{Lat: p.Lat, Lng: p.Lng, TimeMillis: p.TimeMillis, Accuracy: p.Accuracy}
}

// TripSummary is the finalize output handed to the collector.
// Field names match the collector's trip upload contract.
type TripSummary struct {
	TripID                string  `json:"tripId"`
	EncodedPolyline       string  `json:"encodedPolyline"`
	DistanceMeters        int64   `json:"distanceMeters"`
	DurationSeconds       int64   `json:"durationSeconds"`
	StartedAt             int64   `json:"startedAt"`
	EndedAt               int64   `json:"endedAt"`
	AverageAccuracyMeters float64 `json:"averageAccuracyMeters"`
	RawPointsCount        int     `json:"rawPointsCount"`
}
