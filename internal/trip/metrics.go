package trip

import (
	"errors"
	"math"

	"github.com/triprec/trips-backend-go/internal/models"
	"github.com/triprec/trips-backend-go/internal/spatial"
)

var (
	// ErrNegativeDuration is returned when endedAt precedes startedAt
	ErrNegativeDuration = errors.New("metrics: endedAt is before startedAt")
	// ErrNoPoints is returned when a metric needs at least one point
	ErrNoPoints = errors.New("metrics: no points")
)

// Distance sums the great-circle length of a coordinate sequence in
// meters, rounded once at the end rather than per segment
func Distance(coords []models.Coordinate) (int64, error) {
	var total float64
	for i := 1; i < len(coords); i++ {
		a, b := coords[i-1], coords[i]
		d := spatial.HaversineDistance(a.Lat, a.Lng, b.Lat, b.Lng)
		if math.IsNaN(d) {
			return 0, errors.New("metrics: distance is NaN")
		}
		total += d
	}
	return int64(math.Round(total)), nil
}

// Duration converts a millisecond interval to whole seconds, rounded
func Duration(startedAt, endedAt int64) (int64, error) {
	if endedAt < startedAt {
		return 0, ErrNegativeDuration
	}
	return int64(math.Round(float64(endedAt-startedAt) / 1000.0)), nil
}

// AverageAccuracy calculates the arithmetic mean accuracy of the accepted
// points. The caller must guard the empty case; finalize never reaches
// here with fewer than two points.
func AverageAccuracy(points []models.RecordedPoint) (float64, error) {
	if len(points) == 0 {
		return 0, ErrNoPoints
	}
	var sum float64
	for _, p := range points {
		sum += p.Accuracy
	}
	return sum / float64(len(points)), nil
}
