package route

import (
	"errors"
	"math"

	"github.com/triprec/trips-backend-go/internal/models"
	"github.com/triprec/trips-backend-go/internal/spatial"
)

// DefaultTolerance is the simplification tolerance applied to finished
// trips, in meters
const DefaultTolerance = 10.0

var (
	// ErrNegativeTolerance is returned for a tolerance below zero
	ErrNegativeTolerance = errors.New("simplify: tolerance must be >= 0")
	// ErrInvalidCoordinate is returned when the input contains a
	// non-finite latitude or longitude
	ErrInvalidCoordinate = errors.New("simplify: coordinate is not a finite number")
)

// Simplify reduces an ordered coordinate sequence using the
// Ramer-Douglas-Peucker algorithm, keeping every point that deviates more
// than tolerance meters from the segment between its retained neighbours.
// The first and last points are always kept, and the output is a
// subsequence of the input. Inputs of two or fewer points are returned
// unchanged.
//
// Distances are measured on an equirectangular projection anchored at the
// path's mean latitude, so the tolerance stays meaningful at high
// latitudes.
func Simplify(coords []models.Coordinate, tolerance float64) ([]models.Coordinate, error) {
	if tolerance < 0 || math.IsNaN(tolerance) {
		return nil, ErrNegativeTolerance
	}
	for _, c := range coords {
		if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
			return nil, ErrInvalidCoordinate
		}
	}
	if len(coords) <= 2 {
		return coords, nil
	}

	var meanLat float64
	for _, c := range coords {
		meanLat += c.Lat
	}
	meanLat /= float64(len(coords))

	proj := spatial.NewProjection(meanLat)
	planar := make([]spatial.PlanarPoint, len(coords))
	for i, c := range coords {
		planar[i] = proj.Project(c.Lat, c.Lng)
	}

	keep := make([]bool, len(coords))
	keep[0] = true
	keep[len(coords)-1] = true
	simplifySegment(planar, 0, len(coords)-1, tolerance, keep)

	result := make([]models.Coordinate, 0, len(coords))
	for i, k := range keep {
		if k {
			result = append(result, coords[i])
		}
	}
	return result, nil
}

// simplifySegment marks the interior points to keep between two already
// retained indices. An explicit stack replaces recursion so degenerate
// inputs with thousands of duplicate points cannot blow the call stack.
func simplifySegment(planar []spatial.PlanarPoint, first, last int, tolerance float64, keep []bool) {
	type span struct{ first, last int }
	stack := []span{{first, last}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.last-s.first < 2 {
			continue
		}

		maxDist := 0.0
		maxIndex := s.first
		for i := s.first + 1; i < s.last; i++ {
			dist := spatial.PerpendicularDistance(planar[i], planar[s.first], planar[s.last])
			if dist > maxDist {
				maxDist = dist
				maxIndex = i
			}
		}

		if maxDist > tolerance {
			keep[maxIndex] = true
			stack = append(stack, span{s.first, maxIndex}, span{maxIndex, s.last})
		}
	}
}
