package spatial

import (
	"math"
)

// PlanarPoint is a geographic point projected onto a local tangent plane,
// in meters
type PlanarPoint struct {
	X float64
	Y float64
}

// Projection maps geographic coordinates onto an equirectangular plane
// anchored at a reference latitude. Distances on the plane approximate
// surface meters well for short-to-medium paths; the cosine correction
// keeps the east-west scale consistent at high latitudes.
type Projection struct {
	cosLat float64
}

// NewProjection builds a projection anchored at the given reference latitude
func NewProjection(refLat float64) Projection {
	return Projection{cosLat: math.Cos(refLat * math.Pi / 180)}
}

// Project converts latitude/longitude degrees to planar meters
func (pr Projection) Project(lat, lng float64) PlanarPoint {
	const metersPerDegree = math.Pi / 180 * EarthRadiusMeters
	return PlanarPoint{
		X: lng * pr.cosLat * metersPerDegree,
		Y: lat * metersPerDegree,
	}
}

// PerpendicularDistance calculates the distance in meters from a point to
// the segment between lineStart and lineEnd on the projected plane.
// A zero-length segment degenerates to point distance, so repeated
// coordinates never divide by zero.
func PerpendicularDistance(point, lineStart, lineEnd PlanarPoint) float64 {
	dx := lineEnd.X - lineStart.X
	dy := lineEnd.Y - lineStart.Y

	den := math.Sqrt(dx*dx + dy*dy)
	if den == 0 {
		return math.Hypot(point.X-lineStart.X, point.Y-lineStart.Y)
	}

	num := math.Abs(dy*point.X - dx*point.Y + lineEnd.X*lineStart.Y - lineEnd.Y*lineStart.X)
	return num / den
}
