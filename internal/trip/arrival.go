package trip

import (
	"github.com/triprec/trips-backend-go/internal/models"
	"github.com/triprec/trips-backend-go/internal/spatial"
)

// ArrivalRadiusMeters is the geofence radius around the destination
const ArrivalRadiusMeters = 60.0

// HasArrived reports whether a fix places the traveller at the
// destination. Always false without a destination. Arrival additionally
// requires a tight fix (accuracy within the recording gate) so a noisy
// reading near the boundary cannot end the trip early.
func HasArrived(f models.Fix, dest *models.Destination) bool {
	if dest == nil {
		return false
	}
	if f.Accuracy > MaxAcceptedAccuracyMeters {
		return false
	}
	return spatial.HaversineDistance(f.Lat, f.Lng, dest.Lat, dest.Lng) <= ArrivalRadiusMeters
}
