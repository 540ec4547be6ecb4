package trip

import "github.com/triprec/trips-backend-go/internal/models"

// MaxAcceptedAccuracyMeters is the accuracy gate applied to every incoming
// fix; anything less certain than this is noise for route purposes
const MaxAcceptedAccuracyMeters = 50.0

// AcceptFix reports whether a fix is precise enough to record.
// The boundary value is accepted.
func AcceptFix(f models.Fix) bool {
	return f.Valid() && f.Accuracy <= MaxAcceptedAccuracyMeters
}
