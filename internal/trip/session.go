package trip

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/triprec/trips-backend-go/internal/models"
	"github.com/triprec/trips-backend-go/internal/route"
)

// PointStore is the persistence collaborator for accepted fixes,
// partitioned by session id
type PointStore interface {
	// Append stores one accepted fix. Duplicates may be ignored.
	Append(ctx context.Context, sessionID string, f models.Fix) error
	// Query returns a session's points in ascending timestamp order
	Query(ctx context.Context, sessionID string) ([]models.RecordedPoint, error)
	// Delete removes all points for a session
	Delete(ctx context.Context, sessionID string) error
}

// Uploader hands a finished trip to the remote collector
type Uploader interface {
	Upload(ctx context.Context, summary models.TripSummary) error
}

// State is the lifecycle phase of a recording session
type State int

const (
	StateIdle State = iota
	StateRecording
	StateFinalizing
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateFinalizing:
		return "finalizing"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// StopReason records what ended a session
type StopReason string

const (
	StopManual  StopReason = "manual"
	StopArrival StopReason = "arrival"
)

var (
	// ErrNotIdle is returned when Start is called on a session that
	// already ran
	ErrNotIdle = errors.New("session: start is only valid from idle")
	// ErrNotRecording is returned when Ingest reaches a session that is
	// not recording
	ErrNotRecording = errors.New("session: not recording")
)

// Session is the per-trip state machine. Ingest and Stop may be called
// concurrently from independent goroutines; a single mutex serializes the
// state transitions, and a wait group orders in-flight point writes ahead
// of the finalize read.
type Session struct {
	ID   string
	dest *models.Destination

	store    PointStore
	uploader Uploader
	now      func() int64

	mu         sync.Mutex
	state      State
	stopReason StopReason
	startedAt  int64
	endedAt    int64
	accepted   int

	pending sync.WaitGroup
}

// NewSession creates an idle session. dest may be nil.
func NewSession(id string, dest *models.Destination, store PointStore, uploader Uploader) *Session {
	return &Session{
		ID:       id,
		dest:     dest,
		store:    store,
		uploader: uploader,
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// Start transitions the session from idle to recording
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrNotIdle
	}
	s.state = StateRecording
	s.startedAt = s.now()
	return nil
}

// State returns the current lifecycle phase
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AcceptedCount returns the number of fixes that passed the accuracy gate
func (s *Session) AcceptedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepted
}

// Reason reports what ended the session; empty while still recording
func (s *Session) Reason() StopReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopReason
}

// Ingest processes one fix while recording. Accepted fixes are persisted
// asynchronously so the delivery path never waits on storage. When the fix
// satisfies arrival detection the session stops itself and the resulting
// summary (nil for a degenerate trip) is returned with arrived=true.
func (s *Session) Ingest(ctx context.Context, f models.Fix) (summary *models.TripSummary, arrived bool, err error) {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return nil, false, ErrNotRecording
	}

	if !AcceptFix(f) {
		s.mu.Unlock()
		return nil, false, nil
	}

	s.accepted++
	s.pending.Add(1)
	// The write outlives the delivery request that carried the fix.
	writeCtx := context.WithoutCancel(ctx)
	go func() {
		defer s.pending.Done()
		if err := s.store.Append(writeCtx, s.ID, f); err != nil {
			// A dropped sample is tolerable; the stream continues.
			log.Printf("session %s: append failed: %v", s.ID, err)
		}
	}()

	if !HasArrived(f, s.dest) {
		s.mu.Unlock()
		return nil, false, nil
	}

	// Arrival ends the trip as part of the same logical step. The state
	// change happens before the lock is released, so later fixes in the
	// same batch see finalizing and are ignored.
	s.state = StateFinalizing
	s.stopReason = StopArrival
	s.endedAt = s.now()
	s.mu.Unlock()

	summary, err = s.finalize(ctx)
	return summary, true, err
}

// IngestBatch feeds a delivery batch in order, stopping at the first fix
// that triggers arrival. Fixes after that point are dropped, matching the
// at-most-once stop contract.
func (s *Session) IngestBatch(ctx context.Context, fixes []models.Fix) (*models.TripSummary, bool, error) {
	for _, f := range fixes {
		summary, arrived, err := s.Ingest(ctx, f)
		if arrived || err != nil {
			return summary, arrived, err
		}
	}
	return nil, false, nil
}

// Stop ends the session manually. A stop racing another stop, or arriving
// after arrival already ended the trip, is a no-op returning no summary.
func (s *Session) Stop(ctx context.Context) (*models.TripSummary, error) {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return nil, nil
	}
	s.state = StateFinalizing
	s.stopReason = StopManual
	s.endedAt = s.now()
	s.mu.Unlock()

	return s.finalize(ctx)
}

// finalize runs exactly once per session, after the recording→finalizing
// transition. It waits out pending appends, reads the full point log,
// builds and uploads the trip summary, and always cleans up and reaches
// the terminated state regardless of upload or query outcome.
func (s *Session) finalize(ctx context.Context) (*models.TripSummary, error) {
	// Cleanup and termination run no matter how finalize exits; a stuck
	// session is worse than a lost upload.
	defer s.terminate()
	defer s.cleanup(ctx)

	s.pending.Wait()

	points, err := s.store.Query(ctx, s.ID)
	if err != nil {
		return nil, err
	}

	if len(points) < 2 {
		// A trip needs at least two points to define a path.
		return nil, nil
	}

	coords := make([]models.Coordinate, len(points))
	for i, p := range points {
		coords[i] = models.Coordinate{Lat: p.Lat, Lng: p.Lng}
	}

	simplified, err := route.Simplify(coords, route.DefaultTolerance)
	if err != nil {
		return nil, err
	}

	distance, err := Distance(simplified)
	if err != nil {
		return nil, err
	}
	duration, err := Duration(s.startedAt, s.endedAt)
	if err != nil {
		return nil, err
	}
	avgAccuracy, err := AverageAccuracy(points)
	if err != nil {
		return nil, err
	}

	summary := &models.TripSummary{
		TripID:                s.ID,
		EncodedPolyline:       route.Encode(simplified),
		DistanceMeters:        distance,
		DurationSeconds:       duration,
		StartedAt:             s.startedAt,
		EndedAt:               s.endedAt,
		AverageAccuracyMeters: avgAccuracy,
		RawPointsCount:        len(points),
	}

	// At most one attempt; a failed upload loses the trip but never
	// blocks cleanup or termination.
	if err := s.uploader.Upload(ctx, *summary); err != nil {
		log.Printf("session %s: upload failed: %v", s.ID, err)
	}

	return summary, nil
}

func (s *Session) cleanup(ctx context.Context) {
	if err := s.store.Delete(ctx, s.ID); err != nil {
		log.Printf("session %s: cleanup failed: %v", s.ID, err)
	}
}

func (s *Session) terminate() {
	s.mu.Lock()
	s.state = StateTerminated
	s.mu.Unlock()
}
