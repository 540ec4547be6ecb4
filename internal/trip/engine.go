package trip

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/triprec/trips-backend-go/internal/models"
)

var (
	// ErrSessionActive is returned when a start arrives while another
	// session is still recording or finalizing
	ErrSessionActive = errors.New("engine: another session is active")
	// ErrSessionNotFound is returned for an unknown session id
	ErrSessionNotFound = errors.New("engine: session not found")
	// ErrDuplicateSession is returned when a caller-supplied id was
	// already used
	ErrDuplicateSession = errors.New("engine: session id already used")
)

// Engine owns the recording sessions. The store is partitioned by session
// id and the registry is keyed the same way, but only one session may be
// active at a time; the single fix stream is not fanned out.
type Engine struct {
	store    PointStore
	uploader Uploader

	mu       sync.Mutex
	sessions map[string]*Session
	activeID string
}

// NewEngine creates an engine over the given collaborators
func NewEngine(store PointStore, uploader Uploader) *Engine {
	return &Engine{
		store:    store,
		uploader: uploader,
		sessions: make(map[string]*Session),
	}
}

// Start begins a new recording session. An empty id asks the engine to
// generate one. dest may be nil.
func (e *Engine) Start(id string, dest *models.Destination) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.activeID != "" {
		if active, ok := e.sessions[e.activeID]; ok && active.State() != StateTerminated {
			return nil, ErrSessionActive
		}
		e.activeID = ""
	}

	if id == "" {
		id = uuid.NewString()
	} else if _, ok := e.sessions[id]; ok {
		return nil, ErrDuplicateSession
	}

	s := NewSession(id, dest, e.store, e.uploader)
	if err := s.Start(); err != nil {
		return nil, err
	}
	e.sessions[id] = s
	e.activeID = id
	return s, nil
}

// Session looks up a session by id
func (e *Engine) Session(id string) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Ingest routes a delivery batch to a session
func (e *Engine) Ingest(ctx context.Context, id string, fixes []models.Fix) (*models.TripSummary, bool, error) {
	s, err := e.Session(id)
	if err != nil {
		return nil, false, err
	}
	return s.IngestBatch(ctx, fixes)
}

// Stop ends a session manually and returns its summary, if the trip
// produced one
func (e *Engine) Stop(ctx context.Context, id string) (*models.TripSummary, error) {
	s, err := e.Session(id)
	if err != nil {
		return nil, err
	}
	return s.Stop(ctx)
}
