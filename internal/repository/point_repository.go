package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/triprec/trips-backend-go/internal/models"
)

// PointRepository persists trip points in sqlite, partitioned by session id
type PointRepository struct {
	db *sql.DB
}

// NewPointRepository creates a new point repository
func NewPointRepository(db *sql.DB) *PointRepository {
	return &PointRepository{db: db}
}

// Append stores one accepted fix for a session
func (r *PointRepository) Append(ctx context.Context, sessionID string, f models.Fix) error {
	query := `INSERT INTO trip_points (session_id, lat, lng, time_millis, accuracy)
		VALUES (?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, sessionID, f.Lat, f.Lng, f.TimeMillis, f.Accuracy); err != nil {
		return fmt.Errorf("failed to append point: %w", err)
	}
	return nil
}

// Query returns a session's points in ascending timestamp order. The sort
// is enforced here rather than trusted from insertion order.
func (r *PointRepository) Query(ctx context.Context, sessionID string) ([]models.RecordedPoint, error) {
	query := `SELECT id, session_id, lat, lng, time_millis, accuracy
		FROM trip_points
		WHERE session_id = ?
		ORDER BY time_millis ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}
	defer rows.Close()

	var points []models.RecordedPoint
	for rows.Next() {
		var p models.RecordedPoint
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Lat, &p.Lng, &p.TimeMillis, &p.Accuracy); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}

	return points, nil
}

// Delete removes all points for a session
func (r *PointRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM trip_points WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session points: %w", err)
	}
	return nil
}
