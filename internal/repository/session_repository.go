package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vallicrm/training-seat-disposition/internal/model"
)

// ErrSessionNotFound is returned when a session lookup yields no rows.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepo provides read access to sessions and their days.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// GetWithDays loads a session and its days ordered by day_index. The
// generator relies on that order: day 1 is assigned before day 2 so
// keep-seat pins can carry over.
func (r *SessionRepo) GetWithDays(ctx context.Context, id uint64) (*model.Session, error) {
	const q = `SELECT id, month, year, location, status, estimated_attendance, created_at, updated_at
	           FROM sessions WHERE id = ?`
	var s model.Session
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.Month, &s.Year, &s.Location, &s.Status,
		&s.EstimatedAttendance, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	const dq = `SELECT id, session_id, day_index, date, estimated_attendees, actual_attendees
	            FROM session_days
	            WHERE session_id = ?
	            ORDER BY day_index`
	rows, err := r.db.QueryContext(ctx, dq, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d model.SessionDay
		if err := rows.Scan(&d.ID, &d.SessionID, &d.DayIndex, &d.Date,
			&d.EstimatedAttendees, &d.ActualAttendees); err != nil {
			return nil, err
		}
		s.Days = append(s.Days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

// SessionIDByDay resolves the owning session of a session day.
func (r *SessionRepo) SessionIDByDay(ctx context.Context, dayID uint64) (uint64, error) {
	const q = `SELECT session_id FROM session_days WHERE id = ?`
	var id uint64
	if err := r.db.QueryRowContext(ctx, q, dayID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrSessionNotFound
		}
		return 0, err
	}
	return id, nil
}

// DayIDs returns the session's day ids in day_index order.
func (r *SessionRepo) DayIDs(ctx context.Context, sessionID uint64) ([]uint64, error) {
	const q = `SELECT id FROM session_days WHERE session_id = ? ORDER BY day_index`
	rows, err := r.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrSessionNotFound
	}
	return ids, nil
}
