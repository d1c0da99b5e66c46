package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/vallicrm/training-seat-disposition/internal/model"
)

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// SeatRepo provides data access for the per-day seat grids.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

const seatColumns = `id, session_day_id, row_letter, column_number, area, status,
	booking_id, reservation_for_student_id, is_locked, notes, created_at, updated_at`

func scanSeat(sc interface{ Scan(...any) error }) (model.Seat, error) {
	var (
		s           model.Seat
		bookingID   sql.NullInt64
		reservedFor sql.NullInt64
		notes       sql.NullString
	)
	err := sc.Scan(&s.ID, &s.SessionDayID, &s.RowLetter, &s.ColumnNumber, &s.Area,
		&s.Status, &bookingID, &reservedFor, &s.IsLocked, &notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return s, err
	}
	if bookingID.Valid {
		v := uint64(bookingID.Int64)
		s.BookingID = &v
	}
	if reservedFor.Valid {
		v := uint64(reservedFor.Int64)
		s.ReservationForStudentID = &v
	}
	s.Notes = notes.String
	return s, nil
}

// ListByDay retrieves all seats of a session day in grid order.
func (r *SeatRepo) ListByDay(ctx context.Context, sessionDayID uint64) ([]model.Seat, error) {
	q := `SELECT ` + seatColumns + `
	      FROM seats
	      WHERE session_day_id = ?
	      ORDER BY row_letter, column_number`
	rows, err := r.db.QueryContext(ctx, q, sessionDayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a single seat.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	q := `SELECT ` + seatColumns + ` FROM seats WHERE id = ?`
	s, err := scanSeat(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// DeleteByDaysTx removes every seat of the given session days inside an
// existing transaction. Regeneration is a destructive rebuild: manual
// adjustments and locks go with the rows.
func (r *SeatRepo) DeleteByDaysTx(ctx context.Context, tx *sql.Tx, sessionDayIDs []uint64) error {
	if len(sessionDayIDs) == 0 {
		return nil
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(sessionDayIDs)), ",")
	args := make([]interface{}, len(sessionDayIDs))
	for i, id := range sessionDayIDs {
		args[i] = id
	}
	_, err := tx.ExecContext(ctx,
		`DELETE FROM seats WHERE session_day_id IN (`+placeholders+`)`, args...)
	return err
}

// CreateBulkTx inserts multiple seats in a single statement inside an
// existing transaction. Status, booking and reservation fields are
// written as-is so a generated grid lands in its final state.
func (r *SeatRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (session_day_id, row_letter, column_number, area, status, booking_id, reservation_for_student_id) VALUES `
	args := make([]interface{}, 0, len(seats)*7)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?)"
		var bookingID, reservedFor interface{}
		if s.BookingID != nil {
			bookingID = *s.BookingID
		}
		if s.ReservationForStudentID != nil {
			reservedFor = *s.ReservationForStudentID
		}
		args = append(args, s.SessionDayID, s.RowLetter, s.ColumnNumber, s.Area, s.Status, bookingID, reservedFor)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// SetLocked flips the lock flag on a seat.
func (r *SeatRepo) SetLocked(ctx context.Context, id uint64, locked bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE seats SET is_locked = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		locked, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// SwapPositions exchanges row/column/area between two seats in one
// transaction. Status, booking and reservation stay with their seat
// row; only the position fields move. Lock checks happen in the caller
// before this runs.
func (r *SeatRepo) SwapPositions(ctx context.Context, a, b *model.Seat) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Park seat A on column 0 first: (day, row, column) is unique, so
	// writing B's position onto A while B still holds it would trip the
	// key mid-swap.
	const q = `UPDATE seats SET row_letter = ?, column_number = ?, area = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, a.RowLetter, 0, a.Area, a.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, q, a.RowLetter, a.ColumnNumber, a.Area, b.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, q, b.RowLetter, b.ColumnNumber, b.Area, a.ID); err != nil {
		return err
	}
	return tx.Commit()
}
