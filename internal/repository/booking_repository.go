package repository

import (
	"context"
	"database/sql"

	"github.com/vallicrm/training-seat-disposition/internal/model"
)

// BookingRepo provides read access to bookings for disposition runs.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// ListConfirmedByDay returns one day's confirmed bookings joined with
// the booked manual's area and the student's enrollment for that
// manual. Rows come back in booking id order, which is the stable
// tie-break for equal-progress students.
func (r *BookingRepo) ListConfirmedByDay(ctx context.Context, sessionDayID uint64) ([]model.RosterBooking, error) {
	const q = `SELECT b.id, b.session_day_id, b.student_id, b.manual_id,
	                  b.company_reference_id, b.status, b.tags,
	                  b.keep_seat_between_days, b.notes, b.created_at,
	                  m.area,
	                  e.current_progress, e.total_points, e.next_manual_id
	           FROM bookings b
	           JOIN manuals m ON m.id = b.manual_id
	           LEFT JOIN enrollments e
	                ON e.student_id = b.student_id AND e.manual_id = b.manual_id
	           WHERE b.session_day_id = ? AND b.status = 'CONFIRMED'
	           ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q, sessionDayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RosterBooking
	for rows.Next() {
		var (
			rb         model.RosterBooking
			companyRef sql.NullInt64
			tags       sql.NullString
			notes      sql.NullString
			progress   sql.NullInt64
			total      sql.NullInt64
			nextManual sql.NullInt64
		)
		if err := rows.Scan(
			&rb.ID, &rb.SessionDayID, &rb.StudentID, &rb.ManualID,
			&companyRef, &rb.Status, &tags,
			&rb.KeepSeatBetweenDays, &notes, &rb.CreatedAt,
			&rb.Area,
			&progress, &total, &nextManual,
		); err != nil {
			return nil, err
		}
		if companyRef.Valid {
			v := uint64(companyRef.Int64)
			rb.CompanyReferenceID = &v
		}
		rb.Tags = tags.String
		rb.Notes = notes.String
		if progress.Valid && total.Valid {
			rb.HasEnrollment = true
			rb.Progress = int(progress.Int64)
			rb.TotalPoints = int(total.Int64)
			if nextManual.Valid {
				v := uint64(nextManual.Int64)
				rb.NextManualID = &v
			}
		}
		result = append(result, rb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
