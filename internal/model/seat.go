package model

import "time"

// Seat statuses as stored in seats.status. The lock flag is orthogonal:
// a locked seat keeps its status but is excluded from manual editing.
const (
	SeatEmpty    = "EMPTY"
	SeatOccupied = "OCCUPIED"
	SeatReserved = "RESERVED"
)

// Seat is one grid cell for one session day. (SessionDayID, RowLetter,
// ColumnNumber) is unique. BookingID is set when occupied;
// ReservationForStudentID when reserved for a near-finishing student's
// next manual.
type Seat struct {
	ID                      uint64    // seats.id
	SessionDayID            uint64    // seats.session_day_id
	RowLetter               string    // seats.row_letter ('a'..'l')
	ColumnNumber            int       // seats.column_number (1-based)
	Area                    Area      // seats.area, derived from column
	Status                  string    // seats.status
	BookingID               *uint64   // seats.booking_id (nullable)
	ReservationForStudentID *uint64   // seats.reservation_for_student_id (nullable)
	IsLocked                bool      // seats.is_locked
	Notes                   string    // seats.notes
	CreatedAt               time.Time // seats.created_at
	UpdatedAt               time.Time // seats.updated_at
}

// RowLetterFor converts a zero-based row index to its letter. Rows are
// capped at MaxRows so the single-letter alphabet never rolls over.
func RowLetterFor(i int) string {
	if i < 0 || i >= 26 {
		return ""
	}
	return string(rune('a' + i))
}

// RowIndexOf is the inverse of RowLetterFor; ok is false for anything
// outside 'a'..'z'.
func RowIndexOf(letter string) (int, bool) {
	if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
		return 0, false
	}
	return int(letter[0] - 'a'), true
}
