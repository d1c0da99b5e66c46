package model

import "time"

// Booking statuses as stored in bookings.status. Only confirmed bookings
// participate in seat assignment.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking is one attendance record: one student, one session day, one
// manual. CompanyReferenceID is the company this attendance is billed
// to and is what the anti-affiliation interleave keys on. At most one
// confirmed booking exists per (student, session_day).
type Booking struct {
	ID                  uint64    // bookings.id
	SessionDayID        uint64    // bookings.session_day_id
	StudentID           uint64    // bookings.student_id
	ManualID            uint64    // bookings.manual_id
	CompanyReferenceID  *uint64   // bookings.company_reference_id (nullable)
	Status              string    // bookings.status
	Tags                string    // bookings.tags (comma separated, may be empty)
	KeepSeatBetweenDays bool      // bookings.keep_seat_between_days
	Notes               string    // bookings.notes
	CreatedAt           time.Time // bookings.created_at
}

// RosterBooking is a confirmed booking joined with everything the
// disposition generator needs in one row: the booked manual's area and
// the student's enrollment snapshot. HasEnrollment distinguishes a real
// zero-progress enrollment from a student with no enrollment data, who
// ranks last and never triggers a forward reservation.
type RosterBooking struct {
	Booking
	Area          Area
	HasEnrollment bool
	Progress      int
	TotalPoints   int
	NextManualID  *uint64
}

// NearFinishing reports whether the student is about to complete their
// current manual and should get a seat pre-reserved in the next area.
func (rb RosterBooking) NearFinishing() bool {
	return rb.HasEnrollment && rb.TotalPoints-rb.Progress < 10
}
