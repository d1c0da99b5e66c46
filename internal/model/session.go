package model

import "time"

// Session statuses as stored in sessions.status.
const (
	SessionDraft     = "DRAFT"
	SessionActive    = "ACTIVE"
	SessionCompleted = "COMPLETED"
	SessionCancelled = "CANCELLED"
)

// Session is one monthly training event. A session owns one or two
// SessionDay children (day_index 1 and 2) and exactly one Layout once a
// disposition has been generated.
type Session struct {
	ID                  uint64    // sessions.id
	Month               int       // sessions.month (1-12)
	Year                int       // sessions.year
	Location            string    // sessions.location
	Status              string    // sessions.status
	EstimatedAttendance int       // sessions.estimated_attendance
	CreatedAt           time.Time // sessions.created_at
	UpdatedAt           time.Time // sessions.updated_at

	Days []SessionDay // loaded children, ordered by day_index
}

// SessionDay is one physical day of a session. Seats hang off the day,
// and bookings join through it.
type SessionDay struct {
	ID                 uint64    // session_days.id
	SessionID          uint64    // session_days.session_id
	DayIndex           int       // session_days.day_index (1 or 2)
	Date               time.Time // session_days.date
	EstimatedAttendees int       // session_days.estimated_attendees
	ActualAttendees    int       // session_days.actual_attendees
}
