package model

import "time"

// Student is a person attending sessions. CompanyID is the affiliation
// used for anti-affiliation seating when a booking does not carry its
// own company reference.
type Student struct {
	ID        uint64    // students.id
	Name      string    // students.name
	Email     string    // students.email
	Phone     *string   // students.phone (nullable)
	CompanyID *uint64   // students.company_id (nullable)
	CreatedAt time.Time // students.created_at
	UpdatedAt time.Time // students.updated_at
}

// Enrollment tracks a student's progress through their current manual.
// CurrentProgress and TotalPoints drive placement priority; NextManualID
// drives forward reservation when the student is close to finishing.
type Enrollment struct {
	ID              uint64  // enrollments.id
	StudentID       uint64  // enrollments.student_id
	ManualID        uint64  // enrollments.manual_id
	CurrentProgress int     // enrollments.current_progress
	TotalPoints     int     // enrollments.total_points
	NextManualID    *uint64 // enrollments.next_manual_id (nullable)
}
