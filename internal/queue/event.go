// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// DispositionGeneratedEvent is published after a disposition run has
// been committed. It carries enough for downstream consumers (audit
// trail, notifications, analytics) without querying the database.
type DispositionGeneratedEvent struct {
	SessionID       uint64   `json:"session_id"`
	Month           int      `json:"month"`
	Year            int      `json:"year"`
	Location        string   `json:"location"`
	SeatsPerBlock   int      `json:"seats_per_block"`
	RowsCount       int      `json:"rows_count"`
	ColumnsCount    int      `json:"columns_count"`
	TotalAttendance int      `json:"total_attendance"`
	SeatedCount     int      `json:"seated_count"`
	ReservedCount   int      `json:"reserved_count"`
	UnseatedIDs     []uint64 `json:"unseated_booking_ids"`
	ActorUserID     uint64   `json:"actor_user_id"`
	GeneratedAt     string   `json:"generated_at"`
}
