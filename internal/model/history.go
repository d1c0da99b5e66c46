package model

import "time"

// Disposition history action types.
const (
	ActionAutoGenerate  = "auto_generate"
	ActionAddRow        = "add_row"
	ActionChangeBlock   = "change_seats_per_block"
	ActionManualEditing = "manual_edit"
)

// DispositionHistory is an append-only audit entry describing a change
// to a session's disposition. Snapshot holds a JSON summary of the
// layout and attendance at the time of the action; entries are never
// mutated after insert.
type DispositionHistory struct {
	ID          uint64    // disposition_history.id
	SessionID   uint64    // disposition_history.session_id
	ActionType  string    // disposition_history.action_type
	Description string    // disposition_history.description
	Snapshot    string    // disposition_history.snapshot (JSON)
	ActorUserID uint64    // disposition_history.actor_user_id
	CreatedAt   time.Time // disposition_history.created_at
}
