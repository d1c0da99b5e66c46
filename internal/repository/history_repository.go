package repository

import (
	"context"
	"database/sql"

	"github.com/vallicrm/training-seat-disposition/internal/model"
)

// HistoryRepo appends to the disposition audit log. Entries are
// write-once; there is no update or delete path.
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo constructs a HistoryRepo with the given DB handle.
func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// InsertTx appends an audit entry within an existing transaction.
func (r *HistoryRepo) InsertTx(ctx context.Context, tx *sql.Tx, h model.DispositionHistory) error {
	const q = `INSERT INTO disposition_history (session_id, action_type, description, snapshot, actor_user_id)
	           VALUES (?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, h.SessionID, h.ActionType, h.Description, h.Snapshot, h.ActorUserID)
	return err
}

// Insert appends an audit entry outside any transaction; used by the
// standalone manual-edit actions.
func (r *HistoryRepo) Insert(ctx context.Context, h model.DispositionHistory) error {
	const q = `INSERT INTO disposition_history (session_id, action_type, description, snapshot, actor_user_id)
	           VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, h.SessionID, h.ActionType, h.Description, h.Snapshot, h.ActorUserID)
	return err
}

// ListBySession returns a session's audit entries, newest first.
func (r *HistoryRepo) ListBySession(ctx context.Context, sessionID uint64) ([]model.DispositionHistory, error) {
	const q = `SELECT id, session_id, action_type, description, snapshot, actor_user_id, created_at
	           FROM disposition_history
	           WHERE session_id = ?
	           ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.DispositionHistory
	for rows.Next() {
		var h model.DispositionHistory
		if err := rows.Scan(&h.ID, &h.SessionID, &h.ActionType, &h.Description,
			&h.Snapshot, &h.ActorUserID, &h.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
