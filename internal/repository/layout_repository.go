package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vallicrm/training-seat-disposition/internal/model"
)

// ErrLayoutNotFound is returned when a session has no layout yet.
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutRepo persists the per-session room geometry. layouts.session_id
// carries a unique key, so each session has at most one layout row.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo constructs a LayoutRepo with the given DB handle.
func NewLayoutRepo(db *sql.DB) *LayoutRepo {
	return &LayoutRepo{db: db}
}

// GetBySession returns the session's layout.
func (r *LayoutRepo) GetBySession(ctx context.Context, sessionID uint64) (*model.Layout, error) {
	const q = `SELECT id, session_id, seats_per_block, rows_count, columns_count, created_at, updated_at
	           FROM layouts WHERE session_id = ?`
	var l model.Layout
	err := r.db.QueryRowContext(ctx, q, sessionID).Scan(
		&l.ID, &l.SessionID, &l.SeatsPerBlock, &l.RowsCount, &l.ColumnsCount,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	return &l, nil
}

// UpsertTx inserts or replaces the session's layout within an existing
// transaction and returns the layout id. The LAST_INSERT_ID(id) trick
// makes LastInsertId work on the update path too.
func (r *LayoutRepo) UpsertTx(ctx context.Context, tx *sql.Tx, sessionID uint64, seatsPerBlock, rowsCount, columnsCount int) (uint64, error) {
	const q = `INSERT INTO layouts (session_id, seats_per_block, rows_count, columns_count)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             seats_per_block = VALUES(seats_per_block),
	             rows_count = VALUES(rows_count),
	             columns_count = VALUES(columns_count),
	             id = LAST_INSERT_ID(id)`
	res, err := tx.ExecContext(ctx, q, sessionID, seatsPerBlock, rowsCount, columnsCount)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateRowsTx bumps rows_count within an existing transaction; used by
// the add-row action.
func (r *LayoutRepo) UpdateRowsTx(ctx context.Context, tx *sql.Tx, layoutID uint64, rowsCount int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE layouts SET rows_count = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		rowsCount, layoutID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLayoutNotFound
	}
	return nil
}
