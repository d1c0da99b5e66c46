package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vallicrm/training-seat-disposition/internal/model"
)

// ErrManualNotFound is returned when a manual lookup yields no rows.
var ErrManualNotFound = errors.New("manual not found")

// ManualRepo provides read access to the manual catalog. The catalog is
// a fixed reference table, so callers typically load it whole.
type ManualRepo struct {
	db *sql.DB
}

// NewManualRepo constructs a ManualRepo with the given DB handle.
func NewManualRepo(db *sql.DB) *ManualRepo {
	return &ManualRepo{db: db}
}

// ListAll returns all manuals ordered by area and order_priority.
func (r *ManualRepo) ListAll(ctx context.Context) ([]model.Manual, error) {
	const q = `SELECT id, code, name, area, color, order_priority, total_points
	           FROM manuals
	           ORDER BY area, order_priority`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Manual
	for rows.Next() {
		var m model.Manual
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Area, &m.Color,
			&m.OrderPriority, &m.TotalPoints); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetArea resolves a single manual's area.
func (r *ManualRepo) GetArea(ctx context.Context, id uint64) (model.Area, error) {
	var a model.Area
	err := r.db.QueryRowContext(ctx, `SELECT area FROM manuals WHERE id = ?`, id).Scan(&a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrManualNotFound
		}
		return "", err
	}
	return a, nil
}
