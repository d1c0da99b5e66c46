package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vallicrm/training-seat-disposition/internal/disposition"
	"github.com/vallicrm/training-seat-disposition/internal/model"
)

// DispositionRepo groups the writes of a disposition run behind single
// transactions so a failure mid-sequence never leaves a half-built
// grid. It satisfies disposition.Saver.
type DispositionRepo struct {
	db      *sql.DB
	layouts *LayoutRepo
	seats   *SeatRepo
	history *HistoryRepo
}

// NewDispositionRepo constructs a DispositionRepo over the shared DB
// handle and the repos whose Tx methods it composes.
func NewDispositionRepo(db *sql.DB, layouts *LayoutRepo, seats *SeatRepo, history *HistoryRepo) *DispositionRepo {
	if db == nil || layouts == nil || seats == nil || history == nil {
		panic("nil dependency passed to NewDispositionRepo")
	}
	return &DispositionRepo{db: db, layouts: layouts, seats: seats, history: history}
}

// SaveGenerated persists one generation run atomically: layout upsert,
// destructive seat rebuild for every day, audit entry. Returns the
// layout id.
func (r *DispositionRepo) SaveGenerated(ctx context.Context, req disposition.SaveRequest) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	layoutID, err := r.layouts.UpsertTx(ctx, tx, req.SessionID,
		req.Geometry.SeatsPerBlock, req.Geometry.RowsCount, req.Geometry.ColumnsCount)
	if err != nil {
		return 0, err
	}
	if err := r.seats.DeleteByDaysTx(ctx, tx, req.SessionDayIDs); err != nil {
		return 0, err
	}
	if err := r.seats.CreateBulkTx(ctx, tx, req.Seats); err != nil {
		return 0, err
	}
	if err := r.history.InsertTx(ctx, tx, req.Audit); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return layoutID, nil
}

// AddRow appends one empty row to the session's grid on every day and
// bumps the layout's rows_count, all in one transaction. Unlike a full
// regeneration it leaves existing seats untouched. Returns the updated
// layout.
func (r *DispositionRepo) AddRow(ctx context.Context, layout *model.Layout, sessionDayIDs []uint64, actorUserID uint64) (*model.Layout, error) {
	if layout.RowsCount >= model.MaxRows {
		return nil, ErrRowLimit
	}
	newRows := layout.RowsCount + 1
	letter := model.RowLetterFor(newRows - 1)

	seats := make([]model.Seat, 0, len(sessionDayIDs)*layout.ColumnsCount)
	for _, dayID := range sessionDayIDs {
		for c := 1; c <= layout.ColumnsCount; c++ {
			seats = append(seats, model.Seat{
				SessionDayID: dayID,
				RowLetter:    letter,
				ColumnNumber: c,
				Area:         model.AreaForColumn(c, layout.SeatsPerBlock),
				Status:       model.SeatEmpty,
			})
		}
	}

	snapshot, err := json.Marshal(map[string]int{
		"seats_per_block": layout.SeatsPerBlock,
		"rows_count":      newRows,
		"columns_count":   layout.ColumnsCount,
	})
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.layouts.UpdateRowsTx(ctx, tx, layout.ID, newRows); err != nil {
		return nil, err
	}
	if err := r.seats.CreateBulkTx(ctx, tx, seats); err != nil {
		return nil, err
	}
	if err := r.history.InsertTx(ctx, tx, model.DispositionHistory{
		SessionID:   layout.SessionID,
		ActionType:  model.ActionAddRow,
		Description: fmt.Sprintf("added row %q, grid is now %dx%d", letter, newRows, layout.ColumnsCount),
		Snapshot:    string(snapshot),
		ActorUserID: actorUserID,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	updated := *layout
	updated.RowsCount = newRows
	return &updated, nil
}
