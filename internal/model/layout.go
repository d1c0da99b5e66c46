package model

import "time"

// Layout bounds shared by the sizer and the manual editing actions.
const (
	MinRows = 8  // baseline room size
	MaxRows = 12 // hard cap; also keeps row letters single-letter ('a'..'l')
)

// Layout is the room geometry for one session: three areas side by
// side, each SeatsPerBlock columns wide. ColumnsCount is always
// SeatsPerBlock * 3.
type Layout struct {
	ID            uint64    // layouts.id
	SessionID     uint64    // layouts.session_id (1:1)
	SeatsPerBlock int       // layouts.seats_per_block (3 or 4)
	RowsCount     int       // layouts.rows_count (8-12)
	ColumnsCount  int       // layouts.columns_count
	CreatedAt     time.Time // layouts.created_at
	UpdatedAt     time.Time // layouts.updated_at
}

// AreaForColumn maps a 1-based column number to its area given the
// block width.
func AreaForColumn(column, seatsPerBlock int) Area {
	switch {
	case column <= seatsPerBlock:
		return AreaA
	case column <= seatsPerBlock*2:
		return AreaB
	default:
		return AreaC
	}
}

// ColumnRange returns the inclusive 1-based column range occupied by an
// area under the layout's block width.
func (l Layout) ColumnRange(a Area) (first, last int) {
	idx, _ := a.Index()
	first = l.SeatsPerBlock*idx + 1
	last = l.SeatsPerBlock * (idx + 1)
	return first, last
}
