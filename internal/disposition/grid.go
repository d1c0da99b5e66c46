package disposition

import "github.com/vallicrm/training-seat-disposition/internal/model"

// Grid holds one session day's seats in row-major order so the
// assignment cursor can address cells by (row index, column number).
type Grid struct {
	Geometry
	SessionDayID uint64
	Seats        []model.Seat
}

// NewGrid materializes a fresh, fully empty grid for one session day:
// one seat per (row letter, column number) pair, areas derived from the
// column and the block width.
func NewGrid(sessionDayID uint64, g Geometry) *Grid {
	seats := make([]model.Seat, 0, g.RowsCount*g.ColumnsCount)
	for r := 0; r < g.RowsCount; r++ {
		letter := model.RowLetterFor(r)
		for c := 1; c <= g.ColumnsCount; c++ {
			seats = append(seats, model.Seat{
				SessionDayID: sessionDayID,
				RowLetter:    letter,
				ColumnNumber: c,
				Area:         model.AreaForColumn(c, g.SeatsPerBlock),
				Status:       model.SeatEmpty,
			})
		}
	}
	return &Grid{Geometry: g, SessionDayID: sessionDayID, Seats: seats}
}

// At returns the seat at a zero-based row and 1-based column, or nil
// when out of bounds.
func (g *Grid) At(row, col int) *model.Seat {
	if row < 0 || row >= g.RowsCount || col < 1 || col > g.ColumnsCount {
		return nil
	}
	return &g.Seats[row*g.ColumnsCount+(col-1)]
}

// lastEmptyIn scans an area from its last cell backwards and returns
// the first empty seat found. Reservations land here; scanning from the
// back keeps them out of the cursor's way for as long as possible.
func (g *Grid) lastEmptyIn(a model.Area) *model.Seat {
	first, last := g.ColumnRange(a)
	for row := g.RowsCount - 1; row >= 0; row-- {
		for col := last; col >= first; col-- {
			if s := g.At(row, col); s != nil && s.Status == model.SeatEmpty {
				return s
			}
		}
	}
	return nil
}
