// Package disposition implements the automatic seat disposition
// generator: room sizing, grid building, booking classification and the
// seat assignment walk, coordinated by Generator.
package disposition

import "github.com/vallicrm/training-seat-disposition/internal/model"

// wideRoomThreshold is the attendance above which an area grows from 3
// to 4 columns.
const wideRoomThreshold = 100

// Geometry is the sized room shape before it is persisted as a Layout.
type Geometry struct {
	SeatsPerBlock int `json:"seats_per_block"`
	RowsCount     int `json:"rows_count"`
	ColumnsCount  int `json:"columns_count"`
}

// ColumnRange returns the inclusive 1-based column range of an area.
func (g Geometry) ColumnRange(a model.Area) (first, last int) {
	idx, _ := a.Index()
	return g.SeatsPerBlock*idx + 1, g.SeatsPerBlock * (idx + 1)
}

// SizeLayout derives the room geometry from the confirmed rosters of a
// session's days. The busiest day drives the block width; the busiest
// area across both days drives the row count, clamped to the baseline
// room size and the hard cap.
func SizeLayout(days [][]model.RosterBooking) Geometry {
	return sizeLayout(days, 0)
}

// SizeLayoutWithBlock sizes the room with a forced block width (3 or
// 4), used when staff change seats-per-block by hand. Row derivation
// still follows the area histogram.
func SizeLayoutWithBlock(days [][]model.RosterBooking, seatsPerBlock int) Geometry {
	return sizeLayout(days, seatsPerBlock)
}

func sizeLayout(days [][]model.RosterBooking, forcedBlock int) Geometry {
	spb := forcedBlock
	if spb != 3 && spb != 4 {
		spb = 3
		if TotalAttendance(days) > wideRoomThreshold {
			spb = 4
		}
	}

	areaCounts := map[model.Area]int{}
	for _, roster := range days {
		for _, b := range roster {
			areaCounts[b.Area]++
		}
	}
	maxArea := 0
	for _, n := range areaCounts {
		if n > maxArea {
			maxArea = n
		}
	}

	rows := (maxArea + spb - 1) / spb
	if rows < model.MinRows {
		rows = model.MinRows
	}
	if rows > model.MaxRows {
		rows = model.MaxRows
	}

	return Geometry{SeatsPerBlock: spb, RowsCount: rows, ColumnsCount: spb * 3}
}

// TotalAttendance returns the headcount the layout was sized for: the
// larger of the two days' confirmed rosters.
func TotalAttendance(days [][]model.RosterBooking) int {
	total := 0
	for _, roster := range days {
		if len(roster) > total {
			total = len(roster)
		}
	}
	return total
}
