package disposition

import "github.com/vallicrm/training-seat-disposition/internal/model"

// Position addresses a grid cell: zero-based row, 1-based column.
type Position struct {
	Row int
	Col int
}

// AreaResolver resolves a manual id to its area. The assignment engine
// uses it to find the target area of a forward reservation.
type AreaResolver func(manualID uint64) (model.Area, bool)

// AssignResult reports what one day's assignment pass produced.
// UnseatedBookingIDs lists confirmed bookings that could not be placed
// because their area ran out of rows; they stay confirmed with no seat.
type AssignResult struct {
	Seated             int
	Reserved           int
	UnseatedBookingIDs []uint64
}

// AssignDay walks each area's ordered booking list against the day's
// grid, assigning one seat per booking in row-major order within the
// area's column range. Near-finishing students additionally get a seat
// reserved in their next manual's area; a missing empty seat there is
// skipped silently. pins carries day-1 positions for bookings flagged
// keep_seat_between_days: those students are seated at their previous
// cell first, when it is still empty and inside their area.
func AssignDay(grid *Grid, order map[model.Area][]model.RosterBooking, nextArea AreaResolver, pins map[uint64]Position) AssignResult {
	var res AssignResult

	// Pin pass runs first so the main walk cannot take a carried-over cell.
	pinnedBookings := map[uint64]bool{}
	if len(pins) > 0 {
		for _, area := range model.Areas {
			for _, b := range order[area] {
				if !b.KeepSeatBetweenDays {
					continue
				}
				pos, ok := pins[b.StudentID]
				if !ok {
					continue
				}
				s := grid.At(pos.Row, pos.Col)
				if s == nil || s.Status != model.SeatEmpty || s.Area != b.Area {
					continue
				}
				occupy(s, b)
				pinnedBookings[b.ID] = true
				res.Seated++
			}
		}
	}

	for _, area := range model.Areas {
		first, last := grid.ColumnRange(area)
		row, col := 0, first

		for _, b := range order[area] {
			// The booking's own seat is taken before its reservation
			// attempt: a reservation into this same area only gets
			// cells the booking did not need. A booking dropped for
			// lack of rows does not reserve either.
			if !pinnedBookings[b.ID] {
				if !advanceToEmpty(grid, &row, &col, first, last) {
					res.UnseatedBookingIDs = append(res.UnseatedBookingIDs, b.ID)
					continue
				}
				occupy(grid.At(row, col), b)
				res.Seated++
				col++
				if col > last {
					col = first
					row++
				}
			}

			if b.NearFinishing() && b.NextManualID != nil && nextArea != nil {
				if target, ok := nextArea(*b.NextManualID); ok {
					if s := grid.lastEmptyIn(target); s != nil {
						sid := b.StudentID
						s.Status = model.SeatReserved
						s.ReservationForStudentID = &sid
						res.Reserved++
					}
				}
			}
		}
	}
	return res
}

// advanceToEmpty moves the cursor forward to the next empty cell inside
// the area's column range. It returns false once the cursor has walked
// past the last row, which ends placement for that area.
func advanceToEmpty(grid *Grid, row, col *int, first, last int) bool {
	for *row < grid.RowsCount {
		if s := grid.At(*row, *col); s != nil && s.Status == model.SeatEmpty {
			return true
		}
		*col++
		if *col > last {
			*col = first
			*row++
		}
	}
	return false
}

func occupy(s *model.Seat, b model.RosterBooking) {
	id := b.ID
	s.Status = model.SeatOccupied
	s.BookingID = &id
}

// OccupiedPositions maps student ids to their seat position on a
// finished grid. The generator feeds day-1 positions into day 2 for
// keep_seat_between_days bookings.
func OccupiedPositions(grid *Grid, studentByBooking map[uint64]uint64) map[uint64]Position {
	out := map[uint64]Position{}
	for i := range grid.Seats {
		s := &grid.Seats[i]
		if s.Status != model.SeatOccupied || s.BookingID == nil {
			continue
		}
		if studentID, ok := studentByBooking[*s.BookingID]; ok {
			rowIdx, _ := model.RowIndexOf(s.RowLetter)
			out[studentID] = Position{Row: rowIdx, Col: s.ColumnNumber}
		}
	}
	return out
}
