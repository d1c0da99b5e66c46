package disposition

import (
	"testing"

	"github.com/vallicrm/training-seat-disposition/internal/model"
)

func nearFinishing(id uint64, area model.Area, nextManual uint64) model.RosterBooking {
	b := rb(id, area, 95, 0) // 100 - 95 < 10
	if nextManual != 0 {
		nm := nextManual
		b.NextManualID = &nm
	}
	return b
}

func seatedBookingIDs(grid *Grid) map[string]uint64 {
	out := map[string]uint64{}
	for _, s := range grid.Seats {
		if s.Status == model.SeatOccupied && s.BookingID != nil {
			out[s.RowLetter+string(rune('0'+s.ColumnNumber))] = *s.BookingID
		}
	}
	return out
}

func TestAssignDayRowMajorWithinArea(t *testing.T) {
	geo := Geometry{SeatsPerBlock: 3, RowsCount: 8, ColumnsCount: 9}
	grid := NewGrid(1, geo)

	order := map[model.Area][]model.RosterBooking{
		model.AreaA: {rb(1, model.AreaA, 50, 0), rb(2, model.AreaA, 40, 0), rb(3, model.AreaA, 30, 0), rb(4, model.AreaA, 20, 0)},
		model.AreaB: {rb(5, model.AreaB, 10, 0)},
	}

	res := AssignDay(grid, order, nil, nil)
	if res.Seated != 5 {
		t.Fatalf("Seated = %d, want 5", res.Seated)
	}
	if len(res.UnseatedBookingIDs) != 0 {
		t.Fatalf("UnseatedBookingIDs = %v, want none", res.UnseatedBookingIDs)
	}

	seated := seatedBookingIDs(grid)
	want := map[string]uint64{
		"a1": 1, "a2": 2, "a3": 3, // first row of area A fills left to right
		"b1": 4, // then wraps to the next row, same area
		"a4": 5, // area B starts at its own first column
	}
	for pos, id := range want {
		if seated[pos] != id {
			t.Errorf("seat %s holds booking %d, want %d (all: %v)", pos, seated[pos], id, seated)
		}
	}
}

func TestAssignDayForwardReservation(t *testing.T) {
	geo := Geometry{SeatsPerBlock: 3, RowsCount: 8, ColumnsCount: 9}
	grid := NewGrid(1, geo)

	nextArea := func(manualID uint64) (model.Area, bool) {
		if manualID == 77 {
			return model.AreaB, true
		}
		return "", false
	}

	order := map[model.Area][]model.RosterBooking{
		model.AreaA: {nearFinishing(1, model.AreaA, 77)},
	}

	res := AssignDay(grid, order, nextArea, nil)
	if res.Seated != 1 || res.Reserved != 1 {
		t.Fatalf("Seated/Reserved = %d/%d, want 1/1", res.Seated, res.Reserved)
	}

	// The student sits in their own area today.
	if s := grid.At(0, 1); s.Status != model.SeatOccupied {
		t.Fatalf("a1 status = %q, want occupied", s.Status)
	}
	// The reservation lands on the last free cell of the next area.
	s := grid.At(geo.RowsCount-1, 6)
	if s.Status != model.SeatReserved {
		t.Fatalf("h6 status = %q, want reserved", s.Status)
	}
	if s.ReservationForStudentID == nil || *s.ReservationForStudentID != 1 {
		t.Fatalf("reservation student = %v, want 1", s.ReservationForStudentID)
	}
}

func TestAssignDayReservationSkippedWhenUnresolved(t *testing.T) {
	geo := Geometry{SeatsPerBlock: 3, RowsCount: 8, ColumnsCount: 9}
	grid := NewGrid(1, geo)

	// Near finishing but the next manual is unknown to the resolver.
	order := map[model.Area][]model.RosterBooking{
		model.AreaA: {nearFinishing(1, model.AreaA, 999)},
	}
	res := AssignDay(grid, order, func(uint64) (model.Area, bool) { return "", false }, nil)
	if res.Reserved != 0 {
		t.Fatalf("Reserved = %d, want 0", res.Reserved)
	}
	if res.Seated != 1 {
		t.Fatalf("Seated = %d, want 1", res.Seated)
	}
}

func TestAssignDaySameAreaReservationKeepsSeatForBooking(t *testing.T) {
	ownArea := func(uint64) (model.Area, bool) { return model.AreaA, true }

	// One free cell in area A: the booking gets it and the reservation
	// finds nothing, rather than the other way around.
	geo := Geometry{SeatsPerBlock: 1, RowsCount: 1, ColumnsCount: 3}
	grid := NewGrid(1, geo)
	order := map[model.Area][]model.RosterBooking{
		model.AreaA: {nearFinishing(1, model.AreaA, 77)},
	}
	res := AssignDay(grid, order, ownArea, nil)
	if res.Seated != 1 || res.Reserved != 0 || len(res.UnseatedBookingIDs) != 0 {
		t.Fatalf("result = %+v, want the booking seated and the reservation skipped", res)
	}
	if s := grid.At(0, 1); s.Status != model.SeatOccupied {
		t.Fatalf("a1 status = %q, want occupied", s.Status)
	}

	// With a spare cell the reservation lands behind the booking.
	geo = Geometry{SeatsPerBlock: 1, RowsCount: 2, ColumnsCount: 3}
	grid = NewGrid(1, geo)
	res = AssignDay(grid, order, ownArea, nil)
	if res.Seated != 1 || res.Reserved != 1 {
		t.Fatalf("result = %+v, want 1 seated and 1 reserved", res)
	}
	if s := grid.At(0, 1); s.Status != model.SeatOccupied {
		t.Fatalf("a1 status = %q, want occupied", s.Status)
	}
	if s := grid.At(1, 1); s.Status != model.SeatReserved {
		t.Fatalf("b1 status = %q, want reserved", s.Status)
	}
}

func TestAssignDayOverflowReportsUnseated(t *testing.T) {
	// One row only: area A has two cells.
	geo := Geometry{SeatsPerBlock: 2, RowsCount: 1, ColumnsCount: 6}
	grid := NewGrid(1, geo)

	order := map[model.Area][]model.RosterBooking{
		model.AreaA: {rb(1, model.AreaA, 30, 0), rb(2, model.AreaA, 20, 0), rb(3, model.AreaA, 10, 0)},
	}
	res := AssignDay(grid, order, nil, nil)
	if res.Seated != 2 {
		t.Fatalf("Seated = %d, want 2", res.Seated)
	}
	if len(res.UnseatedBookingIDs) != 1 || res.UnseatedBookingIDs[0] != 3 {
		t.Fatalf("UnseatedBookingIDs = %v, want [3]", res.UnseatedBookingIDs)
	}
	// The lowest-priority booking is the one dropped.
	seated := seatedBookingIDs(grid)
	if seated["a1"] != 1 || seated["a2"] != 2 {
		t.Fatalf("seated = %v, want bookings 1 and 2", seated)
	}
}

func TestAssignDayKeepSeatPin(t *testing.T) {
	geo := Geometry{SeatsPerBlock: 3, RowsCount: 8, ColumnsCount: 9}
	grid := NewGrid(2, geo)

	keep := rb(10, model.AreaA, 80, 0)
	keep.KeepSeatBetweenDays = true
	other := rb(11, model.AreaA, 90, 0)

	// Day 1 had the keep-seat student at b2.
	pins := map[uint64]Position{10: {Row: 1, Col: 2}}

	order := map[model.Area][]model.RosterBooking{
		model.AreaA: {other, keep}, // higher progress first, pin still wins its cell
	}
	res := AssignDay(grid, order, nil, pins)
	if res.Seated != 2 {
		t.Fatalf("Seated = %d, want 2", res.Seated)
	}

	seated := seatedBookingIDs(grid)
	if seated["b2"] != 10 {
		t.Fatalf("b2 holds booking %d, want pinned 10 (all: %v)", seated["b2"], seated)
	}
	if seated["a1"] != 11 {
		t.Fatalf("a1 holds booking %d, want 11", seated["a1"])
	}
}

func TestAssignDayPinOutsideAreaFallsThrough(t *testing.T) {
	geo := Geometry{SeatsPerBlock: 3, RowsCount: 8, ColumnsCount: 9}
	grid := NewGrid(2, geo)

	keep := rb(10, model.AreaB, 80, 0) // day 2 booking moved to area B
	keep.KeepSeatBetweenDays = true

	// Day-1 seat sits in area A, so the pin cannot be honored.
	pins := map[uint64]Position{10: {Row: 0, Col: 1}}

	order := map[model.Area][]model.RosterBooking{
		model.AreaB: {keep},
	}
	res := AssignDay(grid, order, nil, pins)
	if res.Seated != 1 {
		t.Fatalf("Seated = %d, want 1", res.Seated)
	}
	seated := seatedBookingIDs(grid)
	if seated["a4"] != 10 {
		t.Fatalf("expected normal assignment at a4, got %v", seated)
	}
}

func TestOccupiedPositions(t *testing.T) {
	geo := Geometry{SeatsPerBlock: 3, RowsCount: 8, ColumnsCount: 9}
	grid := NewGrid(1, geo)

	order := map[model.Area][]model.RosterBooking{
		model.AreaA: {rb(1, model.AreaA, 50, 0), rb(2, model.AreaA, 40, 0)},
	}
	AssignDay(grid, order, nil, nil)

	got := OccupiedPositions(grid, map[uint64]uint64{1: 101, 2: 102})
	if len(got) != 2 {
		t.Fatalf("positions = %v, want 2 entries", got)
	}
	if got[101] != (Position{Row: 0, Col: 1}) {
		t.Errorf("student 101 at %+v, want a1", got[101])
	}
	if got[102] != (Position{Row: 0, Col: 2}) {
		t.Errorf("student 102 at %+v, want a2", got[102])
	}
}
