package model

// Area identifies one of the three thematic zones of the room. Each
// manual belongs to exactly one area, and the room's columns are split
// into three contiguous blocks, one per area.
type Area string

const (
	AreaA Area = "A"
	AreaB Area = "B"
	AreaC Area = "C"
)

// Areas lists the zones in room order (left to right).
var Areas = [3]Area{AreaA, AreaB, AreaC}

// Index returns the zero-based position of the area in the room (A=0,
// B=1, C=2) and false for an unknown value.
func (a Area) Index() (int, bool) {
	switch a {
	case AreaA:
		return 0, true
	case AreaB:
		return 1, true
	case AreaC:
		return 2, true
	}
	return 0, false
}

// Manual is a fixed catalog entry of the curriculum. TotalPoints is the
// threshold at which the manual counts as completed.
type Manual struct {
	ID            uint64 // manuals.id
	Code          string // manuals.code
	Name          string // manuals.name
	Area          Area   // manuals.area
	Color         string // manuals.color (hex, used by the UI grid)
	OrderPriority int    // manuals.order_priority
	TotalPoints   int    // manuals.total_points
}
