package disposition

import (
	"sort"

	"github.com/vallicrm/training-seat-disposition/internal/model"
)

// ClassifyDay splits one day's confirmed roster into three ordered
// lists, one per area. Within an area, bookings are ranked by student
// progress descending (no enrollment ranks last, ties keep original
// booking order) and then interleaved by company so that consecutive
// entries rarely share an affiliation. The returned order is exactly
// the order seats are assigned in.
func ClassifyDay(roster []model.RosterBooking) map[model.Area][]model.RosterBooking {
	out := make(map[model.Area][]model.RosterBooking, len(model.Areas))
	for _, area := range model.Areas {
		var filtered []model.RosterBooking
		for _, b := range roster {
			if b.Area == area {
				filtered = append(filtered, b)
			}
		}
		sortByProgress(filtered)
		out[area] = interleaveByCompany(filtered)
	}
	return out
}

// sortByProgress orders bookings by enrollment progress descending.
// Bookings without enrollment data count as progress 0. The sort is
// stable so equal-progress bookings keep their original order.
func sortByProgress(bookings []model.RosterBooking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return progressOf(bookings[i]) > progressOf(bookings[j])
	})
}

func progressOf(b model.RosterBooking) int {
	if !b.HasEnrollment {
		return 0
	}
	return b.Progress
}

// interleaveByCompany partitions a sorted list into per-company groups
// (bookings without a company reference form one shared group) and
// round-robin merges them in first-seen group order: index 0 of every
// group, then index 1, and so on. Best-effort spread only; a dominant
// company still ends up with adjacent seats.
func interleaveByCompany(sorted []model.RosterBooking) []model.RosterBooking {
	if len(sorted) < 2 {
		return sorted
	}

	groups := map[uint64][]model.RosterBooking{}
	var order []uint64
	for _, b := range sorted {
		key := uint64(0) // 0 = no company reference
		if b.CompanyReferenceID != nil {
			key = *b.CompanyReferenceID
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], b)
	}

	merged := make([]model.RosterBooking, 0, len(sorted))
	for i := 0; len(merged) < len(sorted); i++ {
		for _, key := range order {
			if g := groups[key]; i < len(g) {
				merged = append(merged, g[i])
			}
		}
	}
	return merged
}
