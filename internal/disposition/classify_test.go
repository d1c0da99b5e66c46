package disposition

import (
	"testing"

	"github.com/vallicrm/training-seat-disposition/internal/model"
)

func rb(id uint64, area model.Area, progress int, companyID uint64) model.RosterBooking {
	b := model.RosterBooking{
		Booking:       model.Booking{ID: id, StudentID: id},
		Area:          area,
		HasEnrollment: true,
		Progress:      progress,
		TotalPoints:   100,
	}
	if companyID != 0 {
		cid := companyID
		b.CompanyReferenceID = &cid
	}
	return b
}

func ids(bookings []model.RosterBooking) []uint64 {
	out := make([]uint64, len(bookings))
	for i, b := range bookings {
		out[i] = b.ID
	}
	return out
}

func TestClassifyDayPartitionsByArea(t *testing.T) {
	roster := []model.RosterBooking{
		rb(1, model.AreaA, 10, 0),
		rb(2, model.AreaC, 10, 0),
		rb(3, model.AreaA, 10, 0),
		rb(4, model.AreaB, 10, 0),
	}
	out := ClassifyDay(roster)

	if got := len(out[model.AreaA]); got != 2 {
		t.Errorf("area A count = %d, want 2", got)
	}
	if got := len(out[model.AreaB]); got != 1 {
		t.Errorf("area B count = %d, want 1", got)
	}
	if got := len(out[model.AreaC]); got != 1 {
		t.Errorf("area C count = %d, want 1", got)
	}
	for area, list := range out {
		for _, b := range list {
			if b.Area != area {
				t.Errorf("booking %d filed under %s but belongs to %s", b.ID, area, b.Area)
			}
		}
	}
}

func TestClassifyDayOrdersByProgressThenCompany(t *testing.T) {
	roster := []model.RosterBooking{
		rb(1, model.AreaA, 50, 10),
		rb(2, model.AreaA, 40, 10),
		rb(3, model.AreaA, 45, 20),
		rb(4, model.AreaA, 60, 0),
	}
	out := ClassifyDay(roster)

	// Progress order is 4(60), 1(50), 3(45), 2(40); the round-robin over
	// company groups {none:[4]}, {10:[1,2]}, {20:[3]} keeps that order
	// except 2, which yields to 3 so two company-10 students are not
	// adjacent.
	want := []uint64{4, 1, 3, 2}
	got := ids(out[model.AreaA])
	if len(got) != len(want) {
		t.Fatalf("area A count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("area A order = %v, want %v", got, want)
		}
	}
}

func TestClassifyDayTiesKeepBookingOrder(t *testing.T) {
	roster := []model.RosterBooking{
		rb(7, model.AreaB, 30, 0),
		rb(8, model.AreaB, 30, 0),
		rb(9, model.AreaB, 30, 0),
	}
	got := ids(ClassifyDay(roster)[model.AreaB])
	want := []uint64{7, 8, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie order = %v, want %v", got, want)
		}
	}
}

func TestClassifyDayNoEnrollmentRanksLast(t *testing.T) {
	noEnroll := model.RosterBooking{
		Booking:  model.Booking{ID: 1, StudentID: 1},
		Area:     model.AreaA,
		Progress: 99, // ignored without an enrollment
	}
	roster := []model.RosterBooking{
		noEnroll,
		rb(2, model.AreaA, 5, 0),
	}
	got := ids(ClassifyDay(roster)[model.AreaA])
	if got[0] != 2 || got[1] != 1 {
		t.Fatalf("order = %v, want enrolled student first", got)
	}
}
