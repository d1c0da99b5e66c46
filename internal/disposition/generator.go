package disposition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vallicrm/training-seat-disposition/internal/model"
)

// ErrInvalidSessionID is returned when Generate is called with a zero
// session id; the HTTP layer maps it to a 400.
var ErrInvalidSessionID = errors.New("invalid session id")

// ErrNoDays is returned when a session exists but has no days to seat;
// treated like a not-found by the HTTP layer.
var ErrNoDays = errors.New("session has no days")

// ErrBadBlockSize is returned when a caller forces a block width other
// than 3 or 4 seats.
var ErrBadBlockSize = errors.New("seats per block must be 3 or 4")

// SessionStore loads a session together with its ordered days.
type SessionStore interface {
	GetWithDays(ctx context.Context, id uint64) (*model.Session, error)
}

// BookingStore loads one day's confirmed roster, joined with enrollment
// and manual-area data.
type BookingStore interface {
	ListConfirmedByDay(ctx context.Context, sessionDayID uint64) ([]model.RosterBooking, error)
}

// ManualStore loads the manual catalog used to resolve next-manual
// areas during forward reservation. GetArea covers next_manual_id
// values missing from the catalog snapshot.
type ManualStore interface {
	ListAll(ctx context.Context) ([]model.Manual, error)
	GetArea(ctx context.Context, id uint64) (model.Area, error)
}

// SaveRequest carries everything one generation run writes: the sized
// layout, the full seat set for every day (replacing whatever was
// there) and the audit entry. The saver persists it atomically.
type SaveRequest struct {
	SessionID     uint64
	Geometry      Geometry
	SessionDayIDs []uint64
	Seats         []model.Seat
	Audit         model.DispositionHistory
}

// Saver persists a generated disposition in a single transaction.
type Saver interface {
	SaveGenerated(ctx context.Context, req SaveRequest) (layoutID uint64, err error)
}

// DaySummary describes one day's outcome in the generation result and
// the audit snapshot.
type DaySummary struct {
	DayIndex  int `json:"day_index"`
	Confirmed int `json:"confirmed"`
	Seated    int `json:"seated"`
	Reserved  int `json:"reserved"`
	Unseated  int `json:"unseated"`
}

// SessionInfo is the slice of session data echoed back in the result
// so callers can label the outcome without another load.
type SessionInfo struct {
	Month    int    `json:"month"`
	Year     int    `json:"year"`
	Location string `json:"location"`
}

// Result is the layout summary returned to the caller of a generation
// run. UnseatedBookingIDs aggregates both days so overflow is never
// silent.
type Result struct {
	Layout             model.Layout `json:"layout"`
	Session            SessionInfo  `json:"session"`
	TotalAttendance    int          `json:"total_attendance"`
	Days               []DaySummary `json:"days"`
	UnseatedBookingIDs []uint64     `json:"unseated_booking_ids"`
	ReservedSeats      int          `json:"reserved_seats"`
}

// Generator coordinates one disposition run: load, size, build,
// classify, assign, persist, audit. It holds no state between runs;
// every invocation re-reads bookings, enrollments and manuals.
type Generator struct {
	Sessions SessionStore
	Bookings BookingStore
	Manuals  ManualStore
	Store    Saver
}

// NewGenerator wires a Generator and panics if any dependency is nil.
func NewGenerator(sessions SessionStore, bookings BookingStore, manuals ManualStore, store Saver) *Generator {
	if sessions == nil || bookings == nil || manuals == nil || store == nil {
		panic("nil store passed to NewGenerator")
	}
	return &Generator{Sessions: sessions, Bookings: bookings, Manuals: manuals, Store: store}
}

// Generate runs the full pipeline for one session and returns the
// resulting layout summary. All loads happen before any write, so a
// load failure aborts with nothing persisted; the write itself is one
// transaction inside the Saver.
func (g *Generator) Generate(ctx context.Context, sessionID, actorUserID uint64) (*Result, error) {
	return g.generate(ctx, sessionID, actorUserID, 0, model.ActionAutoGenerate)
}

// GenerateWithBlockSize regenerates the disposition with a staff-chosen
// block width instead of the attendance-derived one. Row count and
// seating are recomputed from scratch.
func (g *Generator) GenerateWithBlockSize(ctx context.Context, sessionID, actorUserID uint64, seatsPerBlock int) (*Result, error) {
	if seatsPerBlock != 3 && seatsPerBlock != 4 {
		return nil, ErrBadBlockSize
	}
	return g.generate(ctx, sessionID, actorUserID, seatsPerBlock, model.ActionChangeBlock)
}

func (g *Generator) generate(ctx context.Context, sessionID, actorUserID uint64, forcedBlock int, action string) (*Result, error) {
	if sessionID == 0 {
		return nil, ErrInvalidSessionID
	}

	sess, err := g.Sessions.GetWithDays(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(sess.Days) == 0 {
		return nil, ErrNoDays
	}

	manuals, err := g.Manuals.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	areaByManual := make(map[uint64]model.Area, len(manuals))
	for _, m := range manuals {
		areaByManual[m.ID] = m.Area
	}
	nextArea := func(manualID uint64) (model.Area, bool) {
		if a, ok := areaByManual[manualID]; ok {
			return a, true
		}
		a, err := g.Manuals.GetArea(ctx, manualID)
		if err != nil {
			return "", false
		}
		areaByManual[manualID] = a
		return a, true
	}

	rosters := make([][]model.RosterBooking, len(sess.Days))
	for i, day := range sess.Days {
		rosters[i], err = g.Bookings.ListConfirmedByDay(ctx, day.ID)
		if err != nil {
			return nil, err
		}
	}

	geo := sizeLayout(rosters, forcedBlock)

	var (
		allSeats  []model.Seat
		days      []DaySummary
		unseated  []uint64
		reserved  int
		dayIDs    []uint64
		prevGrid  *Grid
		prevByBkg map[uint64]uint64
	)
	for i, day := range sess.Days {
		grid := NewGrid(day.ID, geo)
		order := ClassifyDay(rosters[i])

		var pins map[uint64]Position
		if prevGrid != nil && anyKeepSeat(rosters[i]) {
			pins = OccupiedPositions(prevGrid, prevByBkg)
		}

		ar := AssignDay(grid, order, nextArea, pins)

		allSeats = append(allSeats, grid.Seats...)
		dayIDs = append(dayIDs, day.ID)
		days = append(days, DaySummary{
			DayIndex:  day.DayIndex,
			Confirmed: len(rosters[i]),
			Seated:    ar.Seated,
			Reserved:  ar.Reserved,
			Unseated:  len(ar.UnseatedBookingIDs),
		})
		unseated = append(unseated, ar.UnseatedBookingIDs...)
		reserved += ar.Reserved

		prevGrid = grid
		prevByBkg = studentByBooking(rosters[i])
	}

	snapshot, err := json.Marshal(struct {
		Geometry Geometry     `json:"geometry"`
		Days     []DaySummary `json:"days"`
		Unseated []uint64     `json:"unseated_booking_ids"`
	}{geo, days, unseated})
	if err != nil {
		return nil, err
	}

	verb := "auto-generated"
	if action == model.ActionChangeBlock {
		verb = "regenerated with forced block width"
	}
	desc := fmt.Sprintf("%s %dx%d grid (%d seats per block) for session %02d/%d: %d seated, %d reserved, %d unseated",
		verb, geo.RowsCount, geo.ColumnsCount, geo.SeatsPerBlock,
		sess.Month, sess.Year, seatedTotal(days), reserved, len(unseated))

	layoutID, err := g.Store.SaveGenerated(ctx, SaveRequest{
		SessionID:     sessionID,
		Geometry:      geo,
		SessionDayIDs: dayIDs,
		Seats:         allSeats,
		Audit: model.DispositionHistory{
			SessionID:   sessionID,
			ActionType:  action,
			Description: desc,
			Snapshot:    string(snapshot),
			ActorUserID: actorUserID,
		},
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Layout: model.Layout{
			ID:            layoutID,
			SessionID:     sessionID,
			SeatsPerBlock: geo.SeatsPerBlock,
			RowsCount:     geo.RowsCount,
			ColumnsCount:  geo.ColumnsCount,
		},
		Session: SessionInfo{
			Month:    sess.Month,
			Year:     sess.Year,
			Location: sess.Location,
		},
		TotalAttendance:    TotalAttendance(rosters),
		Days:               days,
		UnseatedBookingIDs: unseated,
		ReservedSeats:      reserved,
	}, nil
}

func anyKeepSeat(roster []model.RosterBooking) bool {
	for _, b := range roster {
		if b.KeepSeatBetweenDays {
			return true
		}
	}
	return false
}

func studentByBooking(roster []model.RosterBooking) map[uint64]uint64 {
	out := make(map[uint64]uint64, len(roster))
	for _, b := range roster {
		out[b.ID] = b.StudentID
	}
	return out
}

func seatedTotal(days []DaySummary) int {
	n := 0
	for _, d := range days {
		n += d.Seated
	}
	return n
}
