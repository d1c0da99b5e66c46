package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/vallicrm/training-seat-disposition/internal/model"
	"github.com/vallicrm/training-seat-disposition/internal/repository"
)

type stubSeats struct {
	seats   map[uint64]*model.Seat
	locked  map[uint64]bool
	swapped [][2]uint64
}

func newStubSeats(seats ...*model.Seat) *stubSeats {
	s := &stubSeats{seats: map[uint64]*model.Seat{}, locked: map[uint64]bool{}}
	for _, seat := range seats {
		s.seats[seat.ID] = seat
	}
	return s
}

func (s *stubSeats) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	seat, ok := s.seats[id]
	if !ok {
		return nil, repository.ErrSeatNotFound
	}
	cp := *seat
	return &cp, nil
}

func (s *stubSeats) SetLocked(ctx context.Context, id uint64, locked bool) error {
	if _, ok := s.seats[id]; !ok {
		return repository.ErrSeatNotFound
	}
	s.locked[id] = locked
	return nil
}

func (s *stubSeats) SwapPositions(ctx context.Context, a, b *model.Seat) error {
	s.swapped = append(s.swapped, [2]uint64{a.ID, b.ID})
	return nil
}

type stubSessions struct {
	sessionByDay map[uint64]uint64
	dayIDs       []uint64
}

func (s *stubSessions) SessionIDByDay(ctx context.Context, dayID uint64) (uint64, error) {
	id, ok := s.sessionByDay[dayID]
	if !ok {
		return 0, repository.ErrSessionNotFound
	}
	return id, nil
}

func (s *stubSessions) DayIDs(ctx context.Context, sessionID uint64) ([]uint64, error) {
	return s.dayIDs, nil
}

type stubHistory struct {
	entries []model.DispositionHistory
}

func (s *stubHistory) Insert(ctx context.Context, h model.DispositionHistory) error {
	s.entries = append(s.entries, h)
	return nil
}

type stubRowAdder struct {
	err  error
	last *model.Layout
}

func (s *stubRowAdder) AddRow(ctx context.Context, layout *model.Layout, sessionDayIDs []uint64, actorUserID uint64) (*model.Layout, error) {
	if s.err != nil {
		return nil, s.err
	}
	cp := *layout
	cp.RowsCount++
	s.last = &cp
	return &cp, nil
}

func gridSeat(id, dayID uint64, row string, col int, locked bool) *model.Seat {
	return &model.Seat{
		ID: id, SessionDayID: dayID, RowLetter: row, ColumnNumber: col,
		Area: model.AreaA, Status: model.SeatOccupied, IsLocked: locked,
	}
}

func newEditCtx(e *echo.Echo, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	c.Set("user_id", uint64(42))
	c.Set("role", "PLANNER")
	return c, rec
}

func TestToggleLock(t *testing.T) {
	e := echo.New()
	seats := newStubSeats(gridSeat(10, 1, "a", 1, false))
	h := NewSeatEditHandler(seats, nil, nil, nil, nil)

	c, rec := newEditCtx(e, `{"locked":true}`, "10")
	assert.NoError(t, h.ToggleLock(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seats.locked[10])

	c, rec = newEditCtx(e, `{"locked":false}`, "10")
	assert.NoError(t, h.ToggleLock(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, seats.locked[10])
}

func TestToggleLockErrors(t *testing.T) {
	e := echo.New()
	h := NewSeatEditHandler(newStubSeats(), nil, nil, nil, nil)

	c, rec := newEditCtx(e, `{"locked":true}`, "99")
	assert.NoError(t, h.ToggleLock(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newEditCtx(e, `{}`, "10")
	assert.NoError(t, h.ToggleLock(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSwapRecordsAudit(t *testing.T) {
	e := echo.New()
	seats := newStubSeats(
		gridSeat(10, 1, "a", 1, false),
		gridSeat(11, 1, "b", 2, false),
	)
	history := &stubHistory{}
	sessions := &stubSessions{sessionByDay: map[uint64]uint64{1: 5}}
	h := NewSeatEditHandler(seats, sessions, nil, history, nil)

	c, rec := newEditCtx(e, `{"target_seat_id":11}`, "10")
	assert.NoError(t, h.Swap(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [][2]uint64{{10, 11}}, seats.swapped)

	if assert.Len(t, history.entries, 1) {
		entry := history.entries[0]
		assert.Equal(t, uint64(5), entry.SessionID)
		assert.Equal(t, model.ActionManualEditing, entry.ActionType)
		assert.Equal(t, "swapped seats a1 and b2", entry.Description)
		assert.Equal(t, uint64(42), entry.ActorUserID)
	}
}

func TestSwapLockedSeatRefused(t *testing.T) {
	e := echo.New()
	seats := newStubSeats(
		gridSeat(10, 1, "a", 1, false),
		gridSeat(11, 1, "b", 2, true),
	)
	history := &stubHistory{}
	h := NewSeatEditHandler(seats, &stubSessions{}, nil, history, nil)

	c, rec := newEditCtx(e, `{"target_seat_id":11}`, "10")
	assert.NoError(t, h.Swap(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "seat is locked")
	assert.Empty(t, seats.swapped)
	assert.Empty(t, history.entries)
}

func TestSwapAcrossDaysRejected(t *testing.T) {
	e := echo.New()
	seats := newStubSeats(
		gridSeat(10, 1, "a", 1, false),
		gridSeat(11, 2, "a", 1, false),
	)
	h := NewSeatEditHandler(seats, &stubSessions{}, nil, &stubHistory{}, nil)

	c, rec := newEditCtx(e, `{"target_seat_id":11}`, "10")
	assert.NoError(t, h.Swap(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, seats.swapped)
}

func TestSwapWithSelfRejected(t *testing.T) {
	e := echo.New()
	h := NewSeatEditHandler(newStubSeats(gridSeat(10, 1, "a", 1, false)), &stubSessions{}, nil, &stubHistory{}, nil)

	c, rec := newEditCtx(e, `{"target_seat_id":10}`, "10")
	assert.NoError(t, h.Swap(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddRow(t *testing.T) {
	e := echo.New()
	layouts := &stubLayouts{layout: &model.Layout{
		ID: 900, SessionID: 5, SeatsPerBlock: 3, RowsCount: 8, ColumnsCount: 9,
	}}
	adder := &stubRowAdder{}
	sessions := &stubSessions{dayIDs: []uint64{1, 2}}
	h := NewSeatEditHandler(nil, sessions, layouts, nil, adder)

	c, rec := newEditCtx(e, "", "5")
	assert.NoError(t, h.AddRow(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, adder.last) {
		assert.Equal(t, 9, adder.last.RowsCount)
	}
}

func TestAddRowErrors(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{dayIDs: []uint64{1, 2}}

	h := NewSeatEditHandler(nil, sessions, &stubLayouts{err: repository.ErrLayoutNotFound}, nil, &stubRowAdder{})
	c, rec := newEditCtx(e, "", "5")
	assert.NoError(t, h.AddRow(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	layouts := &stubLayouts{layout: &model.Layout{SessionID: 5, SeatsPerBlock: 3, RowsCount: 12, ColumnsCount: 9}}
	h = NewSeatEditHandler(nil, sessions, layouts, nil, &stubRowAdder{err: repository.ErrRowLimit})
	c, rec = newEditCtx(e, "", "5")
	assert.NoError(t, h.AddRow(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
