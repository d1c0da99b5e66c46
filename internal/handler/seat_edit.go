package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vallicrm/training-seat-disposition/internal/model"
	"github.com/vallicrm/training-seat-disposition/internal/repository"
)

// SeatStore is the seat access the manual editing actions need.
// Satisfied by *repository.SeatRepo.
type SeatStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
	SetLocked(ctx context.Context, id uint64, locked bool) error
	SwapPositions(ctx context.Context, a, b *model.Seat) error
}

// SessionDays resolves day ownership and the session's day list.
// Satisfied by *repository.SessionRepo.
type SessionDays interface {
	SessionIDByDay(ctx context.Context, dayID uint64) (uint64, error)
	DayIDs(ctx context.Context, sessionID uint64) ([]uint64, error)
}

// AuditStore appends standalone audit entries. Satisfied by
// *repository.HistoryRepo.
type AuditStore interface {
	Insert(ctx context.Context, h model.DispositionHistory) error
}

// RowAdder appends one grid row transactionally. Satisfied by
// *repository.DispositionRepo.
type RowAdder interface {
	AddRow(ctx context.Context, layout *model.Layout, sessionDayIDs []uint64, actorUserID uint64) (*model.Layout, error)
}

// SeatEditHandler serves the manual editing actions staff run after a
// disposition has been generated: locking seats, swapping two seats,
// and appending a row.
type SeatEditHandler struct {
	Seats    SeatStore
	Sessions SessionDays
	Layouts  LayoutStore
	History  AuditStore
	Dispo    RowAdder
}

func NewSeatEditHandler(seats SeatStore, sessions SessionDays, layouts LayoutStore, history AuditStore, dispo RowAdder) *SeatEditHandler {
	return &SeatEditHandler{
		Seats:    seats,
		Sessions: sessions,
		Layouts:  layouts,
		History:  history,
		Dispo:    dispo,
	}
}

// ToggleLock sets or clears the lock flag on a seat. A locked seat
// refuses to take part in a swap; regeneration rebuilds the grid from
// scratch and clears the flag with the row.
// POST /v1/seats/:id/lock
func (h *SeatEditHandler) ToggleLock(c echo.Context) error {
	seatID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}

	var req struct {
		Locked *bool `json:"locked"`
	}
	if err := c.Bind(&req); err != nil || req.Locked == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "locked (bool) required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Seats.SetLocked(ctx, seatID, *req.Locked); err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"seat_id": seatID, "locked": *req.Locked})
}

// Swap exchanges the positions of two seats on the same day. Statuses
// and bookings travel with the occupants, so this moves people, not
// labels. Locked seats refuse to move.
// POST /v1/seats/:id/swap
func (h *SeatEditHandler) Swap(c echo.Context) error {
	seatID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	actor, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		TargetSeatID uint64 `json:"target_seat_id"`
	}
	if err := c.Bind(&req); err != nil || req.TargetSeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "target_seat_id required"})
	}
	if req.TargetSeatID == seatID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot swap a seat with itself"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Seats.GetByID(ctx, seatID)
	if err != nil {
		return h.mapSeatErr(c, err)
	}
	b, err := h.Seats.GetByID(ctx, req.TargetSeatID)
	if err != nil {
		return h.mapSeatErr(c, err)
	}
	if a.SessionDayID != b.SessionDayID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats belong to different days"})
	}
	if a.IsLocked || b.IsLocked {
		return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrSeatLocked.Error()})
	}

	if err := h.Seats.SwapPositions(ctx, a, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "swap failed"})
	}

	sessionID, err := h.Sessions.SessionIDByDay(ctx, a.SessionDayID)
	if err == nil {
		snapshot, _ := json.Marshal(map[string]uint64{"seat_a": a.ID, "seat_b": b.ID})
		_ = h.History.Insert(ctx, model.DispositionHistory{
			SessionID:  sessionID,
			ActionType: model.ActionManualEditing,
			Description: fmt.Sprintf("swapped seats %s%d and %s%d",
				a.RowLetter, a.ColumnNumber, b.RowLetter, b.ColumnNumber),
			Snapshot:    string(snapshot),
			ActorUserID: actor,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"swapped": []uint64{a.ID, b.ID},
	})
}

// AddRow appends one empty row to the session's grid on both days.
// POST /v1/sessions/:id/rows
func (h *SeatEditHandler) AddRow(c echo.Context) error {
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	actor, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	layout, err := h.Layouts.GetBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no layout generated yet"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	dayIDs, err := h.Sessions.DayIDs(ctx, sessionID)
	if err != nil || len(dayIDs) == 0 {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	updated, err := h.Dispo.AddRow(ctx, layout, dayIDs, actor)
	if err != nil {
		if errors.Is(err, repository.ErrRowLimit) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "row limit reached"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add row failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *SeatEditHandler) mapSeatErr(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrSeatNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
}
