package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vallicrm/training-seat-disposition/internal/disposition"
	"github.com/vallicrm/training-seat-disposition/internal/model"
	"github.com/vallicrm/training-seat-disposition/internal/queue"
	"github.com/vallicrm/training-seat-disposition/internal/repository"
)

// DispositionGenerator is the slice of the generation pipeline the
// HTTP layer depends on. Satisfied by *disposition.Generator.
type DispositionGenerator interface {
	Generate(ctx context.Context, sessionID, actorUserID uint64) (*disposition.Result, error)
	GenerateWithBlockSize(ctx context.Context, sessionID, actorUserID uint64, seatsPerBlock int) (*disposition.Result, error)
}

// LayoutStore fetches a session's stored geometry. Satisfied by
// *repository.LayoutRepo.
type LayoutStore interface {
	GetBySession(ctx context.Context, sessionID uint64) (*model.Layout, error)
}

// PublishFunc sends a generated-disposition event to the broker.
// Injectable so tests can capture events without RabbitMQ.
type PublishFunc func(ctx context.Context, event queue.DispositionGeneratedEvent) error

// DispositionHandler serves the disposition read and generation
// endpoints. Publish may be nil to disable event publishing.
type DispositionHandler struct {
	Gen      DispositionGenerator
	Sessions *repository.SessionRepo
	Layouts  LayoutStore
	Seats    *repository.SeatRepo
	History  *repository.HistoryRepo
	Publish  PublishFunc
}

func NewDispositionHandler(gen DispositionGenerator, sessions *repository.SessionRepo, layouts LayoutStore, seats *repository.SeatRepo, history *repository.HistoryRepo, publish PublishFunc) *DispositionHandler {
	return &DispositionHandler{
		Gen:      gen,
		Sessions: sessions,
		Layouts:  layouts,
		Seats:    seats,
		History:  history,
		Publish:  publish,
	}
}

// seatDTO is the wire shape for one grid cell.
type seatDTO struct {
	ID                      uint64  `json:"id"`
	RowLetter               string  `json:"row_letter"`
	ColumnNumber            int     `json:"column_number"`
	Area                    string  `json:"area"`
	Status                  string  `json:"status"`
	BookingID               *uint64 `json:"booking_id,omitempty"`
	ReservationForStudentID *uint64 `json:"reservation_for_student_id,omitempty"`
	IsLocked                bool    `json:"is_locked"`
}

func toSeatDTO(s model.Seat) seatDTO {
	return seatDTO{
		ID:                      s.ID,
		RowLetter:               s.RowLetter,
		ColumnNumber:            s.ColumnNumber,
		Area:                    string(s.Area),
		Status:                  s.Status,
		BookingID:               s.BookingID,
		ReservationForStudentID: s.ReservationForStudentID,
		IsLocked:                s.IsLocked,
	}
}

// Generate runs the automatic disposition for a session and persists
// the result. POST /v1/sessions/:id/disposition
func (h *DispositionHandler) Generate(c echo.Context) error {
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	actor, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	res, err := h.Gen.Generate(ctx, sessionID, actor)
	if err != nil {
		return h.mapGenerateErr(c, err)
	}
	h.publishGenerated(res, actor)
	return c.JSON(http.StatusOK, res)
}

// ChangeBlock regenerates the disposition under a staff-chosen block
// width. PATCH /v1/sessions/:id/layout
func (h *DispositionHandler) ChangeBlock(c echo.Context) error {
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	actor, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		SeatsPerBlock int `json:"seats_per_block"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	res, err := h.Gen.GenerateWithBlockSize(ctx, sessionID, actor, req.SeatsPerBlock)
	if err != nil {
		return h.mapGenerateErr(c, err)
	}
	h.publishGenerated(res, actor)
	return c.JSON(http.StatusOK, res)
}

func (h *DispositionHandler) mapGenerateErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, disposition.ErrInvalidSessionID), errors.Is(err, disposition.ErrBadBlockSize):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	case errors.Is(err, disposition.ErrNoDays):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session has no days"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generation failed"})
	}
}

// publishGenerated emits the broker event for a committed run. Best
// effort: the HTTP response does not depend on the broker.
func (h *DispositionHandler) publishGenerated(res *disposition.Result, actor uint64) {
	if h.Publish == nil {
		return
	}
	seated := 0
	for _, d := range res.Days {
		seated += d.Seated
	}
	ev := queue.DispositionGeneratedEvent{
		SessionID:       res.Layout.SessionID,
		Month:           res.Session.Month,
		Year:            res.Session.Year,
		Location:        res.Session.Location,
		SeatsPerBlock:   res.Layout.SeatsPerBlock,
		RowsCount:       res.Layout.RowsCount,
		ColumnsCount:    res.Layout.ColumnsCount,
		TotalAttendance: res.TotalAttendance,
		SeatedCount:     seated,
		ReservedCount:   res.ReservedSeats,
		UnseatedIDs:     res.UnseatedBookingIDs,
		ActorUserID:     actor,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = h.Publish(ctx, ev)
}

// GetLayout returns the stored geometry for a session.
// GET /v1/sessions/:id/layout
func (h *DispositionHandler) GetLayout(c echo.Context) error {
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	layout, err := h.Layouts.GetBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no layout generated yet"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	type areaDTO struct {
		Area        string `json:"area"`
		FirstColumn int    `json:"first_column"`
		LastColumn  int    `json:"last_column"`
	}
	areas := make([]areaDTO, 0, len(model.Areas))
	for _, a := range model.Areas {
		first, last := layout.ColumnRange(a)
		areas = append(areas, areaDTO{Area: string(a), FirstColumn: first, LastColumn: last})
	}
	return c.JSON(http.StatusOK, echo.Map{"layout": layout, "areas": areas})
}

// GetSeats returns the seat grid for one day of a session, grouped by
// row. GET /v1/sessions/:id/seats?day=1|2
func (h *DispositionHandler) GetSeats(c echo.Context) error {
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	dayIndex := 1
	if raw := c.QueryParam("day"); raw != "" {
		switch raw {
		case "1":
			dayIndex = 1
		case "2":
			dayIndex = 2
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be 1 or 2"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sess, err := h.Sessions.GetWithDays(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	var day *model.SessionDay
	for i := range sess.Days {
		if sess.Days[i].DayIndex == dayIndex {
			day = &sess.Days[i]
			break
		}
	}
	if day == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session day not found"})
	}

	seats, err := h.Seats.ListByDay(ctx, day.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	// ListByDay orders by row then column, so each row slice stays in
	// column order.
	rows := make(map[string][]seatDTO)
	order := make([]string, 0, model.MaxRows)
	for _, s := range seats {
		if _, seen := rows[s.RowLetter]; !seen {
			order = append(order, s.RowLetter)
		}
		rows[s.RowLetter] = append(rows[s.RowLetter], toSeatDTO(s))
	}

	type rowDTO struct {
		RowLetter string    `json:"row_letter"`
		Seats     []seatDTO `json:"seats"`
	}
	out := make([]rowDTO, 0, len(order))
	for _, letter := range order {
		out = append(out, rowDTO{RowLetter: letter, Seats: rows[letter]})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"session_id": sessionID,
		"day_index":  dayIndex,
		"rows":       out,
	})
}

// GetHistory returns the audit trail for a session, newest first.
// GET /v1/sessions/:id/history
func (h *DispositionHandler) GetHistory(c echo.Context) error {
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.History.ListBySession(ctx, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	type entryDTO struct {
		ID          uint64 `json:"id"`
		ActionType  string `json:"action_type"`
		Description string `json:"description"`
		Snapshot    string `json:"snapshot"`
		ActorUserID uint64 `json:"actor_user_id"`
		CreatedAt   string `json:"created_at"`
	}
	out := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryDTO{
			ID:          e.ID,
			ActionType:  e.ActionType,
			Description: e.Description,
			Snapshot:    e.Snapshot,
			ActorUserID: e.ActorUserID,
			CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"session_id": sessionID, "entries": out})
}
