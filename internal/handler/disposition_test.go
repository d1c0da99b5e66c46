package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/vallicrm/training-seat-disposition/internal/disposition"
	"github.com/vallicrm/training-seat-disposition/internal/model"
	"github.com/vallicrm/training-seat-disposition/internal/queue"
	"github.com/vallicrm/training-seat-disposition/internal/repository"
)

// stubGen fakes the generation pipeline for handler tests.
type stubGen struct {
	res       *disposition.Result
	err       error
	lastID    uint64
	lastActor uint64
	lastSPB   int
}

func (s *stubGen) Generate(ctx context.Context, sessionID, actorUserID uint64) (*disposition.Result, error) {
	s.lastID, s.lastActor = sessionID, actorUserID
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func (s *stubGen) GenerateWithBlockSize(ctx context.Context, sessionID, actorUserID uint64, seatsPerBlock int) (*disposition.Result, error) {
	s.lastID, s.lastActor, s.lastSPB = sessionID, actorUserID, seatsPerBlock
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func sampleResult() *disposition.Result {
	return &disposition.Result{
		Layout: model.Layout{
			ID: 900, SessionID: 5, SeatsPerBlock: 3, RowsCount: 8, ColumnsCount: 9,
		},
		Session:         disposition.SessionInfo{Month: 9, Year: 2026, Location: "Bologna"},
		TotalAttendance: 48,
		Days: []disposition.DaySummary{
			{DayIndex: 1, Confirmed: 48, Seated: 47, Reserved: 2, Unseated: 1},
			{DayIndex: 2, Confirmed: 40, Seated: 40},
		},
		UnseatedBookingIDs: []uint64{17},
		ReservedSeats:      2,
	}
}

func newGenerateCtx(e *echo.Echo, method, body, sessionID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(sessionID)
	c.Set("user_id", uint64(42))
	c.Set("role", "PLANNER")
	return c, rec
}

func TestDispositionGenerate(t *testing.T) {
	e := echo.New()
	gen := &stubGen{res: sampleResult()}

	var published []queue.DispositionGeneratedEvent
	h := NewDispositionHandler(gen, nil, nil, nil, nil,
		func(ctx context.Context, ev queue.DispositionGeneratedEvent) error {
			published = append(published, ev)
			return nil
		})

	c, rec := newGenerateCtx(e, http.MethodPost, "", "5")
	err := h.Generate(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(5), gen.lastID)
	assert.Equal(t, uint64(42), gen.lastActor)

	var got disposition.Result
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(900), got.Layout.ID)
	assert.Equal(t, []uint64{17}, got.UnseatedBookingIDs)

	if assert.Len(t, published, 1) {
		ev := published[0]
		assert.Equal(t, uint64(5), ev.SessionID)
		assert.Equal(t, "Bologna", ev.Location)
		assert.Equal(t, 87, ev.SeatedCount)
		assert.Equal(t, 2, ev.ReservedCount)
		assert.Equal(t, uint64(42), ev.ActorUserID)
	}
}

func TestDispositionGenerateErrors(t *testing.T) {
	cases := []struct {
		name      string
		sessionID string
		genErr    error
		wantCode  int
	}{
		{"non-numeric id", "abc", nil, http.StatusBadRequest},
		{"zero id rejected by pipeline", "5", disposition.ErrInvalidSessionID, http.StatusBadRequest},
		{"unknown session", "5", repository.ErrSessionNotFound, http.StatusNotFound},
		{"session without days", "5", disposition.ErrNoDays, http.StatusNotFound},
		{"storage failure", "5", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			gen := &stubGen{err: tc.genErr}
			h := NewDispositionHandler(gen, nil, nil, nil, nil, nil)

			c, rec := newGenerateCtx(e, http.MethodPost, "", tc.sessionID)
			assert.NoError(t, h.Generate(c))
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestDispositionChangeBlock(t *testing.T) {
	e := echo.New()
	gen := &stubGen{res: sampleResult()}
	h := NewDispositionHandler(gen, nil, nil, nil, nil, nil)

	c, rec := newGenerateCtx(e, http.MethodPatch, `{"seats_per_block":4}`, "5")
	assert.NoError(t, h.ChangeBlock(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, gen.lastSPB)

	gen.err = disposition.ErrBadBlockSize
	c, rec = newGenerateCtx(e, http.MethodPatch, `{"seats_per_block":7}`, "5")
	assert.NoError(t, h.ChangeBlock(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubLayouts struct {
	layout *model.Layout
	err    error
}

func (s *stubLayouts) GetBySession(ctx context.Context, sessionID uint64) (*model.Layout, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.layout, nil
}

func TestDispositionGetLayout(t *testing.T) {
	e := echo.New()
	h := NewDispositionHandler(nil, nil, &stubLayouts{layout: &model.Layout{
		ID: 900, SessionID: 5, SeatsPerBlock: 4, RowsCount: 10, ColumnsCount: 12,
	}}, nil, nil, nil)

	c, rec := newGenerateCtx(e, http.MethodGet, "", "5")
	assert.NoError(t, h.GetLayout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Areas []struct {
			Area        string `json:"area"`
			FirstColumn int    `json:"first_column"`
			LastColumn  int    `json:"last_column"`
		} `json:"areas"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	if assert.Len(t, got.Areas, 3) {
		assert.Equal(t, "A", got.Areas[0].Area)
		assert.Equal(t, 1, got.Areas[0].FirstColumn)
		assert.Equal(t, 4, got.Areas[0].LastColumn)
		assert.Equal(t, "B", got.Areas[1].Area)
		assert.Equal(t, 5, got.Areas[1].FirstColumn)
		assert.Equal(t, 8, got.Areas[1].LastColumn)
		assert.Equal(t, "C", got.Areas[2].Area)
		assert.Equal(t, 9, got.Areas[2].FirstColumn)
		assert.Equal(t, 12, got.Areas[2].LastColumn)
	}
}

func TestDispositionGetLayoutNotFound(t *testing.T) {
	e := echo.New()
	h := NewDispositionHandler(nil, nil, &stubLayouts{err: repository.ErrLayoutNotFound}, nil, nil, nil)

	c, rec := newGenerateCtx(e, http.MethodGet, "", "5")
	assert.NoError(t, h.GetLayout(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDispositionGenerateRequiresIdentity(t *testing.T) {
	e := echo.New()
	h := NewDispositionHandler(&stubGen{res: sampleResult()}, nil, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	// no user_id in context

	assert.NoError(t, h.Generate(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
