// Package server exposes the board over a JSON API for the editor UI.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/board"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/core/services"
	"github.com/jakechorley/charge-nurse/pkg/db"
	"github.com/jakechorley/charge-nurse/pkg/export"
)

// Store is the persistence the API needs
type Store interface {
	db.BoardStore
	db.RunStore
}

// Handler serves the board endpoints. Mutating handlers hold mu so edits never interleave.
type Handler struct {
	store    Store
	layout   model.UnitLayout
	schedule string
	logger   *zap.Logger
	now      func() time.Time

	mu sync.Mutex
}

// NewHandler creates a Handler. schedule is the shift rrule used to label assignment runs.
func NewHandler(store Store, layout model.UnitLayout, schedule string, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		layout:   layout,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterRoutes registers the board API on g.
//
//	GET    /board                 - current board
//	PUT    /board                 - replace the board
//	GET    /report                - board with unit summary and nurse warnings
//	POST   /assign                - auto-assign unlocked rooms
//	POST   /cnas                  - flag rooms that need a CNA
//	POST   /assignments/clear     - unassign unlocked rooms
//	POST   /rooms/clear           - reset unlocked rooms to defaults
//	POST   /remix                 - random patient mix
//	PATCH  /rooms/:room           - partial room update
//	POST   /rooms/:room/lock      - toggle room lock
//	POST   /nurses                - add a nurse
//	PATCH  /nurses/:nurse         - rename or change flags
//	DELETE /nurses/:nurse         - remove a nurse
//	PUT    /nurses/:nurse/rooms   - set a nurse's rooms
//	GET    /runs                  - assignment history, newest first
//	GET    /export.xlsx           - printable workbook
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/board", h.GetBoard)
	g.PUT("/board", h.PutBoard)
	g.GET("/report", h.GetReport)
	g.POST("/assign", h.Assign)
	g.POST("/cnas", h.AssignCNAs)
	g.POST("/assignments/clear", h.ClearAssignments)
	g.POST("/rooms/clear", h.ClearRooms)
	g.POST("/remix", h.Remix)
	g.PATCH("/rooms/:room", h.UpdateRoom)
	g.POST("/rooms/:room/lock", h.ToggleRoomLock)
	g.POST("/nurses", h.AddNurse)
	g.PATCH("/nurses/:nurse", h.UpdateNurse)
	g.DELETE("/nurses/:nurse", h.RemoveNurse)
	g.PUT("/nurses/:nurse/rooms", h.SetNurseRooms)
	g.GET("/runs", h.ListRuns)
	g.GET("/export.xlsx", h.ExportWorkbook)
}

// New builds the echo server with middleware, the health check and the API under /api/v1
func New(h *Handler, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	e.GET("/health", h.Health)

	h.RegisterRoutes(e.Group("/api/v1"))
	return e
}

// pinger is implemented by stores backed by a server
type pinger interface {
	Ping(ctx context.Context) error
}

// Health reports whether the store can be reached. File stores are always healthy.
func (h *Handler) Health(c echo.Context) error {
	if p, ok := h.store.(pinger); ok {
		if err := p.Ping(c.Request().Context()); err != nil {
			h.logger.Warn("Health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			fields := []zap.Field{
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			}
			if err != nil {
				logger.Error("Request failed", append(fields, zap.Error(err))...)
				return err
			}
			logger.Debug("Request", fields...)
			return nil
		}
	}
}

func (h *Handler) GetBoard(c echo.Context) error {
	snapshot, err := services.LoadBoard(c.Request().Context(), h.store, h.layout, h.logger)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) PutBoard(c echo.Context) error {
	snapshot, err := model.DecodeSnapshot(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	saved, err := services.ReplaceBoard(c.Request().Context(), h.store, h.logger, *snapshot)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *Handler) GetReport(c echo.Context) error {
	report, err := services.UnitReport(c.Request().Context(), h.store, h.layout, h.logger)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) Assign(c echo.Context) error {
	label, err := services.ShiftLabel(h.schedule, h.now())
	if err != nil {
		return h.fail(c, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := services.AutoAssign(c.Request().Context(), h.store, h.layout, h.logger, label)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) AssignCNAs(c echo.Context) error {
	return h.edit(c, func() (*services.EditResult, error) {
		return services.AssignCNAs(c.Request().Context(), h.store, h.layout, h.logger)
	})
}

func (h *Handler) ClearAssignments(c echo.Context) error {
	return h.edit(c, func() (*services.EditResult, error) {
		return services.ClearAssignments(c.Request().Context(), h.store, h.layout, h.logger)
	})
}

func (h *Handler) ClearRooms(c echo.Context) error {
	return h.edit(c, func() (*services.EditResult, error) {
		return services.ClearRooms(c.Request().Context(), h.store, h.layout, h.logger)
	})
}

type remixRequest struct {
	board.RemixCounts
	Seed *uint64 `json:"seed,omitempty"`
}

func (h *Handler) Remix(c echo.Context) error {
	req := remixRequest{RemixCounts: board.DefaultRemixCounts}
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
	}

	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	return h.edit(c, func() (*services.EditResult, error) {
		return services.Remix(c.Request().Context(), h.store, h.layout, h.logger, req.RemixCounts, rng)
	})
}

func (h *Handler) UpdateRoom(c echo.Context) error {
	roomID, err := model.ParseRoomID(c.Param("room"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var update board.RoomUpdate
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	return h.edit(c, func() (*services.EditResult, error) {
		return services.UpdateRoom(c.Request().Context(), h.store, h.layout, h.logger, roomID, update)
	})
}

func (h *Handler) ToggleRoomLock(c echo.Context) error {
	roomID, err := model.ParseRoomID(c.Param("room"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return h.edit(c, func() (*services.EditResult, error) {
		return services.ToggleRoomLock(c.Request().Context(), h.store, h.layout, h.logger, roomID)
	})
}

type nurseRequest struct {
	Name *string `json:"name,omitempty"`
	board.NurseFlags
}

func (h *Handler) AddNurse(c echo.Context) error {
	var req nurseRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
	}
	name := ""
	if req.Name != nil {
		name = *req.Name
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := services.AddNurse(c.Request().Context(), h.store, h.layout, h.logger, name)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// UpdateNurse renames the nurse and applies flag changes in one save
func (h *Handler) UpdateNurse(c echo.Context) error {
	ref := c.Param("nurse")

	var req nurseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	return h.edit(c, func() (*services.EditResult, error) {
		return services.UpdateNurse(c.Request().Context(), h.store, h.layout, h.logger, ref, req.Name, req.NurseFlags)
	})
}

func (h *Handler) RemoveNurse(c echo.Context) error {
	return h.edit(c, func() (*services.EditResult, error) {
		return services.RemoveNurse(c.Request().Context(), h.store, h.layout, h.logger, c.Param("nurse"))
	})
}

type nurseRoomsRequest struct {
	Rooms string `json:"rooms"`
}

func (h *Handler) SetNurseRooms(c echo.Context) error {
	var req nurseRoomsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	return h.edit(c, func() (*services.EditResult, error) {
		return services.SetNurseRooms(c.Request().Context(), h.store, h.layout, h.logger, c.Param("nurse"), req.Rooms)
	})
}

func (h *Handler) ListRuns(c echo.Context) error {
	runs, err := services.ListRuns(c.Request().Context(), h.store, h.logger)
	if err != nil {
		return h.fail(c, err)
	}
	if runs == nil {
		runs = []db.AssignmentRun{}
	}
	return c.JSON(http.StatusOK, runs)
}

func (h *Handler) ExportWorkbook(c echo.Context) error {
	report, err := services.UnitReport(c.Request().Context(), h.store, h.layout, h.logger)
	if err != nil {
		return h.fail(c, err)
	}

	data, err := export.Workbook(report.Board, report.Report)
	if err != nil {
		return h.fail(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="assignments.xlsx"`)
	return c.Stream(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", bytes.NewReader(data))
}

// edit runs a board edit under the write lock and writes its result
func (h *Handler) edit(c echo.Context, run func() (*services.EditResult, error)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := run()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// fail maps service errors to a status code and JSON error body
func (h *Handler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, board.ErrNurseNotFound), errors.Is(err, board.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, board.ErrDuplicateName):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, board.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.logger.Error("Request failed", zap.String("path", c.Request().URL.Path), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("internal error: %v", err)})
}
