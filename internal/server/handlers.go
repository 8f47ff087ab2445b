// Package server exposes the calendar engine over HTTP for the dashboard
// frontend.
package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/tufanunal/factory-planner-360-sub000/internal/schedule"
	"github.com/tufanunal/factory-planner-360-sub000/pkg/dateutil"
)

// Handler wires the schedule service into echo routes.
type Handler struct {
	svc    *schedule.Service
	logger *zap.Logger
}

// NewHandler creates the HTTP handler around the schedule service.
func NewHandler(svc *schedule.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// New builds the echo instance with all routes registered.
func New(svc *schedule.Service, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	h := NewHandler(svc, logger)
	h.Register(e)
	return e
}

// Register mounts all API routes.
func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/calendars", h.ListCalendars)
	api.POST("/calendars", h.CreateCalendar)
	api.PUT("/calendars/:id", h.UpdateCalendar)
	api.DELETE("/calendars/:id", h.DeleteCalendar)
	api.GET("/calendars/active", h.GetActiveCalendar)
	api.PUT("/calendars/active/:id", h.SetActiveCalendar)

	api.POST("/calendars/:id/holidays", h.AddHoliday)
	api.DELETE("/calendars/:id/holidays/:holidayId", h.RemoveHoliday)

	api.GET("/calendars/:id/schedule", h.GetSchedule)
	api.GET("/calendars/:id/toggles", h.ListToggles)
	api.POST("/calendars/:id/toggles", h.ToggleShift)
	api.PUT("/calendars/:id/toggles", h.SetShiftOverride)

	api.GET("/shifts", h.ListShiftTimes)
	api.POST("/shifts", h.CreateShiftTime)
	api.PUT("/shifts/:id", h.EditShiftTime)
	api.DELETE("/shifts/:id", h.DeleteShiftTime)
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// fail maps the engine's error taxonomy onto HTTP statuses.
func (h *Handler) fail(c echo.Context, err error) error {
	status := http.StatusBadGateway // persistence failure unless classified below
	switch {
	case errors.Is(err, schedule.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, schedule.ErrDefaultCalendar):
		status = http.StatusConflict
	case errors.Is(err, schedule.ErrAmbiguousRole):
		status = http.StatusConflict
	case errors.Is(err, schedule.ErrCalendarNotFound),
		errors.Is(err, schedule.ErrShiftTimeNotFound),
		errors.Is(err, schedule.ErrHolidayNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusBadGateway {
		h.logger.Error("Persistence failure", zap.Error(err))
	}
	return respond(c, status, err.Error(), nil)
}

// ListCalendars returns every calendar plus the active pointer.
func (h *Handler) ListCalendars(c echo.Context) error {
	return respond(c, http.StatusOK, "calendars retrieved", map[string]interface{}{
		"calendars":        h.svc.Calendars(),
		"activeCalendarId": h.svc.ActiveCalendar().ID,
	})
}

func (h *Handler) GetActiveCalendar(c echo.Context) error {
	return respond(c, http.StatusOK, "active calendar retrieved", h.svc.ActiveCalendar())
}

func (h *Handler) CreateCalendar(c echo.Context) error {
	var req schedule.Calendar
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request payload: "+err.Error(), nil)
	}

	created, err := h.svc.AddCalendar(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusCreated, "calendar created", created)
}

func (h *Handler) UpdateCalendar(c echo.Context) error {
	var req struct {
		Name            string                   `json:"name"`
		CountryCode     string                   `json:"countryCode"`
		WorkdaysPattern schedule.WorkdaysPattern `json:"workdaysPattern"`
	}
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request payload: "+err.Error(), nil)
	}

	updated, err := h.svc.UpdateCalendar(c.Request().Context(), c.Param("id"), req.Name, req.CountryCode, req.WorkdaysPattern)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "calendar updated", updated)
}

func (h *Handler) DeleteCalendar(c echo.Context) error {
	if err := h.svc.DeleteCalendar(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "calendar deleted", nil)
}

func (h *Handler) SetActiveCalendar(c echo.Context) error {
	if err := h.svc.SetActiveCalendar(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "active calendar set", nil)
}

func (h *Handler) AddHoliday(c echo.Context) error {
	var req schedule.Holiday
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request payload: "+err.Error(), nil)
	}

	created, err := h.svc.AddHoliday(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusCreated, "holiday added", created)
}

func (h *Handler) RemoveHoliday(c echo.Context) error {
	err := h.svc.RemoveHoliday(c.Request().Context(), c.Param("id"), c.Param("holidayId"))
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "holiday removed", nil)
}

// GetSchedule resolves the effective per-shift schedule for ?from=..&to=..
// (both "YYYY-MM-DD", inclusive).
func (h *Handler) GetSchedule(c echo.Context) error {
	from, err := dateutil.ParseISO(c.QueryParam("from"))
	if err != nil {
		return respond(c, http.StatusBadRequest, "query parameter 'from' must be YYYY-MM-DD", nil)
	}
	to, err := dateutil.ParseISO(c.QueryParam("to"))
	if err != nil {
		return respond(c, http.StatusBadRequest, "query parameter 'to' must be YYYY-MM-DD", nil)
	}

	days, err := h.svc.EffectiveSchedule(c.Param("id"), from, to)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "schedule resolved", days)
}

func (h *Handler) ListToggles(c echo.Context) error {
	toggles, err := h.svc.CalendarToggles(c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "toggles retrieved", toggles)
}

func (h *Handler) ToggleShift(c echo.Context) error {
	var req struct {
		Date        string `json:"date"`
		ShiftTimeID string `json:"shiftTimeId"`
	}
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request payload: "+err.Error(), nil)
	}
	date, err := dateutil.ParseISO(req.Date)
	if err != nil {
		return respond(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
	}
	if req.ShiftTimeID == "" {
		return respond(c, http.StatusBadRequest, "shiftTimeId is required", nil)
	}

	if err := h.svc.ToggleShiftOverride(c.Request().Context(), c.Param("id"), date, req.ShiftTimeID); err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "shift toggled", nil)
}

func (h *Handler) SetShiftOverride(c echo.Context) error {
	var req struct {
		Date        string `json:"date"`
		ShiftTimeID string `json:"shiftTimeId"`
		IsActive    bool   `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request payload: "+err.Error(), nil)
	}
	date, err := dateutil.ParseISO(req.Date)
	if err != nil {
		return respond(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
	}
	if req.ShiftTimeID == "" {
		return respond(c, http.StatusBadRequest, "shiftTimeId is required", nil)
	}

	if err := h.svc.SetShiftOverride(c.Request().Context(), c.Param("id"), date, req.ShiftTimeID, req.IsActive); err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "shift override set", nil)
}

func (h *Handler) ListShiftTimes(c echo.Context) error {
	return respond(c, http.StatusOK, "shift times retrieved", h.svc.ShiftTimes())
}

func (h *Handler) CreateShiftTime(c echo.Context) error {
	var req schedule.ShiftTime
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request payload: "+err.Error(), nil)
	}

	created, err := h.svc.AddShiftTime(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusCreated, "shift time created", created)
}

// EditShiftTime applies a shift edit with rotation propagation and returns
// the full written batch (edited shift plus fixed-up neighbors).
func (h *Handler) EditShiftTime(c echo.Context) error {
	var req schedule.ShiftTime
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request payload: "+err.Error(), nil)
	}
	req.ID = c.Param("id")

	batch, err := h.svc.EditShiftTime(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "shift time updated", batch)
}

func (h *Handler) DeleteShiftTime(c echo.Context) error {
	if err := h.svc.DeleteShiftTime(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "shift time deleted", nil)
}
