package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/service"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

type AdvanceRequest struct {
	Minutes float64 `json:"minutes"`
}

type SeekRequest struct {
	Time time.Time `json:"time"`
}

type SpeedRequest struct {
	Speed float64 `json:"speed"`
}

type AlertThresholdRequest struct {
	AlertThreshold *float64 `json:"alert_threshold"`
}

// SimulationHandler exposes the named clock, filter and settings actions.
type SimulationHandler struct {
	service service.SimulationService
	logger  *logger.Logger
}

func NewSimulationHandler(service service.SimulationService, log *logger.Logger) *SimulationHandler {
	return &SimulationHandler{
		service: service,
		logger:  log,
	}
}

func (h *SimulationHandler) Clock(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Clock(c.Request().Context()))
}

func (h *SimulationHandler) Toggle(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.ToggleRunning(c.Request().Context()))
}

func (h *SimulationHandler) Reset(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Reset(c.Request().Context()))
}

func (h *SimulationHandler) Advance(c echo.Context) error {
	ctx := c.Request().Context()

	var req AdvanceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	state, err := h.service.Advance(ctx, req.Minutes)
	if err != nil {
		return respondError(ctx, c, h.logger, err, "failed to advance clock")
	}

	return c.JSON(http.StatusOK, state)
}

func (h *SimulationHandler) Seek(c echo.Context) error {
	ctx := c.Request().Context()

	var req SeekRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "time must be RFC3339")
	}

	state, err := h.service.Seek(ctx, req.Time)
	if err != nil {
		return respondError(ctx, c, h.logger, err, "failed to seek clock")
	}

	return c.JSON(http.StatusOK, state)
}

func (h *SimulationHandler) Speed(c echo.Context) error {
	ctx := c.Request().Context()

	var req SpeedRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	state, err := h.service.SetSpeed(ctx, req.Speed)
	if err != nil {
		return respondError(ctx, c, h.logger, err, "failed to set speed")
	}

	return c.JSON(http.StatusOK, state)
}

func (h *SimulationHandler) Filters(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Filters(c.Request().Context()))
}

func (h *SimulationHandler) ApplyFilters(c echo.Context) error {
	ctx := c.Request().Context()

	var patch domain.FilterPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}

	sel, err := h.service.ApplyFilters(ctx, patch)
	if err != nil {
		return respondError(ctx, c, h.logger, err, "failed to apply filters")
	}

	return c.JSON(http.StatusOK, sel)
}

func (h *SimulationHandler) ResetFilters(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.ResetFilters(c.Request().Context()))
}

func (h *SimulationHandler) ToggleCountry(c echo.Context) error {
	ctx := c.Request().Context()

	sel, err := h.service.ToggleCountry(ctx, domain.Country(c.Param("country")))
	if err != nil {
		return respondError(ctx, c, h.logger, err, "failed to toggle country")
	}

	return c.JSON(http.StatusOK, sel)
}

func (h *SimulationHandler) ToggleMethod(c echo.Context) error {
	ctx := c.Request().Context()

	sel, err := h.service.TogglePaymentMethod(ctx, domain.PaymentMethod(c.Param("method")))
	if err != nil {
		return respondError(ctx, c, h.logger, err, "failed to toggle payment method")
	}

	return c.JSON(http.StatusOK, sel)
}

func (h *SimulationHandler) Settings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Settings(c.Request().Context()))
}

func (h *SimulationHandler) SetAlertThreshold(c echo.Context) error {
	ctx := c.Request().Context()

	var req AlertThresholdRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.AlertThreshold == nil {
		return badRequest(c, "alert_threshold is required")
	}

	settings, err := h.service.SetAlertThreshold(ctx, *req.AlertThreshold)
	if err != nil {
		return respondError(ctx, c, h.logger, err, "failed to set alert threshold")
	}

	return c.JSON(http.StatusOK, settings)
}

func (h *SimulationHandler) ToggleComparison(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.ToggleComparisonMode(c.Request().Context()))
}
