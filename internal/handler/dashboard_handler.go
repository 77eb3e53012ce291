package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/grachmannico95/incident-replay/internal/report"
	"github.com/grachmannico95/incident-replay/internal/service"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

type DashboardHandler struct {
	service service.DashboardService
	logger  *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  log,
	}
}

func (h *DashboardHandler) Overview(c echo.Context) error {
	ctx := c.Request().Context()

	overview, err := h.service.Overview(ctx)
	if err != nil {
		return respondError(ctx, c, h.logger, err, "failed to compute overview")
	}

	return c.JSON(http.StatusOK, overview)
}

func (h *DashboardHandler) Transactions(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return badRequest(c, "limit must be a non-negative integer")
		}
		limit = n
	}

	txs := h.service.Transactions(ctx, limit)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":        len(txs),
		"transactions": txs,
	})
}

func (h *DashboardHandler) Buckets(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"buckets": h.service.Buckets(c.Request().Context()),
	})
}

func (h *DashboardHandler) Metrics(c echo.Context) error {
	metrics, formatted := h.service.Metrics(c.Request().Context())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"metrics":   metrics,
		"formatted": formatted,
	})
}

func (h *DashboardHandler) Processors(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"processors": h.service.Processors(c.Request().Context()),
	})
}

func (h *DashboardHandler) Countries(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"countries": h.service.CountryBreakdown(c.Request().Context()),
	})
}

func (h *DashboardHandler) Methods(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"methods": h.service.MethodBreakdown(c.Request().Context()),
	})
}

func (h *DashboardHandler) Events(c echo.Context) error {
	events := h.service.Events(c.Request().Context())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":  len(events),
		"events": events,
	})
}

func (h *DashboardHandler) Incident(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Incident(c.Request().Context()))
}

func (h *DashboardHandler) Export(c echo.Context) error {
	ctx := c.Request().Context()

	r, err := h.service.Export(ctx)
	if err != nil {
		return respondError(ctx, c, h.logger, err, "failed to export report")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", report.FileName(r.ExportedAt)))

	return c.JSON(http.StatusOK, r)
}

func (h *DashboardHandler) Dataset(c echo.Context) error {
	ctx := c.Request().Context()

	raw := c.QueryParam("seed")
	if raw == "" {
		return badRequest(c, "seed is required")
	}

	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return badRequest(c, "seed must be an integer")
	}

	data, err := h.service.Dataset(ctx, seed)
	if err != nil {
		return respondError(ctx, c, h.logger, err, "failed to generate dataset")
	}

	return c.JSON(http.StatusOK, data)
}
