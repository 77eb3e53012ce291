package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grachmannico95/incident-replay/pkg/logger"
)

// Upgrader upgrades an HTTP request to a push stream.
type Upgrader interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

type StreamHandler struct {
	upgrader Upgrader
	logger   *logger.Logger
}

func NewStreamHandler(upgrader Upgrader, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		upgrader: upgrader,
		logger:   log,
	}
}

// Connect hands the connection to the hub. The upgrader has already written
// a response when it fails, so the error is only logged.
func (h *StreamHandler) Connect(c echo.Context) error {
	if err := h.upgrader.ServeWS(c.Response(), c.Request()); err != nil {
		h.logger.Warn(c.Request().Context(), "WebSocket upgrade failed", "error", err)
	}
	return nil
}
