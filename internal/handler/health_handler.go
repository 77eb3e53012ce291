package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ClientCounter reports how many push clients are connected.
type ClientCounter interface {
	ClientCount() int
}

type HealthHandler struct {
	clients ClientCounter
}

func NewHealthHandler(clients ClientCounter) *HealthHandler {
	return &HealthHandler{clients: clients}
}

func (h *HealthHandler) Check(c echo.Context) error {
	body := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if h.clients != nil {
		body["ws_clients"] = h.clients.ClientCount()
	}
	return c.JSON(http.StatusOK, body)
}
