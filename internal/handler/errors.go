package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

// respondError maps validation failures to 400 with their message. Anything
// else is logged and answered with a generic 500.
func respondError(ctx context.Context, c echo.Context, log *logger.Logger, err error, msg string) error {
	if domain.IsValidation(err) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	log.Error(ctx, msg, "error", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": msg,
	})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}
