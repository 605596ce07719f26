package health

import (
	"context"
	"net/http"
	"time"

	"cms-platform/pkg/apperrors"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// Handler serves the liveness endpoint.
type Handler struct {
	DB *sqlx.DB
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{DB: db}
}

// HealthHandler reports service health. A failing database ping degrades the
// response to 503 rather than masking the outage.
func (h *Handler) HealthHandler(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		return apperrors.NewServiceUnavailable(apperrors.ErrCodeServiceUnavailable, "Database unreachable.", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
