package analytics

import (
	"net/http"
	"strconv"

	"cms-platform/pkg/apperrors"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// Handler serves the analytics endpoints.
type Handler struct {
	DB *sqlx.DB
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{DB: db}
}

// ListHandler returns a filtered page of events with top-10 groupings.
func (h *Handler) ListHandler(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := ListFilter{
		Search:  c.QueryParam("search"),
		Country: c.QueryParam("country"),
		Page:    page,
		Limit:   limit,
	}

	resp, err := List(c.Request().Context(), h.DB, filter)
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// TrackHandler records a visit reported by the public site.
func (h *Handler) TrackHandler(c echo.Context) error {
	var req struct {
		PageURL string `json:"page_url"`
	}
	if err := c.Bind(&req); err != nil || req.PageURL == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "page_url is required.")
	}

	NewTracker(h.DB).Track(c, req.PageURL)
	return c.JSON(http.StatusOK, map[string]string{"message": "Visit recorded."})
}
