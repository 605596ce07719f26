package apperrors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cms-platform/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func serveError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(logger.Get())
	e.GET("/boom", func(c echo.Context) error { return err })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	return rec
}

func TestHTTPErrorHandlerMapsAppError(t *testing.T) {
	rec := serveError(t, NewNotFound(ErrCodeNotFound, "Not here."))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrCodeNotFound)
}

func TestHTTPErrorHandlerUnwrapsAppError(t *testing.T) {
	wrapped := fmt.Errorf("loading profile: %w", NewNotFound(ErrCodeNotFound, "Not here."))
	rec := serveError(t, wrapped)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrCodeNotFound)
}

func TestHTTPErrorHandlerSetsRetryAfter(t *testing.T) {
	rec := serveError(t, NewTooManyRequests(ErrCodeRateLimitExceeded, "Slow down.", 42))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
}

func TestHTTPErrorHandlerOpaque500ForUnknownErrors(t *testing.T) {
	rec := serveError(t, fmt.Errorf("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestAsAppError(t *testing.T) {
	appErr := NewBadRequest(ErrCodeInvalidInput, "Bad.")

	got, ok := AsAppError(fmt.Errorf("outer: %w", appErr))
	assert.True(t, ok)
	assert.Equal(t, appErr, got)

	_, ok = AsAppError(fmt.Errorf("plain"))
	assert.False(t, ok)
}
