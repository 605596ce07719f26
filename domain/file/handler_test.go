package file

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
)

func TestUploadBodyCapCoversLargestAllowedFile(t *testing.T) {
	assert.Greater(t, int64(UploadBodyCap), int64(HardSizeCap))
}

func TestUploadBodyCapRejectsOversizedBody(t *testing.T) {
	e := echo.New()
	e.POST("/upload", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		echomw.BodyLimit(strconv.FormatInt(UploadBodyCap, 10)))

	req := httptest.NewRequest(http.MethodPost, "/upload",
		bytes.NewReader(make([]byte, UploadBodyCap+1)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
