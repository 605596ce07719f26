package analytics

import (
	"strings"
	"time"

	"cms-platform/pkg/logger"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	ua "github.com/mileusna/useragent"
)

// Tracker records page visits.
type Tracker struct {
	DB *sqlx.DB
}

func NewTracker(db *sqlx.DB) *Tracker {
	return &Tracker{DB: db}
}

// parseUserAgent derives display names for browser and OS from a raw
// user-agent string. Unknown or empty input yields "Unknown".
func parseUserAgent(raw string) (browser, os string) {
	browser, os = "Unknown", "Unknown"
	if raw == "" {
		return
	}

	// The parser fills Name even for strings it cannot classify; only a
	// recognized device class makes the result trustworthy.
	parsed := ua.Parse(raw)
	if parsed.Name != "" && (parsed.Desktop || parsed.Mobile || parsed.Tablet || parsed.Bot) {
		browser = strings.TrimSpace(parsed.Name + " " + majorVersion(parsed.Version))
	}
	if parsed.OS != "" {
		os = strings.TrimSpace(parsed.OS + " " + parsed.OSVersion)
	}
	return
}

func majorVersion(v string) string {
	if i := strings.IndexByte(v, '.'); i > 0 {
		return v[:i]
	}
	return v
}

// Track records a visit to pageURL from the current request. Tracking is
// best-effort: failures are logged and never surface to the visitor.
func (t *Tracker) Track(c echo.Context, pageURL string) {
	raw := c.Request().UserAgent()
	browser, os := parseUserAgent(raw)

	var referer *string
	if r := c.Request().Referer(); r != "" {
		referer = &r
	}

	// GeoIP lookup is out of scope; country stays best-effort.
	_, err := t.DB.ExecContext(c.Request().Context(), `
		INSERT INTO analytics_events (id, ip_address, user_agent, page_url, referer,
		                              browser, os, country, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.New().String(), c.RealIP(), raw, pageURL, referer,
		browser, os, "Unknown", time.Now().UTC())
	if err != nil {
		logger.Get().WithComponent("analytics").Warn("Failed to record visit",
			logger.Path(pageURL), logger.Err(err))
	}
}
