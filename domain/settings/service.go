package settings

import (
	"context"
	"encoding/json"
	"time"

	"cms-platform/pkg/logger"

	"github.com/jmoiron/sqlx"
)

// settingFields maps stored keys to the Settings field they overlay. A miss
// means the row belongs to a retired key and is skipped.
var settingFields = map[string]func(*Settings) interface{}{
	"site_title":               func(s *Settings) interface{} { return &s.SiteTitle },
	"site_email":               func(s *Settings) interface{} { return &s.SiteEmail },
	"site_description":         func(s *Settings) interface{} { return &s.SiteDescription },
	"site_url":                 func(s *Settings) interface{} { return &s.SiteURL },
	"theme":                    func(s *Settings) interface{} { return &s.Theme },
	"background_type":          func(s *Settings) interface{} { return &s.BackgroundType },
	"background_value":         func(s *Settings) interface{} { return &s.BackgroundValue },
	"background_image_url":     func(s *Settings) interface{} { return &s.BackgroundImageURL },
	"meta_keywords":            func(s *Settings) interface{} { return &s.MetaKeywords },
	"google_site_verification": func(s *Settings) interface{} { return &s.GoogleSiteVerification },
	"social_links":             func(s *Settings) interface{} { return &s.SocialLinks },
	"smtp_host":                func(s *Settings) interface{} { return &s.SMTPHost },
	"smtp_port":                func(s *Settings) interface{} { return &s.SMTPPort },
	"smtp_username":            func(s *Settings) interface{} { return &s.SMTPUsername },
	"smtp_password":            func(s *Settings) interface{} { return &s.SMTPPassword },
	"smtp_from":                func(s *Settings) interface{} { return &s.SMTPFrom },
	"posts_per_page":           func(s *Settings) interface{} { return &s.PostsPerPage },
	"excerpt_length":           func(s *Settings) interface{} { return &s.ExcerptLength },
	"contact_cooldown":         func(s *Settings) interface{} { return &s.ContactCooldown },
	"max_upload_size":          func(s *Settings) interface{} { return &s.MaxUploadSize },
}

// Service reads and writes the settings document.
type Service struct {
	DB *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{DB: db}
}

type settingRow struct {
	Key   string `db:"key"`
	Value []byte `db:"value"`
}

// Get returns defaults overlaid with every stored override. Absence of rows
// is a valid state; Get never fails with "not found".
func (s *Service) Get(ctx context.Context) (Settings, error) {
	out := Defaults()

	rows := []settingRow{}
	if err := s.DB.SelectContext(ctx, &rows, `SELECT key, value FROM settings`); err != nil {
		return out, err
	}

	for _, row := range rows {
		if err := applyOverride(&out, row.Key, row.Value); err != nil {
			return out, err
		}
	}
	return out, nil
}

// applyOverride unmarshals one stored value onto its field. Unknown keys are
// ignored rather than failing the whole read.
func applyOverride(s *Settings, key string, raw []byte) error {
	accessor, ok := settingFields[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, accessor(s))
}

// Update upserts only the keys the request supplies, leaving every other
// stored value untouched. Creates rows on first write.
func (s *Service) Update(ctx context.Context, req UpdateRequest) error {
	changes := req.changes()
	if len(changes) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for key, value := range changes {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, err = s.DB.ExecContext(ctx, `
			INSERT INTO settings (key, value, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
			key, raw, now)
		if err != nil {
			return err
		}
	}
	return nil
}

// current reads the settings for one typed getter. A failed read falls back
// to defaults so the public surface keeps serving, and is logged so storage
// trouble stays visible.
func (s *Service) current(ctx context.Context, setting string) Settings {
	cur, err := s.Get(ctx)
	if err != nil {
		logger.Get().WithComponent("settings").Warn("Reading settings failed, using default",
			logger.String("setting", setting), logger.Err(err))
		return Defaults()
	}
	return cur
}

// ContactCooldown returns the current cooldown, read fresh on every call so
// an admin change takes effect immediately.
func (s *Service) ContactCooldown(ctx context.Context) time.Duration {
	return time.Duration(s.current(ctx, "contact_cooldown").ContactCooldown) * time.Second
}

// MaxUploadSize returns the configured upload cap in bytes.
func (s *Service) MaxUploadSize(ctx context.Context) int64 {
	return s.current(ctx, "max_upload_size").MaxUploadSize
}

// PostsPerPage returns the configured public blog page size.
func (s *Service) PostsPerPage(ctx context.Context) int {
	return s.current(ctx, "posts_per_page").PostsPerPage
}

// ExcerptLength returns the configured auto-excerpt length.
func (s *Service) ExcerptLength(ctx context.Context) int {
	return s.current(ctx, "excerpt_length").ExcerptLength
}
