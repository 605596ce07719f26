package config

import (
	"context"
	"time"

	"cms-platform/domain/user"
	"cms-platform/pkg/logger"
	"cms-platform/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	bootstrapUsername = "admin"
	bootstrapPassword = "admin"
	bootstrapEmail    = "admin@example.com"
)

// Bootstrap seeds the initial owner account and the default homepage. It is
// idempotent: existing data is left untouched, so it runs on every start.
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	log := logger.Get().WithComponent("bootstrap")

	var ownerExists bool
	if err := db.GetContext(ctx, &ownerExists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE is_owner)`); err != nil {
		return err
	}

	if !ownerExists {
		hashed, err := utils.HashPassword(bootstrapPassword)
		if err != nil {
			return err
		}

		_, err = db.ExecContext(ctx, `
			INSERT INTO users (id, username, email, password_hash, display_name, is_owner,
			                   is_active, must_change_password, permissions, created_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, TRUE, TRUE, $6, $7)`,
			uuid.New().String(), bootstrapUsername, bootstrapEmail, hashed,
			"Administrator", user.Permissions{}, time.Now().UTC())
		if err != nil {
			return err
		}
		log.Info("Owner account created", logger.Username(bootstrapUsername))
	}

	var homepageExists bool
	if err := db.GetContext(ctx, &homepageExists,
		`SELECT EXISTS(SELECT 1 FROM pages WHERE is_homepage)`); err != nil {
		return err
	}

	if !homepageExists {
		now := time.Now().UTC()
		_, err := db.ExecContext(ctx, `
			INSERT INTO pages (id, title, slug, content, is_homepage, created_at, updated_at)
			VALUES ($1, $2, $3, $4, TRUE, $5, $5)
			ON CONFLICT DO NOTHING`,
			uuid.New().String(), "Home", "home",
			"<h1>Welcome</h1><p>This is your new site. Log in to start editing.</p>", now)
		if err != nil {
			return err
		}
		log.Info("Default homepage created", logger.Slug("home"))
	}

	// Settings rows are not seeded: an empty table reads as pure defaults.
	return nil
}
