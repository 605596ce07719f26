package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"cms-platform/pkg/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverrideMergesOntoDefaults(t *testing.T) {
	s := Defaults()

	require.NoError(t, applyOverride(&s, "site_title", []byte(`"X"`)))
	require.NoError(t, applyOverride(&s, "contact_cooldown", []byte(`60`)))

	// Supplied keys change...
	assert.Equal(t, "X", s.SiteTitle)
	assert.Equal(t, 60, s.ContactCooldown)
	// ...everything else keeps its default.
	assert.Equal(t, Defaults().SiteEmail, s.SiteEmail)
	assert.Equal(t, Defaults().MaxUploadSize, s.MaxUploadSize)
	assert.Equal(t, Defaults().PostsPerPage, s.PostsPerPage)
}

func TestApplyOverrideUnknownKeyIgnored(t *testing.T) {
	s := Defaults()
	require.NoError(t, applyOverride(&s, "retired_key", []byte(`"whatever"`)))
	assert.Equal(t, Defaults(), s)
}

func TestChangesOnlyListsSuppliedFields(t *testing.T) {
	title := "New Title"
	cooldown := 120
	req := UpdateRequest{SiteTitle: &title, ContactCooldown: &cooldown}

	changes := req.changes()
	assert.Len(t, changes, 2)
	assert.Equal(t, "New Title", changes["site_title"])
	assert.Equal(t, 120, changes["contact_cooldown"])
}

func TestChangesEmptyRequest(t *testing.T) {
	assert.Empty(t, UpdateRequest{}.changes())
}

func TestUpdateThenOverrideRoundTrip(t *testing.T) {
	// A written change must read back through applyOverride unchanged.
	title := "X"
	req := UpdateRequest{SiteTitle: &title}

	s := Defaults()
	for key, value := range req.changes() {
		raw, err := json.Marshal(value)
		require.NoError(t, err)
		require.NoError(t, applyOverride(&s, key, raw))
	}

	assert.Equal(t, "X", s.SiteTitle)
	assert.Equal(t, Defaults().SiteEmail, s.SiteEmail)
}

func TestPublicStripsSecrets(t *testing.T) {
	s := Defaults()
	s.SMTPPassword = "hunter2"
	s.SMTPUsername = "mailer"
	s.GoogleSiteVerification = "token-abc"
	s.SiteTitle = "My Site"

	raw, err := json.Marshal(s.Public())
	require.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, "My Site")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "mailer")
	assert.NotContains(t, out, "token-abc")
	assert.NotContains(t, out, "smtp")
}

func TestEveryUpdatableKeyHasAField(t *testing.T) {
	// Each key changes() can emit must be readable back by applyOverride.
	req := UpdateRequest{
		SiteTitle:              ptr("t"),
		SiteEmail:              ptr("e"),
		SiteDescription:        ptr("d"),
		SiteURL:                ptr("u"),
		Theme:                  ptr("th"),
		BackgroundType:         ptr("color"),
		BackgroundValue:        ptr("#fff"),
		BackgroundImageURL:     ptr("img"),
		MetaKeywords:           ptr("k"),
		GoogleSiteVerification: ptr("g"),
		SocialLinks:            &map[string]string{"github": "x"},
		SMTPHost:               ptr("h"),
		SMTPPort:               ptrInt(25),
		SMTPUsername:           ptr("su"),
		SMTPPassword:           ptr("sp"),
		SMTPFrom:               ptr("sf"),
		PostsPerPage:           ptrInt(5),
		ExcerptLength:          ptrInt(80),
		ContactCooldown:        ptrInt(10),
		MaxUploadSize:          ptrInt64(1),
	}

	for key := range req.changes() {
		_, ok := settingFields[key]
		assert.True(t, ok, "no settings field registered for key %s", key)
	}
}

func TestTypedGettersFallBackToDefaultsAndLog(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.Config{Level: logger.LevelWarn, Environment: "production", Output: &buf})

	// A socket path that cannot exist makes every query fail immediately.
	db, err := sqlx.Open("postgres", "host=/nonexistent sslmode=disable")
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db)
	ctx := context.Background()

	assert.Equal(t, time.Duration(Defaults().ContactCooldown)*time.Second, svc.ContactCooldown(ctx))
	assert.Equal(t, Defaults().MaxUploadSize, svc.MaxUploadSize(ctx))
	assert.Equal(t, Defaults().PostsPerPage, svc.PostsPerPage(ctx))
	assert.Equal(t, Defaults().ExcerptLength, svc.ExcerptLength(ctx))

	assert.Contains(t, buf.String(), "Reading settings failed")
}

func ptr(s string) *string    { return &s }
func ptrInt(i int) *int       { return &i }
func ptrInt64(i int64) *int64 { return &i }
