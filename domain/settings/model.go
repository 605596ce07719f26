package settings

// Settings is the full site configuration document. It exists as key/value
// rows in the settings table; absent keys take their default, so a freshly
// migrated database is a valid all-defaults state.
type Settings struct {
	SiteTitle       string `json:"site_title"`
	SiteEmail       string `json:"site_email"`
	SiteDescription string `json:"site_description"`
	SiteURL         string `json:"site_url"`
	Theme           string `json:"theme"`

	BackgroundType     string `json:"background_type"` // default | color | gradient | image
	BackgroundValue    string `json:"background_value"`
	BackgroundImageURL string `json:"background_image_url"`

	MetaKeywords           string            `json:"meta_keywords"`
	GoogleSiteVerification string            `json:"google_site_verification"`
	SocialLinks            map[string]string `json:"social_links"`

	SMTPHost     string `json:"smtp_host"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUsername string `json:"smtp_username"`
	SMTPPassword string `json:"smtp_password"`
	SMTPFrom     string `json:"smtp_from"`

	PostsPerPage  int `json:"posts_per_page"`
	ExcerptLength int `json:"excerpt_length"`

	ContactCooldown int   `json:"contact_cooldown"` // seconds
	MaxUploadSize   int64 `json:"max_upload_size"`  // bytes
}

// Defaults returns the bootstrap configuration.
func Defaults() Settings {
	return Settings{
		SiteTitle:       "Personal Website",
		SiteEmail:       "admin@example.com",
		SiteDescription: "",
		SiteURL:         "",
		Theme:           "default",

		BackgroundType: "default",

		SocialLinks: map[string]string{},

		SMTPPort: 587,

		PostsPerPage:  10,
		ExcerptLength: 200,

		ContactCooldown: 300,
		MaxUploadSize:   10 << 20, // 10 MiB
	}
}

// PublicSettings is the display-safe subset served without authentication.
// SMTP credentials and search-console tokens never leave the admin API.
type PublicSettings struct {
	SiteTitle          string            `json:"site_title"`
	SiteDescription    string            `json:"site_description"`
	SiteURL            string            `json:"site_url"`
	Theme              string            `json:"theme"`
	BackgroundType     string            `json:"background_type"`
	BackgroundValue    string            `json:"background_value"`
	BackgroundImageURL string            `json:"background_image_url"`
	MetaKeywords       string            `json:"meta_keywords"`
	SocialLinks        map[string]string `json:"social_links"`
	PostsPerPage       int               `json:"posts_per_page"`
}

// Public strips operational and secret fields.
func (s Settings) Public() PublicSettings {
	return PublicSettings{
		SiteTitle:          s.SiteTitle,
		SiteDescription:    s.SiteDescription,
		SiteURL:            s.SiteURL,
		Theme:              s.Theme,
		BackgroundType:     s.BackgroundType,
		BackgroundValue:    s.BackgroundValue,
		BackgroundImageURL: s.BackgroundImageURL,
		MetaKeywords:       s.MetaKeywords,
		SocialLinks:        s.SocialLinks,
		PostsPerPage:       s.PostsPerPage,
	}
}

// UpdateRequest is the partial-update payload. Only non-nil fields are
// written; everything else keeps its stored (or default) value.
type UpdateRequest struct {
	SiteTitle       *string `json:"site_title"`
	SiteEmail       *string `json:"site_email"`
	SiteDescription *string `json:"site_description"`
	SiteURL         *string `json:"site_url"`
	Theme           *string `json:"theme"`

	BackgroundType     *string `json:"background_type"`
	BackgroundValue    *string `json:"background_value"`
	BackgroundImageURL *string `json:"background_image_url"`

	MetaKeywords           *string            `json:"meta_keywords"`
	GoogleSiteVerification *string            `json:"google_site_verification"`
	SocialLinks            *map[string]string `json:"social_links"`

	SMTPHost     *string `json:"smtp_host"`
	SMTPPort     *int    `json:"smtp_port"`
	SMTPUsername *string `json:"smtp_username"`
	SMTPPassword *string `json:"smtp_password"`
	SMTPFrom     *string `json:"smtp_from"`

	PostsPerPage  *int `json:"posts_per_page"`
	ExcerptLength *int `json:"excerpt_length"`

	ContactCooldown *int   `json:"contact_cooldown"`
	MaxUploadSize   *int64 `json:"max_upload_size"`
}

// changes lists the keys the request explicitly supplies, with their values.
func (r UpdateRequest) changes() map[string]interface{} {
	out := map[string]interface{}{}
	put := func(key string, v interface{}) { out[key] = v }

	if r.SiteTitle != nil {
		put("site_title", *r.SiteTitle)
	}
	if r.SiteEmail != nil {
		put("site_email", *r.SiteEmail)
	}
	if r.SiteDescription != nil {
		put("site_description", *r.SiteDescription)
	}
	if r.SiteURL != nil {
		put("site_url", *r.SiteURL)
	}
	if r.Theme != nil {
		put("theme", *r.Theme)
	}
	if r.BackgroundType != nil {
		put("background_type", *r.BackgroundType)
	}
	if r.BackgroundValue != nil {
		put("background_value", *r.BackgroundValue)
	}
	if r.BackgroundImageURL != nil {
		put("background_image_url", *r.BackgroundImageURL)
	}
	if r.MetaKeywords != nil {
		put("meta_keywords", *r.MetaKeywords)
	}
	if r.GoogleSiteVerification != nil {
		put("google_site_verification", *r.GoogleSiteVerification)
	}
	if r.SocialLinks != nil {
		put("social_links", *r.SocialLinks)
	}
	if r.SMTPHost != nil {
		put("smtp_host", *r.SMTPHost)
	}
	if r.SMTPPort != nil {
		put("smtp_port", *r.SMTPPort)
	}
	if r.SMTPUsername != nil {
		put("smtp_username", *r.SMTPUsername)
	}
	if r.SMTPPassword != nil {
		put("smtp_password", *r.SMTPPassword)
	}
	if r.SMTPFrom != nil {
		put("smtp_from", *r.SMTPFrom)
	}
	if r.PostsPerPage != nil {
		put("posts_per_page", *r.PostsPerPage)
	}
	if r.ExcerptLength != nil {
		put("excerpt_length", *r.ExcerptLength)
	}
	if r.ContactCooldown != nil {
		put("contact_cooldown", *r.ContactCooldown)
	}
	if r.MaxUploadSize != nil {
		put("max_upload_size", *r.MaxUploadSize)
	}

	return out
}
