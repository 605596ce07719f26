package routes

import (
	"context"
	"strconv"
	"time"

	"cms-platform/domain/analytics"
	"cms-platform/domain/auth"
	"cms-platform/domain/blog"
	"cms-platform/domain/contact"
	"cms-platform/domain/file"
	"cms-platform/domain/health"
	"cms-platform/domain/page"
	"cms-platform/domain/seo"
	"cms-platform/domain/settings"
	"cms-platform/domain/user"
	"cms-platform/middleware"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Deps carries everything the route table needs. The process entry point
// builds it once and owns the lifecycles.
type Deps struct {
	DB        *sqlx.DB
	Settings  *settings.Service
	Limiter   *middleware.CooldownLimiter
	UploadDir string
}

func RegisterRoutes(e *echo.Echo, deps Deps) {
	tracker := analytics.NewTracker(deps.DB)

	authHandler := auth.NewHandler(deps.DB)
	userHandler := user.NewHandler(deps.DB)
	settingsHandler := settings.NewHandler(deps.Settings)
	pageHandler := page.NewHandler(deps.DB, tracker)
	blogHandler := blog.NewHandler(deps.DB, deps.Settings, tracker)
	contactHandler := contact.NewHandler(deps.DB)
	analyticsHandler := analytics.NewHandler(deps.DB)
	fileHandler := file.NewHandler(deps.UploadDir, deps.Settings)
	seoHandler := seo.NewHandler(deps.DB, deps.Settings)
	healthHandler := health.NewHandler(deps.DB)

	jwt := middleware.JWTMiddleware(deps.DB)
	contactCooldown := middleware.CooldownMiddleware(deps.Limiter, "contact",
		func(ctx context.Context) time.Duration { return deps.Settings.ContactCooldown(ctx) })
	// Oversized uploads are refused before the multipart body is buffered.
	uploadBody := echomw.BodyLimit(strconv.FormatInt(file.UploadBodyCap, 10))

	// Public surface
	e.GET("/health", healthHandler.HealthHandler)
	e.POST("/login", authHandler.LoginHandler)
	e.GET("/public-settings", settingsHandler.PublicHandler)
	e.GET("/robots.txt", seoHandler.RobotsHandler)
	e.GET("/sitemap.xml", seoHandler.SitemapHandler)
	e.GET("/public/pages/:slug", pageHandler.GetBySlugHandler)
	e.GET("/public/blog", blogHandler.PublicListHandler)
	e.GET("/public/blog/:slug", blogHandler.GetBySlugHandler)
	e.POST("/blog/search", blogHandler.SearchHandler, middleware.OptionalJWTMiddleware(deps.DB))
	e.POST("/contact", contactHandler.CreateHandler, contactCooldown)
	e.POST("/analytics/track", analyticsHandler.TrackHandler)
	e.GET("/uploads/:filename", fileHandler.ServeHandler)

	// Authenticated surface
	e.GET("/me", authHandler.MeHandler, jwt)
	e.POST("/change-credentials", authHandler.ChangeCredentialsHandler, jwt)

	pages := e.Group("/pages", jwt)
	pages.GET("", pageHandler.ListHandler)
	pages.GET("/:id", pageHandler.GetHandler)
	pages.POST("", pageHandler.CreateHandler, middleware.RequirePermission("pages.create"))
	pages.PUT("/:id", pageHandler.UpdateHandler, middleware.RequirePermission("pages.edit"))
	pages.DELETE("/:id", pageHandler.DeleteHandler, middleware.RequirePermission("pages.delete"))

	posts := e.Group("/blog", jwt)
	posts.GET("", blogHandler.ListHandler)
	posts.GET("/:id", blogHandler.GetHandler)
	posts.POST("", blogHandler.CreateHandler, middleware.RequirePermission("blog.create"))
	posts.PUT("/:id", blogHandler.UpdateHandler, middleware.RequirePermission("blog.edit"))
	posts.DELETE("/:id", blogHandler.DeleteHandler, middleware.RequirePermission("blog.delete"))

	site := e.Group("/settings", jwt)
	site.GET("", settingsHandler.GetHandler, middleware.RequirePermission("settings.view"))
	site.PUT("", settingsHandler.UpdateHandler, middleware.RequirePermission("settings.edit"))

	users := e.Group("/users", jwt)
	users.GET("", userHandler.ListHandler, middleware.RequirePermission("users.view"))
	users.GET("/:id", userHandler.GetHandler, middleware.RequirePermission("users.view"))
	users.POST("", userHandler.CreateHandler, middleware.RequirePermission("users.create"))
	users.PUT("/:id", userHandler.UpdateHandler, middleware.RequirePermission("users.edit"))
	users.DELETE("/:id", userHandler.DeleteHandler, middleware.RequirePermission("users.delete"))

	e.GET("/analytics", analyticsHandler.ListHandler, jwt, middleware.RequirePermission("analytics.view"))

	messages := e.Group("/contact-messages", jwt)
	messages.GET("", contactHandler.ListHandler, middleware.RequirePermission("contact.view"))
	messages.DELETE("/:id", contactHandler.DeleteHandler, middleware.RequirePermission("contact.delete"))

	e.POST("/upload", fileHandler.UploadHandler, uploadBody, jwt, middleware.RequirePermission("files.upload"))
	e.GET("/files", fileHandler.ListHandler, jwt, middleware.RequirePermission("files.upload"))
	e.DELETE("/uploads/:filename", fileHandler.DeleteHandler, jwt, middleware.RequirePermission("files.delete"))
}
