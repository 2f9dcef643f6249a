// Package communitysite is the publishing engine behind a community
// organization's website: a blog with categories, static pages, photo
// galleries, and an authenticated admin area. The server renders every page as
// a JSON page document (a component name plus its props) that the client-side
// renderer turns into HTML.
package communitysite

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// App wires together the store, middleware, routes, and configuration.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Log    zerolog.Logger

	loginLimiter *loginLimiter
}

// New creates an App with the given configuration. Start does the heavy
// lifting; New only fills in defaults.
func New(cfg SiteConfig, log zerolog.Logger) *App {
	cfg.setDefaults()
	return &App{
		Config: cfg,
		Echo:   echo.New(),
		Log:    log,
	}
}

// Start initializes the database, bootstraps the first admin account if the
// users table is empty, wires middleware and routes, and serves until the
// listener fails.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("communitysite: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("communitysite: init store: %w", err)
	}
	a.Store = store

	if err := a.bootstrapAdmin(); err != nil {
		return fmt.Errorf("communitysite: bootstrap admin: %w", err)
	}

	a.loginLimiter = newLoginLimiter(5, time.Minute)

	a.Echo.HideBanner = true
	a.setupMiddleware()
	a.setupRoutes()

	a.Log.Info().Str("addr", a.Config.Addr).Msg("server starting")
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// bootstrapAdmin creates the initial admin account from configuration, but
// only while the users table is empty. An existing install is never touched.
func (a *App) bootstrapAdmin() error {
	exists, err := a.Store.HasUsers()
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if a.Config.AdminEmail == "" || a.Config.AdminPassword == "" {
		return fmt.Errorf("empty database and no ADMIN_EMAIL/ADMIN_PASSWORD configured")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(a.Config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := User{
		Name:     a.Config.AdminName,
		Email:    a.Config.AdminEmail,
		Role:     RoleAdmin,
		IsActive: true,
	}
	if err := a.Store.CreateUser(&u, string(hash)); err != nil {
		return err
	}
	a.Log.Info().Str("email", u.Email).Msg("admin account created")
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", "public")

	e.GET("/health-check", a.handleHealthCheck)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/posts/:slug", a.handlePost)
	e.GET("/categories/:slug", a.handleCategory)
	e.GET("/pages/:slug", a.handlePage)
	e.GET("/galleries", a.handleGalleries)
	e.GET("/galleries/:slug", a.handleGallery)

	e.GET("/login", a.handleLoginPage)
	e.POST("/login", a.handleLogin)
	e.POST("/logout", a.handleLogout)

	admin := e.Group("/admin", a.requireAuth)
	admin.GET("/dashboard", a.handleAdminDashboard)

	admin.GET("/posts", a.handleAdminPosts)
	admin.GET("/posts/create", a.handleAdminPostCreate)
	admin.POST("/posts", a.handleAdminPostStore)
	admin.GET("/posts/:id", a.handleAdminPostShow)
	admin.GET("/posts/:id/edit", a.handleAdminPostEdit)
	admin.PUT("/posts/:id", a.handleAdminPostUpdate)
	admin.DELETE("/posts/:id", a.handleAdminPostDelete)

	admin.GET("/categories", a.handleAdminCategories)
	admin.GET("/categories/create", a.handleAdminCategoryCreate)
	admin.POST("/categories", a.handleAdminCategoryStore)
	admin.GET("/categories/:id", a.handleAdminCategoryShow)
	admin.GET("/categories/:id/edit", a.handleAdminCategoryEdit)
	admin.PUT("/categories/:id", a.handleAdminCategoryUpdate)
	admin.DELETE("/categories/:id", a.handleAdminCategoryDelete)

	admin.GET("/pages", a.handleAdminPages)
	admin.GET("/pages/create", a.handleAdminPageCreate)
	admin.POST("/pages", a.handleAdminPageStore)
	admin.GET("/pages/:id", a.handleAdminPageShow)
	admin.GET("/pages/:id/edit", a.handleAdminPageEdit)
	admin.PUT("/pages/:id", a.handleAdminPageUpdate)
	admin.DELETE("/pages/:id", a.handleAdminPageDelete)

	admin.GET("/galleries", a.handleAdminGalleries)
	admin.GET("/galleries/create", a.handleAdminGalleryCreate)
	admin.POST("/galleries", a.handleAdminGalleryStore)
	admin.GET("/galleries/:id", a.handleAdminGalleryShow)
	admin.GET("/galleries/:id/edit", a.handleAdminGalleryEdit)
	admin.PUT("/galleries/:id", a.handleAdminGalleryUpdate)
	admin.DELETE("/galleries/:id", a.handleAdminGalleryDelete)
	admin.POST("/galleries/:id/images", a.handleGalleryImageUpload)
	admin.DELETE("/galleries/:id/images/:imageID", a.handleGalleryImageDelete)
}

// Close releases the database handle. Call on shutdown.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
