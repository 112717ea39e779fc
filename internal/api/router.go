package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cinevault/movies-api/docs"
	"github.com/cinevault/movies-api/internal/api/handler"
	"github.com/cinevault/movies-api/internal/api/middleware"
	"github.com/cinevault/movies-api/internal/core/domain"
	"github.com/cinevault/movies-api/internal/core/ports"
)

// Dependencies are the services the router exposes over HTTP.
type Dependencies struct {
	Log       zerolog.Logger
	Auth      ports.AuthService
	Movies    ports.MovieService
	Directors ports.DirectorService
	Tokens    ports.TokenVerifier
	// Checks feed /health/ready, keyed by dependency name.
	Checks map[string]handler.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// Per-router registry for HTTP metrics; application and runtime metrics
	// live in the default registry and are served alongside.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestContext())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "movies",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	movieHandler := handler.NewMovieHandler(deps.Movies)
	directorHandler := handler.NewDirectorHandler(deps.Directors)
	healthHandler := handler.NewHealthHandler(deps.Checks)

	requireAuth := middleware.Auth(deps.Tokens, deps.Log)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	e.GET("/", handler.Welcome)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Catalogue: reads are public, writes need a token, edits need admin ---
	movies := e.Group("/movies")
	movies.GET("", movieHandler.List)
	movies.GET("/:id", movieHandler.Get)
	movies.POST("", movieHandler.Create, requireAuth)
	movies.PUT("/:id", movieHandler.Update, requireAuth, requireAdmin)
	movies.DELETE("/:id", movieHandler.Delete, requireAuth, requireAdmin)

	directors := e.Group("/directors")
	directors.GET("", directorHandler.List)
	directors.GET("/:id", directorHandler.Get)
	directors.POST("", directorHandler.Create, requireAuth)
	directors.PUT("/:id", directorHandler.Update, requireAuth, requireAdmin)
	directors.DELETE("/:id", directorHandler.Delete, requireAuth, requireAdmin)

	// --- Operations (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness) // reports each dependency
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
