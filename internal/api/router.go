package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/promoplay/playgate/docs"
	"github.com/promoplay/playgate/internal/api/handler"
	"github.com/promoplay/playgate/internal/api/metrics"
	"github.com/promoplay/playgate/internal/api/middleware"
	"github.com/promoplay/playgate/internal/core/ports"
)

// Deps carries everything the router needs to register routes.
type Deps struct {
	Participants ports.ParticipantService
	Prizes       ports.PrizeService
	MongoPing    handler.PingFunc
	RedisPing    handler.PingFunc
	Logger       zerolog.Logger

	Prefix         string
	AllowedOrigins []string
	RequestTimeout time.Duration
	// ExposeErrors includes internal error text in 5xx responses (development only).
	ExposeErrors bool

	// MetricsRegisterer and MetricsGatherer back the request metrics and
	// /metrics. nil means the Prometheus default registry.
	MetricsRegisterer prometheus.Registerer
	MetricsGatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger, d.ExposeErrors)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator:        uuid.NewString,
		RequestIDHandler: middleware.AttachRequestID,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 metrics.Namespace,
		Subsystem:                 "http",
		Registerer:                d.MetricsRegisterer,
		DoNotUseRequestPathFor404: true,
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(middleware.RequestDeadline(d.RequestTimeout))

	// --- Handlers ---
	participantHandler := handler.NewParticipantHandler(d.Participants)
	prizeHandler := handler.NewPrizeHandler(d.Prizes)
	healthHandler := handler.NewHealthHandler(d.MongoPing, d.RedisPing)

	g := e.Group(d.Prefix)
	g.GET("", healthHandler.Root)

	// --- Health probes ---
	g.GET("/health", healthHandler.Health)          // store reachability
	g.GET("/health/live", healthHandler.Liveness)   // liveness  – is the process alive?
	g.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Participants ---
	users := g.Group("/users")
	users.GET("/check-or-create/:phoneNumber", participantHandler.CheckOrCreate)
	users.GET("/can-play/:phoneNumber", participantHandler.CanPlay)

	// --- Prizes ---
	g.GET("/prizes/available", prizeHandler.Available)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.MetricsGatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
