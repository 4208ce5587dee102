// Package server wires the HTTP surface of the service.
package server

import (
	"context"
	"errors"
	"net/http"

	"bizcard-service/internal/biznumber"
	"bizcard-service/internal/handler"
	"bizcard-service/internal/middleware"
	"bizcard-service/internal/repository"
	"bizcard-service/pkg/config"
	"bizcard-service/pkg/jwtutil"
	"bizcard-service/pkg/logger"
	"bizcard-service/pkg/validator"
	"bizcard-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server owns the echo instance and its lifecycle.
type Server struct {
	echo *echo.Echo
	cfg  *config.Config
	log  *zap.Logger
}

// New builds the router with every route and middleware applied.
func New(cfg *config.Config, db *gorm.DB, log *zap.Logger) *Server {
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)
	users := repository.NewUserRepo(db)
	cards := repository.NewCardRepo(db, biznumber.New(cfg.Card.BizNumberMaxAttempts))

	userHandler := handler.NewUserHandler(users, cfg.Auth.BcryptCost)
	authHandler := handler.NewAuthHandler(users, jwtUtil)
	cardHandler := handler.NewCardHandler(cards)
	healthHandler := handler.NewHealthHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = handler.ErrorHandler

	// Apply global middleware - order matters. Recover sits inside metrics
	// and logging so a recovered panic is counted and logged as a 500.
	e.Use(middleware.RequestIDMiddleware())
	e.Use(prometheus.MetricsMiddleware())
	e.Use(logger.Middleware(log))
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Public routes
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", handler.Metrics)

	auth := middleware.Auth(jwtUtil, users)
	api := e.Group("/api")

	api.POST("/login", authHandler.Login)

	u := api.Group("/users")
	u.POST("", userHandler.Register)
	u.GET("", userHandler.List, auth)
	u.GET("/:id", userHandler.Get, auth)
	u.PUT("/:id", userHandler.Update, auth)
	u.PATCH("/:id", userHandler.SetBusiness, auth)
	u.DELETE("/:id", userHandler.Delete, auth)

	c := api.Group("/cards")
	c.GET("", cardHandler.List)
	c.POST("", cardHandler.Create, auth)
	c.GET("/my-cards", cardHandler.MyCards, auth)
	c.GET("/:id", cardHandler.Get)
	c.PUT("/:id", cardHandler.Update, auth)
	c.PATCH("/:id", cardHandler.Like, auth)
	c.DELETE("/:id", cardHandler.Delete, auth)

	return &Server{echo: e, cfg: cfg, log: log}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured port until Shutdown is called.
func (s *Server) Start() error {
	addr := ":" + s.cfg.Server.Port
	s.log.Info("Starting server", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
