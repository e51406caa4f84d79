package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/lifedesk/core/docs"
	httpHandlers "github.com/lifedesk/core/internal/adapters/http"
	"github.com/lifedesk/core/internal/adapters/repository"
	"github.com/lifedesk/core/internal/application/services"
	"github.com/lifedesk/core/internal/infrastructure/config"
	"github.com/lifedesk/core/internal/infrastructure/database"
	"github.com/lifedesk/core/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	stores *database.Stores
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, stores *database.Stores, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize repositories, one per collection store
	todoRepo := repository.NewTodoRepository(stores.Todos)
	reminderRepo := repository.NewReminderRepository(stores.Reminders)
	bookmarkRepo := repository.NewBookmarkRepository(stores.Bookmarks)
	statusRepo := repository.NewStatusReportRepository(stores.Status)
	ledgerRepo := repository.NewLedgerRepository(stores.Ledger)

	// Initialize services
	todoService := services.NewTodoService(todoRepo, appLogger)
	reminderService := services.NewReminderService(reminderRepo, appLogger)
	bookmarkService := services.NewBookmarkService(bookmarkRepo, appLogger)
	statusService := services.NewStatusService(statusRepo, appLogger)
	ledgerService := services.NewLedgerService(ledgerRepo, appLogger)

	// Initialize handlers
	todoHandler := httpHandlers.NewTodoHandler(todoService, appLogger)
	reminderHandler := httpHandlers.NewReminderHandler(reminderService, appLogger)
	bookmarkHandler := httpHandlers.NewBookmarkHandler(bookmarkService, appLogger)
	statusHandler := httpHandlers.NewStatusHandler(statusService, appLogger)
	ledgerHandler := httpHandlers.NewLedgerHandler(ledgerService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		stores: stores,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup metrics before routes so the middleware wraps every handler
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	// Setup routes
	server.setupRoutes(todoHandler, reminderHandler, bookmarkHandler, statusHandler, ledgerHandler)

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware. The service is openly reachable from any origin by
	// default; it is a single-user deployment.
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// Request ID middleware
	s.echo.Use(requestIDMiddleware())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(todoHandler *httpHandlers.TodoHandler, reminderHandler *httpHandlers.ReminderHandler, bookmarkHandler *httpHandlers.BookmarkHandler, statusHandler *httpHandlers.StatusHandler, ledgerHandler *httpHandlers.LedgerHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Todo routes
	s.echo.GET("/todos", todoHandler.ListTodos)
	s.echo.POST("/todos", todoHandler.CreateTodo)
	s.echo.PUT("/todos/:id", todoHandler.UpdateTodo)
	s.echo.DELETE("/todos/:id", todoHandler.DeleteTodo)

	// Reminder routes
	s.echo.GET("/reminders", reminderHandler.ListReminders)
	s.echo.POST("/reminders", reminderHandler.CreateReminder)
	s.echo.PUT("/reminders/:rid", reminderHandler.UpdateReminder)
	s.echo.PUT("/reminders/:rid/processed", reminderHandler.MarkProcessed)
	s.echo.DELETE("/reminders/:rid", reminderHandler.DeleteReminder)

	// Bookmark routes
	s.echo.GET("/bookmarks", bookmarkHandler.ListBookmarks)
	s.echo.POST("/bookmarks", bookmarkHandler.CreateBookmark)
	s.echo.PUT("/bookmarks/:bid", bookmarkHandler.UpdateBookmark)
	s.echo.DELETE("/bookmarks/:bid", bookmarkHandler.DeleteBookmark)

	// Server status routes
	s.echo.GET("/server/status", statusHandler.ListReports)
	s.echo.POST("/server/status", statusHandler.SubmitReport)

	// Ledger routes
	s.echo.GET("/ledger", ledgerHandler.ListEntries)
	s.echo.POST("/ledger", ledgerHandler.CreateEntry)
	s.echo.PUT("/ledger/:eid", ledgerHandler.UpdateEntry)
	s.echo.DELETE("/ledger/:eid", ledgerHandler.DeleteEntry)

	// Balance singleton routes
	s.echo.GET("/asset", ledgerHandler.GetAsset)
	s.echo.POST("/asset", ledgerHandler.OverwriteAsset)
	s.echo.GET("/liability", ledgerHandler.GetLiability)
	s.echo.POST("/liability", ledgerHandler.OverwriteLiability)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	// Every collection store must answer before we accept traffic
	if err := s.stores.HealthCheck(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if _, ok := msg.(string); ok {
			msg = map[string]interface{}{"message": msg}
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
