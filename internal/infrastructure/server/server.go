package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/promanage/core/docs"
	httpHandlers "github.com/promanage/core/internal/adapters/http"
	"github.com/promanage/core/internal/application/services"
	"github.com/promanage/core/internal/domain/entities"
	"github.com/promanage/core/internal/infrastructure/config"
	"github.com/promanage/core/internal/infrastructure/logger"
	"github.com/promanage/core/internal/infrastructure/metrics"
	"github.com/promanage/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	store    ports.Store
	registry *prometheus.Registry
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
func New(cfg *config.Config, store ports.Store, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		store:  store,
	}

	var recorder ports.Metrics
	if cfg.Metrics.Enabled {
		server.registry = prometheus.NewRegistry()
		server.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder = metrics.New(server.registry)
	}

	authService := services.NewAuthService(cfg.JWT, cfg.Security.BcryptCost)
	userService := services.NewUserService(store.Users(), authService, recorder, appLogger)
	taskService := services.NewTaskService(store.Tasks(), store.Users(), recorder, appLogger)

	userHandler := httpHandlers.NewUserHandler(userService, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, appLogger)

	server.setupMiddleware()

	if server.registry != nil {
		server.setupMetrics()
	}

	server.setupRoutes(userHandler, taskHandler, authService)

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(userHandler *httpHandlers.UserHandler, taskHandler *httpHandlers.TaskHandler, authService *services.AuthService) {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	authenticate := s.authMiddleware(authService)

	v1 := s.echo.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/logout", userHandler.Logout)
	users.GET("", userHandler.ListUsers)
	users.GET("/:uid", userHandler.GetUser)
	users.PATCH("/updateUser/:uid", userHandler.UpdateUser, authenticate)
	users.PATCH("/:uid/addPersonToGroup", userHandler.AddPersonToGroup, authenticate)
	users.GET("/:uid/getEmailsForGroup", userHandler.GetEmailsForGroup, authenticate)

	tasks := v1.Group("/tasks")
	tasks.POST("/:userId/createTask", taskHandler.CreateTask, authenticate)
	tasks.GET("/:taskId", taskHandler.GetTask)
	tasks.GET("/allTasks/:userId", taskHandler.GetUserTasks, authenticate)
	tasks.PATCH("/updateTask/:taskId", taskHandler.UpdateTask, authenticate)
	tasks.PATCH("/changeTaskType/:taskId", taskHandler.ChangeTaskType, authenticate)
	tasks.PATCH("/setSubTaskCheck/:taskId", taskHandler.SetSubTaskCheck, authenticate)
	tasks.DELETE("/deleteTask/:taskId", taskHandler.DeleteTask, authenticate)
	tasks.GET("/:userId/getStatusPriorityCount", taskHandler.GetStatusPriorityCount, authenticate)
	tasks.GET("/getAssigneeEmailsByTask/:taskId", taskHandler.GetAssigneeEmails, authenticate)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
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

	s.registry.MustRegister(requestsTotal, requestDuration)

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = statusFor(err)
				}
			}

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(time.Since(start).Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.store.Ping(c.Request().Context()); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"driver": s.config.Database.Driver,
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"driver": s.config.Database.Driver,
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ServeHTTP lets the server be driven directly, e.g. by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.config.Server.Addr(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.Infow("Starting server", "address", srv.Addr)
	return s.echo.StartServer(srv)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// statusFor maps domain error kinds to HTTP status codes.
func statusFor(err error) int {
	switch entities.KindOf(err) {
	case entities.KindBadRequest:
		return http.StatusBadRequest
	case entities.KindUnauthenticated:
		return http.StatusUnauthorized
	case entities.KindUnauthorized:
		return http.StatusForbidden
	case entities.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// customErrorHandler renders every failure as {"msg": ...}
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  = http.StatusText(http.StatusInternalServerError)
		)

		var (
			domainErr *entities.Error
			he        *echo.HTTPError
			ve        validator.ValidationErrors
		)
		switch {
		case errors.As(err, &domainErr):
			code = statusFor(domainErr)
			msg = domainErr.Message
		case errors.As(err, &he):
			code = he.Code
			msg = fmt.Sprint(he.Message)
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		case errors.As(err, &ve):
			code = http.StatusBadRequest
			msg = ve.Error()
		}

		if code >= http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, ports.ErrorResponse{Msg: msg})
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
