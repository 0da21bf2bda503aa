package http

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	_ "fulfillment/internal/adapters/in/http/docs" // registers swagger docs
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Use case ports the server depends on. The command and query handlers satisfy them.
type (
	OrderRegistrar interface {
		Handle(ctx context.Context, cmd commands.RegisterPaidOrderCommand) (*order.Order, error)
	}

	OrderTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderStatusCommand) (*order.Order, error)
	}

	SettlementCreator interface {
		Handle(ctx context.Context, cmd commands.CreateSettlementCommand) (commands.CreateSettlementResult, error)
	}

	SettlementActionApplier interface {
		Handle(ctx context.Context, cmd commands.ApplySettlementActionCommand) (*settlement.Settlement, error)
	}

	SettlementResender interface {
		Handle(ctx context.Context, cmd commands.ResendSettlementCommand) (*settlement.Settlement, error)
	}

	OrderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}

	SettlementLister interface {
		Handle(ctx context.Context, query queries.ListSettlementsQuery) ([]queries.SettlementSummaryView, error)
	}

	SettlementReader interface {
		Handle(ctx context.Context, query queries.GetSettlementQuery) (queries.GetSettlementQueryResponse, error)
	}

	UnbatchedPayablesReader interface {
		Handle(
			ctx context.Context,
			query queries.GetUnbatchedPayablesQuery,
		) (queries.GetUnbatchedPayablesQueryResponse, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	RegisterPaidOrder     OrderRegistrar
	TransitionOrderStatus OrderTransitioner
	CreateSettlement      SettlementCreator
	ApplySettlementAction SettlementActionApplier
	ResendSettlement      SettlementResender

	GetOrder             OrderReader
	ListSettlements      SettlementLister
	GetSettlement        SettlementReader
	GetUnbatchedPayables UnbatchedPayablesReader
}

// Config holds the HTTP-facing settings.
type Config struct {
	// PublicBaseURL prefixes redirect targets. Empty keeps redirects relative.
	PublicBaseURL string
	// PrinterWebhookSecret guards printer endpoints. Empty leaves them open.
	PrinterWebhookSecret string
	// AdminAPIKey is the bearer token for /api/admin and order intake. Empty disables those routes.
	AdminAPIKey string
	// MetricsHandler is mounted on /metrics when set.
	MetricsHandler http.Handler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	guard    WebhookAuthGuard
	cfg      Config
	logger   *slog.Logger
}

// NewServer creates the HTTP server with its use cases.
func NewServer(handlers Handlers, cfg Config, logger *slog.Logger) *Server {
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return &Server{
		handlers: handlers,
		guard:    NewWebhookAuthGuard(cfg.PrinterWebhookSecret),
		cfg:      cfg,
		logger:   logger.With("component", "http"),
	}
}

// NewEcho builds an echo instance with request validation, panic recovery and access logs.
func NewEcho(logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "http request", attrs...)
			return nil
		},
	}))

	return e
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	if s.cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(s.cfg.MetricsHandler))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	pages := e.Group("/printer")
	pages.GET("/success", s.SuccessPage)
	pages.GET("/error", s.ErrorPage)
	pages.GET("/settlements", s.SettlementsPage)

	api := e.Group("/api")

	orders := api.Group("/orders", s.adminAuth())
	orders.POST("", s.RegisterOrder)
	orders.GET("/:id", s.GetOrder)

	printer := api.Group("/printer")
	printerJSON := s.guard.JSON()
	printerPage := s.guard.Redirect(func(c echo.Context, reason string) error {
		return s.redirectError(c, reason)
	})
	printer.POST("/orders/status", s.UpdateOrderStatus, printerJSON)
	printer.GET("/orders/status", s.UpdateOrderStatusLink, printerPage)
	printer.POST("/orders/received", s.MarkOrderReceived, printerJSON)
	printer.GET("/orders/received", s.MarkOrderReceivedLink, printerPage)
	printer.GET("/settlements/:id/:action", s.SettlementActionLink,
		s.guard.Redirect(func(c echo.Context, reason string) error {
			return s.redirectSettlementError(c, reason)
		}),
	)

	admin := api.Group("/admin", s.adminAuth())
	admin.POST("/settlements", s.CreateSettlement)
	admin.GET("/settlements", s.ListSettlements)
	admin.GET("/settlements/unbatched", s.GetUnbatchedPayables)
	admin.GET("/settlements/:id", s.GetSettlement)
	admin.POST("/settlements/:id/resend", s.ResendSettlement)
}

// Health godoc
// @Summary  Liveness probe
// @Tags     ops
// @Produce  plain
// @Success  200 {string} string "Healthy"
// @Router   /health [get]
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

func (s *Server) adminAuth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(key string, _ echo.Context) (bool, error) {
			if s.cfg.AdminAPIKey == "" {
				return false, nil
			}
			return subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.AdminAPIKey)) == 1, nil
		},
		ErrorHandler: func(_ error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: unauthorizedMessage})
		},
	})
}

func (s *Server) url(path string) string {
	return s.cfg.PublicBaseURL + path
}
