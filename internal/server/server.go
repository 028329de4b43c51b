package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/expense-tracker/backend/internal/chat"
	"example.com/expense-tracker/backend/internal/config"
	"example.com/expense-tracker/backend/internal/handlers"
	"example.com/expense-tracker/backend/internal/ledger"
	"example.com/expense-tracker/backend/internal/notifications"
	"example.com/expense-tracker/backend/internal/parser"
)

// New assembles the Echo HTTP server with its routes and dependencies. All
// domain state (ledger, transcript, trash) lives inside this process and
// shares the server's lifetime.
func New(cfg config.Config, logger *slog.Logger) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	store := ledger.NewStore()
	notificationHub := notifications.NewHub(cfg.Chat.NotificationTTL)
	parserClient := parser.NewClient(cfg.Parser.BaseURL, cfg.Parser.Timeout)
	session := chat.NewSession(chat.Config{
		GreetingDelay: cfg.Chat.GreetingDelay,
		ExampleDelay:  cfg.Chat.ExampleDelay,
		HelpDelay:     cfg.Chat.HelpDelay,
	}, parserClient, notificationHub, logger)

	expenseHandler := handlers.NewExpenseHandler(store, notificationHub)
	statsHandler := handlers.NewStatsHandler(store, cfg.Budget.MonthlyBudget())
	chatHandler := handlers.NewChatHandler(session)
	notificationHandler := handlers.NewNotificationHandler(notificationHub)

	registerRoutes(
		e,
		expenseHandler,
		statsHandler,
		chatHandler,
		notificationHandler,
		chatRateLimiter(cfg.Chat),
	)

	return e
}

// NewHTTPServer creates a net/http server with the configured timeouts.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func chatRateLimiter(cfg config.ChatConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
