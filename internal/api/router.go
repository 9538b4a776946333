// Package api wires the HTTP surface of the messaging service.
package api

import (
	"log/slog"
	"os"
	"strings"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/api/handlers"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/api/middleware"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/logger"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/repository"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/services"
	ws "github.com/WeAreCode045/wphub-pro-sub001/internal/websocket"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB       *gorm.DB
	Hub      *ws.Hub
	Notifier services.Notifier
	Logger   *slog.Logger

	// Platform mailbox configuration (provisioned ids, no rows in the db)
	PlatformInboxID  string
	PlatformOutboxID string

	// Security configuration
	APIKey         string   // API key for authentication (empty = disabled)
	AllowedOrigins []string // Allowed CORS origins
	RateLimit      int      // Requests per second (0 = use env default)
	RateBurst      int      // Burst size for rate limiter
	EnableAuth     bool     // Enable API key authentication
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()

	// Security middleware, applied in order
	e.Use(middleware.Recover())
	e.Use(middleware.SecureHeaders())

	if len(cfg.AllowedOrigins) > 0 {
		os.Setenv("ALLOWED_ORIGINS", strings.Join(cfg.AllowedOrigins, ","))
	}
	e.Use(middleware.SecureCORS())

	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(float64(cfg.RateLimit), cfg.RateBurst, cfg.Logger))
	} else {
		e.Use(middleware.RateLimiter(cfg.Logger))
	}

	if cfg.Logger != nil {
		e.Use(middleware.RequestLogger(cfg.Logger))
	}

	// Repositories and services
	mailboxRepo := repository.NewMailboxRepository(cfg.DB)
	messageRepo := repository.NewMessageRepository(cfg.DB)

	registry := services.NewMailboxRegistry(mailboxRepo, cfg.PlatformInboxID, cfg.PlatformOutboxID)
	routing := services.NewRoutingEngine(registry)

	var events services.EventPublisher
	if cfg.Hub != nil {
		events = cfg.Hub
	}
	messageService := services.NewMessageService(
		messageRepo, mailboxRepo, registry, routing, events, cfg.Notifier, cfg.Logger,
	)

	// Handlers
	var audit *logger.AuditLogger
	if cfg.Logger != nil {
		audit = logger.NewAuditLogger(cfg.Logger)
	}
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	mailboxHandler := handlers.NewMailboxHandler(mailboxRepo, registry, audit)
	messageHandler := handlers.NewMessageHandler(messageService, audit)

	// Health routes (no auth required)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	// WebSocket endpoint for mailbox subscriptions
	if cfg.Hub != nil {
		upgrader := ws.NewSecureUpgrader(cfg.Logger)
		wsHandler := handlers.NewWSHandler(cfg.Hub, upgrader, cfg.Logger)
		e.GET("/ws", wsHandler.Serve)
	}

	// API routes
	api := e.Group("/api")

	if cfg.EnableAuth && cfg.APIKey != "" {
		os.Setenv("API_KEY", cfg.APIKey)
	}
	api.Use(middleware.APIKeyAuth(cfg.Logger))
	api.Use(middleware.ActorContext())

	// Mailbox routes
	mailboxes := api.Group("/mailboxes")
	mailboxes.POST("", mailboxHandler.Create)
	mailboxes.GET("/:mailbox_id", mailboxHandler.Get)
	mailboxes.DELETE("/:mailbox_id", mailboxHandler.Delete)
	mailboxes.GET("/:mailbox_id/threads", messageHandler.ListThreads)
	mailboxes.GET("/:mailbox_id/unread", messageHandler.UnreadCount)

	// Owner routes
	api.GET("/owners/:owner_type/:owner_id/mailboxes", mailboxHandler.ListByOwner)

	// Message routes
	messages := api.Group("/messages")
	messages.POST("", messageHandler.Send)
	messages.PATCH("/:id/status", messageHandler.UpdateStatus)

	// Thread routes
	threads := api.Group("/threads")
	threads.GET("/:thread_id", messageHandler.GetThread)
	threads.PATCH("/:thread_id/read", messageHandler.MarkThreadRead)
	threads.DELETE("/:thread_id", messageHandler.DeleteThread)

	return e
}
