package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/api"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/config"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/database"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/logger"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/services"
	ws "github.com/WeAreCode045/wphub-pro-sub001/internal/websocket"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments inject environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadWithValidation()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting messaging service")
	cfg.LogConfig(log)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Error("database migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	hub := ws.NewHub(log)
	go hub.Run()

	// nil when SMTP is not configured; sends then skip notification
	var notifier services.Notifier
	if n := services.NewEmailNotifier(cfg); n != nil {
		notifier = n
	}

	var origins []string
	for _, o := range strings.Split(cfg.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	e := api.NewRouter(&api.RouterConfig{
		DB:               db,
		Hub:              hub,
		Notifier:         notifier,
		Logger:           log,
		PlatformInboxID:  cfg.PlatformInboxID,
		PlatformOutboxID: cfg.PlatformOutboxID,
		APIKey:           cfg.APIKey,
		AllowedOrigins:   origins,
		RateLimit:        int(cfg.RateLimitRequests),
		RateBurst:        cfg.RateLimitBurst,
		EnableAuth:       cfg.APIKey != "",
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.APIPort)
		log.Info("http server listening", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error("http server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server stopped")
}
