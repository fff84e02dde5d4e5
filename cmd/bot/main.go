// Crypto deploy bot: Telegram front-end for Metaplex and Foundry token
// deployment toolchains.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/ashureev/forgebot/internal/api"
	"github.com/ashureev/forgebot/internal/balance"
	"github.com/ashureev/forgebot/internal/bot"
	"github.com/ashureev/forgebot/internal/config"
	"github.com/ashureev/forgebot/internal/deploy"
	"github.com/ashureev/forgebot/internal/history"
	"github.com/ashureev/forgebot/internal/runner"
	"github.com/ashureev/forgebot/internal/session"
	"github.com/ashureev/forgebot/internal/template"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	catalog, err := template.Load(cfg.TemplatesPath)
	if err != nil {
		slog.Error("Failed to load template catalog", "path", cfg.TemplatesPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Template catalog loaded", "templates", catalog.Count())

	tg, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		slog.Error("Failed to connect to Telegram", "error", err)
		os.Exit(1)
	}
	slog.Info("Telegram connected", "username", tg.Self.UserName)

	// Initialize services.
	sessions := session.NewStore()
	ledger := history.NewLedger()
	run := runner.ShellRunner{}
	orchestrator := deploy.New(run, ledger, sessions, deploy.Config{
		ProjectRoot:   cfg.ProjectRoot,
		SolKeypair:    cfg.SolKeypair,
		EVMPrivateKey: cfg.EVMPrivateKey,
	})
	balances := balance.NewChecker(run, cfg.SolKeypair, cfg.EVMPrivateKey)

	handler := bot.New(tg, cfg, catalog, sessions, ledger, orchestrator, balances)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Ops HTTP server (heartbeat + status).
	var srv *http.Server
	if cfg.OpsPort != "" {
		r := chi.NewRouter()
		r.Use(chiMiddleware.RequestID)
		r.Use(chiMiddleware.RealIP)
		r.Use(chiMiddleware.Logger)
		r.Use(chiMiddleware.Recoverer)
		r.Use(chiMiddleware.Heartbeat("/health"))
		api.NewStatusHandler(catalog, ledger).RegisterRoutes(r)

		srv = &http.Server{
			Addr:         ":" + cfg.OpsPort,
			Handler:      r,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}
		go func() {
			slog.Info("Ops server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Ops server failed", "error", err)
			}
		}()
	}

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30
	updates := tg.GetUpdatesChan(updateCfg)

	go func() {
		<-ctx.Done()
		tg.StopReceivingUpdates()
	}()

	slog.Info("Bot started", "allow_list", len(cfg.AllowedUsers))
	handler.Run(ctx, updates)

	slog.Info("Shutting down gracefully...")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Ops server forced to shutdown", "error", err)
		}
	}

	slog.Info("Bot stopped successfully")
}
