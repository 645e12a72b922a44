package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/waltwissle/Photo-Shoot-Registration/internal/config"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/database"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/handlers"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/logger"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/notifier"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/registration"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/server"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/session"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/sheets"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/telemetry"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/web"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	// Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logs, err := logger.New(cfg.LogDir, cfg.LogTee)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logs.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}

	mode, err := sheets.ParseMode(cfg.SubmitMode)
	if err != nil {
		return err
	}
	sheetsClient := sheets.NewClient(sheets.Config{
		Endpoint: cfg.SheetsEndpointURL,
		Mode:     mode,
		Timeout:  cfg.SubmitTimeout,
	})

	opts := registration.Options{
		Submitter: sheetsClient,
		Logger:    logs,
	}

	// Connect to Database
	if cfg.DatabasePath != "" {
		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		opts.Recorder = database.NewSubmissionLog(db)
	}

	if cfg.DiscordEnabled() {
		discordNotifier, err := notifier.NewDiscordNotifier(cfg.DiscordBotToken, cfg.DiscordNotificationsChannelID)
		if err != nil {
			logs.Warnw("Discord notifier not initialized", "err", err)
		} else {
			opts.Notifier = discordNotifier
		}
	}

	store := session.NewStore(cfg.SessionIdleTTL, func() *registration.Form {
		return registration.NewForm(opts)
	}, session.WithMaxSessions(cfg.MaxSessions))

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		logs.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}
	cookies := session.NewCookieSigner(secret, cfg.SessionIdleTTL)

	// Initialize Router
	r := chi.NewRouter()
	formHandler := handlers.NewFormHandler(store, logs)
	page := web.NewHandler(store, cookies, cfg.PublicFormURL, logs)
	handlers.RegisterRoutes(r, logs, formHandler, page)

	srv := server.New(":"+cfg.Port, r, cfg.SubmitTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logs.Infow("Starting server", "port", cfg.Port, "submit_mode", mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return store.Run(gctx, time.Minute)
	})
	g.Go(func() error {
		<-gctx.Done()
		logs.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SubmitTimeout+5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if terr := shutdownTracing(shutdownCtx); terr != nil {
			logs.Warnw("tracer shutdown failed", "err", terr)
		}
		return err
	})

	return g.Wait()
}
