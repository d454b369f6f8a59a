package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/app"
	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/ghl"
	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/importer"
	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/notifications"
	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/server"
	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/sheets"
)

func main() {
	app.SetupEnvironment()

	cfg, err := app.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()
	sheetsClient := initializeSheetsClient(ctx, cfg)
	ghlClient := ghl.NewClient(cfg.GHL.APIKey, cfg.GHL.BaseURL, cfg.GHL.Timeout)
	notifier := initializeNotifier(cfg)

	imp := importer.New(sheetsClient, ghlClient, cfg.Sheets.SpreadsheetID, cfg.Sheets.FetchRetry)
	srv := server.New(imp, notifier)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown error")
		}
	}()

	if err := srv.Start(cfg.Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func initializeSheetsClient(ctx context.Context, cfg *app.Config) *sheets.Client {
	log.Debug().Msg("Initializing sheets client")

	var client *sheets.Client
	var err error
	if cfg.Sheets.CredentialsFile != "" {
		client, err = sheets.NewClientFromFile(ctx, cfg.Sheets.CredentialsFile)
	} else {
		client, err = sheets.NewClient(ctx, sheets.Credentials{
			ClientEmail: cfg.Sheets.ClientEmail,
			PrivateKey:  cfg.Sheets.PrivateKey,
		})
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets client")
	}

	log.Debug().Msg("Sheets client initialized")
	return client
}

func initializeNotifier(cfg *app.Config) *notifications.Client {
	client := notifications.NewClient(cfg.Notify.BaseURL, cfg.Notify.Topic, cfg.Notify.Enabled)

	if cfg.Notify.Enabled {
		log.Info().Str("topic", cfg.Notify.Topic).Msg("Notifications enabled")
	} else {
		log.Debug().Msg("Notifications disabled")
	}

	return client
}
