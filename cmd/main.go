package main

import (
	"context"
	"errors"
	"os"

	"github.com/telaflix/telaflix/internal/services"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/telaflix/telaflix/internal/store"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var catalog services.Catalog
	if config.Credentials.TMDB.APIKey != "" || config.Credentials.TMDB.ReadAccessToken != "" {
		catalog = services.NewTMDBService(config.Credentials.TMDB)
	}

	var mailer services.Mailer
	if config.Credentials.Email.ServiceID != "" && config.Credentials.Email.PublicKey != "" {
		mailer = services.NewEmailService(config.Credentials.Email)
	}

	var assistant services.Assistant
	if config.Credentials.Gemini.APIKey != "" {
		assistant = services.NewGeminiService(config.Credentials.Gemini)
	}

	channels := services.NewIPTVService(config.IPTV, logger)

	var st *store.Store
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		st = store.New(db, logger)
	} else {
		logger.Warnf("local store unavailable: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Catalog:   catalog,
		Mailer:    mailer,
		Assistant: assistant,
		Channels:  channels,
		Store:     st,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "telaflix",
		Usage:    "Browse movies and live TV from the terminal",
		Version:  "0.8.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
