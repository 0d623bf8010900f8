package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sketchdash/sketchdash-backend/internal/game"
	"github.com/sketchdash/sketchdash-backend/internal/server"
	"github.com/sketchdash/sketchdash-backend/internal/words"
)

func main() {
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	bank := buildWordBank()
	registry := game.NewRegistry(bank)
	gateway := game.NewGateway(registry)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go game.NewScheduler(registry).Run(ctx)

	srv := server.NewServer(registry, gateway)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildWordBank starts from the built-in themes and layers on optional
// sources: a CSV file (WORDS_CSV) and a Postgres word table (DATABASE_URL).
// Either failing to load is a warning, not a startup failure.
func buildWordBank() *words.Bank {
	bank := words.DefaultBank()

	if path := os.Getenv("WORDS_CSV"); path != "" {
		themes, err := words.LoadCSV(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("loading words csv")
		} else {
			for theme, list := range themes {
				bank.AddTheme(theme, list)
			}
			log.Info().Int("themes", len(themes)).Msg("loaded csv word themes")
		}
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		themes, err := words.LoadThemesFromPostgres(ctx, dsn)
		if err != nil {
			log.Warn().Err(err).Msg("loading word themes from postgres")
		} else {
			for theme, list := range themes {
				bank.AddTheme(theme, list)
			}
			log.Info().Int("themes", len(themes)).Msg("loaded postgres word themes")
		}
	}

	return bank
}
