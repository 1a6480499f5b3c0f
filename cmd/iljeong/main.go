package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"iljeong/internal/config"
	"iljeong/internal/database"
	"iljeong/internal/notify"
	"iljeong/internal/repository"
	"iljeong/internal/server"
)

// flagConfig holds CLI flag values applied on top of the config file.
type flagConfig struct {
	configPath string
	listen     string
	dbPath     string
	debug      bool
}

func main() {
	flags := parseFlags()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if flags.debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	log.Info().Str("version", "0.1.0").Msg("iljeong starting")

	conf, err := config.Load(flags.configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config_path", flags.configPath).Msg("failed to load config")
	}

	// CLI flags override config file values if provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if flags.dbPath != "" {
		conf.DBPath = flags.dbPath
	}

	log.Info().
		Str("listen", conf.Listen).
		Str("timezone", conf.Timezone).
		Str("db_path", conf.DBPath).
		Str("notify_cron", conf.NotifyCron).
		Msg("effective config")

	db, err := database.Open(conf.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", conf.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	repo := repository.NewEventRepository(db, log)
	engine := notify.NewEngine(conf.Location())

	scheduler, err := notify.NewScheduler(engine, repo, conf.NotifyCron, log)
	if err != nil {
		log.Fatal().Err(err).Str("notify_cron", conf.NotifyCron).Msg("invalid notification schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := server.New(conf, repo, engine, &log)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("signal received, shutting down")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}

	log.Info().Msg("iljeong exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.dbPath, "db", "", "SQLite database path (overrides config if set)")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}
