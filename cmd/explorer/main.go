package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/config"
	"movie-discovery-explorer/internal/favorites"
	applog "movie-discovery-explorer/internal/logger"
	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/service"
	"movie-discovery-explorer/internal/tmdb"
	"movie-discovery-explorer/internal/tui"
)

const defaultLogFile = "data/explorer.log"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// the screen owns stdout
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile
	}
	log, err := applog.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	kv, closeKV, err := favorites.OpenBackend(cfg, log)
	if err != nil {
		log.Error("failed to open favorites backend", zap.String("backend", cfg.Favorites.Backend), zap.Error(err))
		fmt.Fprintf(os.Stderr, "failed to open favorites backend: %v\n", err)
		os.Exit(1)
	}
	defer closeKV()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tmdbClient := tmdb.NewClient(cfg.TMDB, log)
	store := favorites.NewStore(kv, cfg.Favorites.Key, log)
	agg := service.NewAggregator(tmdbClient, models.Images{BaseURL: cfg.TMDB.ImageBaseURL}, cfg.TMDB.Region, log)

	model := tui.New(ctx, agg, store, tui.Options{
		RotationInterval: cfg.UI.RotationInterval,
		SearchDebounce:   cfg.UI.SearchDebounce,
	}, log)

	log.Info("starting explorer",
		zap.String("language", cfg.TMDB.Language),
		zap.String("region", cfg.TMDB.Region),
		zap.String("favorites_backend", cfg.Favorites.Backend),
	)
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if err != nil && ctx.Err() == nil {
		log.Error("explorer exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "explorer: %v\n", err)
		os.Exit(1)
	}
	log.Info("explorer stopped")
}
