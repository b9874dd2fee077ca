package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/arcade/internal/api"
	"github.com/vytor/arcade/internal/challenge"
	"github.com/vytor/arcade/internal/chesspuzzle"
	"github.com/vytor/arcade/internal/config"
	"github.com/vytor/arcade/internal/db"
	"github.com/vytor/arcade/internal/jobs"
	"github.com/vytor/arcade/internal/logger"
	"github.com/vytor/arcade/internal/repository/sqlite"
	"github.com/vytor/arcade/internal/services"
	"github.com/vytor/arcade/internal/timer"
	"github.com/vytor/arcade/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides ADDR env var)")
}

func serve(parent context.Context, cfg config.Config) error {
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("arcade %s starting", version)
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("stats_worker_count=%d", cfg.StatsWorkerCount)
	log.Debug("stats_queue_size=%d", cfg.StatsQueueSize)
	log.Debug("ai_move_timeout=%s", cfg.AIMoveTimeout())
	log.Debug("puzzle_file=%q", cfg.PuzzleFile)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	library, err := loadPuzzles(cfg.PuzzleFile)
	if err != nil {
		return fmt.Errorf("load puzzles: %w", err)
	}
	log.Info("loaded %d chess puzzles", library.Len())

	profileRepo := sqlite.NewProfileRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	runRepo := sqlite.NewRunRepository(database.DB)
	matchRepo := sqlite.NewMatchRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	clock := timer.SystemClock{}
	statsPool := worker.NewPool(cfg.StatsWorkerCount, cfg.StatsQueueSize)
	statsService := services.NewStatsService(statsRepo, clock)
	queue := jobs.NewWorkerQueue(statsPool, statsService)

	srv := &api.Server{
		DB:             database,
		ProfileService: services.NewProfileService(profileRepo),
		SessionService: services.NewSessionService(profileRepo, sessionRepo, runRepo, queue, challenge.NewGenerator(uint64(time.Now().UnixNano())), clock),
		MatchService:   services.NewMatchService(sessionRepo, runRepo, matchRepo, nil, cfg.AIMoveTimeout(), clock),
		PuzzleService:  services.NewPuzzleService(library, sessionRepo, runRepo, nil, clock),
		StatsService:   statsService,
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	statsPool.Start(workerCtx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     stdlog.New(log.WithPrefix("http").Writer(logger.WARN), "", 0),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			statsPool.Stop()
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown requested, draining connections")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping stats pool")
	statsPool.Stop()

	log.Info("arcade stopped")
	return nil
}

func loadPuzzles(path string) (*chesspuzzle.Library, error) {
	if path == "" {
		return chesspuzzle.LoadBundled()
	}
	return chesspuzzle.LoadFile(path)
}
