package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/sheetwise/sheetwise-backend/internal/analysis"
	"github.com/sheetwise/sheetwise-backend/internal/config"
	"github.com/sheetwise/sheetwise-backend/internal/handler"
	"github.com/sheetwise/sheetwise-backend/internal/logger"
	"github.com/sheetwise/sheetwise-backend/internal/repository"
	"github.com/sheetwise/sheetwise-backend/internal/router"
	"github.com/sheetwise/sheetwise-backend/internal/service"
	"github.com/sheetwise/sheetwise-backend/internal/validator"
	"github.com/sheetwise/sheetwise-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Sheetwise Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Initialize Repositories ───────────────────────────────────────
	// Collections live for the lifetime of the process; a restart resets
	// all sheets and attempts to empty.
	sheetRepo := repository.NewMemorySheetRepository()
	attemptRepo := repository.NewMemoryAttemptRepository()

	// ─── Initialize Deadline Worker ────────────────────────────────────
	deadlineWorker := worker.NewDeadlineWorker(cfg.DeadlinePoll, log)

	// ─── Initialize Services ──────────────────────────────────────────
	sheetService := service.NewSheetService(sheetRepo, log)
	attemptService := service.NewAttemptService(attemptRepo, sheetRepo, deadlineWorker, log)
	analyzer := analysis.NewAnalyzer(cfg.AnalysisDelay, log)

	// The worker fires forced submission through the same lifecycle path
	// as a manual submit, so a late fire after manual submission is a
	// no-op.
	deadlineWorker.SetHandler(attemptService.ForceSubmit)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	go deadlineWorker.Start(workerCtx)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Sheet:    handler.NewSheetHandler(sheetService),
		Attempt:  handler.NewAttemptHandler(attemptService),
		Analysis: handler.NewAnalysisHandler(analyzer),
		WS:       handler.NewWSHandler(attemptService, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
