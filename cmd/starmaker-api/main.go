package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starmaker/internal/ai"
	"starmaker/internal/api"
	"starmaker/internal/balance"
	"starmaker/internal/config"
	"starmaker/internal/game"
	"starmaker/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	sheet, err := balance.Load(cfg.BalancePath)
	if err != nil {
		logger.Error("load balance sheet failed", "err", err)
		os.Exit(1)
	}

	saves, err := store.Open(cfg.DataPath, logger)
	if err != nil {
		logger.Error("open save store failed", "err", err)
		os.Exit(1)
	}
	defer saves.Close()

	var gen *ai.Client
	if !cfg.AIDisabled {
		gen = ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)
	}
	if gen == nil {
		logger.Info("ai collaborator disabled, using canned text")
	}

	gameSvc := game.NewService(saves, gen, sheet, logger)

	server := api.New(cfg, logger, gameSvc)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("starmaker api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
