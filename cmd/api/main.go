package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mehdislim/carnet/internal/client"
	clientStore "github.com/mehdislim/carnet/internal/client/store"
	"github.com/mehdislim/carnet/internal/config"
	"github.com/mehdislim/carnet/internal/database"
	carnetHttp "github.com/mehdislim/carnet/internal/http"
	clientHandler "github.com/mehdislim/carnet/internal/http/client"
)

const startupTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	db, err := database.New(ctx, cfg.DB.URI)
	cancel()

	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	store := clientStore.New(db.Database(cfg.DB.Name))

	ctx, cancel = context.WithTimeout(context.Background(), startupTimeout)
	err = store.EnsureIndexes(ctx)
	cancel()

	if err != nil {
		slog.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	ledger := client.NewService(store)
	clientsV1 := clientHandler.NewHandler(ledger)

	staticDir := ""
	if cfg.Production() {
		staticDir = cfg.Static.Dir
	}

	router := carnetHttp.New(clientsV1, staticDir)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		slog.Info("starting server", "port", cfg.App.Port, "env", cfg.App.Env)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	slog.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	if err := db.Disconnect(shutdownCtx); err != nil {
		slog.Error("database disconnect failed", "error", err)
	}
}
