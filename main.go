package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krishanu7/sinkorsail/config"
	"github.com/krishanu7/sinkorsail/db"
	"github.com/krishanu7/sinkorsail/internal/auth"
	"github.com/krishanu7/sinkorsail/internal/game"
	"github.com/krishanu7/sinkorsail/internal/leaderboard"
	"github.com/krishanu7/sinkorsail/internal/match"
	"github.com/krishanu7/sinkorsail/internal/ws"
	rdbPkg "github.com/krishanu7/sinkorsail/pkg/redis"
	wsPkg "github.com/krishanu7/sinkorsail/pkg/websocket"
)

func main() {
	cfg := config.LoadConfig()
	logger := config.NewLogger(cfg)

	database, err := db.Open(cfg.DBUrl)
	if err != nil {
		logger.Fatal("Failed to connect database", "err", err)
	}
	defer database.Close()
	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to migrate database", "err", err)
	}

	rdb, err := rdbPkg.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("Failed to connect redis", "err", err)
	}
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authService := auth.NewService(database, cfg)
	authHandler := auth.NewAuthHandler(authService, logger.With("component", "auth"))

	leaderboardService := leaderboard.NewService(database, logger.With("component", "leaderboard"))
	leaderboardHandler := leaderboard.NewHandler(leaderboardService, logger.With("component", "leaderboard"))

	matchService := match.NewService(
		func() game.Rand { return cfg.NewRand() },
		match.WithPublisher(rdbPkg.NewPublisher(rdb, rdbPkg.NotificationChannel)),
		match.WithRecorder(leaderboardService),
		match.WithLogger(logger.With("component", "match")),
	)

	hub := wsPkg.NewHub(logger.With("component", "hub"))
	generalHub := wsPkg.NewGeneralHub(logger.With("component", "general_hub"))
	gameHandler := ws.NewHandler(hub, matchService, authService, logger.With("component", "ws"))
	generalHandler := ws.NewGeneralHandler(generalHub, authService, logger.With("component", "notifications"))

	worker := ws.NewNotificationWorker(rdb, generalHub, logger.With("component", "worker"))
	go func() {
		if err := worker.Run(ctx, nil); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Notification worker stopped", "err", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/v1/leaderboard", leaderboardHandler.GetLeaderboard)
	mux.HandleFunc("GET /ws/game", gameHandler.ServeWS)
	mux.HandleFunc("GET /ws/notifications", generalHandler.ServeGeneralWS)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "err", err)
	}
}
