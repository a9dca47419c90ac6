package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/rocketscienceinc/tictactoe-timed/internal/config"
	"github.com/rocketscienceinc/tictactoe-timed/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timed/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-timed/internal/service"
	"github.com/rocketscienceinc/tictactoe-timed/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-timed/transport/rest"
	"github.com/rocketscienceinc/tictactoe-timed/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	statsRepo, closeStorage, err := initStatsRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	aiConfig, err := conf.AIConfig()
	if err != nil {
		return fmt.Errorf("invalid ai config: %w", err)
	}

	session := usecase.NewSession(logger, clock.New(), statsRepo, service.NewBotService(nil), usecase.Options{
		TurnSeconds: conf.Game.TurnSeconds,
		BotDelay:    conf.Game.BotDelay,
		Players:     conf.Players(),
		AI:          aiConfig,
		AIName:      conf.AI.Name,
	})

	hub := websocket.NewHub(logger, session)
	unsubscribe := session.Subscribe(hub.Broadcast)

	session.Start(ctx)
	defer func() {
		unsubscribe()
		session.Stop()
		hub.Close()
	}()

	router := rest.NewRouter(logger, session, hub)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage.Driver)
	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func initStatsRepository(ctx context.Context, conf *config.Config) (repository.StatsRepository, func() error, error) {
	if conf.Storage.Driver == config.StorageMemory {
		return repository.NewMemoryStatsRepository(), func() error { return nil }, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewStatsRepository(redisStorage.Connection, conf.Redis.StatsKey), redisStorage.Close, nil
}
