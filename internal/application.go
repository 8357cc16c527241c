package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-chat/internal/bot"
	"github.com/rocketscienceinc/tictactoe-chat/internal/config"
	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-chat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-chat/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-chat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-chat/transport/rest"
	"github.com/rocketscienceinc/tictactoe-chat/transport/websocket"
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

	defaultDifficulty, err := entity.ParseDifficulty(conf.Bot.DefaultDifficulty)
	if err != nil {
		return fmt.Errorf("invalid bot config: %w", err)
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage)
	historyRepo := repository.NewHistoryRepository(redisStorage, conf.History.Limit)
	scoreRepo := repository.NewScoreRepository(redisStorage)

	selector := bot.NewSelector(
		bot.WithEasyRandomRate(conf.Bot.EasyRandomRate),
		bot.WithMistakeRate(conf.Bot.MediumMistakeRate),
	)

	gameManager := usecase.NewGameManager(logger, gameRepo, historyRepo, scoreRepo, selector, defaultDifficulty)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameManager)); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort, "thinkDelay", conf.Bot.ThinkDelay)
		wsServer := websocket.New(logger, gameManager, conf.Bot.ThinkDelay)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
