package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/goserg/darts/bot/tgbot"
	"github.com/goserg/darts/internal/config"
	"github.com/goserg/darts/internal/logger"
	"github.com/goserg/darts/internal/service"
	"github.com/goserg/darts/internal/storage"
	"github.com/goserg/darts/internal/storage/mem"
	"github.com/goserg/darts/internal/storage/redis"
	"github.com/goserg/darts/internal/storage/sqlite"
	"github.com/goserg/darts/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var serverConfigPath, botConfigPath string
	flag.StringVar(&serverConfigPath, "server-config", "configs/server.toml", "server config file")
	flag.StringVar(&botConfigPath, "bot-config", "configs/bot.toml", "telegram bot config file")
	flag.Parse()

	cfg, err := config.New(serverConfigPath, botConfigPath)
	if err != nil {
		return err
	}
	l := logger.New(cfg.Server.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameStorage, err := openStorage(ctx, l, cfg.Server.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := gameStorage.Close(); err != nil {
			l.WithError(err).Error("close game storage")
		}
	}()

	gameService := service.New(l, gameStorage)

	if cfg.TgBot.Enabled {
		bot, err := tgbot.New(gameService, cfg.TgBot, cfg.Server.Debug, l)
		if err != nil {
			return err
		}
		go bot.Run(ctx)
		defer bot.Stop()
	}

	server := web.New(l, gameService, cfg.Server)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		l.Info("shutting down")
	}
	if err := server.Shutdown(); err != nil {
		return err
	}
	return nil
}

func openStorage(ctx context.Context, l *logrus.Logger, cfg config.Storage) (storage.GameStorage, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		l.Warn("games are kept in memory and lost on exit")
		return mem.New(), nil
	case config.DriverSqlite:
		return sqlite.New(l, cfg.SqliteFile)
	case config.DriverRedis:
		return redis.New(ctx, l, cfg.Redis)
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
}
