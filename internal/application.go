package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rocketscienceinc/inarow/internal/config"
	"github.com/rocketscienceinc/inarow/internal/repository"
	"github.com/rocketscienceinc/inarow/internal/repository/storage"
	"github.com/rocketscienceinc/inarow/internal/usecase"
	"github.com/rocketscienceinc/inarow/transport/console"
)

var (
	ErrAddrNotFound = errors.New("redis address string is empty")
	ErrUnknownUI    = errors.New("unknown ui")
)

// newScreen opens the terminal for the screen front end.
var newScreen = tcell.NewScreen

type frontEnd interface {
	Run(ctx context.Context) error
}

// RunApp - runs the console game until the player quits or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	variant, err := conf.GameVariant()
	if err != nil {
		return fmt.Errorf("invalid game configuration: %w", err)
	}

	manager := usecase.NewMatchManager(logger, nil)

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		manager = usecase.NewMatchManager(logger, repository.NewResultRepository(redisStorage))
	}

	var game frontEnd
	switch conf.UI {
	case "", config.UIText:
		game, err = console.New(logger, manager, variant, in, out)
	case config.UIScreen:
		var screen tcell.Screen
		if screen, err = openScreen(); err != nil {
			return err
		}
		defer screen.Fini()

		game, err = console.NewScreen(logger, manager, variant, screen)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUI, conf.UI)
	}
	if err != nil {
		return fmt.Errorf("could not start console: %w", err)
	}

	log.Info("Starting game", "variant", variant.Name, "ui", conf.UI, "recording", conf.Redis.Enabled)

	// reading stdin blocks, so the console runs aside and a signal can end the app
	consoleErrCh := make(chan error, 1)
	go func() {
		consoleErrCh <- game.Run(ctx)
	}()

	select {
	case err = <-consoleErrCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("console error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func openScreen() (tcell.Screen, error) {
	screen, err := newScreen()
	if err != nil {
		return nil, fmt.Errorf("could not open terminal: %w", err)
	}

	if err = screen.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize terminal: %w", err)
	}

	return screen, nil
}
