package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-core/internal/config"
	"github.com/rocketscienceinc/tictactoe-core/internal/repository"
	"github.com/rocketscienceinc/tictactoe-core/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-core/transport/console"
)

// RunApp - runs one game on the console until input ends or a signal arrives.
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

	return run(ctx, logger, conf, in, out)
}

func run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	gameRepo := repository.NewGameRepository()
	gameManager := usecase.NewGameManager(logger, gameRepo, usecase.GameSettings{
		BoardSize: conf.Board.Size,
		TurnOrder: conf.Players(),
	})

	game, err := gameManager.CreateGame(ctx)
	if err != nil {
		return fmt.Errorf("could not start game: %w", err)
	}

	defer func() {
		if err = gameManager.EndGame(context.WithoutCancel(ctx), game.ID); err != nil {
			log.Error("could not end game", "error", err)
		}
	}()

	// run console
	consoleErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting console", "gameID", game.ID)
		consoleErrCh <- console.New(logger, gameManager, game.ID).Serve(ctx, in, out)
	}()

	select {
	case consoleErr := <-consoleErrCh:
		if consoleErr != nil {
			return fmt.Errorf("console error: %w", consoleErr)
		}
		log.Info("Console closed")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
