package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

const (
	actionPlay = "play"
	actionTurn = "turn"
	actionSkip = "skip"
	actionQuit = "quit"
)

type uGame interface {
	MakePlay(ctx context.Context, gameID string, space entity.Space) (entity.Player, error)
	ActivePlayer(ctx context.Context, gameID string) (entity.Player, error)
	ChangeActivePlayer(ctx context.Context, gameID string, player entity.Player) (entity.Player, error)
}

// Message is one parsed input line.
type Message struct {
	Action string
	Args   []string
}

// Server is a line-oriented view over one game. It reports outcomes and never draws the board.
type Server struct {
	logger *slog.Logger
	uGame  uGame
	gameID string

	handlers map[string]func(ctx context.Context, message *Message, out *bufio.Writer) error
}

func New(logger *slog.Logger, uGame uGame, gameID string) *Server {
	server := &Server{
		logger: logger.With("component", "console", "gameID", gameID),
		uGame:  uGame,
		gameID: gameID,

		handlers: make(map[string]func(context.Context, *Message, *bufio.Writer) error),
	}

	server.handlers[actionPlay] = server.handlePlay
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionSkip] = server.handleSkip

	return server
}

// Serve reads commands from in until EOF, "quit" or ctx is done.
func (that *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	log := that.logger.With("method", "Serve")

	scanner := bufio.NewScanner(in)
	writer := bufio.NewWriter(out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("console stopped: %w", err)
		}

		message, ok := parseMessage(scanner.Text())
		if !ok {
			continue
		}

		if message.Action == actionQuit {
			log.Info("quit requested")
			return nil
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)
			if err := that.sendLine(writer, "unknown command %q", message.Action); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, message, writer); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

// parseMessage splits a line into an action and its arguments. A bare "<row> <col>" is a play.
func parseMessage(line string) (*Message, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false
	}

	action := strings.ToLower(fields[0])
	if _, ok := commands[action]; !ok && len(fields) == 2 {
		return &Message{Action: actionPlay, Args: fields}, true
	}

	return &Message{Action: action, Args: fields[1:]}, true
}

var commands = map[string]struct{}{
	actionPlay: {},
	actionTurn: {},
	actionSkip: {},
	actionQuit: {},
}

func (that *Server) sendLine(out *bufio.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(out, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush response: %w", err)
	}

	return nil
}
