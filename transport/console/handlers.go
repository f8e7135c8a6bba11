package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

func (that *Server) handlePlay(ctx context.Context, msg *Message, out *bufio.Writer) error {
	log := that.logger.With("method", "handlePlay")

	space, err := parseSpace(msg.Args)
	if err != nil {
		return that.sendLine(out, "cannot parse %q", strings.Join(msg.Args, " "))
	}

	player, err := that.uGame.MakePlay(ctx, that.gameID, space)
	if errors.Is(err, apperror.ErrInvalidSpace) {
		return that.sendLine(out, "space %s is outside the board", space)
	}

	if err != nil {
		return fmt.Errorf("failed to make play: %w", err)
	}

	if player.IsNone() {
		return that.sendLine(out, "space %s is already occupied", space)
	}

	log.Debug("player made a play", "player", int(player), "space", space.String())

	return that.sendLine(out, "player %s occupied %s", player, space)
}

func (that *Server) handleTurn(ctx context.Context, _ *Message, out *bufio.Writer) error {
	player, err := that.uGame.ActivePlayer(ctx, that.gameID)
	if err != nil {
		return fmt.Errorf("failed to get active player: %w", err)
	}

	return that.sendLine(out, "player %s to move", player)
}

func (that *Server) handleSkip(ctx context.Context, msg *Message, out *bufio.Writer) error {
	if len(msg.Args) != 1 {
		return that.sendLine(out, "usage: skip <player>")
	}

	id, err := strconv.Atoi(msg.Args[0])
	if err != nil {
		return that.sendLine(out, "cannot parse %q", msg.Args[0])
	}

	player, err := that.uGame.ChangeActivePlayer(ctx, that.gameID, entity.Player(id))
	if errors.Is(err, apperror.ErrInvalidPlayer) {
		return that.sendLine(out, "player %d is not in this game", id)
	}

	if err != nil {
		return fmt.Errorf("failed to change active player: %w", err)
	}

	return that.sendLine(out, "player %s to move", player)
}

func parseSpace(args []string) (entity.Space, error) {
	if len(args) != 2 {
		return entity.Space{}, fmt.Errorf("want 2 coordinates, got %d", len(args))
	}

	row, err := strconv.Atoi(args[0])
	if err != nil {
		return entity.Space{}, fmt.Errorf("bad row: %w", err)
	}

	col, err := strconv.Atoi(args[1])
	if err != nil {
		return entity.Space{}, fmt.Errorf("bad column: %w", err)
	}

	return entity.NewSpace(row, col), nil
}
