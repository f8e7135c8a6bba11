package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Board     Board  `yaml:"board"`
	TurnOrder []int  `yaml:"turn-order" env:"TURN_ORDER" env-default:"1,2"`
}

type Board struct {
	Size int `yaml:"size" env:"BOARD_SIZE" env-default:"3"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads path when it exists and the environment otherwise. Both honor env overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, statErr := os.Stat(path)

	switch {
	case path != "" && statErr == nil:
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	case path == "" || errors.Is(statErr, os.ErrNotExist):
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat config %s: %w", path, statErr)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Board.Size < 1 {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, that.Board.Size)
	}

	if len(that.TurnOrder) == 0 {
		return fmt.Errorf("%w: no players", apperror.ErrInvalidTurnOrder)
	}

	seen := make(map[int]struct{}, len(that.TurnOrder))
	for _, id := range that.TurnOrder {
		if id == int(entity.NoPlayer) {
			return fmt.Errorf("%w: player id %d is reserved", apperror.ErrInvalidTurnOrder, id)
		}

		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate player %d", apperror.ErrInvalidTurnOrder, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// Players returns the configured turn order as player ids.
func (that *Config) Players() []entity.Player {
	players := make([]entity.Player, 0, len(that.TurnOrder))
	for _, id := range that.TurnOrder {
		players = append(players, entity.Player(id))
	}

	return players
}
