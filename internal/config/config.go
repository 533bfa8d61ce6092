package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/uril/internal/apperror"
	"github.com/rocketscienceinc/uril/internal/entity"
)

const (
	InterfaceTerminal = "terminal"
	InterfaceHeadless = "headless"
)

var (
	ErrInvalidDepth     = errors.New("search depth must be at least 1")
	ErrInvalidInterface = errors.New("unknown interface")
	ErrInvalidGames     = errors.New("games must be at least 1")
	ErrDuplicateNames   = errors.New("players need different names")
	ErrInvalidPosition  = errors.New("position needs 2 rows of 6 pits, 2 scores and turn 0 or 1")
)

type Config struct {
	LogLevel    string        `yaml:"log-level" env:"URIL_LOG_LEVEL" env-default:"info"`
	Interface   string        `yaml:"interface" env:"URIL_INTERFACE" env-default:"terminal"`
	Games       int           `yaml:"games" env:"URIL_GAMES" env-default:"1"`
	Delay       time.Duration `yaml:"delay" env:"URIL_DELAY" env-default:"1s"`
	SearchDepth int           `yaml:"search-depth" env:"URIL_SEARCH_DEPTH" env-default:"8"`
	Seed        uint64        `yaml:"seed" env:"URIL_SEED" env-default:"0"`
	PlayerA     Player        `yaml:"player-a" env-prefix:"URIL_PLAYER_A_"`
	PlayerB     Player        `yaml:"player-b" env-prefix:"URIL_PLAYER_B_"`
	Redis       Redis         `yaml:"redis" env-prefix:"URIL_REDIS_"`
	// Position replaces the initial board of the first game. Only read from the file.
	Position    *Position     `yaml:"position"`
}

type Player struct {
	Name string `yaml:"name" env:"NAME"`
	Mode string `yaml:"mode" env:"MODE"`
}

type Position struct {
	Grid   [][]int `yaml:"grid"`
	Scores []int   `yaml:"scores"`
	Turn   int     `yaml:"turn"`
}

// Parse checks the shape of the position. Seed conservation is left to the game.
func (that *Position) Parse() (entity.Grid, [2]int, error) {
	var (
		grid   entity.Grid
		scores [2]int
	)

	if len(that.Grid) != entity.Height || len(that.Scores) != len(scores) || that.Turn < 0 || that.Turn > 1 {
		return grid, scores, ErrInvalidPosition
	}

	for row := range that.Grid {
		if len(that.Grid[row]) != entity.Width {
			return grid, scores, fmt.Errorf("%w: row %d has %d pits", ErrInvalidPosition, row, len(that.Grid[row]))
		}

		copy(grid[row][:], that.Grid[row])
	}

	copy(scores[:], that.Scores)

	return grid, scores, nil
}

type Redis struct {
	Enabled     bool   `yaml:"enabled" env:"ENABLED" env-default:"false"`
	Host        string `yaml:"host" env:"HOST" env-default:"localhost"`
	Port        string `yaml:"port" env:"PORT" env-default:"6379"`
	RecentGames int64  `yaml:"recent-games" env:"RECENT_GAMES" env-default:"100"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

// Load reads the file at path, or only the environment when path is empty or missing.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err = cleanenv.ReadConfig(path, config); err != nil {
				return nil, fmt.Errorf("unable to read config file: %w", err)
			}

			return config.withDefaults(), nil
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	return config.withDefaults(), nil
}

func (that *Config) withDefaults() *Config {
	if that.PlayerA.Name == "" {
		that.PlayerA.Name = "Player A"
	}

	if that.PlayerA.Mode == "" {
		that.PlayerA.Mode = string(entity.ModeHuman)
	}

	if that.PlayerB.Name == "" {
		that.PlayerB.Name = "Player B"
	}

	if that.PlayerB.Mode == "" {
		that.PlayerB.Mode = string(entity.ModeMinMax)
	}

	return that
}

func (that *Config) Validate() error {
	modeA, err := entity.ParseMode(that.PlayerA.Mode)
	if err != nil {
		return fmt.Errorf("player a: %w", err)
	}

	modeB, err := entity.ParseMode(that.PlayerB.Mode)
	if err != nil {
		return fmt.Errorf("player b: %w", err)
	}

	if that.PlayerA.Name == that.PlayerB.Name {
		return fmt.Errorf("%w: %q", ErrDuplicateNames, that.PlayerA.Name)
	}

	if that.SearchDepth < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, that.SearchDepth)
	}

	switch that.Interface {
	case InterfaceTerminal:
	case InterfaceHeadless:
		if !modeA.IsComputer() || !modeB.IsComputer() {
			return apperror.ErrHumanInHeadless
		}

		if that.Games < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidGames, that.Games)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidInterface, that.Interface)
	}

	if that.Position != nil {
		if _, _, err = that.Position.Parse(); err != nil {
			return err
		}
	}

	return nil
}

func (that *Config) Modes() (entity.Mode, entity.Mode, error) {
	modeA, err := entity.ParseMode(that.PlayerA.Mode)
	if err != nil {
		return "", "", fmt.Errorf("player a: %w", err)
	}

	modeB, err := entity.ParseMode(that.PlayerB.Mode)
	if err != nil {
		return "", "", fmt.Errorf("player b: %w", err)
	}

	return modeA, modeB, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
