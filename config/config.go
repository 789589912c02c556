package config

import (
	"errors"
	"fmt"
	"os"
	"ttt/searcher"

	"gopkg.in/yaml.v3"
)

// DefaultDim is the board dimension of classic tic-tac-toe.
const DefaultDim = 3

// DefaultTrials is the number of rollouts per move.
const DefaultTrials = 100

// DefaultMaxTrials caps the trials a move server request may ask for.
const DefaultMaxTrials = 100000

// DefaultGoroutines is the number of rollout workers.
const DefaultGoroutines = 1

// ScoreCurrent is the credit for cells held by the rollout winner.
const ScoreCurrent = 1.0

// ScoreOther is the blame for cells held by the rollout loser.
const ScoreOther = 1.0

const DefaultGames = 20

const DefaultAddr = ":8080"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Game       Game       `yaml:"game"`
	Search     Search     `yaml:"search"`
	Server     Server     `yaml:"server"`
	Experiment Experiment `yaml:"experiment"`
	Log        Log        `yaml:"log"`
}

type Game struct {
	Dim     int  `yaml:"dim"`
	Reverse bool `yaml:"reverse"`
}

type Search struct {
	Trials       int     `yaml:"trials"`
	MaxTrials    int     `yaml:"max_trials"` // Upper bound for trials requested over HTTP
	Goroutines   int     `yaml:"goroutines"`
	Seed         *uint64 `yaml:"seed,omitempty"` // Unset means non-reproducible randomness
	ScoreCurrent float64 `yaml:"score_current"`
	ScoreOther   float64 `yaml:"score_other"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Experiment struct {
	Games   int    `yaml:"games"`   // Per trial budget
	Budgets []int  `yaml:"budgets"` // Trial budgets matched against the random agent
	OutDir  string `yaml:"out_dir"`
}

type Log struct {
	Level string `yaml:"level"`
	Color bool   `yaml:"color"`
}

func Default() Config {
	return Config{
		Game: Game{Dim: DefaultDim},
		Search: Search{
			Trials:       DefaultTrials,
			MaxTrials:    DefaultMaxTrials,
			Goroutines:   DefaultGoroutines,
			ScoreCurrent: ScoreCurrent,
			ScoreOther:   ScoreOther,
		},
		Server: Server{Addr: DefaultAddr},
		Experiment: Experiment{
			Games:   DefaultGames,
			Budgets: []int{1, 10, 100},
			OutDir:  "experiments",
		},
		Log: Log{Level: "info", Color: true},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Game.Dim < 1 {
		return fmt.Errorf("%w: game.dim must be at least 1, got %d", ErrInvalidConfig, c.Game.Dim)
	}
	if c.Search.Trials < 0 {
		return fmt.Errorf("%w: search.trials must not be negative, got %d", ErrInvalidConfig, c.Search.Trials)
	}
	if c.Search.Trials > c.Search.MaxTrials {
		return fmt.Errorf("%w: search.trials %d exceeds search.max_trials %d", ErrInvalidConfig, c.Search.Trials, c.Search.MaxTrials)
	}
	if c.Search.Goroutines < 1 {
		return fmt.Errorf("%w: search.goroutines must be at least 1, got %d", ErrInvalidConfig, c.Search.Goroutines)
	}
	if c.Experiment.Games < 0 {
		return fmt.Errorf("%w: experiment.games must not be negative, got %d", ErrInvalidConfig, c.Experiment.Games)
	}
	for _, budget := range c.Experiment.Budgets {
		if budget < 0 {
			return fmt.Errorf("%w: experiment.budgets must not be negative, got %d", ErrInvalidConfig, budget)
		}
	}
	return nil
}

func (s Search) Weights() searcher.Weights {
	return searcher.Weights{Current: s.ScoreCurrent, Other: s.ScoreOther}
}

// Options translates the search section into orchestrator options.
func (s Search) Options() []searcher.Option {
	options := []searcher.Option{
		searcher.WithGoroutines(s.Goroutines),
		searcher.WithWeights(s.Weights()),
	}
	if s.Seed != nil {
		options = append(options, searcher.WithSeed(*s.Seed))
	}
	return options
}
