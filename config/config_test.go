package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"ttt/game"
	"ttt/searcher"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Equal(t, 3, cfg.Game.Dim)
	require.Equal(t, DefaultTrials, cfg.Search.Trials)
	require.Equal(t, DefaultMaxTrials, cfg.Search.MaxTrials)
	require.Equal(t, 1.0, cfg.Search.Weights().Current)
	require.Equal(t, 1.0, cfg.Search.Weights().Other)
	require.Nil(t, cfg.Search.Seed)
}

func TestLoad(t *testing.T) {
	t.Run("overrides only the given keys", func(t *testing.T) {
		path := writeConfig(t, `
game:
  dim: 4
  reverse: true
search:
  trials: 25
  seed: 11
  score_other: 0.5
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		require.Equal(t, 4, cfg.Game.Dim)
		require.True(t, cfg.Game.Reverse)
		require.Equal(t, 25, cfg.Search.Trials)
		require.Equal(t, DefaultGoroutines, cfg.Search.Goroutines, "Missing keys should keep defaults")
		require.NotNil(t, cfg.Search.Seed)
		require.Equal(t, uint64(11), *cfg.Search.Seed)
		require.Equal(t, 0.5, cfg.Search.ScoreOther)
		require.Equal(t, ScoreCurrent, cfg.Search.ScoreCurrent)
		require.Equal(t, DefaultAddr, cfg.Server.Addr)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		path := writeConfig(t, "game:\n  dim: 0\n")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrInvalidConfig)

		path = writeConfig(t, "search:\n  trials: 500\n  max_trials: 100\n")
		_, err = Load(path)
		require.ErrorIs(t, err, ErrInvalidConfig, "Default trials above the cap should be rejected")

		path = writeConfig(t, "experiment:\n  budgets: [1, -3]\n")
		_, err = Load(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("reports malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "game: [")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("reports missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSearchOptions(t *testing.T) {
	seed := uint64(3)
	cfg := Default()
	cfg.Search.Seed = &seed
	cfg.Search.Goroutines = 2
	require.Len(t, cfg.Search.Options(), 3)

	b, err := game.NewBoard(3, false)
	require.NoError(t, err)
	first, err := searcher.NewMonteCarlo(cfg.Search.Options()...).ComputeMove(context.Background(), b, game.PlayerX, 5)
	require.NoError(t, err)
	second, err := searcher.NewMonteCarlo(cfg.Search.Options()...).ComputeMove(context.Background(), b, game.PlayerX, 5)
	require.NoError(t, err)
	require.Equal(t, first, second, "Seeded config should give reproducible moves")
}
