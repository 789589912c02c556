package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"ttt/communication/server"
	"ttt/config"
	"ttt/engine"
	"ttt/game"
	"ttt/searcher"
	"ttt/searcher/agent"

	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, trials int) *Client {
	t.Helper()
	seed := uint64(6)
	cfg := config.Default()
	cfg.Search.Seed = &seed
	ts := httptest.NewServer(server.NewServer(cfg).Handler())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL, trials)
}

func TestClientFindMove(t *testing.T) {
	t.Run("matches a local search with the same seed", func(t *testing.T) {
		c := newClient(t, 15)
		b, err := game.NewBoard(3, false)
		require.NoError(t, err)
		require.NoError(t, b.Move(1, 1, game.PlayerX))

		move, _, err := c.FindMove(context.Background(), b, game.PlayerO)
		require.NoError(t, err)

		want, err := searcher.NewMonteCarlo(searcher.WithSeed(6)).ComputeMove(context.Background(), b, game.PlayerO, 15)
		require.NoError(t, err)
		require.Equal(t, want, move)
	})

	t.Run("full board signals no move", func(t *testing.T) {
		c := newClient(t, 5)
		b, err := game.NewBoard(1, false)
		require.NoError(t, err)
		require.NoError(t, b.Move(0, 0, game.PlayerO))

		_, _, err = c.FindMove(context.Background(), b, game.PlayerX)
		require.ErrorIs(t, err, searcher.ErrNoMoveAvailable)
	})

	t.Run("server errors surface", func(t *testing.T) {
		c := newClient(t, -1)
		b, err := game.NewBoard(3, false)
		require.NoError(t, err)

		_, _, err = c.FindMove(context.Background(), b, game.PlayerX)
		require.ErrorContains(t, err, "status 400")
	})

	t.Run("plays a remote game", func(t *testing.T) {
		c := newClient(t, 10)
		b, err := game.NewBoard(3, false)
		require.NoError(t, err)

		outcome, _, _, err := engine.LocalEngine(b, c, agent.NewRandomAgent(searcher.Seeded(2))).Run(context.Background())
		require.NoError(t, err)
		require.NotEqual(t, game.InProgress, outcome)
	})
}

func TestClientRender(t *testing.T) {
	c := newClient(t, 1)
	b, err := game.NewBoard(2, false)
	require.NoError(t, err)
	require.NoError(t, b.Move(0, 0, game.PlayerX))

	text, err := c.Render(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, b.String(), text)
}
