package engine

import (
	"context"
	"testing"
	"ttt/experiments/metrics"
	"ttt/game"
	"ttt/searcher"
	"ttt/searcher/agent"

	"github.com/stretchr/testify/require"
)

type fixedAgent struct {
	moves []game.Position
	next  int
}

func (a *fixedAgent) FindMove(ctx context.Context, b *game.Board, player game.Cell) (game.Position, metrics.SearchMetric, error) {
	move := a.moves[a.next]
	a.next++
	return move, metrics.SearchMetric{}, nil
}

func newBoard(t *testing.T, dim int, reverse bool) *game.Board {
	t.Helper()
	b, err := game.NewBoard(dim, reverse)
	require.NoError(t, err)
	return b
}

func TestEngineRun(t *testing.T) {
	t.Run("plays scripted game to a win", func(t *testing.T) {
		x := &fixedAgent{moves: []game.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}}
		o := &fixedAgent{moves: []game.Position{{Row: 1, Col: 0}, {Row: 1, Col: 1}}}
		e := LocalEngine(newBoard(t, 3, false), x, o)

		var updates []Update
		e.Observe(func(u Update) { updates = append(updates, u) })

		outcome, gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, game.XWins, outcome)
		require.Equal(t, 5, gameMetric.TotalMoves)
		require.Equal(t, game.PlayerX, gameMetric.StartingPlayer)
		require.Len(t, moveMetrics, 5)
		require.Len(t, updates, 5)
		require.Equal(t, game.PlayerO, updates[1].Player)
		require.Equal(t, game.InProgress, updates[3].Outcome)
		require.Equal(t, game.XWins, updates[4].Outcome)
	})

	t.Run("misère game", func(t *testing.T) {
		x := &fixedAgent{moves: []game.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}}
		o := &fixedAgent{moves: []game.Position{{Row: 1, Col: 0}, {Row: 2, Col: 1}}}
		outcome, _, _, err := LocalEngine(newBoard(t, 3, true), x, o).Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, game.OWins, outcome)
	})

	t.Run("rejects occupied cells", func(t *testing.T) {
		x := &fixedAgent{moves: []game.Position{{Row: 0, Col: 0}}}
		o := &fixedAgent{moves: []game.Position{{Row: 0, Col: 0}}}
		_, _, _, err := LocalEngine(newBoard(t, 3, false), x, o).Run(context.Background())
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("rejects out of range moves", func(t *testing.T) {
		x := &fixedAgent{moves: []game.Position{{Row: 5, Col: 0}}}
		_, _, _, err := LocalEngine(newBoard(t, 3, false), x, x).Run(context.Background())
		require.ErrorIs(t, err, ErrIllegalMove)
		require.ErrorIs(t, err, game.ErrInvalidCoordinate)
	})

	t.Run("machine against machine terminates", func(t *testing.T) {
		for dim := 1; dim <= 4; dim++ {
			x := agent.NewMonteCarloAgent(searcher.NewMonteCarlo(searcher.WithSeed(uint64(dim)), searcher.WithMetrics()), 10)
			o := agent.NewRandomAgent(searcher.Seeded(uint64(dim)))
			b := newBoard(t, dim, false)

			outcome, gameMetric, moveMetrics, err := LocalEngine(b, x, o).Run(context.Background())
			require.NoError(t, err)
			require.NotEqual(t, game.InProgress, outcome)
			require.LessOrEqual(t, gameMetric.TotalMoves, dim*dim)
			require.Equal(t, 10, moveMetrics[0].Trials, "Monte Carlo moves should carry search metrics")
		}
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		x := &fixedAgent{moves: []game.Position{{Row: 0, Col: 0}}}
		outcome, gameMetric, _, err := LocalEngine(newBoard(t, 3, false), x, x).Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, game.InProgress, outcome)
		require.Zero(t, gameMetric.TotalMoves)
		require.Zero(t, x.next, "No move should be asked for")
	})

	t.Run("panics without agents", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine(newBoard(t, 3, false), nil, nil) })
	})
}
