package agent

import (
	"context"
	"fmt"
	"sync/atomic"
	"ttt/experiments/metrics"
	"ttt/game"
	"ttt/searcher"
)

type randomAgent struct {
	source searcher.Source
	calls  *atomic.Uint64
}

// NewRandomAgent returns an agent that plays a uniformly random empty cell.
// It is the baseline opponent in experiments.
func NewRandomAgent(source searcher.Source) Agent {
	return randomAgent{source: source, calls: &atomic.Uint64{}}
}

func (a randomAgent) FindMove(ctx context.Context, b *game.Board, player game.Cell) (game.Position, metrics.SearchMetric, error) {
	if !player.Valid() {
		return game.Position{}, metrics.SearchMetric{}, fmt.Errorf("%w: %s", game.ErrInvalidPlayer, player)
	}
	if err := ctx.Err(); err != nil {
		return game.Position{}, metrics.SearchMetric{}, err
	}
	moves := b.EmptyCells()
	if len(moves) == 0 {
		return game.Position{}, metrics.SearchMetric{}, searcher.ErrNoMoveAvailable
	}
	// Each call draws from its own stream so seeded agents do not repeat themselves
	picker := a.source(a.calls.Add(1) - 1)
	return moves[picker.Pick(len(moves))], metrics.SearchMetric{}, nil
}
