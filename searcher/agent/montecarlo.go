package agent

import (
	"context"
	"ttt/experiments/metrics"
	"ttt/game"
	"ttt/searcher"
)

type monteCarloAgent struct {
	mc     *searcher.MonteCarlo
	trials int
}

// NewMonteCarloAgent returns an agent that runs trials rollouts per move.
func NewMonteCarloAgent(mc *searcher.MonteCarlo, trials int) Agent {
	return monteCarloAgent{mc: mc, trials: trials}
}

func (a monteCarloAgent) FindMove(ctx context.Context, b *game.Board, player game.Cell) (game.Position, metrics.SearchMetric, error) {
	move, err := a.mc.ComputeMove(ctx, b, player, a.trials)
	if err != nil {
		return game.Position{}, metrics.SearchMetric{}, err
	}
	return move, a.mc.Metrics(), nil
}
