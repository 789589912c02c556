package agent

import (
	"context"
	"ttt/experiments/metrics"
	"ttt/game"
)

type Agent interface {
	// FindMove returns a move for player and the search metrics (if collected).
	// searcher.ErrNoMoveAvailable is returned when the board is full.
	FindMove(ctx context.Context, b *game.Board, player game.Cell) (game.Position, metrics.SearchMetric, error)
}
