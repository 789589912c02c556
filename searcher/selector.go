package searcher

import (
	"math"
	"ttt/game"
)

// BestMove returns one of the cells that are empty on b and carry the highest
// score, chosen uniformly among ties. Scores of occupied cells are ignored.
// It reports false when b has no empty cell.
func BestMove(b *game.Board, scores *Scores, picker Picker) (game.Position, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return game.Position{}, false
	}

	best := math.Inf(-1)
	for _, p := range empty {
		best = max(best, scores.At(p.Row, p.Col))
	}

	moves := []game.Position{}
	for _, p := range empty {
		if scores.At(p.Row, p.Col) == best {
			moves = append(moves, p)
		}
	}
	return moves[picker.Pick(len(moves))], true
}
