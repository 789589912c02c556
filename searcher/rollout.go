package searcher

import (
	"fmt"
	"ttt/game"
)

// Rollout plays uniformly random moves on b, starting with player and
// alternating, until the game is over. It returns the number of moves made,
// at most Dim()². b is modified; pass a clone.
func Rollout(b *game.Board, player game.Cell, picker Picker) (int, error) {
	if !player.Valid() {
		return 0, fmt.Errorf("%w: %s", game.ErrInvalidPlayer, player)
	}

	depth := 0
	for b.Outcome() == game.InProgress {
		moves := b.EmptyCells()
		move := moves[picker.Pick(len(moves))] // Random rollout policy
		if err := b.Move(move.Row, move.Col, player); err != nil {
			return depth, err
		}
		player = game.SwitchPlayer(player)
		depth++
	}
	return depth, nil
}
