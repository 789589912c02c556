package engine

import (
	"errors"
	"ttt/game"
)

var ErrIllegalMove = errors.New("illegal move")

// Update describes one played move.
type Update struct {
	Step    int
	Player  game.Cell
	Move    game.Position
	Board   *game.Board // Snapshot after the move
	Outcome game.Outcome
}

// Observer is called after every move.
type Observer func(u Update)
