package game

import "errors"

type Cell int

const (
	Empty Cell = iota
	PlayerX
	PlayerO
)

var (
	ErrInvalidCoordinate = errors.New("coordinate out of range")
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrInvalidDimension  = errors.New("board dimension must be at least 1")
	ErrInvalidGrid       = errors.New("grid must be square and hold only valid cells")
)

// Valid reports whether c is one of the two players.
func (c Cell) Valid() bool {
	return c == PlayerX || c == PlayerO
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	}
	return "unknown"
}

// SwitchPlayer maps PlayerX to PlayerO and back. Empty is returned unchanged.
func SwitchPlayer(player Cell) Cell {
	switch player {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	}
	return player
}

type Outcome int

const (
	InProgress Outcome = iota
	XWins
	OWins
	Draw
)

// OutcomeFor returns the winning outcome for player.
func OutcomeFor(winner Cell) Outcome {
	switch winner {
	case PlayerX:
		return XWins
	case PlayerO:
		return OWins
	}
	return InProgress
}

// Winner returns the winning player, or Empty for draws and unfinished games.
func (o Outcome) Winner() Cell {
	switch o {
	case XWins:
		return PlayerX
	case OWins:
		return PlayerO
	}
	return Empty
}

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Draw:
		return "draw"
	}
	return "unknown"
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
