package communication

import (
	"fmt"
	"ttt/game"
)

// BoardRequest carries a position over the wire. Grid rows hold cell values
// (0 empty, 1 X, 2 O).
type BoardRequest struct {
	Reverse bool          `json:"reverse"`
	Grid    [][]game.Cell `json:"grid"`
	Player  game.Cell     `json:"player,omitempty"`
	Trials  *int          `json:"trials,omitempty"` // Server default when unset
}

type MoveResponse struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Done    bool   `json:"done,omitempty"` // No move available
	Outcome string `json:"outcome"`
}

type RenderResponse struct {
	Text    string `json:"text"`
	Outcome string `json:"outcome"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Update is one message of a self-play stream.
type Update struct {
	Step    int           `json:"step"`
	Player  string        `json:"player,omitempty"`
	Move    game.Position `json:"move"`
	Grid    [][]game.Cell `json:"grid"`
	Text    string        `json:"text"`
	Outcome string        `json:"outcome"`
	Final   bool          `json:"final,omitempty"`
}

func NewBoardRequest(b *game.Board, player game.Cell, trials int) BoardRequest {
	return BoardRequest{
		Reverse: b.Reverse(),
		Grid:    b.Grid(),
		Player:  player,
		Trials:  &trials,
	}
}

func (r BoardRequest) Board() (*game.Board, error) {
	if len(r.Grid) == 0 {
		return nil, fmt.Errorf("%w: empty grid", game.ErrInvalidGrid)
	}
	return game.NewBoardFrom(r.Grid, r.Reverse)
}
