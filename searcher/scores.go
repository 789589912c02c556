package searcher

import (
	"fmt"
	"ttt/game"
)

// Weights are the credit given to the winner's cells and the blame given to
// the loser's cells after a rollout.
type Weights struct {
	Current float64 `yaml:"score_current" json:"scoreCurrent"`
	Other   float64 `yaml:"score_other" json:"scoreOther"`
}

func DefaultWeights() Weights {
	return Weights{Current: 1.0, Other: 1.0}
}

// Scores is an n×n grid of accumulated rollout credit.
type Scores struct {
	dim    int
	values []float64
}

func NewScores(dim int) *Scores {
	return &Scores{dim: dim, values: make([]float64, dim*dim)}
}

func (s *Scores) Dim() int {
	return s.dim
}

func (s *Scores) At(row, col int) float64 {
	return s.values[row*s.dim+col]
}

// Update scores one finished rollout. Cells held by the winner gain
// w.Current, cells held by the loser lose w.Other. Draws and empty cells
// leave the grid untouched. Every cell is scored, including those occupied
// before the rollout started.
func (s *Scores) Update(b *game.Board, w Weights) {
	if b.Dim() != s.dim {
		panic(fmt.Sprintf("scores of dimension %d cannot score a board of dimension %d", s.dim, b.Dim()))
	}

	winner := b.Outcome().Winner()
	if winner == game.Empty {
		return
	}
	loser := game.SwitchPlayer(winner)

	b.Each(func(p game.Position, cell game.Cell) {
		switch cell {
		case winner:
			s.values[p.Row*s.dim+p.Col] += w.Current
		case loser:
			s.values[p.Row*s.dim+p.Col] -= w.Other
		}
	})
}

// Add sums other into s.
func (s *Scores) Add(other *Scores) {
	if other.dim != s.dim {
		panic(fmt.Sprintf("cannot add scores of dimension %d to %d", other.dim, s.dim))
	}
	for i, v := range other.values {
		s.values[i] += v
	}
}

func (s *Scores) Total() float64 {
	total := 0.0
	for _, v := range s.values {
		total += v
	}
	return total
}
