package metrics

import (
	"sync/atomic"
	"time"
	"ttt/game"
)

type SearchMetric struct {
	Goroutines   int
	Trials       int
	Duration     time.Duration
	RolloutMoves int
	XWins        int
	OWins        int
	Draws        int
}

type MoveMetric struct {
	Step   int
	Player game.Cell
	Move   game.Position
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Cell
	Outcome        game.Outcome
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, trials int)
	AddRollout(outcome game.Outcome, moves int)
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	trials       int
	startTime    time.Time
	rolloutMoves atomic.Int64
	xWins        atomic.Int32
	oWins        atomic.Int32
	draws        atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, trials int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.trials = trials
	m.rolloutMoves.Store(0)
	m.xWins.Store(0)
	m.oWins.Store(0)
	m.draws.Store(0)
}

func (m *collector) AddRollout(outcome game.Outcome, moves int) {
	m.rolloutMoves.Add(int64(moves))
	switch outcome {
	case game.XWins:
		m.xWins.Add(1)
	case game.OWins:
		m.oWins.Add(1)
	case game.Draw:
		m.draws.Add(1)
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Trials:       m.trials,
		Duration:     time.Since(m.startTime),
		RolloutMoves: int(m.rolloutMoves.Load()),
		XWins:        int(m.xWins.Load()),
		OWins:        int(m.oWins.Load()),
		Draws:        int(m.draws.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, trials int)               {}
func (m *dummyCollector) AddRollout(outcome game.Outcome, moves int) {}
func (m *dummyCollector) Complete() SearchMetric                     { return SearchMetric{} }
