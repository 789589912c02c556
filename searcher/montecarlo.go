package searcher

import (
	"context"
	"fmt"
	"sync"
	"ttt/experiments/metrics"
	"ttt/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Option func(m *MonteCarlo)

// MonteCarlo recommends moves by scoring cells over many random rollouts. A
// MonteCarlo must not be shared by concurrent ComputeMove calls.
type MonteCarlo struct {
	goroutines int
	weights    Weights
	source     Source
	metrics    metrics.Collector
	last       metrics.SearchMetric
	next       uint64 // First picker stream of the next call
}

func WithGoroutines(goroutines int) Option {
	return func(m *MonteCarlo) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithWeights(weights Weights) Option {
	return func(m *MonteCarlo) {
		m.weights = weights
	}
}

func WithSource(source Source) Option {
	return func(m *MonteCarlo) {
		if source != nil {
			m.source = source
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MonteCarlo) {
		m.source = Seeded(seed)
	}
}

func WithMetrics() Option {
	return func(m *MonteCarlo) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMonteCarlo(options ...Option) *MonteCarlo {
	m := &MonteCarlo{ // Default values
		goroutines: 1,
		weights:    DefaultWeights(),
		source:     Crypto(),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// ComputeMove runs trials rollouts from clones of b with player moving first,
// then picks the best scoring empty cell of b. b itself is never modified.
// ErrNoMoveAvailable is returned when b is full. The search stops early with
// ctx.Err() once ctx is done.
//
// Each call draws from trials+1 picker streams that follow on from the
// previous call, so the moves of a seeded game are reproducible without
// replaying the same rollouts.
func (m *MonteCarlo) ComputeMove(ctx context.Context, b *game.Board, player game.Cell, trials int) (game.Position, error) {
	if !player.Valid() {
		return game.Position{}, fmt.Errorf("%w: %s", game.ErrInvalidPlayer, player)
	}
	if trials < 0 {
		return game.Position{}, fmt.Errorf("%w: got %d", ErrInvalidTrials, trials)
	}

	base := m.next
	m.next += uint64(trials) + 1

	m.metrics.Start(m.goroutines, trials)
	scores, err := m.iterate(ctx, b, player, trials, base)
	if err != nil {
		m.last = metrics.SearchMetric{}
		return game.Position{}, err
	}
	m.last = m.metrics.Complete()

	move, ok := BestMove(b, scores, m.source(base+uint64(trials)))
	if !ok {
		return game.Position{}, ErrNoMoveAvailable
	}

	log.Debug().
		Str("player", player.String()).
		Int("trials", trials).
		Int("row", move.Row).
		Int("col", move.Col).
		Float64("score", scores.At(move.Row, move.Col)).
		Msg("computed move")
	return move, nil
}

// Metrics returns the search metrics of the last ComputeMove call. It is
// empty unless WithMetrics was given.
func (m *MonteCarlo) Metrics() metrics.SearchMetric {
	return m.last
}

// iterate feeds trial indices to the workers. Each worker accumulates into a
// private grid that is summed into the result once its share is done. Trial i
// draws from stream base+i.
func (m *MonteCarlo) iterate(ctx context.Context, b *game.Board, player game.Cell, trials int, base uint64) (*Scores, error) {
	task := make(chan int, trials)
	for i := 0; i < trials; i++ {
		task <- i
	}
	close(task)

	total := NewScores(b.Dim())
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < m.goroutines; i++ {
		g.Go(func() error {
			partial := NewScores(b.Dim())
			for trial := range task {
				if err := ctx.Err(); err != nil {
					return err
				}
				clone := b.Clone()
				depth, err := Rollout(clone, player, m.source(base+uint64(trial)))
				if err != nil {
					return err
				}
				partial.Update(clone, m.weights)
				m.metrics.AddRollout(clone.Outcome(), depth)
			}

			mu.Lock()
			defer mu.Unlock()
			total.Add(partial)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return total, nil
}
