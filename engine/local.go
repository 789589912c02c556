package engine

import (
	"context"
	"errors"
	"fmt"
	"time"
	"ttt/experiments/metrics"
	"ttt/game"
	"ttt/searcher"
	"ttt/searcher/agent"

	"github.com/rs/zerolog/log"
)

type Engine struct {
	Board    *game.Board
	Agents   map[game.Cell]agent.Agent
	Starting game.Cell
	observer Observer
}

// LocalEngine sets up a game on b between x, playing PlayerX, and o.
func LocalEngine(b *game.Board, x, o agent.Agent) *Engine {
	if x == nil || o == nil {
		panic("need an agent for each player")
	}
	return &Engine{
		Board:    b,
		Agents:   map[game.Cell]agent.Agent{game.PlayerX: x, game.PlayerO: o},
		Starting: game.PlayerX,
	}
}

func (e *Engine) Observe(observer Observer) {
	e.observer = observer
}

// Run alternates turns until the game is over or ctx is done.
func (e *Engine) Run(ctx context.Context) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Starting,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %s is starting", e.Starting)

	player := e.Starting
	step := 1
	for e.Board.Outcome() == game.InProgress {
		if err := ctx.Err(); err != nil {
			return game.InProgress, gameMetric, moveMetrics, fmt.Errorf("game stopped before step %d: %w", step, err)
		}
		move, searchMetric, err := e.Agents[player].FindMove(ctx, e.Board.Clone(), player)
		if errors.Is(err, searcher.ErrNoMoveAvailable) {
			break
		}
		if err != nil {
			return game.InProgress, gameMetric, moveMetrics, fmt.Errorf("player %s failed to find a move: %w", player, err)
		}

		cell, err := e.Board.At(move.Row, move.Col)
		if err != nil {
			return game.InProgress, gameMetric, moveMetrics, fmt.Errorf("%w: %w", ErrIllegalMove, err)
		}
		if cell != game.Empty {
			return game.InProgress, gameMetric, moveMetrics, fmt.Errorf("%w: player %s chose occupied cell (%d, %d)", ErrIllegalMove, player, move.Row, move.Col)
		}
		if err := e.Board.Move(move.Row, move.Col, player); err != nil {
			return game.InProgress, gameMetric, moveMetrics, err
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Move:         move,
			SearchMetric: searchMetric,
		})
		if e.observer != nil {
			e.observer(Update{
				Step:    step,
				Player:  player,
				Move:    move,
				Board:   e.Board.Clone(),
				Outcome: e.Board.Outcome(),
			})
		}

		player = game.SwitchPlayer(player)
		step++
	}

	outcome := e.Board.Outcome()
	gameMetric.Outcome = outcome
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Debug().Msgf("game over after %d moves: %s", gameMetric.TotalMoves, outcome)
	return outcome, gameMetric, moveMetrics, nil
}
