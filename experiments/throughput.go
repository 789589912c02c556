package experiments

import (
	"context"
	"fmt"
	"ttt/config"
	"ttt/experiments/metrics"
	"ttt/game"
	"ttt/searcher"

	"github.com/rs/zerolog/log"
)

// RunThroughputExperiment times a single move decision on an empty board for
// increasing goroutine counts and stores rollouts per second.
func RunThroughputExperiment(ctx context.Context, cfg config.Config, goroutines []int) (string, error) {
	records := []metrics.SearchMetric{}

	log.Info().Msg("starting throughput experiment...")

	for _, n := range goroutines {
		b, err := game.NewBoard(cfg.Game.Dim, cfg.Game.Reverse)
		if err != nil {
			return "", err
		}
		options := append(cfg.Search.Options(), searcher.WithGoroutines(n), searcher.WithMetrics())
		mc := searcher.NewMonteCarlo(options...)
		if _, err := mc.ComputeMove(ctx, b, game.PlayerX, cfg.Search.Trials); err != nil {
			return "", fmt.Errorf("goroutines=%d: %w", n, err)
		}

		metric := mc.Metrics()
		records = append(records, metric)
		log.Info().Msgf("goroutines=%d ran %d rollouts in %s", metric.Goroutines, metric.Trials, metric.Duration)
	}

	log.Info().Msg("completed throughput experiment")

	writer, err := metrics.NewWriter(cfg.Experiment.OutDir, "throughput")
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteThroughput(records); err != nil {
		return "", fmt.Errorf("failed to write throughput records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())

	return writer.Dir(), nil
}
