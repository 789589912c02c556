package experiments

import (
	"context"
	"fmt"
	"time"
	"ttt/config"
	"ttt/engine"
	"ttt/experiments/metrics"
	"ttt/game"
	"ttt/searcher"
	"ttt/searcher/agent"

	"github.com/rs/zerolog/log"
)

const baselineID = 0

// RunTrialBudgetExperiment pits a Monte Carlo agent at each configured trial
// budget against a random baseline, alternating who plays X, and stores the
// records and a win rate chart under cfg.Experiment.OutDir. It returns the
// directory it wrote to.
func RunTrialBudgetExperiment(ctx context.Context, cfg config.Config) (string, error) {
	const name = "trial_budget"
	baseline := metrics.AgentConfig{ID: baselineID, Kind: "random"}
	configs := []metrics.AgentConfig{baseline}
	for i, trials := range cfg.Experiment.Budgets {
		configs = append(configs, metrics.AgentConfig{ID: i + 1, Kind: "montecarlo", Trials: trials, Goroutines: cfg.Search.Goroutines})
	}

	start := time.Now()
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	rates := []metrics.WinRate{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, config := range configs[1:] {
		log.Info().Msgf("starting matchup %d of %d between agent=%+v and the random baseline...", mi+1, len(configs)-1, config)

		rate := metrics.WinRate{Trials: config.Trials, Games: cfg.Experiment.Games}
		for i := 0; i < cfg.Experiment.Games; i++ {
			// Alternate sides for fairness
			mcPlayer := game.PlayerX
			if i%2 == 1 {
				mcPlayer = game.PlayerO
			}

			outcome, gameMetric, moveMetrics, err := runGame(ctx, cfg, config, mcPlayer, uint64(count))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++

			record := metrics.GameRecord{ID: count, AgentX: config.ID, AgentO: baselineID, GameMetric: gameMetric}
			if mcPlayer == game.PlayerO {
				record.AgentX, record.AgentO = baselineID, config.ID
			}
			gameRecords = append(gameRecords, record)
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}

			switch outcome.Winner() {
			case mcPlayer:
				rate.Wins++
			case game.Empty:
				rate.Draws++
			default:
				rate.Losses++
			}
			log.Debug().Msgf("completed matchup %d game %d: %s", mi+1, i+1, outcome)
		}
		if rate.Games > 0 {
			rate.Wins /= float64(rate.Games)
			rate.Draws /= float64(rate.Games)
			rate.Losses /= float64(rate.Games)
		}
		rates = append(rates, rate)

		log.Info().Msgf("completed matchup %d of %d: wins=%.2f draws=%.2f losses=%.2f", mi+1, len(configs)-1, rate.Wins, rate.Draws, rate.Losses)
	}

	log.Info().Msgf("completed %s experiment", name)

	end := time.Now()
	writer, err := metrics.NewWriter(cfg.Experiment.OutDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteSetup(metrics.Setup{
		Name:      name,
		Dim:       cfg.Game.Dim,
		Reverse:   cfg.Game.Reverse,
		NumGames:  cfg.Experiment.Games,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
		Agents:    configs,
		WinRates:  rates,
	})
	if err != nil {
		return "", err
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	title := fmt.Sprintf("Monte Carlo vs random on %dx%d", cfg.Game.Dim, cfg.Game.Dim)
	if cfg.Game.Reverse {
		title += " (misère)"
	}
	if err := writer.WriteWinRateChart(title, rates); err != nil {
		return "", err
	}
	log.Info().Msgf("stored results in %s", writer.Dir())

	return writer.Dir(), nil
}

// runGame plays one game between a Monte Carlo agent seated at mcPlayer and
// the random baseline.
func runGame(ctx context.Context, cfg config.Config, mcConfig metrics.AgentConfig, mcPlayer game.Cell, index uint64) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	b, err := game.NewBoard(cfg.Game.Dim, cfg.Game.Reverse)
	if err != nil {
		return game.InProgress, metrics.GameMetric{}, nil, err
	}

	options := append(cfg.Search.Options(), searcher.WithMetrics())
	baselineSource := searcher.Crypto()
	if cfg.Search.Seed != nil {
		// Offset per game so seeded experiments do not replay one game
		seed := *cfg.Search.Seed + index
		options = append(options, searcher.WithSeed(seed))
		baselineSource = searcher.Seeded(^seed)
	}

	mc := agent.NewMonteCarloAgent(searcher.NewMonteCarlo(options...), mcConfig.Trials)
	baseline := agent.NewRandomAgent(baselineSource)

	e := engine.LocalEngine(b, mc, baseline)
	if mcPlayer == game.PlayerO {
		e = engine.LocalEngine(b, baseline, mc)
	}
	return e.Run(ctx)
}
