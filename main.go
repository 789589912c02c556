package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"ttt/communication/server"
	"ttt/config"
	"ttt/engine"
	"ttt/experiments"
	"ttt/game"
	"ttt/searcher"
	"ttt/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	mode := flag.String("mode", "selfplay", "one of: selfplay, serve, experiment, throughput")
	addr := flag.String("addr", "", "listen address for serve mode (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch *mode {
	case "selfplay":
		err = runSelfPlay(ctx, cfg)
	case "serve":
		err = server.NewServer(cfg).Start()
	case "experiment":
		_, err = experiments.RunTrialBudgetExperiment(ctx, cfg)
	case "throughput":
		_, err = experiments.RunThroughputExperiment(ctx, cfg, []int{1, 2, 4, 8, 16})
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		stop()
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func setupLogger(cfg config.Log) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !cfg.Color})
}

// runSelfPlay plays one game between two Monte Carlo agents and logs every
// position.
func runSelfPlay(ctx context.Context, cfg config.Config) error {
	b, err := game.NewBoard(cfg.Game.Dim, cfg.Game.Reverse)
	if err != nil {
		return err
	}
	x := agent.NewMonteCarloAgent(searcher.NewMonteCarlo(cfg.Search.Options()...), cfg.Search.Trials)
	o := agent.NewMonteCarloAgent(searcher.NewMonteCarlo(cfg.Search.Options()...), cfg.Search.Trials)
	renderer := game.NewRenderer(game.WithColor(cfg.Log.Color))

	e := engine.LocalEngine(b, x, o)
	e.Observe(func(u engine.Update) {
		log.Info().Msgf("move %d: %s plays (%d, %d)\n%s", u.Step, u.Player, u.Move.Row, u.Move.Col, renderer.Render(u.Board))
	})

	outcome, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	log.Info().Msgf("game over after %d moves in %s: %s", gameMetric.TotalMoves, gameMetric.Duration, outcome)
	return nil
}
