package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gopkg.in/yaml.v3"
)

type AgentConfig struct {
	ID         int    `yaml:"id"`
	Kind       string `yaml:"kind"` // "montecarlo" or "random"
	Trials     int    `yaml:"trials,omitempty"`
	Goroutines int    `yaml:"goroutines,omitempty"`
}

type GameRecord struct {
	ID     int
	AgentX int // AgentConfig.ID
	AgentO int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// WinRate is the share of games a Monte Carlo agent with the given trial
// budget won, drew and lost.
type WinRate struct {
	Trials int     `yaml:"trials"`
	Games  int     `yaml:"games"`
	Wins   float64 `yaml:"wins"`
	Draws  float64 `yaml:"draws"`
	Losses float64 `yaml:"losses"`
}

type Setup struct {
	Name      string        `yaml:"name"`
	Dim       int           `yaml:"dim"`
	Reverse   bool          `yaml:"reverse"`
	NumGames  int           `yaml:"num_games"` // per matchup
	StartTime time.Time     `yaml:"start_time"`
	EndTime   time.Time     `yaml:"end_time"`
	Duration  time.Duration `yaml:"duration"`
	Agents    []AgentConfig `yaml:"agents"`
	WinRates  []WinRate     `yaml:"win_rates,omitempty"`
}

type Writer struct {
	baseDir string
}

func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	path := filepath.Join(w.baseDir, "setup.yaml")
	data, err := yaml.Marshal(setup)
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write setup file: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := [][]string{}
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Trials),
			strconv.Itoa(config.Goroutines),
		})
	}
	return w.writeCSV("agent_configs.csv", []string{"id", "kind", "trials", "goroutines"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := [][]string{}
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.AgentX),
			strconv.Itoa(record.AgentO),
			record.StartingPlayer.String(),
			record.Outcome.String(),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "agent_x", "agent_o", "starting_player", "outcome", "total_moves", "start_time", "end_time", "duration"}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := [][]string{}
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(record.Move.Row),
			strconv.Itoa(record.Move.Col),
			strconv.Itoa(record.Trials),
			strconv.Itoa(record.Goroutines),
			record.Duration.String(),
			strconv.Itoa(record.RolloutMoves),
			strconv.Itoa(record.XWins),
			strconv.Itoa(record.OWins),
			strconv.Itoa(record.Draws),
		})
	}
	header := []string{"game", "step", "player", "row", "col", "trials", "goroutines", "duration", "rollout_moves", "x_wins", "o_wins", "draws"}
	return w.writeCSV("move_records.csv", header, rows)
}

// WriteThroughput stores one row per search: how many rollouts per second a
// goroutine count achieved.
func (w *Writer) WriteThroughput(records []SearchMetric) error {
	rows := [][]string{}
	for _, record := range records {
		perSecond := 0.0
		if record.Duration > 0 {
			perSecond = float64(record.Trials) / record.Duration.Seconds()
		}
		rows = append(rows, []string{
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Trials),
			record.Duration.String(),
			strconv.FormatFloat(perSecond, 'f', 1, 64),
		})
	}
	return w.writeCSV("throughput.csv", []string{"goroutines", "trials", "duration", "rollouts_per_second"}, rows)
}

// WriteWinRateChart renders win, draw and loss rates per trial budget as an
// HTML line chart.
func (w *Writer) WriteWinRateChart(title string, rates []WinRate) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	budgets := make([]string, 0, len(rates))
	wins := make([]opts.LineData, 0, len(rates))
	draws := make([]opts.LineData, 0, len(rates))
	losses := make([]opts.LineData, 0, len(rates))
	for _, rate := range rates {
		budgets = append(budgets, strconv.Itoa(rate.Trials))
		wins = append(wins, opts.LineData{Value: rate.Wins})
		draws = append(draws, opts.LineData{Value: rate.Draws})
		losses = append(losses, opts.LineData{Value: rate.Losses})
	}
	line.SetXAxis(budgets).
		AddSeries("wins", wins).
		AddSeries("draws", draws).
		AddSeries("losses", losses)

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(filepath.Join(w.baseDir, "win_rate.html"))
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}
