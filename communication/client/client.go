package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"ttt/communication"
	"ttt/experiments/metrics"
	"ttt/game"
	"ttt/searcher"
)

// Client asks a remote move server for moves. It satisfies agent.Agent, so a
// remote searcher can take a seat in a local engine.
type Client struct {
	serverURL string
	trials    int
	http      *http.Client
}

// NewClient returns a client that requests trials rollouts per move.
func NewClient(serverURL string, trials int) *Client {
	return &Client{
		serverURL: serverURL,
		trials:    trials,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) FindMove(ctx context.Context, b *game.Board, player game.Cell) (game.Position, metrics.SearchMetric, error) {
	var resp communication.MoveResponse
	if err := c.post(ctx, "/api/move", communication.NewBoardRequest(b, player, c.trials), &resp); err != nil {
		return game.Position{}, metrics.SearchMetric{}, err
	}
	if resp.Done {
		return game.Position{}, metrics.SearchMetric{}, searcher.ErrNoMoveAvailable
	}
	return game.Position{Row: resp.Row, Col: resp.Col}, metrics.SearchMetric{}, nil
}

// Render returns the server's text rendering of b.
func (c *Client) Render(ctx context.Context, b *game.Board) (string, error) {
	var resp communication.RenderResponse
	if err := c.post(ctx, "/api/render", communication.NewBoardRequest(b, game.Empty, 0), &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach move server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("move server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
