package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"ttt/communication"
	"ttt/config"
	"ttt/engine"
	"ttt/game"
	"ttt/searcher"
	"ttt/searcher/agent"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// maxDim bounds the boards the server searches on. A rollout costs O(dim⁴).
const maxDim = 10

// Server exposes the move search over HTTP.
type Server struct {
	cfg      config.Config
	renderer *game.Renderer
	upgrader websocket.Upgrader
}

func NewServer(cfg config.Config) *Server {
	return &Server{
		cfg:      cfg,
		renderer: game.NewRenderer(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/move", s.handleMove)
	r.Post("/api/render", s.handleRender)
	r.Get("/ws/selfplay", s.handleSelfPlay)
	return r
}

// Start serves until the listener fails.
func (s *Server) Start() error {
	log.Info().Msgf("starting move server on %s", s.cfg.Server.Addr)
	server := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) search() *searcher.MonteCarlo {
	return searcher.NewMonteCarlo(s.cfg.Search.Options()...)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req communication.BoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	b, err := req.Board()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if b.Dim() > maxDim {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("board dimension %d exceeds %d", b.Dim(), maxDim))
		return
	}
	trials := s.cfg.Search.Trials
	if req.Trials != nil {
		trials = *req.Trials
	}
	if err := s.checkTrials(trials); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	move, err := s.search().ComputeMove(r.Context(), b, req.Player, trials)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Msg("move search abandoned by client")
	case errors.Is(err, searcher.ErrNoMoveAvailable):
		writeJSON(w, http.StatusOK, communication.MoveResponse{Done: true, Outcome: b.Outcome().String()})
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSON(w, http.StatusOK, communication.MoveResponse{Row: move.Row, Col: move.Col, Outcome: b.Outcome().String()})
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req communication.BoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	b, err := req.Board()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, communication.RenderResponse{Text: s.renderer.Render(b), Outcome: b.Outcome().String()})
}

// handleSelfPlay streams one Monte Carlo vs Monte Carlo game, one message per
// move and a final message with the outcome.
func (s *Server) handleSelfPlay(w http.ResponseWriter, r *http.Request) {
	dim, err := queryInt(r, "dim", s.cfg.Game.Dim)
	if err != nil || dim < 1 || dim > maxDim {
		writeError(w, http.StatusBadRequest, "invalid dim")
		return
	}
	trials, err := queryInt(r, "trials", s.cfg.Search.Trials)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trials")
		return
	}
	if err := s.checkTrials(trials); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	reverse := s.cfg.Game.Reverse
	if raw := r.URL.Query().Get("reverse"); raw != "" {
		if reverse, err = strconv.ParseBool(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid reverse")
			return
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Stop the game when the client goes away. Reading also processes the
	// client's close frame.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	b, err := game.NewBoard(dim, reverse)
	if err != nil {
		return
	}
	x := agent.NewMonteCarloAgent(s.search(), trials)
	o := agent.NewMonteCarloAgent(s.search(), trials)
	e := engine.LocalEngine(b, x, o)

	var writeErr error
	e.Observe(func(u engine.Update) {
		if writeErr != nil {
			return
		}
		writeErr = conn.WriteJSON(communication.Update{
			Step:    u.Step,
			Player:  u.Player.String(),
			Move:    u.Move,
			Grid:    u.Board.Grid(),
			Text:    s.renderer.Render(u.Board),
			Outcome: u.Outcome.String(),
		})
		if writeErr != nil {
			cancel()
		}
	})

	outcome, gameMetric, _, err := e.Run(ctx)
	if writeErr != nil {
		log.Warn().Err(writeErr).Msg("self-play client went away")
		return
	}
	if errors.Is(err, context.Canceled) {
		log.Warn().Msg("self-play client disconnected")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("self-play game failed")
		return
	}
	log.Info().Msgf("self-play game on %dx%d board over after %d moves: %s", dim, dim, gameMetric.TotalMoves, outcome)

	final := communication.Update{
		Step:    gameMetric.TotalMoves,
		Grid:    b.Grid(),
		Text:    s.renderer.Render(b),
		Outcome: outcome.String(),
		Final:   true,
	}
	if err := conn.WriteJSON(final); err != nil {
		log.Warn().Err(err).Msg("failed to send final self-play update")
	}
}

func (s *Server) checkTrials(trials int) error {
	if trials < 0 || trials > s.cfg.Search.MaxTrials {
		return fmt.Errorf("trials must be between 0 and %d, got %d", s.cfg.Search.MaxTrials, trials)
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, communication.ErrorResponse{Error: msg})
}
