// Package server exposes the quiz over HTTP for the browser UI.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/MeKo-Tech/huequiz/internal/options"
	"github.com/MeKo-Tech/huequiz/internal/quiz"
	"github.com/MeKo-Tech/huequiz/internal/scores"
	"github.com/MeKo-Tech/huequiz/internal/swatch"
)

// Config configures the quiz server.
type Config struct {
	// Static serves the web UI at "/" when set.
	Static         fs.FS
	PNGCompression string
	CacheControl   string
	Swatch         swatch.Options
	SessionTTL     time.Duration
	MaxSessions    int
	// Seed makes session question streams deterministic when non-zero.
	Seed uint64
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Server serves quiz sessions, conversions, swatches and scores.
type Server struct {
	cfg      Config
	store    *scores.Store
	logger   *slog.Logger
	sessions *registry
	pngLevel png.CompressionLevel

	seedCounter   atomic.Uint64
	gamesStarted  atomic.Int64
	gamesFinished atomic.Int64
}

// New creates a server. store may be nil, which disables score recording.
func New(cfg Config, store *scores.Store, logger *slog.Logger) (*Server, error) {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1000
	}
	if cfg.CacheControl == "" {
		cfg.CacheControl = "public, max-age=86400"
	}
	if cfg.Swatch.Size <= 0 {
		cfg.Swatch = swatch.DefaultOptions()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	level, err := swatch.ParseCompression(cfg.PNGCompression)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:      cfg,
		store:    store,
		logger:   logger,
		sessions: newRegistry(cfg.SessionTTL, cfg.MaxSessions, cfg.Now),
		pngLevel: level,
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/answers", s.handleAnswer)
	mux.HandleFunc("GET /api/sessions/{id}/grid.png", s.handleGrid)
	mux.HandleFunc("GET /api/convert", s.handleConvert)
	mux.HandleFunc("GET /api/swatch/{file}", s.handleSwatch)
	mux.HandleFunc("GET /api/scores", s.handleScores)

	if s.cfg.Static != nil {
		mux.Handle("GET /", http.FileServerFS(s.cfg.Static))
	}

	return withCORS(mux)
}

// Status reports current activity.
func (s *Server) Status() Status {
	return Status{
		ActiveSessions: s.sessions.len(),
		GamesStarted:   s.gamesStarted.Load(),
		GamesFinished:  s.gamesFinished.Load(),
		ScoresEnabled:  s.store != nil,
	}
}

// SweepLoop evicts idle sessions every interval until ctx is done.
func (s *Server) SweepLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.sweep(); n > 0 {
				s.log().Debug("evicted idle sessions", "count", n)
			}
		}
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	s.writeJSON(w, http.StatusOK, s.Status())
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	settings, err := req.settings()
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	sess, err := quiz.New(settings, options.NewGenerator(options.NewSource(s.nextSeed())), s.cfg.Now)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	if err := sess.Start(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	e, err := s.sessions.add(req.Player, sess)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.gamesStarted.Add(1)

	s.log().Debug("session started",
		"id", e.id,
		"mode", settings.Mode,
		"difficulty", settings.Difficulty,
		"range", sess.DifficultyRange(),
	)

	e.mu.Lock()
	defer e.mu.Unlock()
	s.writeJSON(w, http.StatusCreated, s.sessionView(r.Context(), e))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	e, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	w.Header().Set("Cache-Control", "no-store")
	s.writeJSON(w, http.StatusOK, s.sessionView(r.Context(), e))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.sessions.get(id); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.sessions.remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	e, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	var req answerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<12)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := e.sess.Answer(req.Position)
	if err != nil {
		if errors.Is(err, quiz.ErrGameOver) {
			s.record(r.Context(), e)
		}
		s.writeError(w, statusFor(err), err)
		return
	}

	s.writeJSON(w, http.StatusOK, answerJSON{
		Chosen:          res.Chosen,
		CorrectPosition: res.CorrectPosition,
		Correct:         res.Correct,
		Session:         s.sessionView(r.Context(), e),
	})
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	e, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	e.mu.Lock()
	q, err := e.sess.Question()
	e.mu.Unlock()
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	s.writePNG(w, swatch.Grid(q, s.cfg.Swatch))
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	c, err := colormodel.Parse(r.URL.Query().Get("value"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, newColorJSON(c))
}

func (s *Server) handleSwatch(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}
	c, err := colormodel.FromHex(name)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	opts := s.cfg.Swatch
	if v := r.URL.Query().Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > 1024 {
			s.writeError(w, http.StatusBadRequest, errors.New("size must be an integer in [1, 1024]"))
			return
		}
		opts.Size = size
	}

	w.Header().Set("Cache-Control", s.cfg.CacheControl)
	s.writePNG(w, swatch.Render(c, opts))
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, errors.New("score recording is disabled"))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.New("limit must be an integer"))
			return
		}
		limit = n
	}

	var (
		results []scores.Result
		err     error
	)
	if v := r.URL.Query().Get("mode"); v != "" {
		mode, perr := quiz.ParseMode(v)
		if perr != nil {
			s.writeError(w, statusFor(perr), perr)
			return
		}
		results, err = s.store.Best(r.Context(), mode, limit)
	} else {
		results, err = s.store.Recent(r.Context(), limit)
	}
	if err != nil {
		s.log().Error("failed to list scores", "error", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("failed to list scores"))
		return
	}

	out := make([]resultJSON, 0, len(results))
	for _, res := range results {
		out = append(out, newResultJSON(res))
	}
	w.Header().Set("Cache-Control", "no-store")
	s.writeJSON(w, http.StatusOK, out)
}

// sessionView renders a session and records it once it is over.
// The caller holds e.mu.
func (s *Server) sessionView(ctx context.Context, e *entry) sessionJSON {
	sess := e.sess
	settings := sess.Settings()
	score := sess.Score()

	v := sessionJSON{
		ID:          e.id,
		Player:      e.player,
		Mode:        string(settings.Mode),
		Difficulty:  settings.Difficulty,
		Over:        sess.Over(),
		Score:       scoreJSON{Right: score.Right, Wrong: score.Wrong, Answered: score.Answered},
		ElapsedMS:   sess.Elapsed().Milliseconds(),
		RemainingMS: sess.Remaining().Milliseconds(),
	}

	if v.Over {
		v.Summary = sess.Summary()
		s.record(ctx, e)
		return v
	}

	if view, err := sess.Current(); err == nil {
		v.Question = &questionJSON{
			Number:      view.Number,
			Total:       view.Total,
			Given:       view.Given,
			GivenFormat: string(settings.Given),
			GuessFormat: string(settings.Guess),
			Options:     view.Options,
		}
	}
	return v
}

func (s *Server) record(ctx context.Context, e *entry) {
	if e.recorded {
		return
	}
	e.recorded = true
	s.gamesFinished.Add(1)

	if s.store == nil {
		return
	}
	result := scores.FromSession(e.player, e.sess, s.cfg.Now())
	id, err := s.store.Record(ctx, result)
	if err != nil {
		s.log().Error("failed to record result", "session", e.id, "error", err)
		return
	}
	s.log().Info("game recorded",
		"session", e.id,
		"result_id", id,
		"mode", result.Mode,
		"right", result.Right,
		"wrong", result.Wrong,
	)
}

func (s *Server) nextSeed() uint64 {
	if s.cfg.Seed != 0 {
		return s.cfg.Seed + s.seedCounter.Add(1)
	}
	return rand.Uint64()
}

func (s *Server) writePNG(w http.ResponseWriter, img image.Image) {
	var buf bytes.Buffer
	if err := swatch.EncodePNG(&buf, img, s.pngLevel); err != nil {
		s.log().Error("failed to encode png", "error", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("failed to encode image"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log().Error("failed to write response", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log().Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log().Error("request failed", "status", status, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errTooManySessions):
		return http.StatusServiceUnavailable
	case errors.Is(err, quiz.ErrGameOver), errors.Is(err, quiz.ErrNotStarted):
		return http.StatusConflict
	case errors.Is(err, colormodel.ErrMalformedInput),
		errors.Is(err, colormodel.ErrOutOfRange),
		errors.Is(err, options.ErrOutOfRange),
		errors.Is(err, quiz.ErrInvalidSettings),
		errors.Is(err, quiz.ErrInvalidPosition):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
