package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/config"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/engine"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/round"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg      *config.Config
	log      zerolog.Logger
	sessions *session.Manager
	results  round.Recorder
	router   chi.Router
}

// New wires the session manager and routes. A nil recorder disables round auditing.
func New(cfg *config.Config, game *session.Game, results round.Recorder, logger zerolog.Logger) *Server {
	if results == nil {
		results = round.Discard{}
	}
	srv := &Server{
		cfg:      cfg,
		log:      logger,
		sessions: session.NewManager(game, sourceFactory(cfg)),
		results:  results,
	}
	srv.router = srv.routes()
	return srv
}

// sourceFactory gives each session its own generator; with WHEEL_SEED set, session n uses seed+n.
func sourceFactory(cfg *config.Config) func() engine.RandomSource {
	if !cfg.HasSeed {
		return engine.DefaultSource
	}
	var n atomic.Uint64
	return func() engine.RandomSource {
		return engine.NewSeededSource(cfg.Seed + n.Add(1) - 1)
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         60 * 15,
	}))

	r.Get("/health", s.health)
	r.Route("/wheel", func(rr chi.Router) {
		rr.Get("/config", s.handleConfig)
		rr.Post("/sessions", s.handleCreateSession)
		rr.Route("/sessions/{id}", func(sr chi.Router) {
			sr.Get("/", s.handleSessionStatus)
			sr.Delete("/", s.handleDeleteSession)
			sr.Post("/spin", s.handleSpin)
			sr.Post("/finish", s.handleFinish)
		})
	})
	return r
}

// Handler exposes the router (tests use it with httptest).
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, expiring idle sessions in the background.
func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Port
	if port <= 0 {
		port = 8081
	}
	httpSrv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go s.expireSessions(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", httpSrv.Addr).Int("sectors", s.sessions.Game().Layout.Len()).Msg("wheel server listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) expireSessions(ctx context.Context) {
	ttl := time.Duration(s.cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.sessions.Expire(time.Now().Add(-ttl)); n > 0 {
				s.log.Info().Int("expired", n).Int("live", s.sessions.Len()).Msg("expired idle sessions")
			}
		case <-ctx.Done():
			return
		}
	}
}

// requestLogger logs method, path, status and latency for each request (no body or secrets).
func (s *Server) requestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		h.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("latency", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "service": "prize-wheel", "sessions": s.sessions.Len()})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
