package server

import (
	"errors"
	"net/http"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/round"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/session"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/wheel"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type configResponse struct {
	Sectors        []wheel.Sector `json:"sectors"`
	FreeSpins      int            `json:"freeSpins"`
	BonusTrigger   rewards.Token  `json:"bonusTrigger"`
	SpinDurationMs int64          `json:"spinDurationMs"`
}

// handleConfig implements GET /wheel/config: what the page needs to draw the wheel.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	g := s.sessions.Game()
	writeJSON(w, http.StatusOK, configResponse{
		Sectors:        g.Layout.Sectors(),
		FreeSpins:      g.File.FreeSpins,
		BonusTrigger:   g.File.BonusTrigger,
		SpinDurationMs: g.File.SpinDuration.Milliseconds(),
	})
}

type sessionResponse struct {
	SessionID uuid.UUID      `json:"sessionId"`
	Status    session.Status `json:"status"`
}

// handleCreateSession implements POST /wheel/sessions. Every page load gets a fresh engine.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, m, err := s.sessions.Create()
	if err != nil {
		s.log.Error().Err(err).Msg("create session")
		writeWheelError(w, http.StatusInternalServerError, wheelError{Code: "SESSION_CREATE_FAILED", Error: "could not create session"})
		return
	}
	s.log.Info().Str("session_id", id.String()).Msg("session created")
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id, Status: m.Status()})
}

// handleSessionStatus implements GET /wheel/sessions/{id}.
func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	id, m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, Status: m.Status()})
}

// handleDeleteSession implements DELETE /wheel/sessions/{id}.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

type spinResponse struct {
	SessionID uuid.UUID     `json:"sessionId"`
	Phase     session.Phase `json:"phase"`
	Step      session.Step  `json:"step"`
}

// handleSpin implements POST /wheel/sessions/{id}/spin. A spin while another is in flight is refused
// with 409 and otherwise ignored.
func (s *Server) handleSpin(w http.ResponseWriter, r *http.Request) {
	id, m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	step, err := m.Spin()
	if err != nil {
		s.writeMachineError(w, id, m, err)
		return
	}
	writeJSON(w, http.StatusOK, spinResponse{SessionID: id, Phase: m.Phase(), Step: step})
}

type finishResponse struct {
	SessionID uuid.UUID      `json:"sessionId"`
	Phase     session.Phase  `json:"phase"`
	Next      *session.Step  `json:"next,omitempty"`
	Round     *session.Round `json:"round,omitempty"`
}

// handleFinish implements POST /wheel/sessions/{id}/finish, the "spin finished" signal. It returns the
// next free spin while the chain runs, otherwise the completed round.
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	id, m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	next, done, err := m.Finish()
	if err != nil {
		s.writeMachineError(w, id, m, err)
		return
	}
	if done != nil {
		if err := s.results.Append(r.Context(), round.FromRound(id, done)); err != nil {
			s.log.Error().Err(err).Str("round_id", done.ID.String()).Msg("record round")
		}
		s.log.Info().
			Str("session_id", id.String()).
			Str("round_id", done.ID.String()).
			Str("reward", string(done.Main.Reward)).
			Bool("free_spins", done.Triggered).
			Str("payout", done.Payout.String()).
			Msg("round complete")
	}
	writeJSON(w, http.StatusOK, finishResponse{SessionID: id, Phase: m.Phase(), Next: next, Round: done})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (uuid.UUID, *session.Machine, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeWheelError(w, http.StatusBadRequest, wheelError{Code: "INVALID_SESSION_ID", Error: "invalid session id"})
		return uuid.Nil, nil, false
	}
	m, ok := s.sessions.Get(id)
	if !ok {
		writeWheelError(w, http.StatusNotFound, wheelError{Code: "SESSION_NOT_FOUND", Error: "session not found", SessionID: id.String()})
		return uuid.Nil, nil, false
	}
	return id, m, true
}

// wheelError is the body of every failed wheel request. Phase is set on 409s so the page can resync.
type wheelError struct {
	Code      string         `json:"code"`
	Error     string         `json:"error"`
	SessionID string         `json:"sessionId,omitempty"`
	Phase     *session.Phase `json:"phase,omitempty"`
}

func writeWheelError(w http.ResponseWriter, status int, body wheelError) {
	writeJSON(w, status, body)
}

// writeMachineError maps Spin/Finish errors: misuse of the spin sequence is a 409 carrying the current
// phase, anything else means the wheel configuration cannot serve the draw.
func (s *Server) writeMachineError(w http.ResponseWriter, id uuid.UUID, m *session.Machine, err error) {
	var ue *session.UsageError
	if !errors.As(err, &ue) {
		s.log.Error().Err(err).Str("session_id", id.String()).Msg("wheel misconfigured")
		writeWheelError(w, http.StatusInternalServerError, wheelError{Code: "CONFIG_ERROR", Error: "wheel misconfigured", SessionID: id.String()})
		return
	}
	code := "USAGE"
	switch {
	case errors.Is(err, session.ErrBusy):
		code = "BUSY"
	case errors.Is(err, session.ErrIdle):
		code = "IDLE"
	}
	phase := m.Phase()
	writeWheelError(w, http.StatusConflict, wheelError{Code: code, Error: ue.Error(), SessionID: id.String(), Phase: &phase})
}
