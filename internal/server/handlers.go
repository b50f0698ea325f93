package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rgehrsitz/finplan/internal/domain"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type allocationResponse struct {
	CashFlow   domain.CashFlowSummary  `json:"cash_flow"`
	Allocation domain.AllocationResult `json:"recommended_allocation"`
}

type suggestResponse struct {
	Suggestions []domain.Suggestion `json:"suggested_goals"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Warn("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: RequestID(r.Context())})
}

// decode reads a JSON body into v, rejecting unknown fields and trailing data
func decode(r *http.Request, w http.ResponseWriter, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

// readProfile decodes and validates a household profile, writing the error response itself
func (s *Server) readProfile(w http.ResponseWriter, r *http.Request) (*domain.HouseholdProfile, bool) {
	var profile domain.HouseholdProfile
	if err := decode(r, w, &profile); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return nil, false
	}
	if err := s.parser.ValidateProfile(&profile); err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, err)
		return nil, false
	}
	return &profile, true
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.readProfile(w, r)
	if !ok {
		return
	}
	summary, err := s.engine.Analyze(profile)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.metrics.plansTotal.WithLabelValues(string(summary.RiskProfile)).Inc()
	for _, g := range summary.Goals {
		s.metrics.observeGoal(g.Feasible)
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleProjectGoal(w http.ResponseWriter, r *http.Request) {
	var goal domain.Goal
	if err := decode(r, w, &goal); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.parser.ValidateGoal(&goal); err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	projection := s.engine.Project(goal)
	s.metrics.observeGoal(projection.Feasible)
	s.writeJSON(w, http.StatusOK, projection)
}

func (s *Server) handleAllocation(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.readProfile(w, r)
	if !ok {
		return
	}
	cashflow := s.engine.Summarize(profile)
	s.writeJSON(w, http.StatusOK, allocationResponse{
		CashFlow:   cashflow,
		Allocation: s.engine.Allocate(profile, cashflow),
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.readProfile(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, suggestResponse{Suggestions: s.engine.Suggest(profile)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
