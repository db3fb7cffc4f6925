package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/webprobe-dev/webprobe/internal/core"
	"github.com/webprobe-dev/webprobe/internal/service"
)

// startRunRequest is the request body for starting a campaign run.
type startRunRequest struct {
	RunID      string   `json:"run_id,omitempty"`
	TargetURL  string   `json:"target_url"`
	Candidates int      `json:"candidates"`
	Execute    int      `json:"execute"`
	Categories []string `json:"categories,omitempty"`
}

// startRunResponse acknowledges an accepted run.
type startRunResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// handleStartRun launches a campaign run in the background and returns its
// ID immediately.
func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	var body startRunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if body.TargetURL == "" {
		respondError(w, http.StatusUnprocessableEntity, "target_url is required")
		return
	}
	if body.Candidates <= 0 {
		body.Candidates = 10
	}
	if body.Execute <= 0 {
		body.Execute = 5
	}

	categories := make([]core.Category, 0, len(body.Categories))
	for _, c := range body.Categories {
		categories = append(categories, core.ParseCategory(c))
	}

	id, err := s.manager.Start(service.RunRequest{
		RunID: core.RunID(body.RunID),
		Requirements: core.Requirements{
			TargetURL:      body.TargetURL,
			CandidateCount: body.Candidates,
			Categories:     categories,
		},
		SelectCount: body.Execute,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, startRunResponse{
		RunID:  id.String(),
		Status: string(core.RunStatusRunning),
	})
}

// handleListRuns returns all known run states, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"runs": s.manager.Registry().List(),
	})
}

// handleGetRun returns one run's progress snapshot.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := core.RunID(chi.URLParam(r, "runID"))
	state, ok := s.manager.Registry().Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "run not found: "+id.String())
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// handleGetRunReport returns the persisted workflow report for a run.
func (s *Server) handleGetRunReport(w http.ResponseWriter, r *http.Request) {
	id := core.RunID(chi.URLParam(r, "runID"))
	report, err := s.store.LoadWorkflowReport(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// handleGetRunAnalysis returns the persisted analysis report for a run.
func (s *Server) handleGetRunAnalysis(w http.ResponseWriter, r *http.Request) {
	id := core.RunID(chi.URLParam(r, "runID"))
	report, err := s.store.LoadAnalysis(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// handleListReports lists the persisted report documents.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if infos == nil {
		infos = []core.ReportInfo{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"reports": infos})
}
