package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/election"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/platform/middleware"
)

// ElectionService defines the election operations the handler delegates to.
type ElectionService interface {
	NewChallenge() election.Challenge
	RegisterVoter(ctx context.Context, reg domain.Registration) (domain.Voter, error)
	CastVote(ctx context.Context, voterID, candidateID string) (bool, error)
	AddCandidate(ctx context.Context, input domain.CandidateInput) (domain.Candidate, error)
	UpdateCandidate(ctx context.Context, id string, input domain.CandidateInput) (domain.Candidate, error)
	DeleteCandidate(ctx context.Context, id string) error
	Voters() []domain.Voter
	Candidates() []domain.Candidate
	AuditLog() []domain.AuditEntry
	Analytics() election.Analytics
}

// ElectionHandler exposes the registration, voting and candidate management
// seams over HTTP.
type ElectionHandler struct {
	elections ElectionService
	logger    *slog.Logger
}

func NewElectionHandler(elections ElectionService, logger *slog.Logger) *ElectionHandler {
	return &ElectionHandler{elections: elections, logger: logger}
}

func (h *ElectionHandler) handleChallenge(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.elections.NewChallenge())
}

func (h *ElectionHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeError(w, domain.NewError(domain.CodeValidation, "invalid request body"))
		return
	}

	voter, err := h.elections.RegisterVoter(r.Context(), reg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, voter)
}

type castVoteRequest struct {
	CandidateID string `json:"candidateId"`
}

type castVoteResponse struct {
	Success bool `json:"success"`
}

// handleCastVote spends the ballot of the authenticated voter; the voter id
// comes from the token, never the request body, so a voter can only vote as
// themselves.
func (h *ElectionHandler) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewError(domain.CodeValidation, "invalid request body"))
		return
	}

	voterID := middleware.GetSubject(r.Context())
	ok, err := h.elections.CastVote(r.Context(), voterID, req.CandidateID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusConflict, castVoteResponse{Success: false})
		return
	}
	writeJSON(w, http.StatusOK, castVoteResponse{Success: true})
}

func (h *ElectionHandler) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.elections.Candidates())
}

func (h *ElectionHandler) handleListVoters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.elections.Voters())
}

func (h *ElectionHandler) handleListAuditLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.elections.AuditLog())
}

func (h *ElectionHandler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.elections.Analytics())
}

func (h *ElectionHandler) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeCandidateInput(w, r)
	if !ok {
		return
	}

	candidate, err := h.elections.AddCandidate(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, candidate)
}

func (h *ElectionHandler) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeCandidateInput(w, r)
	if !ok {
		return
	}

	candidate, err := h.elections.UpdateCandidate(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

func (h *ElectionHandler) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if err := h.elections.DeleteCandidate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeCandidateInput(w http.ResponseWriter, r *http.Request) (domain.CandidateInput, bool) {
	var input domain.CandidateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, domain.NewError(domain.CodeValidation, "invalid request body"))
		return domain.CandidateInput{}, false
	}
	if input.Name == "" {
		writeError(w, domain.NewError(domain.CodeValidation, "candidate name is required"))
		return domain.CandidateInput{}, false
	}
	return input, true
}
