package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	ballotengine "quorum/contexts/election-core/ballot-engine"
	domainerrors "quorum/contexts/election-core/ballot-engine/domain/errors"
	ballothttp "quorum/contexts/election-core/ballot-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "quorum/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	ballot ballotengine.Module
}

func New(ballot ballotengine.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		ballot: ballot,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/elections", s.handleCreateElection)
	s.mux.HandleFunc("GET /v1/elections/{election_id}/phase", s.handleGetPhase)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/phase/advance", s.handleAdvancePhase)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/voters", s.handleRegisterVoter)
	s.mux.HandleFunc("GET /v1/elections/{election_id}/voters/{address}", s.handleGetVoter)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/proposals", s.handleSubmitProposal)
	s.mux.HandleFunc("GET /v1/elections/{election_id}/proposals", s.handleListProposals)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/tally", s.handleComputeWinner)
	s.mux.HandleFunc("GET /v1/elections/{election_id}/winner", s.handleGetWinner)
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	adminAddress := r.Header.Get("X-Admin-Address")
	if strings.TrimSpace(adminAddress) == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_admin", "X-Admin-Address header is required")
		return
	}

	var req ballothttp.CreateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ballot.Handler.CreateElectionHandler(r.Context(), adminAddress, req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPhase(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ballot.Handler.GetPhaseHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdvancePhase(w http.ResponseWriter, r *http.Request) {
	adminAddress := r.Header.Get("X-Admin-Address")
	if strings.TrimSpace(adminAddress) == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_admin", "X-Admin-Address header is required")
		return
	}

	var req ballothttp.AdvancePhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ballot.Handler.AdvancePhaseHandler(r.Context(), adminAddress, r.PathValue("election_id"), req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterVoter(w http.ResponseWriter, r *http.Request) {
	adminAddress := r.Header.Get("X-Admin-Address")
	if strings.TrimSpace(adminAddress) == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_admin", "X-Admin-Address header is required")
		return
	}

	var req ballothttp.RegisterVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ballot.Handler.RegisterVoterHandler(r.Context(), adminAddress, r.PathValue("election_id"), req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetVoter(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ballot.Handler.GetVoterHandler(r.Context(), r.PathValue("election_id"), r.PathValue("address"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitProposal(w http.ResponseWriter, r *http.Request) {
	voterAddress := r.Header.Get("X-Voter-Address")
	if strings.TrimSpace(voterAddress) == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_voter", "X-Voter-Address header is required")
		return
	}

	var req ballothttp.SubmitProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ballot.Handler.SubmitProposalHandler(r.Context(), voterAddress, r.PathValue("election_id"), req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ballot.Handler.ListProposalsHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	voterAddress := r.Header.Get("X-Voter-Address")
	if strings.TrimSpace(voterAddress) == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_voter", "X-Voter-Address header is required")
		return
	}

	var req ballothttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ballot.Handler.CastVoteHandler(r.Context(), voterAddress, r.PathValue("election_id"), req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleComputeWinner(w http.ResponseWriter, r *http.Request) {
	adminAddress := r.Header.Get("X-Admin-Address")
	if strings.TrimSpace(adminAddress) == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_admin", "X-Admin-Address header is required")
		return
	}

	resp, err := s.ballot.Handler.ComputeWinnerHandler(r.Context(), adminAddress, r.PathValue("election_id"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetWinner(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ballot.Handler.GetWinnerHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeBallotDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrElectionNotFound):
		writeBallotError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyInitialized):
		writeBallotError(w, http.StatusConflict, "already_initialized", err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized):
		writeBallotError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidPhaseTransition):
		writeBallotError(w, http.StatusConflict, "invalid_phase_transition", err.Error())
	case errors.Is(err, domainerrors.ErrPhaseClosed):
		writeBallotError(w, http.StatusConflict, "phase_closed", err.Error())
	case errors.Is(err, domainerrors.ErrVotingClosed):
		writeBallotError(w, http.StatusConflict, "voting_closed", err.Error())
	case errors.Is(err, domainerrors.ErrPrematureTally):
		writeBallotError(w, http.StatusConflict, "premature_tally", err.Error())
	case errors.Is(err, domainerrors.ErrResultsNotReady):
		writeBallotError(w, http.StatusConflict, "results_not_ready", err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyRegistered):
		writeBallotError(w, http.StatusConflict, "already_registered", err.Error())
	case errors.Is(err, domainerrors.ErrNotRegistered):
		writeBallotError(w, http.StatusForbidden, "not_registered", err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyVoted):
		writeBallotError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidProposal):
		writeBallotError(w, http.StatusBadRequest, "invalid_proposal", err.Error())
	case errors.Is(err, domainerrors.ErrNoProposals):
		writeBallotError(w, http.StatusConflict, "no_proposals", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidAddress):
		writeBallotError(w, http.StatusBadRequest, "invalid_address", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidInput):
		writeBallotError(w, http.StatusBadRequest, "invalid_input", err.Error())
	default:
		writeBallotError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBallotError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ballothttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
