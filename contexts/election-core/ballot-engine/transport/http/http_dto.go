package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateElectionRequest struct {
	Name string `json:"name"`
}

type ElectionResponse struct {
	ElectionID   string `json:"election_id"`
	Name         string `json:"name,omitempty"`
	AdminAddress string `json:"admin_address"`
	Phase        string `json:"phase"`
}

type PhaseResponse struct {
	ElectionID string `json:"election_id"`
	Phase      string `json:"phase"`
}

type AdvancePhaseRequest struct {
	TargetPhase string `json:"target_phase"`
}

type TransitionResponse struct {
	ElectionID    string `json:"election_id"`
	PreviousPhase string `json:"previous_phase"`
	NewPhase      string `json:"new_phase"`
}

type RegisterVoterRequest struct {
	Address string `json:"address"`
}

type VoterResponse struct {
	Address         string           `json:"address"`
	Registered      bool             `json:"registered"`
	HasVoted        bool             `json:"has_voted"`
	VotedProposalID *int             `json:"voted_proposal_id,omitempty"`
	Receipt         *ReceiptResponse `json:"receipt,omitempty"`
}

type SubmitProposalRequest struct {
	Description string `json:"description"`
}

type ProposalResponse struct {
	ProposalID  int    `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
	SubmittedBy string `json:"submitted_by,omitempty"`
}

type ProposalListResponse struct {
	ElectionID string             `json:"election_id"`
	Items      []ProposalResponse `json:"items"`
}

type CastVoteRequest struct {
	ProposalID int `json:"proposal_id"`
}

type ReceiptResponse struct {
	VoterAddress string    `json:"voter_address"`
	ProposalID   int       `json:"proposal_id"`
	Description  string    `json:"description"`
	CastAt       time.Time `json:"cast_at"`
}

type WinnerResponse struct {
	ElectionID  string `json:"election_id"`
	ProposalID  int    `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}
