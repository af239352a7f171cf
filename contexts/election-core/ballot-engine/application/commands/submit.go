package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "quorum/contexts/election-core/ballot-engine/application"
	"quorum/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "quorum/contexts/election-core/ballot-engine/domain/errors"
	"quorum/contexts/election-core/ballot-engine/ports"
)

// SubmitProposalCommand appends one proposal on behalf of a registered
// voter.
type SubmitProposalCommand struct {
	ElectionID   string
	VoterAddress string
	Description  string
}

type SubmitProposalResult struct {
	Proposal entities.Proposal
}

// ProposalUseCase owns the ordered proposal list and vote casting against
// it. Indices are dense (0..n-1) in arrival order and proposals are never
// edited or removed. Duplicate descriptions are allowed.
type ProposalUseCase struct {
	Elections ports.ElectionRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc ProposalUseCase) SubmitProposal(ctx context.Context, cmd SubmitProposalCommand) (SubmitProposalResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	voterAddress, err := resolveAddress(cmd.VoterAddress)
	if err != nil {
		return SubmitProposalResult{}, err
	}
	description := strings.TrimSpace(cmd.Description)
	if description == "" {
		return SubmitProposalResult{}, domainerrors.ErrInvalidInput
	}

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return SubmitProposalResult{}, err
	}
	if election.Phase != entities.PhaseProposalsRegistrationStarted {
		return SubmitProposalResult{}, domainerrors.ErrPhaseClosed
	}
	if !election.IsEligible(voterAddress) {
		return SubmitProposalResult{}, domainerrors.ErrNotRegistered
	}

	now := uc.now()
	proposal := entities.Proposal{
		Index:       len(election.Proposals),
		Description: description,
		VoteCount:   0,
		SubmittedBy: voterAddress,
		CreatedAt:   now,
	}
	election.Proposals = append(election.Proposals, proposal)
	election.UpdatedAt = now

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitProposalResult{}, err
	}
	envelope, err := newBallotEnvelope(eventID, EventProposalRegistered, election.ElectionID, now, map[string]any{
		"election_id": election.ElectionID,
		"proposal_id": proposal.Index,
	})
	if err != nil {
		return SubmitProposalResult{}, err
	}
	if err := uc.Elections.SaveElection(ctx, election, []ports.EventEnvelope{envelope}); err != nil {
		return SubmitProposalResult{}, err
	}

	logger.Info("proposal registered",
		"event", "ballot_proposal_registered",
		"module", "election-core/ballot-engine",
		"layer", "application",
		"election_id", election.ElectionID,
		"proposal_id", proposal.Index,
		"voter_address", voterAddress,
	)
	return SubmitProposalResult{Proposal: proposal}, nil
}

func (uc ProposalUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
