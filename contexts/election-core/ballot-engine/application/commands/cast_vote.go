package commands

import (
	"context"
	"strings"

	application "quorum/contexts/election-core/ballot-engine/application"
	"quorum/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "quorum/contexts/election-core/ballot-engine/domain/errors"
	"quorum/contexts/election-core/ballot-engine/ports"
)

// CastVoteCommand records the single vote a registered voter may cast.
type CastVoteCommand struct {
	ElectionID   string
	VoterAddress string
	ProposalID   int
}

type CastVoteResult struct {
	Receipt entities.BallotReceipt
}

// CastVote enforces the one-vote invariant: the HasVoted flag is set in the
// same committed mutation that increments the proposal count, and nothing
// ever clears it.
func (uc ProposalUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	voterAddress, err := resolveAddress(cmd.VoterAddress)
	if err != nil {
		return CastVoteResult{}, err
	}

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return CastVoteResult{}, err
	}
	if election.Phase != entities.PhaseVotingSessionStarted {
		return CastVoteResult{}, domainerrors.ErrVotingClosed
	}
	voter, ok := election.VoterOf(voterAddress)
	if !ok || !voter.Registered {
		return CastVoteResult{}, domainerrors.ErrNotRegistered
	}
	if voter.HasVoted {
		return CastVoteResult{}, domainerrors.ErrAlreadyVoted
	}
	if cmd.ProposalID < 0 || cmd.ProposalID >= len(election.Proposals) {
		return CastVoteResult{}, domainerrors.ErrInvalidProposal
	}

	now := uc.now()
	election.Proposals[cmd.ProposalID].VoteCount++
	voter.HasVoted = true
	voter.VotedProposalID = cmd.ProposalID
	voter.VotedAt = now
	election.Voters[voterAddress] = voter

	receipt := entities.BallotReceipt{
		VoterAddress: voterAddress,
		ProposalID:   cmd.ProposalID,
		Description:  election.Proposals[cmd.ProposalID].Description,
		CastAt:       now,
	}
	election.Ballots[voterAddress] = receipt
	election.UpdatedAt = now

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CastVoteResult{}, err
	}
	envelope, err := newBallotEnvelope(eventID, EventVoteCast, election.ElectionID, now, map[string]any{
		"election_id":   election.ElectionID,
		"voter_address": voterAddress,
		"proposal_id":   cmd.ProposalID,
	})
	if err != nil {
		return CastVoteResult{}, err
	}
	if err := uc.Elections.SaveElection(ctx, election, []ports.EventEnvelope{envelope}); err != nil {
		return CastVoteResult{}, err
	}

	logger.Info("vote cast",
		"event", "ballot_vote_cast",
		"module", "election-core/ballot-engine",
		"layer", "application",
		"election_id", election.ElectionID,
		"voter_address", voterAddress,
		"proposal_id", cmd.ProposalID,
	)
	return CastVoteResult{Receipt: receipt}, nil
}
