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

// ComputeWinnerCommand runs the tally scan after the voting session ended.
type ComputeWinnerCommand struct {
	ElectionID   string
	ActorAddress string
}

type ComputeWinnerResult struct {
	Winner entities.Proposal
}

// TallyUseCase computes the deterministic winner. The scan covers every
// proposal index and replaces the running best only on a strictly greater
// count, so the first-registered proposal wins ties. Computing the winner
// never advances the phase; MarkTallied stays a separate administrator
// call.
type TallyUseCase struct {
	Elections ports.ElectionRepository
	Admin     ports.AdminPolicy
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc TallyUseCase) ComputeWinner(ctx context.Context, cmd ComputeWinnerCommand) (ComputeWinnerResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	actor, err := resolveAddress(cmd.ActorAddress)
	if err != nil {
		return ComputeWinnerResult{}, err
	}

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return ComputeWinnerResult{}, err
	}
	if err := uc.Admin.EnsureAdministrator(ctx, election, actor); err != nil {
		return ComputeWinnerResult{}, err
	}
	if election.Phase != entities.PhaseVotingSessionEnded {
		return ComputeWinnerResult{}, domainerrors.ErrPrematureTally
	}
	if len(election.Proposals) == 0 {
		return ComputeWinnerResult{}, domainerrors.ErrNoProposals
	}
	if election.WinnerComputed {
		// Counts are frozen once voting ended, so the stored result stands.
		winner, _ := election.Winner()
		return ComputeWinnerResult{Winner: winner}, nil
	}

	winning := 0
	for index := 1; index < len(election.Proposals); index++ {
		if election.Proposals[index].VoteCount > election.Proposals[winning].VoteCount {
			winning = index
		}
	}
	election.WinningProposalID = winning
	election.WinnerComputed = true
	election.UpdatedAt = uc.now()

	if err := uc.Elections.SaveElection(ctx, election, nil); err != nil {
		return ComputeWinnerResult{}, err
	}

	winner := election.Proposals[winning]
	logger.Info("winner computed",
		"event", "ballot_winner_computed",
		"module", "election-core/ballot-engine",
		"layer", "application",
		"election_id", election.ElectionID,
		"winning_proposal_id", winning,
		"vote_count", winner.VoteCount,
	)
	return ComputeWinnerResult{Winner: winner}, nil
}

func (uc TallyUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
