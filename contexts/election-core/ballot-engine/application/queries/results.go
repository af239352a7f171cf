package queries

import (
	"context"
	"strings"

	"quorum/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "quorum/contexts/election-core/ballot-engine/domain/errors"
	"quorum/contexts/election-core/ballot-engine/domain/valueobjects"
	"quorum/contexts/election-core/ballot-engine/ports"
)

// VoterStatus is the read model for one registry entry, with the ballot
// receipt once the voter cast a vote.
type VoterStatus struct {
	Voter      entities.Voter
	Receipt    entities.BallotReceipt
	HasReceipt bool
}

// ResultsUseCase serves the read side: phase, proposals, voter status, and
// the winner once the election reached votes_tallied.
type ResultsUseCase struct {
	Elections ports.ElectionRepository
}

func (uc ResultsUseCase) GetPhase(ctx context.Context, electionID string) (entities.Phase, error) {
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return "", err
	}
	return election.Phase, nil
}

// GetWinner is rejected until the administrator marked the election
// tallied.
func (uc ResultsUseCase) GetWinner(ctx context.Context, electionID string) (entities.Proposal, error) {
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return entities.Proposal{}, err
	}
	if election.Phase != entities.PhaseVotesTallied {
		return entities.Proposal{}, domainerrors.ErrResultsNotReady
	}
	winner, ok := election.Winner()
	if !ok {
		return entities.Proposal{}, domainerrors.ErrResultsNotReady
	}
	return winner, nil
}

func (uc ResultsUseCase) ListProposals(ctx context.Context, electionID string) ([]entities.Proposal, error) {
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return nil, err
	}
	return election.Proposals, nil
}

func (uc ResultsUseCase) GetVoter(ctx context.Context, electionID string, address string) (VoterStatus, error) {
	normalized, ok := valueobjects.NewAddress(address)
	if !ok {
		return VoterStatus{}, domainerrors.ErrInvalidAddress
	}
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return VoterStatus{}, err
	}
	voter, exists := election.VoterOf(normalized.String())
	if !exists {
		return VoterStatus{}, domainerrors.ErrNotRegistered
	}
	receipt, hasReceipt := election.Ballots[normalized.String()]
	return VoterStatus{
		Voter:      voter,
		Receipt:    receipt,
		HasReceipt: hasReceipt,
	}, nil
}
