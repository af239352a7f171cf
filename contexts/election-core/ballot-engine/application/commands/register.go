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

// RegisterVoterCommand whitelists one participant for the election.
type RegisterVoterCommand struct {
	ElectionID   string
	ActorAddress string
	VoterAddress string
}

type RegisterVoterResult struct {
	Voter entities.Voter
}

// RegistrationUseCase owns the voter whitelist. Registration is only open
// during the registering_voters phase and membership is permanent once
// granted.
type RegistrationUseCase struct {
	Elections ports.ElectionRepository
	Admin     ports.AdminPolicy
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc RegistrationUseCase) RegisterVoter(ctx context.Context, cmd RegisterVoterCommand) (RegisterVoterResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	actor, err := resolveAddress(cmd.ActorAddress)
	if err != nil {
		return RegisterVoterResult{}, err
	}
	voterAddress, err := resolveAddress(cmd.VoterAddress)
	if err != nil {
		logger.Warn("voter registration rejected",
			"event", "ballot_register_invalid_address",
			"module", "election-core/ballot-engine",
			"layer", "application",
			"election_id", strings.TrimSpace(cmd.ElectionID),
			"voter_address", strings.TrimSpace(cmd.VoterAddress),
		)
		return RegisterVoterResult{}, err
	}

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return RegisterVoterResult{}, err
	}
	if err := uc.Admin.EnsureAdministrator(ctx, election, actor); err != nil {
		return RegisterVoterResult{}, err
	}
	if election.Phase != entities.PhaseRegisteringVoters {
		return RegisterVoterResult{}, domainerrors.ErrPhaseClosed
	}
	if _, exists := election.VoterOf(voterAddress); exists {
		return RegisterVoterResult{}, domainerrors.ErrAlreadyRegistered
	}

	now := uc.now()
	voter := entities.Voter{
		Address:         voterAddress,
		Registered:      true,
		HasVoted:        false,
		VotedProposalID: 0,
		RegisteredAt:    now,
	}
	election.Voters[voterAddress] = voter
	election.UpdatedAt = now

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return RegisterVoterResult{}, err
	}
	envelope, err := newBallotEnvelope(eventID, EventVoterRegistered, election.ElectionID, now, map[string]any{
		"election_id":   election.ElectionID,
		"voter_address": voterAddress,
	})
	if err != nil {
		return RegisterVoterResult{}, err
	}
	if err := uc.Elections.SaveElection(ctx, election, []ports.EventEnvelope{envelope}); err != nil {
		return RegisterVoterResult{}, err
	}

	logger.Info("voter registered",
		"event", "ballot_voter_registered",
		"module", "election-core/ballot-engine",
		"layer", "application",
		"election_id", election.ElectionID,
		"voter_address", voterAddress,
	)
	return RegisterVoterResult{Voter: voter}, nil
}

func (uc RegistrationUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
