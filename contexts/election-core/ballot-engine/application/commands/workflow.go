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

// InitializeCommand creates a fresh election with the caller as its
// administrator.
type InitializeCommand struct {
	AdminAddress string
	Name         string
}

type InitializeResult struct {
	Election entities.Election
}

// TransitionCommand requests one forward phase transition.
type TransitionCommand struct {
	ElectionID   string
	ActorAddress string
}

type TransitionResult struct {
	ElectionID    string
	PreviousPhase entities.Phase
	NewPhase      entities.Phase
}

// WorkflowUseCase owns the phase state machine. Every transition is
// administrator-gated, moves only to the immediate successor phase, and
// commits the new phase together with its phase_changed event.
type WorkflowUseCase struct {
	Elections ports.ElectionRepository
	Admin     ports.AdminPolicy
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// Initialize is run-once per election: the aggregate is created exactly
// once and nothing resets an election in progress.
func (uc WorkflowUseCase) Initialize(ctx context.Context, cmd InitializeCommand) (InitializeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	admin, err := resolveAddress(cmd.AdminAddress)
	if err != nil {
		logger.Warn("election initialize rejected",
			"event", "ballot_initialize_invalid_admin",
			"module", "election-core/ballot-engine",
			"layer", "application",
			"admin_address", strings.TrimSpace(cmd.AdminAddress),
		)
		return InitializeResult{}, err
	}

	electionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return InitializeResult{}, err
	}
	now := uc.now()
	election := entities.Election{
		ElectionID:        electionID,
		Name:              strings.TrimSpace(cmd.Name),
		AdminAddress:      admin,
		Phase:             entities.PhaseRegisteringVoters,
		Voters:            make(map[string]entities.Voter),
		Proposals:         make([]entities.Proposal, 0),
		Ballots:           make(map[string]entities.BallotReceipt),
		WinningProposalID: -1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.Elections.CreateElection(ctx, election, nil); err != nil {
		return InitializeResult{}, err
	}

	logger.Info("election initialized",
		"event", "ballot_initialized",
		"module", "election-core/ballot-engine",
		"layer", "application",
		"election_id", election.ElectionID,
		"admin_address", admin,
		"phase", string(election.Phase),
	)
	return InitializeResult{Election: election}, nil
}

func (uc WorkflowUseCase) StartProposalRegistration(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	return uc.advance(ctx, cmd, entities.PhaseRegisteringVoters, entities.PhaseProposalsRegistrationStarted)
}

func (uc WorkflowUseCase) EndProposalRegistration(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	return uc.advance(ctx, cmd, entities.PhaseProposalsRegistrationStarted, entities.PhaseProposalsRegistrationEnded)
}

func (uc WorkflowUseCase) StartVotingSession(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	return uc.advance(ctx, cmd, entities.PhaseProposalsRegistrationEnded, entities.PhaseVotingSessionStarted)
}

func (uc WorkflowUseCase) EndVotingSession(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	return uc.advance(ctx, cmd, entities.PhaseVotingSessionStarted, entities.PhaseVotingSessionEnded)
}

// MarkTallied closes the election. It refuses to publish results before a
// winner was computed, so a tallied election always has a defined outcome.
func (uc WorkflowUseCase) MarkTallied(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	return uc.advance(ctx, cmd, entities.PhaseVotingSessionEnded, entities.PhaseVotesTallied)
}

// AdvanceTo dispatches the named target phase to its transition. Used by
// the transport layer so the phase route stays a single endpoint.
func (uc WorkflowUseCase) AdvanceTo(ctx context.Context, cmd TransitionCommand, target entities.Phase) (TransitionResult, error) {
	switch target {
	case entities.PhaseProposalsRegistrationStarted:
		return uc.StartProposalRegistration(ctx, cmd)
	case entities.PhaseProposalsRegistrationEnded:
		return uc.EndProposalRegistration(ctx, cmd)
	case entities.PhaseVotingSessionStarted:
		return uc.StartVotingSession(ctx, cmd)
	case entities.PhaseVotingSessionEnded:
		return uc.EndVotingSession(ctx, cmd)
	case entities.PhaseVotesTallied:
		return uc.MarkTallied(ctx, cmd)
	default:
		return TransitionResult{}, domainerrors.ErrInvalidPhaseTransition
	}
}

func (uc WorkflowUseCase) advance(
	ctx context.Context,
	cmd TransitionCommand,
	from entities.Phase,
	to entities.Phase,
) (TransitionResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	actor, err := resolveAddress(cmd.ActorAddress)
	if err != nil {
		return TransitionResult{}, err
	}

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return TransitionResult{}, err
	}
	if err := uc.Admin.EnsureAdministrator(ctx, election, actor); err != nil {
		logger.Warn("phase transition rejected",
			"event", "ballot_transition_unauthorized",
			"module", "election-core/ballot-engine",
			"layer", "application",
			"election_id", election.ElectionID,
			"actor_address", actor,
			"target_phase", string(to),
		)
		return TransitionResult{}, err
	}
	if election.Phase != from {
		return TransitionResult{}, domainerrors.ErrInvalidPhaseTransition
	}
	if to == entities.PhaseVotesTallied && !election.WinnerComputed {
		return TransitionResult{}, domainerrors.ErrPrematureTally
	}

	now := uc.now()
	election.Phase = to
	election.UpdatedAt = now

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return TransitionResult{}, err
	}
	envelope, err := newBallotEnvelope(eventID, EventPhaseChanged, election.ElectionID, now, map[string]any{
		"election_id":    election.ElectionID,
		"previous_phase": string(from),
		"new_phase":      string(to),
	})
	if err != nil {
		return TransitionResult{}, err
	}
	if err := uc.Elections.SaveElection(ctx, election, []ports.EventEnvelope{envelope}); err != nil {
		return TransitionResult{}, err
	}

	logger.Info("ballot phase advanced",
		"event", "ballot_phase_advanced",
		"module", "election-core/ballot-engine",
		"layer", "application",
		"election_id", election.ElectionID,
		"previous_phase", string(from),
		"new_phase", string(to),
	)
	return TransitionResult{
		ElectionID:    election.ElectionID,
		PreviousPhase: from,
		NewPhase:      to,
	}, nil
}

func (uc WorkflowUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
