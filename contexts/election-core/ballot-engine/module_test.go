package ballotengine_test

import (
	"context"
	"errors"
	"testing"

	ballotengine "quorum/contexts/election-core/ballot-engine"
	"quorum/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "quorum/contexts/election-core/ballot-engine/domain/errors"
	httptransport "quorum/contexts/election-core/ballot-engine/transport/http"
)

const (
	adminAddr    = "0x1111111111111111111111111111111111111111"
	voterOne     = "0x2222222222222222222222222222222222222222"
	voterTwo     = "0x3333333333333333333333333333333333333333"
	voterThree   = "0x4444444444444444444444444444444444444444"
	outsiderAddr = "0x9999999999999999999999999999999999999999"
)

func newElection(t *testing.T, module ballotengine.Module) string {
	t.Helper()
	resp, err := module.Handler.CreateElectionHandler(context.Background(), adminAddr, httptransport.CreateElectionRequest{
		Name: "community budget",
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	if resp.Phase != string(entities.PhaseRegisteringVoters) {
		t.Fatalf("expected fresh election in registering_voters, got %s", resp.Phase)
	}
	return resp.ElectionID
}

func registerVoter(t *testing.T, module ballotengine.Module, electionID string, address string) {
	t.Helper()
	_, err := module.Handler.RegisterVoterHandler(context.Background(), adminAddr, electionID, httptransport.RegisterVoterRequest{
		Address: address,
	})
	if err != nil {
		t.Fatalf("register voter %s failed: %v", address, err)
	}
}

func advancePhase(t *testing.T, module ballotengine.Module, electionID string, target entities.Phase) {
	t.Helper()
	_, err := module.Handler.AdvancePhaseHandler(context.Background(), adminAddr, electionID, httptransport.AdvancePhaseRequest{
		TargetPhase: string(target),
	})
	if err != nil {
		t.Fatalf("advance to %s failed: %v", target, err)
	}
}

func submitProposal(t *testing.T, module ballotengine.Module, electionID string, voter string, description string) int {
	t.Helper()
	resp, err := module.Handler.SubmitProposalHandler(context.Background(), voter, electionID, httptransport.SubmitProposalRequest{
		Description: description,
	})
	if err != nil {
		t.Fatalf("submit proposal %q failed: %v", description, err)
	}
	return resp.ProposalID
}

func castVote(t *testing.T, module ballotengine.Module, electionID string, voter string, proposalID int) {
	t.Helper()
	_, err := module.Handler.CastVoteHandler(context.Background(), voter, electionID, httptransport.CastVoteRequest{
		ProposalID: proposalID,
	})
	if err != nil {
		t.Fatalf("cast vote by %s failed: %v", voter, err)
	}
}

func TestBallotFullLifecycle(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()
	electionID := newElection(t, module)

	registerVoter(t, module, electionID, voterOne)
	registerVoter(t, module, electionID, voterTwo)
	registerVoter(t, module, electionID, voterThree)

	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationStarted)
	parks := submitProposal(t, module, electionID, voterOne, "Build new parks")
	roads := submitProposal(t, module, electionID, voterTwo, "Repave the roads")
	if parks != 0 || roads != 1 {
		t.Fatalf("expected dense indices 0 and 1, got %d and %d", parks, roads)
	}

	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationEnded)
	advancePhase(t, module, electionID, entities.PhaseVotingSessionStarted)
	castVote(t, module, electionID, voterOne, parks)
	castVote(t, module, electionID, voterTwo, roads)
	castVote(t, module, electionID, voterThree, parks)

	advancePhase(t, module, electionID, entities.PhaseVotingSessionEnded)
	tally, err := module.Handler.ComputeWinnerHandler(ctx, adminAddr, electionID)
	if err != nil {
		t.Fatalf("compute winner failed: %v", err)
	}
	if tally.ProposalID != parks || tally.VoteCount != 2 {
		t.Fatalf("expected proposal %d with 2 votes, got %d with %d", parks, tally.ProposalID, tally.VoteCount)
	}

	advancePhase(t, module, electionID, entities.PhaseVotesTallied)
	winner, err := module.Handler.GetWinnerHandler(ctx, electionID)
	if err != nil {
		t.Fatalf("get winner failed: %v", err)
	}
	if winner.ProposalID != parks || winner.Description != "Build new parks" {
		t.Fatalf("unexpected winner: %+v", winner)
	}

	status, err := module.Handler.GetVoterHandler(ctx, electionID, voterTwo)
	if err != nil {
		t.Fatalf("get voter failed: %v", err)
	}
	if !status.HasVoted || status.VotedProposalID == nil || *status.VotedProposalID != roads {
		t.Fatalf("unexpected voter status: %+v", status)
	}
	if status.Receipt == nil || status.Receipt.Description != "Repave the roads" {
		t.Fatalf("expected receipt for proposal %d, got %+v", roads, status.Receipt)
	}
}

func TestBallotTieKeepsFirstRegisteredProposal(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()
	electionID := newElection(t, module)

	registerVoter(t, module, electionID, voterOne)
	registerVoter(t, module, electionID, voterTwo)
	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationStarted)
	first := submitProposal(t, module, electionID, voterOne, "Expand the library")
	second := submitProposal(t, module, electionID, voterTwo, "Fund the shelter")
	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationEnded)
	advancePhase(t, module, electionID, entities.PhaseVotingSessionStarted)
	castVote(t, module, electionID, voterOne, second)
	castVote(t, module, electionID, voterTwo, first)
	advancePhase(t, module, electionID, entities.PhaseVotingSessionEnded)

	tally, err := module.Handler.ComputeWinnerHandler(ctx, adminAddr, electionID)
	if err != nil {
		t.Fatalf("compute winner failed: %v", err)
	}
	if tally.ProposalID != first {
		t.Fatalf("expected tie to resolve to first registered proposal %d, got %d", first, tally.ProposalID)
	}

	replay, err := module.Handler.ComputeWinnerHandler(ctx, adminAddr, electionID)
	if err != nil {
		t.Fatalf("replayed compute winner failed: %v", err)
	}
	if replay.ProposalID != tally.ProposalID || replay.VoteCount != tally.VoteCount {
		t.Fatalf("expected idempotent tally, got %+v then %+v", tally, replay)
	}
}

func TestBallotZeroVotesKeepsFirstProposal(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()
	electionID := newElection(t, module)

	registerVoter(t, module, electionID, voterOne)
	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationStarted)
	first := submitProposal(t, module, electionID, voterOne, "Plant street trees")
	submitProposal(t, module, electionID, voterOne, "Paint the bridge")
	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationEnded)
	advancePhase(t, module, electionID, entities.PhaseVotingSessionStarted)
	advancePhase(t, module, electionID, entities.PhaseVotingSessionEnded)

	tally, err := module.Handler.ComputeWinnerHandler(ctx, adminAddr, electionID)
	if err != nil {
		t.Fatalf("compute winner failed: %v", err)
	}
	if tally.ProposalID != first || tally.VoteCount != 0 {
		t.Fatalf("expected first proposal with zero votes, got %+v", tally)
	}
}

func TestBallotRegistrationGates(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()
	electionID := newElection(t, module)

	registerVoter(t, module, electionID, voterOne)

	_, err := module.Handler.RegisterVoterHandler(ctx, adminAddr, electionID, httptransport.RegisterVoterRequest{
		Address: voterOne,
	})
	if !errors.Is(err, domainerrors.ErrAlreadyRegistered) {
		t.Fatalf("expected duplicate registration rejection, got %v", err)
	}

	_, err = module.Handler.RegisterVoterHandler(ctx, outsiderAddr, electionID, httptransport.RegisterVoterRequest{
		Address: voterTwo,
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected non-admin registration rejection, got %v", err)
	}

	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationStarted)
	_, err = module.Handler.RegisterVoterHandler(ctx, adminAddr, electionID, httptransport.RegisterVoterRequest{
		Address: voterTwo,
	})
	if !errors.Is(err, domainerrors.ErrPhaseClosed) {
		t.Fatalf("expected registration closed after phase advance, got %v", err)
	}
}

func TestBallotMixedCaseAddressIsOneVoter(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()
	electionID := newElection(t, module)

	lower := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
	upper := "0xABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD"
	registerVoter(t, module, electionID, lower)

	_, err := module.Handler.RegisterVoterHandler(ctx, adminAddr, electionID, httptransport.RegisterVoterRequest{
		Address: upper,
	})
	if !errors.Is(err, domainerrors.ErrAlreadyRegistered) {
		t.Fatalf("expected mixed-case duplicate rejection, got %v", err)
	}

	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationStarted)
	submitProposal(t, module, electionID, upper, "Open a night market")
	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationEnded)
	advancePhase(t, module, electionID, entities.PhaseVotingSessionStarted)
	castVote(t, module, electionID, lower, 0)

	_, err = module.Handler.CastVoteHandler(ctx, upper, electionID, httptransport.CastVoteRequest{ProposalID: 0})
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected second vote via case variant rejected, got %v", err)
	}
}

func TestBallotVotingGates(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()
	electionID := newElection(t, module)

	registerVoter(t, module, electionID, voterOne)
	registerVoter(t, module, electionID, voterTwo)
	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationStarted)
	submitProposal(t, module, electionID, voterOne, "Resurface the track")

	_, err := module.Handler.SubmitProposalHandler(ctx, outsiderAddr, electionID, httptransport.SubmitProposalRequest{
		Description: "Outsider idea",
	})
	if !errors.Is(err, domainerrors.ErrNotRegistered) {
		t.Fatalf("expected unregistered proposer rejection, got %v", err)
	}
	_, err = module.Handler.SubmitProposalHandler(ctx, voterOne, electionID, httptransport.SubmitProposalRequest{
		Description: "   ",
	})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected blank description rejection, got %v", err)
	}

	_, err = module.Handler.CastVoteHandler(ctx, voterOne, electionID, httptransport.CastVoteRequest{ProposalID: 0})
	if !errors.Is(err, domainerrors.ErrVotingClosed) {
		t.Fatalf("expected vote before session rejected, got %v", err)
	}

	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationEnded)
	advancePhase(t, module, electionID, entities.PhaseVotingSessionStarted)

	_, err = module.Handler.CastVoteHandler(ctx, outsiderAddr, electionID, httptransport.CastVoteRequest{ProposalID: 0})
	if !errors.Is(err, domainerrors.ErrNotRegistered) {
		t.Fatalf("expected unregistered voter rejection, got %v", err)
	}
	_, err = module.Handler.CastVoteHandler(ctx, voterOne, electionID, httptransport.CastVoteRequest{ProposalID: 7})
	if !errors.Is(err, domainerrors.ErrInvalidProposal) {
		t.Fatalf("expected out-of-range proposal rejection, got %v", err)
	}

	// The rejected ballot must not burn the voter's single vote.
	castVote(t, module, electionID, voterOne, 0)
	_, err = module.Handler.CastVoteHandler(ctx, voterOne, electionID, httptransport.CastVoteRequest{ProposalID: 0})
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected second vote rejection, got %v", err)
	}

	proposals, err := module.Handler.ListProposalsHandler(ctx, electionID)
	if err != nil {
		t.Fatalf("list proposals failed: %v", err)
	}
	if len(proposals.Items) != 1 || proposals.Items[0].VoteCount != 1 {
		t.Fatalf("expected exactly one counted vote, got %+v", proposals.Items)
	}
}

func TestBallotPhaseMachine(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()
	electionID := newElection(t, module)

	_, err := module.Handler.AdvancePhaseHandler(ctx, adminAddr, electionID, httptransport.AdvancePhaseRequest{
		TargetPhase: string(entities.PhaseVotingSessionStarted),
	})
	if !errors.Is(err, domainerrors.ErrInvalidPhaseTransition) {
		t.Fatalf("expected skipped phase rejection, got %v", err)
	}

	_, err = module.Handler.AdvancePhaseHandler(ctx, outsiderAddr, electionID, httptransport.AdvancePhaseRequest{
		TargetPhase: string(entities.PhaseProposalsRegistrationStarted),
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected non-admin transition rejection, got %v", err)
	}

	phase, err := module.Handler.GetPhaseHandler(ctx, electionID)
	if err != nil {
		t.Fatalf("get phase failed: %v", err)
	}
	if phase.Phase != string(entities.PhaseRegisteringVoters) {
		t.Fatalf("rejected transitions must not move the phase, got %s", phase.Phase)
	}
}

func TestBallotTallyGates(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()
	electionID := newElection(t, module)

	registerVoter(t, module, electionID, voterOne)
	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationStarted)
	submitProposal(t, module, electionID, voterOne, "Restore the fountain")
	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationEnded)
	advancePhase(t, module, electionID, entities.PhaseVotingSessionStarted)

	_, err := module.Handler.ComputeWinnerHandler(ctx, adminAddr, electionID)
	if !errors.Is(err, domainerrors.ErrPrematureTally) {
		t.Fatalf("expected tally during voting rejected, got %v", err)
	}
	_, err = module.Handler.GetWinnerHandler(ctx, electionID)
	if !errors.Is(err, domainerrors.ErrResultsNotReady) {
		t.Fatalf("expected winner before tallied rejected, got %v", err)
	}

	advancePhase(t, module, electionID, entities.PhaseVotingSessionEnded)
	_, err = module.Handler.AdvancePhaseHandler(ctx, adminAddr, electionID, httptransport.AdvancePhaseRequest{
		TargetPhase: string(entities.PhaseVotesTallied),
	})
	if !errors.Is(err, domainerrors.ErrPrematureTally) {
		t.Fatalf("expected close before winner computed rejected, got %v", err)
	}

	_, err = module.Handler.ComputeWinnerHandler(ctx, outsiderAddr, electionID)
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected non-admin tally rejected, got %v", err)
	}

	if _, err = module.Handler.ComputeWinnerHandler(ctx, adminAddr, electionID); err != nil {
		t.Fatalf("compute winner failed: %v", err)
	}
	advancePhase(t, module, electionID, entities.PhaseVotesTallied)
}

func TestBallotTallyWithoutProposals(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()
	electionID := newElection(t, module)

	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationStarted)
	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationEnded)
	advancePhase(t, module, electionID, entities.PhaseVotingSessionStarted)
	advancePhase(t, module, electionID, entities.PhaseVotingSessionEnded)

	_, err := module.Handler.ComputeWinnerHandler(ctx, adminAddr, electionID)
	if !errors.Is(err, domainerrors.ErrNoProposals) {
		t.Fatalf("expected empty ballot tally rejected, got %v", err)
	}
}

func TestBallotInvalidAddressRejected(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()

	_, err := module.Handler.CreateElectionHandler(ctx, "not-an-address", httptransport.CreateElectionRequest{Name: "x"})
	if !errors.Is(err, domainerrors.ErrInvalidAddress) {
		t.Fatalf("expected invalid admin address rejected, got %v", err)
	}

	electionID := newElection(t, module)
	_, err = module.Handler.RegisterVoterHandler(ctx, adminAddr, electionID, httptransport.RegisterVoterRequest{
		Address: "0x123",
	})
	if !errors.Is(err, domainerrors.ErrInvalidAddress) {
		t.Fatalf("expected invalid voter address rejected, got %v", err)
	}
}

func TestBallotUnknownElection(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()

	_, err := module.Handler.GetPhaseHandler(ctx, "missing")
	if !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("expected unknown election rejected, got %v", err)
	}
}
