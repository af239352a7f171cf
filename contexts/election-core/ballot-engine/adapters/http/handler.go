package httpadapter

import (
	"context"
	"log/slog"

	"quorum/contexts/election-core/ballot-engine/application/commands"
	"quorum/contexts/election-core/ballot-engine/application/queries"
	"quorum/contexts/election-core/ballot-engine/domain/entities"
	httptransport "quorum/contexts/election-core/ballot-engine/transport/http"
)

type Handler struct {
	Workflow     commands.WorkflowUseCase
	Registration commands.RegistrationUseCase
	Proposals    commands.ProposalUseCase
	Tally        commands.TallyUseCase
	Results      queries.ResultsUseCase
	Logger       *slog.Logger
}

func (h Handler) CreateElectionHandler(
	ctx context.Context,
	adminAddress string,
	req httptransport.CreateElectionRequest,
) (httptransport.ElectionResponse, error) {
	result, err := h.Workflow.Initialize(ctx, commands.InitializeCommand{
		AdminAddress: adminAddress,
		Name:         req.Name,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return httptransport.ElectionResponse{
		ElectionID:   result.Election.ElectionID,
		Name:         result.Election.Name,
		AdminAddress: result.Election.AdminAddress,
		Phase:        string(result.Election.Phase),
	}, nil
}

func (h Handler) AdvancePhaseHandler(
	ctx context.Context,
	adminAddress string,
	electionID string,
	req httptransport.AdvancePhaseRequest,
) (httptransport.TransitionResponse, error) {
	result, err := h.Workflow.AdvanceTo(ctx, commands.TransitionCommand{
		ElectionID:   electionID,
		ActorAddress: adminAddress,
	}, entities.Phase(req.TargetPhase))
	if err != nil {
		return httptransport.TransitionResponse{}, err
	}
	return httptransport.TransitionResponse{
		ElectionID:    result.ElectionID,
		PreviousPhase: string(result.PreviousPhase),
		NewPhase:      string(result.NewPhase),
	}, nil
}

func (h Handler) RegisterVoterHandler(
	ctx context.Context,
	adminAddress string,
	electionID string,
	req httptransport.RegisterVoterRequest,
) (httptransport.VoterResponse, error) {
	result, err := h.Registration.RegisterVoter(ctx, commands.RegisterVoterCommand{
		ElectionID:   electionID,
		ActorAddress: adminAddress,
		VoterAddress: req.Address,
	})
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return httptransport.VoterResponse{
		Address:    result.Voter.Address,
		Registered: result.Voter.Registered,
		HasVoted:   result.Voter.HasVoted,
	}, nil
}

func (h Handler) SubmitProposalHandler(
	ctx context.Context,
	voterAddress string,
	electionID string,
	req httptransport.SubmitProposalRequest,
) (httptransport.ProposalResponse, error) {
	result, err := h.Proposals.SubmitProposal(ctx, commands.SubmitProposalCommand{
		ElectionID:   electionID,
		VoterAddress: voterAddress,
		Description:  req.Description,
	})
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return httptransport.ProposalResponse{
		ProposalID:  result.Proposal.Index,
		Description: result.Proposal.Description,
		VoteCount:   result.Proposal.VoteCount,
		SubmittedBy: result.Proposal.SubmittedBy,
	}, nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	voterAddress string,
	electionID string,
	req httptransport.CastVoteRequest,
) (httptransport.ReceiptResponse, error) {
	result, err := h.Proposals.CastVote(ctx, commands.CastVoteCommand{
		ElectionID:   electionID,
		VoterAddress: voterAddress,
		ProposalID:   req.ProposalID,
	})
	if err != nil {
		return httptransport.ReceiptResponse{}, err
	}
	return httptransport.ReceiptResponse{
		VoterAddress: result.Receipt.VoterAddress,
		ProposalID:   result.Receipt.ProposalID,
		Description:  result.Receipt.Description,
		CastAt:       result.Receipt.CastAt,
	}, nil
}

func (h Handler) ComputeWinnerHandler(
	ctx context.Context,
	adminAddress string,
	electionID string,
) (httptransport.WinnerResponse, error) {
	result, err := h.Tally.ComputeWinner(ctx, commands.ComputeWinnerCommand{
		ElectionID:   electionID,
		ActorAddress: adminAddress,
	})
	if err != nil {
		return httptransport.WinnerResponse{}, err
	}
	return httptransport.WinnerResponse{
		ElectionID:  electionID,
		ProposalID:  result.Winner.Index,
		Description: result.Winner.Description,
		VoteCount:   result.Winner.VoteCount,
	}, nil
}

func (h Handler) GetPhaseHandler(ctx context.Context, electionID string) (httptransport.PhaseResponse, error) {
	phase, err := h.Results.GetPhase(ctx, electionID)
	if err != nil {
		return httptransport.PhaseResponse{}, err
	}
	return httptransport.PhaseResponse{
		ElectionID: electionID,
		Phase:      string(phase),
	}, nil
}

func (h Handler) GetWinnerHandler(ctx context.Context, electionID string) (httptransport.WinnerResponse, error) {
	winner, err := h.Results.GetWinner(ctx, electionID)
	if err != nil {
		return httptransport.WinnerResponse{}, err
	}
	return httptransport.WinnerResponse{
		ElectionID:  electionID,
		ProposalID:  winner.Index,
		Description: winner.Description,
		VoteCount:   winner.VoteCount,
	}, nil
}

func (h Handler) ListProposalsHandler(ctx context.Context, electionID string) (httptransport.ProposalListResponse, error) {
	proposals, err := h.Results.ListProposals(ctx, electionID)
	if err != nil {
		return httptransport.ProposalListResponse{}, err
	}
	items := make([]httptransport.ProposalResponse, 0, len(proposals))
	for _, proposal := range proposals {
		items = append(items, httptransport.ProposalResponse{
			ProposalID:  proposal.Index,
			Description: proposal.Description,
			VoteCount:   proposal.VoteCount,
			SubmittedBy: proposal.SubmittedBy,
		})
	}
	return httptransport.ProposalListResponse{
		ElectionID: electionID,
		Items:      items,
	}, nil
}

func (h Handler) GetVoterHandler(ctx context.Context, electionID string, address string) (httptransport.VoterResponse, error) {
	status, err := h.Results.GetVoter(ctx, electionID, address)
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	resp := httptransport.VoterResponse{
		Address:    status.Voter.Address,
		Registered: status.Voter.Registered,
		HasVoted:   status.Voter.HasVoted,
	}
	if status.Voter.HasVoted {
		votedProposalID := status.Voter.VotedProposalID
		resp.VotedProposalID = &votedProposalID
	}
	if status.HasReceipt {
		resp.Receipt = &httptransport.ReceiptResponse{
			VoterAddress: status.Receipt.VoterAddress,
			ProposalID:   status.Receipt.ProposalID,
			Description:  status.Receipt.Description,
			CastAt:       status.Receipt.CastAt,
		}
	}
	return resp, nil
}
