package entities

import "time"

type Phase string

const (
	PhaseRegisteringVoters            Phase = "registering_voters"
	PhaseProposalsRegistrationStarted Phase = "proposals_registration_started"
	PhaseProposalsRegistrationEnded   Phase = "proposals_registration_ended"
	PhaseVotingSessionStarted         Phase = "voting_session_started"
	PhaseVotingSessionEnded           Phase = "voting_session_ended"
	PhaseVotesTallied                 Phase = "votes_tallied"
)

// phaseOrder fixes the lifecycle sequence. The phase only ever advances to
// its immediate successor.
var phaseOrder = []Phase{
	PhaseRegisteringVoters,
	PhaseProposalsRegistrationStarted,
	PhaseProposalsRegistrationEnded,
	PhaseVotingSessionStarted,
	PhaseVotingSessionEnded,
	PhaseVotesTallied,
}

func (p Phase) Valid() bool {
	return p.Ordinal() >= 0
}

func (p Phase) Ordinal() int {
	for i, phase := range phaseOrder {
		if phase == p {
			return i
		}
	}
	return -1
}

// Next returns the immediate successor phase, or false from the terminal
// phase.
func (p Phase) Next() (Phase, bool) {
	ordinal := p.Ordinal()
	if ordinal < 0 || ordinal >= len(phaseOrder)-1 {
		return "", false
	}
	return phaseOrder[ordinal+1], true
}

type Voter struct {
	Address         string
	Registered      bool
	HasVoted        bool
	VotedProposalID int
	RegisteredAt    time.Time
	VotedAt         time.Time
}

type Proposal struct {
	Index       int
	Description string
	VoteCount   int
	SubmittedBy string
	CreatedAt   time.Time
}

// BallotReceipt is the per-voter snapshot of the proposal as it looked when
// the vote committed.
type BallotReceipt struct {
	VoterAddress string
	ProposalID   int
	Description  string
	CastAt       time.Time
}

// Election is the single mutable aggregate: phase, registries, proposal
// list, and tally result. Commands mutate a deep copy and persist it
// atomically, so a failed precondition never leaves partial state behind.
type Election struct {
	ElectionID   string
	Name         string
	AdminAddress string
	Phase        Phase

	Voters    map[string]Voter
	Proposals []Proposal
	Ballots   map[string]BallotReceipt

	WinnerComputed    bool
	WinningProposalID int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy safe to mutate without touching the stored
// aggregate.
func (e Election) Clone() Election {
	voters := make(map[string]Voter, len(e.Voters))
	for address, voter := range e.Voters {
		voters[address] = voter
	}
	ballots := make(map[string]BallotReceipt, len(e.Ballots))
	for address, receipt := range e.Ballots {
		ballots[address] = receipt
	}
	proposals := make([]Proposal, len(e.Proposals))
	copy(proposals, e.Proposals)

	clone := e
	clone.Voters = voters
	clone.Ballots = ballots
	clone.Proposals = proposals
	return clone
}

// VoterOf looks up the registry record for an address.
func (e Election) VoterOf(address string) (Voter, bool) {
	voter, ok := e.Voters[address]
	return voter, ok
}

// IsEligible reports whether the address belongs to a registered voter.
// Pure read with no phase restriction.
func (e Election) IsEligible(address string) bool {
	voter, ok := e.Voters[address]
	return ok && voter.Registered
}

// Winner returns the stored winning proposal once a tally ran.
func (e Election) Winner() (Proposal, bool) {
	if e.WinningProposalID < 0 || e.WinningProposalID >= len(e.Proposals) {
		return Proposal{}, false
	}
	return e.Proposals[e.WinningProposalID], true
}
