package errors

import "errors"

var (
	ErrUnauthorized           = errors.New("caller is not the election administrator")
	ErrElectionNotFound       = errors.New("election not found")
	ErrAlreadyInitialized     = errors.New("election is already initialized")
	ErrInvalidPhaseTransition = errors.New("phase transition is not allowed from the current phase")
	ErrPhaseClosed            = errors.New("operation is closed in the current phase")
	ErrVotingClosed           = errors.New("voting session is not open")
	ErrPrematureTally         = errors.New("tally requires the voting session to have ended")
	ErrResultsNotReady        = errors.New("results are not available before votes are tallied")
	ErrAlreadyRegistered      = errors.New("voter is already registered")
	ErrNotRegistered          = errors.New("caller is not a registered voter")
	ErrAlreadyVoted           = errors.New("voter has already cast a vote")
	ErrInvalidProposal        = errors.New("proposal id is out of range")
	ErrNoProposals            = errors.New("no proposals were registered")
	ErrInvalidAddress         = errors.New("invalid participant address")
	ErrInvalidInput           = errors.New("invalid ballot input")
	ErrConflict               = errors.New("ballot state conflict")
)
