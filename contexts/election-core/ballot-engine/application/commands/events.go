package commands

import (
	"encoding/json"
	"time"

	"quorum/contexts/election-core/ballot-engine/ports"
)

const (
	EventVoterRegistered    = "ballot.voter_registered"
	EventPhaseChanged       = "ballot.phase_changed"
	EventProposalRegistered = "ballot.proposal_registered"
	EventVoteCast           = "ballot.vote_cast"
)

func newBallotEnvelope(
	eventID string,
	eventType string,
	electionID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Events are partitioned by election so per-election delivery order
	// matches commit order.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "ballot-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "election_id",
		PartitionKey:     electionID,
		Data:             payload,
	}, nil
}
