package ports

import (
	"context"
	"time"

	"quorum/contexts/election-core/ballot-engine/domain/entities"
	sharedevents "quorum/internal/shared/events"
)

// EventEnvelope reuses the canonical cross-process envelope contract.
type EventEnvelope = sharedevents.Envelope

// ElectionRepository owns aggregate persistence and the transaction
// boundary for ballot writes. Implementations must apply the aggregate and
// its envelopes together or not at all.
type ElectionRepository interface {
	// CreateElection persists a new aggregate with its initial events and
	// fails with ErrAlreadyInitialized when the ID already exists.
	CreateElection(ctx context.Context, election entities.Election, envelopes []EventEnvelope) error
	// GetElection returns a deep-copied snapshot of the aggregate.
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	// SaveElection atomically persists the mutated aggregate and appends the
	// envelopes to the outbox.
	SaveElection(ctx context.Context, election entities.Election, envelopes []EventEnvelope) error
}

// AdminPolicy is the injected capability check for administrator-only
// operations. The core calls it as a precondition gate and never implements
// identity management itself.
type AdminPolicy interface {
	EnsureAdministrator(ctx context.Context, election entities.Election, actorAddress string) error
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a topic consumer callback.
type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}

// Clock allows deterministic testing of timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts election/event identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
