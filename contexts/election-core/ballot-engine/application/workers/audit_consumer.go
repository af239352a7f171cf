package workers

import (
	"context"
	"log/slog"

	application "quorum/contexts/election-core/ballot-engine/application"
	"quorum/contexts/election-core/ballot-engine/application/commands"
	"quorum/contexts/election-core/ballot-engine/ports"
)

// AuditConsumer subscribes to every ballot topic and writes an audit log
// line per delivered event. Delivery order per election matches commit
// order because events are partitioned by election_id.
type AuditConsumer struct {
	Subscriber    ports.EventSubscriber
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c AuditConsumer) Start(ctx context.Context) error {
	topics := []string{
		commands.EventVoterRegistered,
		commands.EventPhaseChanged,
		commands.EventProposalRegistered,
		commands.EventVoteCast,
	}
	for _, topic := range topics {
		if err := c.Subscriber.Subscribe(ctx, topic, c.ConsumerGroup, c.handle); err != nil {
			return err
		}
	}
	return nil
}

func (c AuditConsumer) handle(_ context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	logger.Info("ballot event delivered",
		"event", "ballot_audit_event_delivered",
		"module", "election-core/ballot-engine",
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"election_id", event.PartitionKey,
	)
	return nil
}
