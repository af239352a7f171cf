package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"quorum/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "quorum/contexts/election-core/ballot-engine/domain/errors"
	"quorum/contexts/election-core/ballot-engine/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store keeps elections and their outbox in process memory. Each write
// happens under one lock section, so an operation's aggregate mutation and
// its envelopes commit together or not at all.
type Store struct {
	mu sync.RWMutex

	elections map[string]entities.Election
	outbox    []outboxRecord
}

func NewStore(seed []entities.Election) *Store {
	elections := make(map[string]entities.Election, len(seed))
	for _, election := range seed {
		elections[election.ElectionID] = election.Clone()
	}
	return &Store{
		elections: elections,
	}
}

func (s *Store) CreateElection(_ context.Context, election entities.Election, envelopes []ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	electionID := strings.TrimSpace(election.ElectionID)
	if _, exists := s.elections[electionID]; exists {
		return domainerrors.ErrAlreadyInitialized
	}
	if err := s.appendOutbox(envelopes); err != nil {
		return err
	}
	s.elections[electionID] = election.Clone()
	return nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return election.Clone(), nil
}

func (s *Store) SaveElection(_ context.Context, election entities.Election, envelopes []ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	electionID := strings.TrimSpace(election.ElectionID)
	if _, ok := s.elections[electionID]; !ok {
		return domainerrors.ErrElectionNotFound
	}
	if err := s.appendOutbox(envelopes); err != nil {
		return err
	}
	s.elections[electionID] = election.Clone()
	return nil
}

// appendOutbox runs under the write lock held by the caller.
func (s *Store) appendOutbox(envelopes []ports.EventEnvelope) error {
	for _, envelope := range envelopes {
		payload, err := json.Marshal(envelope)
		if err != nil {
			return err
		}
		outboxID := strings.TrimSpace(envelope.EventID)
		if outboxID == "" {
			outboxID = uuid.NewString()
		}
		createdAt := envelope.OccurredAt.UTC()
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		s.outbox = append(s.outbox, outboxRecord{
			message: ports.OutboxMessage{
				OutboxID:     outboxID,
				EventType:    strings.TrimSpace(envelope.EventType),
				PartitionKey: strings.TrimSpace(envelope.PartitionKey),
				Payload:      payload,
				CreatedAt:    createdAt,
			},
		})
	}
	return nil
}

// ListPendingOutbox returns unpublished rows in commit order.
func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, limit)
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == strings.TrimSpace(outboxID) {
			s.outbox[i].published = true
			return nil
		}
	}
	return domainerrors.ErrConflict
}

// OutboxEvents decodes every outbox row back into its envelope, in commit
// order. Test helper.
func (s *Store) OutboxEvents() []ports.EventEnvelope {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]ports.EventEnvelope, 0, len(s.outbox))
	for _, row := range s.outbox {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.message.Payload, &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.ElectionRepository = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
