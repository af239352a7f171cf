package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quorum/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "quorum/contexts/election-core/ballot-engine/domain/errors"
	"quorum/contexts/election-core/ballot-engine/ports"
)

func seedElection(id string) entities.Election {
	return entities.Election{
		ElectionID:        id,
		AdminAddress:      "0x1111111111111111111111111111111111111111",
		Phase:             entities.PhaseRegisteringVoters,
		Voters:            map[string]entities.Voter{},
		Proposals:         []entities.Proposal{},
		Ballots:           map[string]entities.BallotReceipt{},
		WinningProposalID: -1,
	}
}

func envelope(eventID string, eventType string, electionID string) ports.EventEnvelope {
	return ports.EventEnvelope{
		EventID:      eventID,
		EventType:    eventType,
		OccurredAt:   time.Now().UTC(),
		PartitionKey: electionID,
		Data:         []byte(`{}`),
	}
}

func TestStoreCreateAndDuplicate(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	if err := store.CreateElection(ctx, seedElection("e-1"), nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := store.CreateElection(ctx, seedElection("e-1"), nil)
	if !errors.Is(err, domainerrors.ErrAlreadyInitialized) {
		t.Fatalf("expected duplicate create rejected, got %v", err)
	}
}

func TestStoreSaveUnknownElection(t *testing.T) {
	store := NewStore(nil)
	err := store.SaveElection(context.Background(), seedElection("missing"), nil)
	if !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("expected save of unknown aggregate rejected, got %v", err)
	}
}

func TestStoreSnapshotsAreIsolated(t *testing.T) {
	store := NewStore([]entities.Election{seedElection("e-1")})
	ctx := context.Background()

	snapshot, err := store.GetElection(ctx, "e-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	snapshot.Voters["0x2222222222222222222222222222222222222222"] = entities.Voter{Registered: true}
	snapshot.Proposals = append(snapshot.Proposals, entities.Proposal{Description: "drafted"})

	reread, err := store.GetElection(ctx, "e-1")
	if err != nil {
		t.Fatalf("reread failed: %v", err)
	}
	if len(reread.Voters) != 0 || len(reread.Proposals) != 0 {
		t.Fatalf("mutating a snapshot must not touch stored state: %+v", reread)
	}
}

func TestStoreOutboxCommitOrder(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	election := seedElection("e-1")
	if err := store.CreateElection(ctx, election, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for _, eventID := range []string{"ev-1", "ev-2", "ev-3"} {
		err := store.SaveElection(ctx, election, []ports.EventEnvelope{
			envelope(eventID, "ballot.voter_registered", "e-1"),
		})
		if err != nil {
			t.Fatalf("save %s failed: %v", eventID, err)
		}
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending rows, got %d", len(pending))
	}
	for i, want := range []string{"ev-1", "ev-2", "ev-3"} {
		if pending[i].OutboxID != want {
			t.Fatalf("row %d: expected %s, got %s", i, want, pending[i].OutboxID)
		}
	}

	if err := store.MarkOutboxPublished(ctx, "ev-1", time.Now().UTC()); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}
	pending, err = store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("relist pending failed: %v", err)
	}
	if len(pending) != 2 || pending[0].OutboxID != "ev-2" {
		t.Fatalf("expected ev-2 first after ack, got %+v", pending)
	}

	err = store.MarkOutboxPublished(ctx, "ev-404", time.Now().UTC())
	if !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("expected unknown outbox row rejected, got %v", err)
	}
}
