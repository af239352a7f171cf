package ballotengine_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	ballotengine "quorum/contexts/election-core/ballot-engine"
	"quorum/contexts/election-core/ballot-engine/domain/entities"
	httptransport "quorum/contexts/election-core/ballot-engine/transport/http"
)

func findRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	current := wd
	for {
		if _, err := os.Stat(filepath.Join(current, "go.mod")); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("go.mod not found from %s", wd)
		}
		current = parent
	}
}

func containsAnyString(values []any, want string) bool {
	for _, value := range values {
		if s, ok := value.(string); ok && s == want {
			return true
		}
	}
	return false
}

func TestBallotEventSchemasCoverCanonicalEventSet(t *testing.T) {
	root, err := findRepoRoot()
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}

	cases := map[string][]string{
		"ballot.voter_registered":    {"election_id", "voter_address"},
		"ballot.phase_changed":       {"election_id", "previous_phase", "new_phase"},
		"ballot.proposal_registered": {"election_id", "proposal_id"},
		"ballot.vote_cast":           {"election_id", "voter_address", "proposal_id"},
	}

	for eventType, requiredFields := range cases {
		path := filepath.Join(root, "contracts", "events", "v1", eventType+".schema.json")
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read event schema %s: %v", eventType, err)
		}

		var schema map[string]any
		if err := json.Unmarshal(raw, &schema); err != nil {
			t.Fatalf("decode event schema %s: %v", eventType, err)
		}
		if title, _ := schema["title"].(string); title != eventType {
			t.Fatalf("schema %s has wrong title: %q", eventType, title)
		}

		required, _ := schema["required"].([]any)
		for _, key := range requiredFields {
			if !containsAnyString(required, key) {
				t.Fatalf("schema %s missing required payload key %s", eventType, key)
			}
		}
	}
}

func TestBallotVoteCastEnvelopeContractConsistency(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()
	electionID := newElection(t, module)

	registerVoter(t, module, electionID, voterOne)
	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationStarted)
	submitProposal(t, module, electionID, voterOne, "Light the river path")
	advancePhase(t, module, electionID, entities.PhaseProposalsRegistrationEnded)
	advancePhase(t, module, electionID, entities.PhaseVotingSessionStarted)

	_, err := module.Handler.CastVoteHandler(ctx, voterOne, electionID, httptransport.CastVoteRequest{ProposalID: 0})
	if err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}

	outbox := module.Store.OutboxEvents()
	if len(outbox) == 0 {
		t.Fatal("expected events in outbox")
	}
	last := outbox[len(outbox)-1]
	if last.EventType != "ballot.vote_cast" {
		t.Fatalf("expected last event ballot.vote_cast, got %s", last.EventType)
	}
	if last.EventID == "" || last.SchemaVersion != 1 || last.SourceService != "ballot-engine" {
		t.Fatalf("envelope header violates contract: %+v", last)
	}
	if last.PartitionKeyPath != "election_id" || last.PartitionKey != electionID {
		t.Fatalf("vote_cast must partition by election: %+v", last)
	}

	var payload map[string]any
	if err := json.Unmarshal(last.Data, &payload); err != nil {
		t.Fatalf("decode vote_cast payload: %v", err)
	}
	for _, key := range []string{"election_id", "voter_address", "proposal_id"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("vote_cast payload missing %s: %v", key, payload)
		}
	}
}
