package policy

import (
	"context"

	"quorum/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "quorum/contexts/election-core/ballot-engine/domain/errors"
	"quorum/contexts/election-core/ballot-engine/domain/services"
)

// OwnerPolicy grants the administrator capability to the address that
// initialized the election. Swappable for an external access-control
// provider without touching application code.
type OwnerPolicy struct{}

func (OwnerPolicy) EnsureAdministrator(_ context.Context, election entities.Election, actorAddress string) error {
	if !services.IsAdministrator(election, actorAddress) {
		return domainerrors.ErrUnauthorized
	}
	return nil
}
