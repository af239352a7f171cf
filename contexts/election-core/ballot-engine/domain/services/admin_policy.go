package services

import (
	"strings"

	"quorum/contexts/election-core/ballot-engine/domain/entities"
)

// IsAdministrator evaluates the single-authority capability: only the
// address recorded at initialization may drive the workflow.
func IsAdministrator(election entities.Election, actorAddress string) bool {
	admin := strings.TrimSpace(election.AdminAddress)
	actor := strings.TrimSpace(actorAddress)
	return admin != "" && strings.EqualFold(admin, actor)
}
