package commands

import (
	domainerrors "quorum/contexts/election-core/ballot-engine/domain/errors"
	"quorum/contexts/election-core/ballot-engine/domain/valueobjects"
)

// resolveAddress normalizes participant identity to its checksummed form so
// registry keys stay unique per account.
func resolveAddress(raw string) (string, error) {
	address, ok := valueobjects.NewAddress(raw)
	if !ok {
		return "", domainerrors.ErrInvalidAddress
	}
	return address.String(), nil
}
