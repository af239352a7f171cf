package valueobjects

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address is a checksummed participant identity at the domain boundary.
// Registry lookups compare the normalized form, so mixed-case input for the
// same account always resolves to one voter record.
type Address string

func NewAddress(v string) (Address, bool) {
	trimmed := strings.TrimSpace(v)
	if !common.IsHexAddress(trimmed) {
		return "", false
	}
	return Address(common.HexToAddress(trimmed).Hex()), true
}

func (a Address) String() string {
	return string(a)
}
