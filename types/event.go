package types

import (
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// Event is what flows over the event bus. Exactly one field is set:
// either a normalized block header or a resolved pending transaction.
type Event struct {
	Block *NewBlock
	Tx    *ethtypes.Transaction
}
