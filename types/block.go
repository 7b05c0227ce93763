package types

import (
	"math/big"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// NewBlock is the canonical record of the most recently observed block
// header. The correlator keeps exactly one of these and replaces it
// wholesale whenever a newer header arrives.
type NewBlock struct {
	Number    uint64
	GasUsed   uint64
	GasLimit  uint64
	BaseFee   *big.Int
	Timestamp uint64
}

// NewBlockFromHeader normalizes a header notification. Pre-fee-market
// headers carry no base fee; those default to zero.
func NewBlockFromHeader(h *ethtypes.Header) NewBlock {
	baseFee := new(big.Int)
	if h.BaseFee != nil {
		baseFee.Set(h.BaseFee)
	}
	return NewBlock{
		Number:    h.Number.Uint64(),
		GasUsed:   h.GasUsed,
		GasLimit:  h.GasLimit,
		BaseFee:   baseFee,
		Timestamp: h.Time,
	}
}
