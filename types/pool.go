package types

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// PoolVariant distinguishes the AMM kinds the watcher tracks.
type PoolVariant uint8

const (
	UniswapV2 PoolVariant = iota + 1
	UniswapV3
)

func (v PoolVariant) String() string {
	switch v {
	case UniswapV2:
		return "uniswap_v2"
	case UniswapV3:
		return "uniswap_v3"
	}
	return "unknown"
}

// Pool is one tracked liquidity pool. Token order follows the factory
// creation event; callers must treat the pair as unordered.
type Pool struct {
	Address common.Address `json:"address"`
	TokenA  common.Address `json:"tokenA"`
	TokenB  common.Address `json:"tokenB"`
	Variant PoolVariant    `json:"variant"`
	Fee     uint32         `json:"fee,omitempty"` // V3 fee tier, zero for V2
}

// HasToken reports whether token is one of the pool's two constituents.
func (p Pool) HasToken(token common.Address) bool {
	return p.TokenA == token || p.TokenB == token
}

// PoolBalanceChange records a simulated increase of a pool's balance in
// the target token: some counterparty would give the target token away
// to or through this pool.
type PoolBalanceChange struct {
	TxHash      common.Hash
	BlockNumber uint64
	Pool        Pool
	Before      *big.Int
	After       *big.Int
}

// BalanceChangeRow is the ClickHouse representation of a detection.
type BalanceChangeRow struct {
	TxHash        string    `ch:"txHash"`
	BlockNumber   uint64    `ch:"blockNumber"`
	Pool          string    `ch:"pool"`
	Variant       string    `ch:"variant"`
	TokenA        string    `ch:"tokenA"`
	TokenB        string    `ch:"tokenB"`
	BalanceBefore string    `ch:"balanceBefore"`
	BalanceAfter  string    `ch:"balanceAfter"`
	ObservedAt    time.Time `ch:"observedAt"`
}

func (c *PoolBalanceChange) Row() *BalanceChangeRow {
	return &BalanceChangeRow{
		TxHash:        c.TxHash.Hex(),
		BlockNumber:   c.BlockNumber,
		Pool:          c.Pool.Address.Hex(),
		Variant:       c.Pool.Variant.String(),
		TokenA:        c.Pool.TokenA.Hex(),
		TokenB:        c.Pool.TokenB.Hex(),
		BalanceBefore: c.Before.String(),
		BalanceAfter:  c.After.String(),
		ObservedAt:    time.Now().UTC(),
	}
}
