package watch

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"poolwatch/config"
	"poolwatch/pools"
	"poolwatch/types"
)

// Simulator produces a state diff for a transaction without committing it.
type Simulator interface {
	TraceStateDiff(ctx context.Context, tx *ethtypes.Transaction, blockNumber uint64) (types.StateDiff, error)
}

// StateDiffAnalyzer cross-references a simulated execution against the
// pool registry and reports tracked pools whose target-token balance
// would strictly increase.
type StateDiffAnalyzer struct {
	sim    Simulator
	pools  *pools.Registry
	target common.Address
}

func NewStateDiffAnalyzer(sim Simulator, registry *pools.Registry, target common.Address) *StateDiffAnalyzer {
	return &StateDiffAnalyzer{sim: sim, pools: registry, target: target}
}

func (a *StateDiffAnalyzer) Analyze(ctx context.Context, tx *ethtypes.Transaction, blockNumber uint64) ([]types.PoolBalanceChange, error) {
	diff, err := a.sim.TraceStateDiff(ctx, tx, blockNumber)
	if err != nil {
		return nil, err
	}
	if diff == nil {
		// The transaction touches no observable state. Not an error.
		return nil, nil
	}

	// Snapshot matching pools up front: Lookup hands back copies, so the
	// rest of the analysis holds nothing that points into the shared
	// registry while it proceeds asynchronously.
	var touched []types.Pool
	for addr := range diff {
		pool, ok := a.pools.Lookup(addr)
		if !ok || !pool.HasToken(a.target) {
			continue
		}
		touched = append(touched, pool)
	}
	if len(touched) == 0 {
		return nil, nil
	}

	tokenDiff, ok := diff[a.target]
	if !ok {
		// The target token's own storage never moved, so no pool balance
		// in it can have changed.
		return nil, nil
	}

	var changes []types.PoolBalanceChange
	for _, pool := range touched {
		slot := BalanceSlot(pool.Address, config.BALANCE_MAPPING_SLOT)
		sd, ok := tokenDiff.Storage[slot]
		if !ok || sd.Changed == nil {
			continue
		}
		before := new(big.Int).SetBytes(sd.Changed.From.Bytes())
		after := new(big.Int).SetBytes(sd.Changed.To.Bytes())
		if after.Cmp(before) <= 0 {
			// Only balance increases are reported: the pool receiving the
			// target token means a counterparty is giving it away.
			continue
		}
		changes = append(changes, types.PoolBalanceChange{
			TxHash:      tx.Hash(),
			BlockNumber: blockNumber,
			Pool:        pool,
			Before:      before,
			After:       after,
		})
	}
	return changes, nil
}

// BalanceSlot derives the storage slot of mapping(address => uint256)
// balances[holder] for a contract keeping the mapping at slotIndex:
// keccak256(pad32(holder) ++ pad32(slotIndex)).
func BalanceSlot(holder common.Address, slotIndex uint64) common.Hash {
	buf := make([]byte, 64)
	copy(buf[12:32], holder.Bytes())
	new(big.Int).SetUint64(slotIndex).FillBytes(buf[32:64])
	return crypto.Keccak256Hash(buf)
}
