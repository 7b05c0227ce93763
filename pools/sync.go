package pools

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"poolwatch/config"
	"poolwatch/logger"
	"poolwatch/types"
)

// LogFilterer is the slice of the node client the synchronizer needs.
type LogFilterer interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]ethtypes.Log, error)
}

// Dex describes one factory to scan for pool-creation events.
type Dex struct {
	Factory       common.Address
	Variant       types.PoolVariant
	CreationBlock uint64
}

// DefaultDexes returns the factories the watcher tracks.
func DefaultDexes() []Dex {
	return []Dex{
		{
			Factory:       common.HexToAddress(config.UNISWAP_V2_FACTORY),
			Variant:       types.UniswapV2,
			CreationBlock: config.UNISWAP_V2_FACTORY_CREATION_BLOCK,
		},
		{
			Factory:       common.HexToAddress(config.UNISWAP_V3_FACTORY),
			Variant:       types.UniswapV3,
			CreationBlock: config.UNISWAP_V3_FACTORY_CREATION_BLOCK,
		},
	}
}

// Factory event signatures.
var (
	pairCreatedTopic = crypto.Keccak256Hash([]byte("PairCreated(address,address,address,uint256)"))
	poolCreatedTopic = crypto.Keccak256Hash([]byte("PoolCreated(address,address,uint24,int24,address)"))
)

// LoadOrSyncPools populates the pool set: resume from the checkpoint at
// path when one exists, otherwise scan each factory from its creation
// block. The checkpoint is rewritten after the scan. Any failure here is
// fatal for the caller; a partial pool set must not be used.
func LoadOrSyncPools(ctx context.Context, client LogFilterer, dexes []Dex, path string) ([]types.Pool, error) {
	var (
		pools []types.Pool
		from  uint64
	)
	if _, err := os.Stat(path); err == nil {
		cp, err := LoadCheckpoint(path)
		if err != nil {
			return nil, err
		}
		pools = cp.Pools
		from = cp.LastBlock + 1
		logger.GlobalLogger.Info("Resuming pool sync from checkpoint", "path", path, "pools", len(pools), "fromBlock", from)
	}

	head, err := client.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain head: %w", err)
	}

	for _, dex := range dexes {
		start := dex.CreationBlock
		if from > start {
			start = from
		}
		if start > head {
			continue
		}
		scanned, err := scanFactory(ctx, client, dex, start, head)
		if err != nil {
			return nil, err
		}
		pools = append(pools, scanned...)
	}

	if err := SaveCheckpoint(path, &Checkpoint{LastBlock: head, Pools: pools}); err != nil {
		return nil, err
	}
	logger.GlobalLogger.Info("Pool sync finished", "pools", len(pools), "lastBlock", head)
	return pools, nil
}

// scanFactory walks the factory's creation events in bounded block
// ranges, retrying each range a few times on transient node errors.
func scanFactory(ctx context.Context, client LogFilterer, dex Dex, from, to uint64) ([]types.Pool, error) {
	topic := pairCreatedTopic
	if dex.Variant == types.UniswapV3 {
		topic = poolCreatedTopic
	}

	var pools []types.Pool
	for start := from; start <= to; start += config.POOL_SYNC_BLOCK_STEP {
		end := start + config.POOL_SYNC_BLOCK_STEP - 1
		if end > to {
			end = to
		}

		logs, err := filterLogsWithRetry(ctx, client, ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(start),
			ToBlock:   new(big.Int).SetUint64(end),
			Addresses: []common.Address{dex.Factory},
			Topics:    [][]common.Hash{{topic}},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s factory logs [%d, %d]: %w", dex.Variant, start, end, err)
		}

		for _, lg := range logs {
			pool, ok := poolFromLog(lg, dex.Variant)
			if !ok {
				logger.GlobalLogger.Warn("Skipping malformed factory log", "tx", lg.TxHash, "variant", dex.Variant.String())
				continue
			}
			pools = append(pools, pool)
		}
		logger.GlobalLogger.Info("Scanned factory range", "factory", dex.Factory, "from", start, "to", end, "poolsSoFar", len(pools))
	}
	return pools, nil
}

func filterLogsWithRetry(ctx context.Context, client LogFilterer, q ethereum.FilterQuery) ([]ethtypes.Log, error) {
	var lastErr error
	for i := 0; i < config.DefaultRetryTimes; i++ {
		logs, err := client.FilterLogs(ctx, q)
		if err == nil {
			return logs, nil
		}
		lastErr = err
		logger.GlobalLogger.Warn("FilterLogs failed, retrying...", "attempt", i+1, "err", err)
		time.Sleep(config.DefaultRetryInterval)
	}
	return nil, lastErr
}

// poolFromLog decodes a PairCreated/PoolCreated event. Both carry the two
// tokens as indexed topics; the pool address sits in the data section.
func poolFromLog(lg ethtypes.Log, variant types.PoolVariant) (types.Pool, bool) {
	if len(lg.Topics) < 3 {
		return types.Pool{}, false
	}
	pool := types.Pool{
		TokenA:  common.BytesToAddress(lg.Topics[1].Bytes()),
		TokenB:  common.BytesToAddress(lg.Topics[2].Bytes()),
		Variant: variant,
	}
	switch variant {
	case types.UniswapV2:
		// data: pair address word, cumulative pair count word
		if len(lg.Data) < 32 {
			return types.Pool{}, false
		}
		pool.Address = common.BytesToAddress(lg.Data[12:32])
	case types.UniswapV3:
		// topics[3]: fee tier; data: tickSpacing word, pool address word
		if len(lg.Topics) < 4 || len(lg.Data) < 64 {
			return types.Pool{}, false
		}
		pool.Fee = uint32(new(big.Int).SetBytes(lg.Topics[3].Bytes()).Uint64())
		pool.Address = common.BytesToAddress(lg.Data[44:64])
	default:
		return types.Pool{}, false
	}
	return pool, true
}
