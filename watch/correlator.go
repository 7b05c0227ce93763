package watch

import (
	"context"
	"errors"

	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"poolwatch/eth"
	"poolwatch/logger"
	"poolwatch/types"
)

// Analyzer inspects one includable pending transaction against a block
// context.
type Analyzer interface {
	Analyze(ctx context.Context, tx *ethtypes.Transaction, blockNumber uint64) ([]types.PoolBalanceChange, error)
}

// Store persists detected balance changes.
type Store interface {
	InsertBalanceChanges(changes []*types.PoolBalanceChange) error
}

// Correlator is the sole bus consumer. It tracks the most recently
// observed block and forwards pending transactions that clear the
// next-block fee bar to the analyzer.
type Correlator struct {
	sub      *Subscription
	analyzer Analyzer
	store    Store // may be nil, detections are then log-only

	// current is owned exclusively by the Run goroutine. The zero value
	// (Number == 0) means no block has been observed yet.
	current types.NewBlock
}

func NewCorrelator(sub *Subscription, analyzer Analyzer, store Store) *Correlator {
	return &Correlator{sub: sub, analyzer: analyzer, store: store}
}

// Run consumes bus events sequentially until ctx is cancelled or the
// subscription closes.
func (c *Correlator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-c.sub.Events():
			if !ok {
				return errors.New("event bus subscription closed")
			}
			c.handle(ctx, ev)
		}
	}
}

func (c *Correlator) handle(ctx context.Context, ev types.Event) {
	switch {
	case ev.Block != nil:
		// Last received wins, even under out-of-order delivery.
		c.current = *ev.Block
		logger.WatchLogger.Info("Tracking block",
			"number", c.current.Number, "baseFee", c.current.BaseFee, "gasUsed", c.current.GasUsed)

	case ev.Tx != nil:
		if c.current.Number == 0 {
			// No block observed yet, no basis for an includability call.
			return
		}
		if ev.Tx.Type() != ethtypes.DynamicFeeTxType {
			// Legacy and access-list transactions carry no maxFeePerGas.
			// GasFeeCap() falls back to the gas price for those, so the
			// missing cap is treated as zero, which never clears the bar.
			return
		}
		predicted := eth.PredictNextBaseFee(c.current.GasUsed, c.current.GasLimit, c.current.BaseFee)
		if ev.Tx.GasFeeCap().Cmp(predicted) <= 0 {
			// Priced below the next base fee, unlikely to land next block.
			return
		}
		go c.analyze(ctx, ev.Tx, c.current.Number)
	}
}

// analyze runs off the consumption loop so a slow simulation never stalls
// event intake. Failures are logged, never propagated.
func (c *Correlator) analyze(ctx context.Context, tx *ethtypes.Transaction, blockNumber uint64) {
	changes, err := c.analyzer.Analyze(ctx, tx, blockNumber)
	if err != nil {
		logger.WatchLogger.Warn("Analysis failed", "tx", tx.Hash(), "err", err)
		return
	}
	if len(changes) == 0 {
		return
	}

	rows := make([]*types.PoolBalanceChange, 0, len(changes))
	for i := range changes {
		ch := changes[i]
		logger.WatchLogger.Info("Pool balance increase detected",
			"tx", ch.TxHash, "pool", ch.Pool.Address, "variant", ch.Pool.Variant.String(),
			"before", ch.Before, "after", ch.After)
		rows = append(rows, &ch)
	}
	if c.store == nil {
		return
	}
	if err := c.store.InsertBalanceChanges(rows); err != nil {
		logger.WatchLogger.Error("Failed to store balance changes", "tx", tx.Hash(), "err", err)
	}
}
