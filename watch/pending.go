package watch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"poolwatch/config"
	"poolwatch/logger"
	"poolwatch/types"
)

// PendingSource is the slice of the node client the pending-transaction
// watcher needs.
type PendingSource interface {
	SubscribePendingTransactions(ctx context.Context, ch chan<- common.Hash) (ethereum.Subscription, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*ethtypes.Transaction, error)
}

// WatchPending resolves announced mempool hashes into full transaction
// bodies and publishes them. At most config.PENDING_RESOLVE_PARALLEL_NUM
// resolutions are in flight at once, so a mempool burst cannot pile up
// unbounded outstanding requests. Per-transaction resolution failures are
// logged and skipped; only a subscription failure terminates the watcher.
func WatchPending(ctx context.Context, src PendingSource, bus *EventBus) error {
	hashes := make(chan common.Hash, config.PENDING_STREAM_BUFFER)
	sub, err := src.SubscribePendingTransactions(ctx, hashes)
	if err != nil {
		return fmt.Errorf("failed to subscribe to pending transactions: %w", err)
	}
	defer sub.Unsubscribe()

	sem := make(chan struct{}, config.PENDING_RESOLVE_PARALLEL_NUM)
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return pendingSubErr(err)
		case h := <-hashes:
			// Waiting for a resolution slot must not blind the loop to
			// shutdown while every slot is in flight.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case err := <-sub.Err():
				return pendingSubErr(err)
			case sem <- struct{}{}:
			}
			wg.Add(1)
			go func(hash common.Hash) {
				defer wg.Done()
				defer func() { <-sem }()

				tx, err := src.TransactionByHash(ctx, hash)
				if err != nil {
					// Dropped from the mempool or not yet propagated.
					logger.WatchLogger.Warn("Failed to resolve pending transaction", "hash", hash, "err", err)
					return
				}
				bus.Publish(types.Event{Tx: tx})
			}(h)
		}
	}
}

func pendingSubErr(err error) error {
	if err == nil {
		return errors.New("pending transaction subscription closed")
	}
	return fmt.Errorf("pending transaction subscription terminated: %w", err)
}
