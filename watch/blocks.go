package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"poolwatch/config"
	"poolwatch/logger"
	"poolwatch/types"
)

// HeadSource is the slice of the node client the block watcher needs.
type HeadSource interface {
	SubscribeNewHead(ctx context.Context, ch chan<- *ethtypes.Header) (ethereum.Subscription, error)
}

// WatchBlocks publishes a NewBlock event for every header the node
// announces. It runs until ctx is cancelled or the subscription ends;
// a terminated subscription is returned to the supervisor, not retried.
func WatchBlocks(ctx context.Context, src HeadSource, bus *EventBus) error {
	heads := make(chan *ethtypes.Header, config.HEAD_STREAM_BUFFER)
	sub, err := src.SubscribeNewHead(ctx, heads)
	if err != nil {
		return fmt.Errorf("failed to subscribe to new heads: %w", err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			if err == nil {
				return errors.New("head subscription closed")
			}
			return fmt.Errorf("head subscription terminated: %w", err)
		case h := <-heads:
			if h.Number == nil {
				// Uncle or malformed notification, nothing to anchor on.
				continue
			}
			block := types.NewBlockFromHeader(h)
			bus.Publish(types.Event{Block: &block})
			logger.WatchLogger.Info("New block observed",
				"number", block.Number, "gasUsed", block.GasUsed, "gasLimit", block.GasLimit, "baseFee", block.BaseFee)
		}
	}
}
