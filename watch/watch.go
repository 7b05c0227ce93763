package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"poolwatch/config"
	"poolwatch/db"
	"poolwatch/eth"
	"poolwatch/logger"
	"poolwatch/pools"
)

// RunWatchCmd wires the full pipeline for the target token and runs it
// until the first task terminates. Watchers are not restarted: the first
// subscription to die takes the whole pipeline down.
func RunWatchCmd(target common.Address) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsURL := viper.GetString("WSS_URL")
	if wsURL == "" {
		return errors.New("WSS_URL is not set")
	}
	client, err := eth.Dial(ctx, wsURL)
	if err != nil {
		return err
	}
	defer client.Close()

	poolList, err := pools.LoadOrSyncPools(ctx, client, pools.DefaultDexes(), config.CheckpointPath)
	if err != nil {
		return fmt.Errorf("failed to populate pool registry: %w", err)
	}
	registry := pools.NewRegistry()
	for _, p := range poolList {
		registry.Insert(p)
	}
	logger.WatchLogger.Info("Pool registry populated", "pools", registry.Len(), "target", target)

	// The store is optional: without ClickHouse, detections stay log-only.
	var store Store
	if ch, err := db.NewClickhouse(); err != nil {
		logger.WatchLogger.Warn("Detection store unavailable, detections are log-only", "err", err)
	} else {
		store = ch
		defer ch.Close()
	}

	bus := NewEventBus(config.EVENT_BUS_CAPACITY)
	analyzer := NewStateDiffAnalyzer(client, registry, target)
	correlator := NewCorrelator(bus.Subscribe(), analyzer, store)

	errc := make(chan error, 3)
	go func() { errc <- WatchBlocks(ctx, client, bus) }()
	go func() { errc <- WatchPending(ctx, client, bus) }()
	go func() { errc <- correlator.Run(ctx) }()

	// Wait for any task to finish, then shut the others down.
	err = <-errc
	logger.WatchLogger.Error("Pipeline task terminated, shutting down", "err", err)
	cancel()
	for i := 0; i < 2; i++ {
		<-errc
	}
	return err
}
