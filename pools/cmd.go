package pools

import (
	"context"
	"errors"

	"github.com/spf13/viper"

	"poolwatch/config"
	"poolwatch/eth"
	"poolwatch/logger"
)

// RunSyncPoolsCmd populates or refreshes the pool checkpoint without
// starting the watch pipeline.
func RunSyncPoolsCmd() error {
	ctx := context.Background()

	wsURL := viper.GetString("WSS_URL")
	if wsURL == "" {
		return errors.New("WSS_URL is not set")
	}

	client, err := eth.Dial(ctx, wsURL)
	if err != nil {
		return err
	}
	defer client.Close()

	poolList, err := LoadOrSyncPools(ctx, client, DefaultDexes(), config.CheckpointPath)
	if err != nil {
		return err
	}

	logger.GlobalLogger.Info("Pool checkpoint written", "pools", len(poolList), "path", config.CheckpointPath)
	return nil
}
