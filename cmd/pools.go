package cmd

import (
	"github.com/spf13/cobra"

	"poolwatch/logger"
	"poolwatch/pools"
)

var syncPoolsCmd = cobra.Command{
	Use:   "sync-pools",
	Short: "Sync tracked pools from factory events into the checkpoint",
	Run: func(cmd *cobra.Command, args []string) {
		logger.InitLogs("sync-pools")

		logger.GlobalLogger.Info("Running cmd sync-pools, starting pool sync...")

		if err := pools.RunSyncPoolsCmd(); err != nil {
			logger.GlobalLogger.Error("Error running sync-pools command", "error", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(&syncPoolsCmd)
}
