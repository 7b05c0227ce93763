package cmd

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"poolwatch/logger"
	"poolwatch/watch"
)

var watchToken string

var watchCmd = cobra.Command{
	Use:   "watch",
	Short: "Start watching the mempool for transactions moving a token through tracked pools",
	Run: func(cmd *cobra.Command, args []string) {
		logger.InitLogs("watch")

		if !common.IsHexAddress(watchToken) {
			logger.WatchLogger.Error("Invalid target token address", "token", watchToken)
			return
		}
		target := common.HexToAddress(watchToken)

		logger.WatchLogger.Info("Running cmd watch, starting mempool monitoring...", "token", target)

		if err := watch.RunWatchCmd(target); err != nil {
			logger.WatchLogger.Error("Error running watch command", "error", err)
		}
	},
}

func init() {
	watchCmd.Flags().StringVarP(
		&watchToken,
		"token",
		"t",
		"",
		"target token address to watch, e.g. WETH 0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
	)
	_ = watchCmd.MarkFlagRequired("token")
	RootCmd.AddCommand(&watchCmd)
}
