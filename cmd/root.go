package cmd

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "poolwatch",
	Short: "A tool for watching pending swaps against tracked liquidity pools",
}
