package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var apikeyStatsCmd = &cobra.Command{
	Use:   "stats <agent>",
	Short: "Shows aggregate usage for an agent across all wallets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting apikey stats command")
		spinner, cleanup := startSpinner("Aggregating usage...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		stats, err := rt.keys.StatsForAgent(args[0])
		if err != nil {
			if errors.Is(err, cerrors.ErrAgentNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " No agent named " + color.YellowString(args[0])
				return nil
			}
			return Logger.ErrorfAndReturn("failed to aggregate usage: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Agent " + color.CyanString(stats.Name) + "\n" +
			fmt.Sprintf("    wallets:  %d\n", stats.ActiveWallets) +
			fmt.Sprintf("    keys:     %d\n", stats.TotalKeys) +
			fmt.Sprintf("    requests: %d\n", stats.TotalRequests) +
			"    since:    " + stats.CreatedAt.Format("2006-01-02")
		return nil
	},
}
