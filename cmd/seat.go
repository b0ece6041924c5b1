package cmd

import (
	logger "github.com/convergent-intelligence/convergence-protocol-sub000/internal/logging"
	"github.com/spf13/cobra"
)

var SeatCmd = &cobra.Command{
	Use:   "seat",
	Short: "Manage named governance seats",
	Long:  `Provides assignment and revocation of the collective's named governance seats, with automatic succession by burned trust on revocation.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing seat command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	SeatCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	SeatCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	SeatCmd.AddCommand(seatAssignCmd)
	SeatCmd.AddCommand(seatRevokeCmd)
}
