package cmd

import (
	logger "github.com/convergent-intelligence/convergence-protocol-sub000/internal/logging"
	"github.com/spf13/cobra"
)

var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Manage the shared 12-word recovery phrase",
	Long:  `Provides one-time generation, authorized display, and custodian restore of the recovery phrase shared by the partner collective.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing seed command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	SeedCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	SeedCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	SeedCmd.AddCommand(seedGenerateCmd)
	SeedCmd.AddCommand(seedShowCmd)
	SeedCmd.AddCommand(seedRestoreCmd)
	SeedCmd.AddCommand(seedStatusCmd)
}
