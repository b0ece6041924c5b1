package cmd

import (
	logger "github.com/convergent-intelligence/convergence-protocol-sub000/internal/logging"
	"github.com/spf13/cobra"
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the covenant configuration",
	Long:  `Provides initialization and inspection of the operator configuration: custodian wallets, the partner cap, rate limit defaults, and session settings.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing config command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	ConfigCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	ConfigCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}
