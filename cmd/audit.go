package cmd

import (
	logger "github.com/convergent-intelligence/convergence-protocol-sub000/internal/logging"
	"github.com/spf13/cobra"
)

var AuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "View the security event log",
	Long:  `Provides custodian access to the security event log: the hot store holds the most recent events, with the full history in day-partitioned audit files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing audit command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	AuditCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	AuditCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	AuditCmd.AddCommand(auditLogCmd)
}
