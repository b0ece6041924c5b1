package cmd

import (
	logger "github.com/convergent-intelligence/convergence-protocol-sub000/internal/logging"
	"github.com/spf13/cobra"
)

var PartnerCmd = &cobra.Command{
	Use:   "partner",
	Short: "Manage the partner collective roster",
	Long:  `Provides enrollment, seed distribution tracking, acknowledgement, governance status updates, trust ranking, and intent declarations for the partner collective.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing partner command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	PartnerCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	PartnerCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	PartnerCmd.AddCommand(partnerEnrollCmd)
	PartnerCmd.AddCommand(partnerDistributeCmd)
	PartnerCmd.AddCommand(partnerAcknowledgeCmd)
	PartnerCmd.AddCommand(partnerUpdateCmd)
	PartnerCmd.AddCommand(partnerRankCmd)
	PartnerCmd.AddCommand(partnerStatusCmd)
	PartnerCmd.AddCommand(partnerDeclareCmd)
	PartnerCmd.AddCommand(partnerDeclarationsCmd)
}
