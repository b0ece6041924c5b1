package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/convergent-intelligence/convergence-protocol-sub000/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "covenant",
	Short: "Covenant - identity and secret custody for the partner collective.",
	Long: `Covenant manages the governance collective's shared identity: the 12-word
recovery phrase, the partner roster and its seats, encrypted team
credentials, and agent API keys. Every mutation is recorded in an
append-only security log.

Usage:
  covenant <command> [flags]

Available Commands:
  config       Manage the operator configuration
  seed         Manage the shared recovery phrase
  partner      Manage the partner roster
  seat         Manage governance seats
  credential   Manage encrypted team credentials
  apikey       Manage agent API keys
  session      Manage partner sessions
  audit        View the security event log

Run 'covenant help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Covenant! Run 'covenant --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.ConfigCmd)
	rootCmd.AddCommand(cmd.SeedCmd)
	rootCmd.AddCommand(cmd.PartnerCmd)
	rootCmd.AddCommand(cmd.SeatCmd)
	rootCmd.AddCommand(cmd.CredentialCmd)
	rootCmd.AddCommand(cmd.ApikeyCmd)
	rootCmd.AddCommand(cmd.SessionCmd)
	rootCmd.AddCommand(cmd.AuditCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
