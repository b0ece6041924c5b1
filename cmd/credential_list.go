package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/credentials"
)

var credentialListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists team members without decrypting any payloads",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting credential list command")

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}
		manager, err := rt.credentialManager()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Listing members...")
		defer cleanup()

		members, err := manager.List()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to list members: %v", err)
		}

		if len(members) == 0 {
			spinner.FinalMSG = color.YellowString("⚠") + " No team members stored"
			return nil
		}

		var b strings.Builder
		b.WriteString(color.GreenString("✓") + fmt.Sprintf(" %d team member(s):\n", len(members)))
		for _, member := range members {
			marker := color.GreenString("●")
			if member.Status != credentials.StatusActive {
				marker = color.RedString("●")
			}
			b.WriteString(fmt.Sprintf("    %s %s  %-24s %s\n", marker, member.Wallet, member.Role, member.Status))
		}
		spinner.FinalMSG = strings.TrimRight(b.String(), "\n")
		return nil
	},
}
