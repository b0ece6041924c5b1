package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listAgents bool

func init() {
	apikeyListCmd.Flags().BoolVar(&listAgents, "agents", false, "list all registered agents instead of one wallet's keys")
}

var apikeyListCmd = &cobra.Command{
	Use:   "list [wallet]",
	Short: "Lists a wallet's active keys, or all agents with --agents",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting apikey list command")
		spinner, cleanup := startSpinner("Listing keys...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		if listAgents {
			agents, err := rt.keys.AllAgents()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to list agents: %v", err)
			}
			if len(agents) == 0 {
				spinner.FinalMSG = color.YellowString("⚠") + " No agents registered"
				return nil
			}
			var b strings.Builder
			b.WriteString(color.GreenString("✓") + fmt.Sprintf(" %d agent(s):\n", len(agents)))
			for _, agent := range agents {
				b.WriteString(fmt.Sprintf("    %-24s %d wallet(s)\n", agent.Name, agent.WalletCount))
			}
			spinner.FinalMSG = strings.TrimRight(b.String(), "\n")
			return nil
		}

		if len(args) == 0 {
			spinner.FinalMSG = color.RedString("✗") + " A wallet address is required (or pass " + color.YellowString("--agents") + ")"
			return nil
		}

		keys, err := rt.keys.KeysForWallet(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("failed to list keys: %v", err)
		}
		if len(keys) == 0 {
			spinner.FinalMSG = color.YellowString("⚠") + " No active keys for " + color.CyanString(args[0])
			return nil
		}

		var b strings.Builder
		b.WriteString(color.GreenString("✓") + fmt.Sprintf(" %d active key(s) for %s:\n", len(keys), args[0]))
		for _, key := range keys {
			lastUsed := "never"
			if key.LastUsed != nil {
				lastUsed = key.LastUsed.Format("2006-01-02 15:04")
			}
			b.WriteString(fmt.Sprintf("    %s  %-20s %6d request(s)  last used %s\n",
				key.KeyID, key.Agent, key.UsageCount, lastUsed))
		}
		spinner.FinalMSG = strings.TrimRight(b.String(), "\n")
		return nil
	},
}
