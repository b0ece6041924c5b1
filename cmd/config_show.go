package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Displays the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		spinner, cleanup := startSpinner("Loading configuration...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		signingKey := "unset (generated on first login)"
		if rt.config.Session.SigningKey != "" {
			signingKey = "set"
		}

		spinner.FinalMSG = color.GreenString("✓") + " Configuration (" + rt.settings.ConfigPath() + ")\n" +
			"    initiator:    " + color.CyanString(rt.config.Custodians.Initiator) + "\n" +
			"    co-custodian: " + color.CyanString(rt.config.Custodians.CoCustodian) + "\n" +
			fmt.Sprintf("    max partners: %d\n", rt.config.Governance.MaxPartners) +
			fmt.Sprintf("    rate limits:  %d/minute, %d/day\n",
				rt.config.RateLimit.RequestsPerMinute, rt.config.RateLimit.RequestsPerDay) +
			fmt.Sprintf("    session ttl:  %dh\n", rt.config.Session.TTLHours) +
			"    signing key:  " + signingKey
		return nil
	},
}
