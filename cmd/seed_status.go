package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the vault state without revealing the phrase",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting seed status command")
		spinner, cleanup := startSpinner("Checking vault...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		if !rt.vault.Generated() {
			spinner.FinalMSG = color.YellowString("⚠") + " The recovery phrase has not been generated\n" +
				color.CyanString("→") + " Run " + color.YellowString("covenant seed generate") + " to create it"
			return nil
		}

		meta, err := rt.vault.Status()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read vault status: %v", err)
		}

		msg := color.GreenString("✓") + " Recovery phrase generated\n" +
			"    phrase:       " + color.YellowString(meta.Phrase) + "\n" +
			"    generated by: " + meta.GeneratedBy
		if meta.CreatedAt != nil {
			msg += "\n    generated at: " + meta.CreatedAt.Format("2006-01-02 15:04:05")
		}
		if meta.RestoredAt != nil {
			msg += "\n    restored by:  " + meta.RestoredBy +
				"\n    restored at:  " + meta.RestoredAt.Format("2006-01-02 15:04:05")
		}
		spinner.FinalMSG = msg
		return nil
	},
}
