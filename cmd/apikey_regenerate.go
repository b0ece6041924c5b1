package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var apikeyRegenerateCmd = &cobra.Command{
	Use:   "regenerate <wallet> <key-id>",
	Short: "Replaces a key with a fresh token carrying the same scope",
	Long: `Revokes the old key (if still active) and issues a replacement with the
same agent, description, and permissions. The new raw token is shown once.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting apikey regenerate command")
		spinner, cleanup := startSpinner("Regenerating API key...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		issued, err := rt.keys.Regenerate(args[0], args[1])
		if err != nil {
			if errors.Is(err, cerrors.ErrKeyNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " No key " + color.YellowString(args[1]) + " for wallet " + color.YellowString(args[0])
				return nil
			}
			return Logger.ErrorfAndReturn("failed to regenerate API key: %v", err)
		}

		Logger.Infof("API key %s regenerated as %s", args[1], issued.KeyID)
		spinner.FinalMSG = color.GreenString("✓") + " Key regenerated for " + color.CyanString(issued.Agent) + "\n" +
			"    new key id: " + color.YellowString(issued.KeyID) + "\n" +
			"    new token:  " + color.YellowString(issued.APIKey) + "\n\n" +
			color.YellowString("⚠") + " The old token no longer works. This one is shown " + color.RedString("once") + "."
		return nil
	},
}
