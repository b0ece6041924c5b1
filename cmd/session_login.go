package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var sessionLoginCmd = &cobra.Command{
	Use:   "login <wallet> \"word1 word2 ... word12\"",
	Short: "Verifies a partner's recovery phrase and issues a session token",
	Long: `Logs a partner in by matching the recovery phrase word for word. The
wallet must be enrolled and acknowledged. The phrase may be passed as one
quoted argument or as twelve arguments.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting session login command")
		spinner, cleanup := startSpinner("Verifying recovery phrase...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}
		manager, err := rt.sessionManager()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		session, err := manager.Login(args[0], splitPhrase(args[1:]))
		if err != nil {
			switch {
			case errors.Is(err, cerrors.ErrNotPartner):
				spinner.FinalMSG = color.RedString("✗") + " Wallet " + color.YellowString(args[0]) + " is not an enrolled partner"
				return nil
			case errors.Is(err, cerrors.ErrNotAcknowledged):
				spinner.FinalMSG = color.RedString("✗") + " Partner has not acknowledged the recovery phrase\n" +
					color.CyanString("→") + " Run " + color.YellowString("covenant partner acknowledge "+args[0]) + " first"
				return nil
			case errors.Is(err, cerrors.ErrPhraseMismatch):
				spinner.FinalMSG = color.RedString("✗") + " Recovery phrase does not match"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to log in: %v", err)
		}

		Logger.Infof("Session issued for %s until %s", session.Wallet, session.ExpiresAt)
		spinner.FinalMSG = color.GreenString("✓") + " Verified " + color.CyanString(session.Alias) + "\n" +
			"    token:   " + color.YellowString(session.Token) + "\n" +
			"    expires: " + session.ExpiresAt.Format("2006-01-02 15:04:05")
		return nil
	},
}
