package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var sessionLogoutCmd = &cobra.Command{
	Use:   "logout <wallet>",
	Short: "Records a logout for the audit trail",
	Long: `Sessions are stateless signed tokens, so logout cannot invalidate an
issued token before it expires. It records the logout in the security log;
clients must discard the token.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting session logout command")
		spinner, cleanup := startSpinner("Logging out...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}
		manager, err := rt.sessionManager()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		if err := manager.Logout(args[0]); err != nil {
			return Logger.ErrorfAndReturn("failed to log out: %v", err)
		}

		Logger.Infof("Logout recorded for %s", args[0])
		spinner.FinalMSG = color.GreenString("✓") + " Logout recorded for " + color.CyanString(args[0]) + "\n" +
			color.CyanString("→") + " Discard the token; it remains valid until its expiry"
		return nil
	},
}
