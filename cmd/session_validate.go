package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var sessionValidateCmd = &cobra.Command{
	Use:   "validate <wallet> <token>",
	Short: "Checks a session token's signature, expiry, and wallet binding",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting session validate command")
		spinner, cleanup := startSpinner("Validating session...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}
		manager, err := rt.sessionManager()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		validation, err := manager.Validate(args[0], args[1])
		if err != nil {
			switch {
			case errors.Is(err, cerrors.ErrSessionExpired):
				spinner.FinalMSG = color.RedString("✗") + " Session expired\n" +
					color.CyanString("→") + " Log in again with " + color.YellowString("covenant session login")
				return nil
			case errors.Is(err, cerrors.ErrSessionInvalid):
				spinner.FinalMSG = color.RedString("✗") + " Token is invalid for this wallet"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to validate session: %v", err)
		}

		Logger.Infof("Session valid until %s", validation.ExpiresAt)
		spinner.FinalMSG = color.GreenString("✓") + " Session valid\n" +
			"    expires: " + validation.ExpiresAt.Format("2006-01-02 15:04:05") + "\n" +
			fmt.Sprintf("    in:      %s", validation.ExpiresIn.Round(time.Second))
		return nil
	},
}
