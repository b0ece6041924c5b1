package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var (
	limitsPerMinute int
	limitsPerDay    int
)

func init() {
	apikeyLimitsCmd.Flags().IntVar(&limitsPerMinute, "per-minute", 0, "requests allowed per minute")
	apikeyLimitsCmd.Flags().IntVar(&limitsPerDay, "per-day", 0, "requests allowed per day")
	_ = apikeyLimitsCmd.MarkFlagRequired("per-minute")
	_ = apikeyLimitsCmd.MarkFlagRequired("per-day")
}

var apikeyLimitsCmd = &cobra.Command{
	Use:   "limits <wallet> <key-id>",
	Short: "Sets the rate limit ceilings for one key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting apikey limits command")
		spinner, cleanup := startSpinner("Updating rate limits...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		if err := rt.keys.SetRateLimit(args[0], args[1], limitsPerMinute, limitsPerDay); err != nil {
			switch {
			case errors.Is(err, cerrors.ErrKeyNotFound):
				spinner.FinalMSG = color.RedString("✗") + " No key " + color.YellowString(args[1]) + " for wallet " + color.YellowString(args[0])
				return nil
			case errors.Is(err, cerrors.ErrMissingField):
				spinner.FinalMSG = color.RedString("✗") + " Ceilings must be positive"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to update rate limits: %v", err)
		}

		Logger.Infof("Rate limits updated for key %s", args[1])
		spinner.FinalMSG = color.GreenString("✓") + " Rate limits for " + color.YellowString(args[1]) + " set to " +
			fmt.Sprintf("%d/minute, %d/day", limitsPerMinute, limitsPerDay)
		return nil
	},
}
