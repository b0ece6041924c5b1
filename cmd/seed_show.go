package cmd

import (
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/ui"
)

var (
	showWallet string
	showFormat string
)

func init() {
	seedShowCmd.Flags().StringVar(&showWallet, "wallet", "", "wallet address of the requester")
	seedShowCmd.Flags().StringVar(&showFormat, "format", ui.SeedFormatPlain,
		"display format: "+strings.Join(ui.SeedFormats(), ", "))
	_ = seedShowCmd.MarkFlagRequired("wallet")
}

var seedShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Displays the recovery phrase to an authorized wallet",
	Long: `Shows the recovery phrase to a custodian or enrolled partner. The etch
format prints a large layout with a positional checksum for physical
engraving; unauthorized attempts are recorded in the security log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting seed show command")
		spinner, cleanup := startSpinner("Retrieving recovery phrase...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		result, err := rt.vault.Retrieve(showWallet)
		if err != nil {
			switch {
			case errors.Is(err, cerrors.ErrSeedNotGenerated):
				spinner.FinalMSG = color.RedString("✗") + " The recovery phrase has not been generated\n" +
					color.CyanString("→") + " Run " + color.YellowString("covenant seed generate") + " first"
				return nil
			case errors.Is(err, cerrors.ErrSeedAccessDenied):
				spinner.FinalMSG = color.RedString("✗") + " Wallet " + color.YellowString(showWallet) + " is not authorized\n" +
					color.CyanString("→") + " Only custodians and enrolled partners may view the phrase\n" +
					color.CyanString("→") + " This attempt has been recorded in the security log"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to retrieve recovery phrase: %v", err)
		}

		formatted, err := ui.FormatSeed(strings.Fields(result.Phrase), showFormat)
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		Logger.Infof("Recovery phrase retrieved at %s", result.AccessedAt.Format("2006-01-02 15:04:05"))
		spinner.FinalMSG = formatted +
			color.YellowString("⚠") + " All access is logged. Never store this phrase digitally without encryption."
		return nil
	},
}
