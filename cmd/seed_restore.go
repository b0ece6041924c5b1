package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/seedvault"
)

var (
	restoreWallet  string
	restoreConfirm bool
)

func init() {
	seedRestoreCmd.Flags().StringVar(&restoreWallet, "wallet", "", "wallet address of the restoring custodian")
	seedRestoreCmd.Flags().BoolVar(&restoreConfirm, "confirm", false, "confirm overwriting an existing phrase")
	_ = seedRestoreCmd.MarkFlagRequired("wallet")
}

var seedRestoreCmd = &cobra.Command{
	Use:   "restore \"word1 word2 ... word12\"",
	Short: "Restores the recovery phrase from a backup (custodians only)",
	Long: `Rewrites the key file from a backed-up 12-word phrase. Only custodians
may restore, and overwriting an existing phrase requires --confirm. The
phrase may be passed as one quoted argument or as twelve arguments.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting seed restore command")
		spinner, cleanup := startSpinner("Restoring recovery phrase...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		words := splitPhrase(args)
		if len(words) != seedvault.WordCount {
			spinner.FinalMSG = color.RedString("✗") + fmt.Sprintf(" Expected %d words, got %d", seedvault.WordCount, len(words))
			return nil
		}

		if err := rt.vault.Restore(restoreWallet, strings.Join(words, " "), restoreConfirm); err != nil {
			switch {
			case errors.Is(err, cerrors.ErrCustodianOnly):
				spinner.FinalMSG = color.RedString("✗") + " Only custodians may restore the recovery phrase"
				return nil
			case errors.Is(err, cerrors.ErrRestoreNeedsConfirm):
				spinner.FinalMSG = color.RedString("✗") + " A phrase already exists\n" +
					color.CyanString("→") + " Re-run with " + color.YellowString("--confirm") + " to overwrite it"
				return nil
			case errors.Is(err, cerrors.ErrInvalidMnemonic):
				spinner.FinalMSG = color.RedString("✗") + " The phrase is not a valid BIP39 mnemonic"
				return nil
			case errors.Is(err, cerrors.ErrSeedNotGenerated):
				spinner.FinalMSG = color.RedString("✗") + " The recovery phrase has never been generated\n" +
					color.CyanString("→") + " Run " + color.YellowString("covenant seed generate") + " instead"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to restore recovery phrase: %v", err)
		}

		Logger.Infof("Recovery phrase restored by %s", restoreWallet)
		spinner.FinalMSG = color.GreenString("✓") + " Recovery phrase restored\n" +
			color.CyanString("→") + " Verify with " + color.YellowString("covenant seed show --wallet "+restoreWallet)
		return nil
	},
}
