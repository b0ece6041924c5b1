package cmd

import (
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/ui"
)

var generateInitiator string

func init() {
	seedGenerateCmd.Flags().StringVar(&generateInitiator, "initiator", "", "wallet address of the generating custodian")
	_ = seedGenerateCmd.MarkFlagRequired("initiator")
}

var seedGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Performs the one-time generation of the recovery phrase",
	Long: `Generates the collective's 12-word recovery phrase. This can only ever
happen once: the phrase is written to a restricted key file and every later
attempt fails regardless of who asks. The phrase is shown exactly once here,
so record it before closing the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting seed generate command")
		spinner, cleanup := startSpinner("Generating recovery phrase...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		result, err := rt.vault.Generate(generateInitiator)
		if err != nil {
			if errors.Is(err, cerrors.ErrSeedAlreadyGenerated) {
				spinner.FinalMSG = color.RedString("✗") + " The recovery phrase has already been generated\n" +
					color.CyanString("→") + " Run " + color.YellowString("covenant seed show") + " to view it"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to generate recovery phrase: %v", err)
		}

		words := strings.Fields(result.Phrase)
		numbered, err := ui.FormatSeed(words, ui.SeedFormatNumbered)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to format recovery phrase: %v", err)
		}

		Logger.Infof("Recovery phrase generated by %s", result.GeneratedBy)
		spinner.FinalMSG = color.GreenString("✓") + " Recovery phrase generated\n\n" +
			numbered + "\n" +
			"    checksum: " + color.YellowString(ui.WordChecksum(words)) + "\n\n" +
			color.YellowString("⚠") + " This phrase is shown " + color.RedString("once") + ". It is stored redacted everywhere else.\n" +
			color.CyanString("→") + " Etch it or store it offline, then distribute with " + color.YellowString("covenant partner distribute")
		return nil
	},
}
