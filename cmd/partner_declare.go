package cmd

import (
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/partners"
)

var (
	declareName      string
	declareType      string
	declareStatement string
	declareProof     string
)

func init() {
	types := make([]string, 0, len(partners.IntentTypes()))
	for _, t := range partners.IntentTypes() {
		types = append(types, string(t))
	}

	partnerDeclareCmd.Flags().StringVar(&declareName, "name", "", "optional display name")
	partnerDeclareCmd.Flags().StringVar(&declareType, "type", "", "intent type: "+strings.Join(types, ", "))
	partnerDeclareCmd.Flags().StringVar(&declareStatement, "statement", "", "statement of intent")
	partnerDeclareCmd.Flags().StringVar(&declareProof, "proof", "", "optional identity proof reference")
	_ = partnerDeclareCmd.MarkFlagRequired("type")
	_ = partnerDeclareCmd.MarkFlagRequired("statement")
}

var partnerDeclareCmd = &cobra.Command{
	Use:   "declare <wallet>",
	Short: "Records a wallet's declaration of intent toward the collective",
	Long: `Records a signed statement of interest. Declarations from wallets outside
the collective raise a high-severity security event so custodians review
them promptly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting partner declare command")
		spinner, cleanup := startSpinner("Recording declaration...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		declaration, err := rt.partners.DeclareIntent(args[0], declareName,
			partners.IntentType(declareType), declareStatement, declareProof)
		if err != nil {
			switch {
			case errors.Is(err, cerrors.ErrInvalidIntentType):
				spinner.FinalMSG = color.RedString("✗") + " Unknown intent type " + color.YellowString(declareType)
				return nil
			case errors.Is(err, cerrors.ErrMissingField):
				spinner.FinalMSG = color.RedString("✗") + " A statement is required"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to record declaration: %v", err)
		}

		origin := "non-partner"
		if declaration.IsPartner {
			origin = "partner"
		}
		Logger.Infof("Declaration %s recorded (%s)", declaration.ID, origin)
		spinner.FinalMSG = color.GreenString("✓") + " Declaration recorded (" + origin + ")\n" +
			"    id: " + color.YellowString(declaration.ID)
		return nil
	},
}
