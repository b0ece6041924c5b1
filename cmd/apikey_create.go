package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/apikeys"
	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var (
	createAgent       string
	createDescription string
	createWithdraw    bool
	createMint        bool
	createNoCeremony  bool
	createNoDonations bool
	createNoBurn      bool
)

func init() {
	apikeyCreateCmd.Flags().StringVar(&createAgent, "agent", "", "agent name the key acts for")
	apikeyCreateCmd.Flags().StringVar(&createDescription, "description", "", "free-form description")
	apikeyCreateCmd.Flags().BoolVar(&createWithdraw, "allow-withdraw", false, "grant the withdraw permission")
	apikeyCreateCmd.Flags().BoolVar(&createMint, "allow-mint", false, "grant the mint permission")
	apikeyCreateCmd.Flags().BoolVar(&createNoCeremony, "no-ceremony", false, "withhold the ceremony permission")
	apikeyCreateCmd.Flags().BoolVar(&createNoDonations, "no-donations", false, "withhold the donations permission")
	apikeyCreateCmd.Flags().BoolVar(&createNoBurn, "no-burn-trust", false, "withhold the burn-trust permission")
	_ = apikeyCreateCmd.MarkFlagRequired("agent")
}

var apikeyCreateCmd = &cobra.Command{
	Use:   "create <wallet>",
	Short: "Issues an API key for an agent",
	Long: `Issues a bearer token scoped to a wallet and agent. The raw token is
printed exactly once here; only its hash is stored, so it cannot be shown
again. Withdraw and mint are withheld unless explicitly granted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting apikey create command")
		spinner, cleanup := startSpinner("Issuing API key...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		perms := apikeys.DefaultPermissions()
		perms.Withdraw = createWithdraw
		perms.Mint = createMint
		perms.Ceremony = !createNoCeremony
		perms.Donations = !createNoDonations
		perms.BurnTrust = !createNoBurn

		issued, err := rt.keys.Issue(args[0], createAgent, createDescription, &perms)
		if err != nil {
			if errors.Is(err, cerrors.ErrMissingField) {
				spinner.FinalMSG = color.RedString("✗") + " An agent name is required"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to issue API key: %v", err)
		}

		Logger.Infof("API key %s issued for agent %s", issued.KeyID, issued.Agent)
		spinner.FinalMSG = color.GreenString("✓") + " API key issued for " + color.CyanString(issued.Agent) + "\n" +
			"    key id: " + color.YellowString(issued.KeyID) + "\n" +
			"    token:  " + color.YellowString(issued.APIKey) + "\n\n" +
			color.YellowString("⚠") + " This token is shown " + color.RedString("once") + ". Store it now; only its hash is kept."
		return nil
	},
}
