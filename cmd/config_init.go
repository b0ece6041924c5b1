package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/configs"
)

var (
	initInitiator   string
	initCoCustodian string
	initMaxPartners int
	initForce       bool
)

func init() {
	configInitCmd.Flags().StringVar(&initInitiator, "initiator", "", "wallet of the custodian who will generate the phrase")
	configInitCmd.Flags().StringVar(&initCoCustodian, "co-custodian", "", "wallet of the standing co-custodian")
	configInitCmd.Flags().IntVar(&initMaxPartners, "max-partners", 65, "maximum collective size")
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing configuration")
	_ = configInitCmd.MarkFlagRequired("initiator")
	_ = configInitCmd.MarkFlagRequired("co-custodian")
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes the initial configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		spinner, cleanup := startSpinner("Writing configuration...")
		defer cleanup()

		settings, err := configs.DefaultSettings()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve data directory: %v", err)
		}
		if err := settings.EnsureDataDir(); err != nil {
			return Logger.ErrorfAndReturn("failed to create data directory: %v", err)
		}

		if _, err := os.Stat(settings.ConfigPath()); err == nil && !initForce {
			spinner.FinalMSG = color.RedString("✗") + " " + color.YellowString(settings.ConfigPath()) + " already exists\n" +
				color.CyanString("→") + " Re-run with " + color.YellowString("--force") + " to overwrite it"
			return nil
		}

		config := configs.DefaultConfig()
		config.Custodians.Initiator = initInitiator
		config.Custodians.CoCustodian = initCoCustodian
		config.Governance.MaxPartners = initMaxPartners
		if err := config.Validate(); err != nil {
			return Logger.ErrorfAndReturn("invalid configuration: %v", err)
		}

		if err := configs.SaveConfig(settings.ConfigPath(), config); err != nil {
			return Logger.ErrorfAndReturn("failed to write configuration: %v", err)
		}

		Logger.Infof("Configuration written to %s", settings.ConfigPath())
		spinner.FinalMSG = color.GreenString("✓") + " Configuration written\n" +
			"    created: " + color.YellowString(settings.ConfigPath()) + "\n" +
			color.CyanString("→") + " Generate the recovery phrase with " + color.YellowString("covenant seed generate --initiator "+initInitiator)
		return nil
	},
}
