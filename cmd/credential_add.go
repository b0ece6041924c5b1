package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/credentials"
)

var (
	addRole         string
	addDescription  string
	addSSHKeyFile   string
	addServer       string
	addUsername     string
	addPort         int
	addInstructions string
	addStatus       string
)

func init() {
	credentialAddCmd.Flags().StringVar(&addRole, "role", "", "member role, e.g. infrastructure-maintainer")
	credentialAddCmd.Flags().StringVar(&addDescription, "description", "", "free-form description")
	credentialAddCmd.Flags().StringVar(&addSSHKeyFile, "ssh-key-file", "", "path to the private key to store")
	credentialAddCmd.Flags().StringVar(&addServer, "server", "", "server address")
	credentialAddCmd.Flags().StringVar(&addUsername, "username", "", "login username")
	credentialAddCmd.Flags().IntVar(&addPort, "port", 22, "SSH port")
	credentialAddCmd.Flags().StringVar(&addInstructions, "instructions", "", "connection instructions")
	credentialAddCmd.Flags().StringVar(&addStatus, "status", credentials.StatusActive, "initial status: active or inactive")
	_ = credentialAddCmd.MarkFlagRequired("role")
}

var credentialAddCmd = &cobra.Command{
	Use:   "add <wallet>",
	Short: "Stores or updates a member's encrypted credentials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting credential add command")

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}
		manager, err := rt.credentialManager()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Encrypting credentials...")
		defer cleanup()

		payload := credentials.Payload{
			ServerAddress: addServer,
			Username:      addUsername,
			Port:          addPort,
			Instructions:  addInstructions,
		}
		if addSSHKeyFile != "" {
			key, err := os.ReadFile(addSSHKeyFile)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read %s: %v", addSSHKeyFile, err)
			}
			payload.SSHKey = string(key)
		}

		member, err := manager.AddOrUpdateMember(args[0], addRole, addDescription, payload, addStatus)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to store credentials: %v", err)
		}

		Logger.Infof("Credentials stored for %s", member.Wallet)
		spinner.FinalMSG = color.GreenString("✓") + " Credentials stored for " + color.CyanString(member.Wallet) + "\n" +
			"    role:   " + member.Role + "\n" +
			"    status: " + member.Status
		return nil
	},
}
