package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var declarationsNonPartners bool

func init() {
	partnerDeclarationsCmd.Flags().BoolVar(&declarationsNonPartners, "non-partners", false, "show only declarations from outside the collective")
}

var partnerDeclarationsCmd = &cobra.Command{
	Use:   "declarations",
	Short: "Lists recorded intent declarations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting partner declarations command")
		spinner, cleanup := startSpinner("Loading declarations...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		declarations, err := rt.partners.Declarations(declarationsNonPartners)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load declarations: %v", err)
		}

		if len(declarations) == 0 {
			spinner.FinalMSG = color.YellowString("⚠") + " No declarations recorded"
			return nil
		}

		var b strings.Builder
		b.WriteString(color.GreenString("✓") + fmt.Sprintf(" %d declaration(s):\n", len(declarations)))
		for _, declaration := range declarations {
			marker := color.GreenString("●")
			if !declaration.IsPartner {
				marker = color.RedString("●")
			}
			name := declaration.Name
			if name == "" {
				name = declaration.Wallet
			}
			b.WriteString(fmt.Sprintf("    %s %s  %s  %s\n", marker,
				declaration.DeclaredAt.Format("2006-01-02"), declaration.IntentType, name))
			b.WriteString("      " + declaration.Statement + "\n")
		}
		spinner.FinalMSG = strings.TrimRight(b.String(), "\n")
		return nil
	},
}
