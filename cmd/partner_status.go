package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var partnerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the aggregate state of the collective",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting partner status command")
		spinner, cleanup := startSpinner("Gathering status...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		report, err := rt.partners.Status()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to gather status: %v", err)
		}

		var b strings.Builder
		b.WriteString(color.GreenString("✓") + " Partner collective\n")
		b.WriteString(fmt.Sprintf("    partners: %d of %d\n", report.CurrentPartners, report.MaxPartners))
		b.WriteString(fmt.Sprintf("    seats:    %d filled, %d open\n", report.SeatsFilled, report.SeatsAvailable))
		b.WriteString(fmt.Sprintf("    seed:     %d pending, %d distributed, %d revoked\n",
			report.Distribution.Pending, report.Distribution.Distributed, report.Distribution.Revoked))

		if len(report.Partners) > 0 {
			b.WriteString("\n    Partners:\n")
			for _, partner := range report.Partners {
				marker := color.YellowString("○")
				if partner.SeedAcknowledged {
					marker = color.GreenString("●")
				}
				b.WriteString(fmt.Sprintf("    %s %-20s %-12s trust %8.2f\n",
					marker, partner.Alias, partner.Status, partner.TrustBurned))
			}
		}

		if len(report.Seats) > 0 {
			b.WriteString("\n    Seats:\n")
			for _, seat := range report.Seats {
				if seat.Revoked {
					b.WriteString(fmt.Sprintf("    %s %-16s revoked\n", color.RedString("✗"), seat.Name))
					continue
				}
				b.WriteString(fmt.Sprintf("    %s %-16s %s\n", color.GreenString("✓"), seat.Name, seat.OccupantAlias))
			}
		}

		spinner.FinalMSG = strings.TrimRight(b.String(), "\n")
		return nil
	},
}
