package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var partnerRankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Shows partners ranked by burned trust",
	Long: `Lists partners in succession order: burned trust descending, tally
breaking ties. The first unseated partner in this list inherits the next
revoked seat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting partner rank command")
		spinner, cleanup := startSpinner("Ranking partners...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		rankings, err := rt.partners.RankByBurnedTrust()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to rank partners: %v", err)
		}

		if len(rankings) == 0 {
			spinner.FinalMSG = color.YellowString("⚠") + " No partners enrolled yet"
			return nil
		}

		var b strings.Builder
		b.WriteString(color.GreenString("✓") + " Succession order:\n")
		for _, ranking := range rankings {
			b.WriteString(fmt.Sprintf("    %2d. %-20s %-10s trust %8.2f   tally %8.2f\n",
				ranking.Rank, ranking.Alias, ranking.Status, ranking.TrustBurned, ranking.TallyAccumulated))
		}
		spinner.FinalMSG = strings.TrimRight(b.String(), "\n")
		return nil
	},
}
