package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/audit"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/ui"
)

var (
	auditWallet   string
	auditSeverity string
	auditLimit    int
)

func init() {
	auditLogCmd.Flags().StringVar(&auditWallet, "wallet", "", "wallet address of the requesting custodian")
	auditLogCmd.Flags().StringVar(&auditSeverity, "severity", "", "filter: LOW, MEDIUM, HIGH, or CRITICAL")
	auditLogCmd.Flags().IntVar(&auditLimit, "limit", 50, "maximum number of events to show")
	_ = auditLogCmd.MarkFlagRequired("wallet")
}

var auditLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Shows recent security events (custodians only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting audit log command")
		spinner, cleanup := startSpinner("Loading security events...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		if !rt.config.IsCustodian(auditWallet) {
			spinner.FinalMSG = color.RedString("✗") + " Only custodians may view the security log"
			return nil
		}

		severity := audit.Severity(strings.ToUpper(auditSeverity))
		switch severity {
		case "", audit.SeverityLow, audit.SeverityMedium, audit.SeverityHigh, audit.SeverityCritical:
		default:
			spinner.FinalMSG = color.RedString("✗") + " Unknown severity " + color.YellowString(auditSeverity) + "\n" +
				color.CyanString("→") + " Use LOW, MEDIUM, HIGH, or CRITICAL"
			return nil
		}

		events, err := rt.audit.Events(severity)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load security events: %v", err)
		}

		if len(events) == 0 {
			spinner.FinalMSG = color.YellowString("⚠") + " No matching security events"
			return nil
		}
		if len(events) > auditLimit {
			events = events[:auditLimit]
		}

		var b strings.Builder
		b.WriteString(color.GreenString("✓") + fmt.Sprintf(" %d event(s), newest first:\n", len(events)))
		for _, event := range events {
			detail := ""
			if len(event.Details) > 0 {
				if raw, err := json.Marshal(event.Details); err == nil {
					detail = " " + string(raw)
				}
			}
			b.WriteString(fmt.Sprintf("    [%s] %-8s %s%s\n",
				event.Timestamp.Format("2006-01-02 15:04:05"),
				ui.Severity(string(event.Severity)).Sprint(string(event.Severity)),
				event.Type, detail))
		}
		spinner.FinalMSG = strings.TrimRight(b.String(), "\n")
		return nil
	},
}
