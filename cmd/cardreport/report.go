package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lmartinez/cardreport/internal/cli"
	"github.com/lmartinez/cardreport/internal/notify"
	"github.com/lmartinez/cardreport/internal/render"
	"github.com/lmartinez/cardreport/internal/report"
	"github.com/lmartinez/cardreport/internal/storage"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the categorized trend report over stored snapshots",
		Long: `Aggregate the most recent snapshots for a bank and currency into
per-category monthly totals, render the trend chart, and optionally email
the latest-month summary with the chart attached.`,
		RunE: runReport,
	}

	cmd.Flags().String("bank", "SANTANDER", "Bank name")
	cmd.Flags().String("currency", "UY$", "Statement currency")
	cmd.Flags().IntP("window", "w", 0, "Months of history to include (default: report.window config)")
	cmd.Flags().Bool("email", false, "Send the report by email")
	cmd.Flags().String("chart-out", "", "Also write the trend chart SVG to this path")

	_ = viper.BindPFlag("report.bank", cmd.Flags().Lookup("bank"))
	_ = viper.BindPFlag("report.currency", cmd.Flags().Lookup("currency"))
	_ = viper.BindPFlag("report.email", cmd.Flags().Lookup("email"))
	_ = viper.BindPFlag("report.chart_out", cmd.Flags().Lookup("chart-out"))

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	bank := viper.GetString("report.bank")
	currency := viper.GetString("report.currency")

	window, err := cmd.Flags().GetInt("window")
	if err != nil {
		return err
	}
	if window <= 0 {
		window = viper.GetInt("report.window")
	}

	store, err := storage.NewSnapshotStore(viper.GetString("data.dir"))
	if err != nil {
		return err
	}

	taxonomy := report.DefaultTaxonomy()
	builder := report.NewBuilder(store, taxonomy)

	series, err := builder.Build(ctx, bank, currency, window)
	if err != nil {
		return err
	}

	latest := series[len(series)-1]
	printBreakdown(latest, taxonomy.Names())

	chart, err := render.NewSVGChart().RenderTrendChart(series, taxonomy.Names())
	if err != nil {
		return fmt.Errorf("report %s/%s: %w", bank, currency, err)
	}

	if out := viper.GetString("report.chart_out"); out != "" {
		if err := os.WriteFile(out, chart, 0640); err != nil {
			return fmt.Errorf("writing chart to %s: %w", out, err)
		}
		slog.Info(cli.FormatSuccess("Chart written"), "path", out)
	}

	if viper.GetBool("report.email") {
		if err := emailReport(cmd, bank, currency, latest, taxonomy.Names(), chart); err != nil {
			// The snapshot and chart already exist; delivery is the only
			// thing that failed.
			return fmt.Errorf("report %s/%s: %w", bank, currency, err)
		}
		slog.Info(cli.FormatSuccess("Report emailed"), "months", len(series))
	}

	return nil
}

func printBreakdown(latest report.MonthlyBreakdown, categories []string) {
	var lines []string
	for _, name := range categories {
		lines = append(lines, fmt.Sprintf("%-12s %14s", name, report.FormatAmount(latest.Totals[name])))
	}
	slog.Info("\n" + cli.RenderBox(
		fmt.Sprintf("%s %s", cli.ChartIcon, latest.Label),
		strings.Join(lines, "\n")))
}

func emailReport(cmd *cobra.Command, bank, currency string, latest report.MonthlyBreakdown, categories []string, chart []byte) error {
	notifier, err := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:      viper.GetString("smtp.host"),
		Port:      viper.GetInt("smtp.port"),
		Sender:    viper.GetString("smtp.sender"),
		Recipient: viper.GetString("smtp.recipient"),
		Password:  viper.GetString("smtp.password"),
	})
	if err != nil {
		return err
	}

	html, err := report.SummaryHTML(latest, categories)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Monthly credit-card report - %s, %s",
		strings.ToUpper(bank), strings.ToUpper(currency))

	return notifier.Send(cmd.Context(), subject, html, &notify.Attachment{
		Filename:  "trend.svg",
		MIMEType:  "image/svg+xml",
		ContentID: "trend-chart",
		Data:      chart,
	})
}
