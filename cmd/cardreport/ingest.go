package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lmartinez/cardreport/internal/cli"
	"github.com/lmartinez/cardreport/internal/extract"
	"github.com/lmartinez/cardreport/internal/model"
	"github.com/lmartinez/cardreport/internal/normalize"
	"github.com/lmartinez/cardreport/internal/report"
	"github.com/lmartinez/cardreport/internal/storage"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <statement-file>",
		Short: "Normalize one monthly statement into a snapshot",
		Long: `Parse a monthly credit-card statement and persist it as a snapshot.

PDF statements go through the AI extraction service; plain-text dumps are
parsed line by line. Re-ingesting a month overwrites its snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().String("bank", "SANTANDER", "Bank name")
	cmd.Flags().String("currency", "UY$", "Statement currency")
	cmd.Flags().String("month", "", "Statement month (YYYY-MM, default: derived from the file name)")
	cmd.Flags().String("source", "", "Statement source: ai or manual (default: ai for .pdf, manual otherwise)")

	_ = viper.BindPFlag("ingest.bank", cmd.Flags().Lookup("bank"))
	_ = viper.BindPFlag("ingest.currency", cmd.Flags().Lookup("currency"))
	_ = viper.BindPFlag("ingest.month", cmd.Flags().Lookup("month"))
	_ = viper.BindPFlag("ingest.source", cmd.Flags().Lookup("source"))

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	file := args[0]

	bank := viper.GetString("ingest.bank")
	currency := viper.GetString("ingest.currency")

	month := viper.GetString("ingest.month")
	if month == "" {
		var err error
		month, err = monthFromFilename(file)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", file, err)
		}
	}

	source := viper.GetString("ingest.source")
	if source == "" {
		if strings.EqualFold(filepath.Ext(file), ".pdf") {
			source = "ai"
		} else {
			source = "manual"
		}
	}

	slog.Info(cli.FormatTitle("Ingesting statement"),
		"file", file, "bank", bank, "currency", currency, "month", month, "source", source)

	var (
		records []model.RawRecord
		err     error
	)
	switch source {
	case "ai":
		records, err = extractWithAI(cmd, file)
	case "manual":
		records, err = extractManualLines(cmd, file)
	default:
		return fmt.Errorf("invalid source %q: expected ai or manual", source)
	}
	if err != nil {
		return fmt.Errorf("ingest %s: %w", file, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	normalizer := normalize.NewNormalizer(normalize.NewNoiseFilter(normalize.DefaultNoiseKeywords()))
	transactions, total, err := normalizer.Normalize(records)
	if err != nil {
		return fmt.Errorf("ingest %s: %w", file, err)
	}

	store, err := storage.NewSnapshotStore(viper.GetString("data.dir"))
	if err != nil {
		return err
	}
	path, err := store.Save(bank, month, currency, transactions)
	if err != nil {
		return fmt.Errorf("ingest %s: %w", file, err)
	}

	slog.Info(cli.FormatSuccess("Snapshot saved"),
		"path", path,
		"transactions", len(transactions),
		"total", report.FormatAmount(total))
	return nil
}

func extractWithAI(cmd *cobra.Command, file string) ([]model.RawRecord, error) {
	ctx := cmd.Context()

	pdf, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, extract.ErrDocumentNotFound
		}
		return nil, err
	}

	extractor, err := extract.NewGeminiExtractor(ctx, viper.GetString("gemini.model"))
	if err != nil {
		return nil, err
	}
	return extractor.ExtractTransactions(ctx, pdf)
}

func extractManualLines(cmd *cobra.Command, file string) ([]model.RawRecord, error) {
	text, err := extract.FileExtractor{}.Extract(cmd.Context(), file, "")
	if err != nil {
		return nil, err
	}

	lines := strings.Split(text, "\n")
	records := make([]model.RawRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, model.NewLineRecord(line))
	}
	return records, nil
}

// monthFromFilename digs the YYYY-MM token out of names like
// santander_2025-05.pdf or santander_2025-04_uy$.txt.
func monthFromFilename(file string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	for _, token := range strings.Split(base, "_") {
		if _, err := time.Parse("2006-01", token); err == nil {
			return token, nil
		}
	}
	return "", fmt.Errorf("cannot derive month from file name %q, pass --month", file)
}
