package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/cli"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/common"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/config"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/hierarchy"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/ingest"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/service"
)

func ingestCmd() *cobra.Command {
	var (
		reportName string
		month      int
		year       int
	)

	cmd := &cobra.Command{
		Use:   "ingest <file.csv>",
		Short: "Ingest a ledger export as a new report",
		Long: `Parse a ledger export CSV and save its rows as a named report. Lines with
malformed account codes are skipped and reported, not fatal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			cfg := config.LoadClassification()
			result, err := ingest.NewParser(cfg.Sentinels).Parse(f)
			if err != nil {
				return err
			}

			for _, skip := range result.Skipped {
				fmt.Println(cli.WarningStyle.Render(
					fmt.Sprintf("line %d skipped: %s", skip.Line, skip.Reason)))
			}
			if len(result.Rows) == 0 {
				return fmt.Errorf("no usable rows in %s", path)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if reportName == "" {
				reportName = filepath.Base(path)
			}

			svc := ingest.NewService(store)
			var report *model.Report
			err = common.WithRetry(ctx, func() error {
				var saveErr error
				report, saveErr = svc.SaveReport(ctx, service.BulkSaveRequest{
					Rows:       result.Rows,
					ReportName: reportName,
					FileName:   filepath.Base(path),
					Month:      month,
					Year:       year,
				})
				return saveErr
			}, service.RetryOptions{MaxAttempts: 3})
			if err != nil {
				return err
			}

			classified, missing := summarizeRows(result.Rows, cfg.Sentinels)

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("Ingested %d rows into report %s (%s)", len(result.Rows), report.Name, report.ID)))
			fmt.Printf("Classified: %d/%d, unclassified amount: %s\n",
				classified, len(result.Rows), missing.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&reportName, "name", "", "report name (default: file name)")
	cmd.Flags().IntVar(&month, "month", 0, "report month 1-12 (required)")
	cmd.Flags().IntVar(&year, "year", 0, "report year (required)")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

// summarizeRows computes the classification status of every ingested row,
// showing progress for large exports.
func summarizeRows(rows []model.LedgerRow, sentinels hierarchy.Sentinels) (classified int, missing decimal.Decimal) {
	evaluator := hierarchy.NewEvaluator(sentinels)
	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetDescription("Evaluating classification status"),
		progressbar.OptionClearOnFinish(),
	)

	missing = decimal.Zero
	for _, row := range rows {
		if evaluator.Status(row) == model.StatusClassified {
			classified++
		} else {
			missing = missing.Add(row.Amount)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	return classified, missing
}
