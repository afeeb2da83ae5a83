package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/cli"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/config"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/hierarchy"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/service"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/storage"
)

func reportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List ingested reports with classification progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summaries, err := reportSummaries(ctx, store, config.LoadClassification().Sentinels)
			if err != nil {
				return err
			}

			if len(summaries) == 0 {
				fmt.Println(cli.InfoStyle.Render("No reports ingested yet. Use 'ledgerclass ingest' first."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Report"),
				cli.HeaderStyle.Render("Period"),
				cli.HeaderStyle.Render("Classified"),
				cli.HeaderStyle.Render("Missing amount"))
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%04d-%02d\t%d/%d\t%s\n",
					s.Report.ID,
					s.Report.Name,
					s.Report.Year, s.Report.Month,
					s.ClassifiedRows, s.TotalRows,
					s.UnclassifiedAmount.StringFixed(2))
			}

			return nil
		},
	}
}

// reportSummaries derives per-report classification progress. Status is
// always recomputed from the rows, never read from storage.
func reportSummaries(ctx context.Context, store *storage.SQLiteStorage, sentinels hierarchy.Sentinels) ([]service.ReportSummary, error) {
	reports, err := store.GetReports(ctx)
	if err != nil {
		return nil, err
	}

	evaluator := hierarchy.NewEvaluator(sentinels)
	summaries := make([]service.ReportSummary, 0, len(reports))
	for _, report := range reports {
		rows, err := store.GetRowsByReport(ctx, report.ID)
		if err != nil {
			return nil, err
		}

		summary := service.ReportSummary{Report: report, TotalRows: len(rows)}
		for _, row := range rows {
			if evaluator.Status(row) == model.StatusClassified {
				summary.ClassifiedRows++
			} else {
				summary.UnclassifiedAmount = summary.UnclassifiedAmount.Add(row.Amount)
			}
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
