package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/cli"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/config"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/family"
)

func familyCmd() *cobra.Command {
	var reportID string

	cmd := &cobra.Command{
		Use:   "family <account-code>",
		Short: "Inspect a family's classification context",
		Long: `Show all sibling accounts at the given code's hierarchy level within one
report, their classification status, the family's completeness, and the
recommended classification strategy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			grouper := family.NewGrouper(store, config.LoadClassification().FamilyConfig())
			fc, err := grouper.Context(ctx, args[0], reportID)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Family %s — %s", fc.FamilyKey, fc.FamilyName)))
			fmt.Printf("Level under inspection: %s\n", fc.Level)
			fmt.Printf("Completeness: %.1f%% (%d classified, %d unclassified)\n",
				fc.Completeness, fc.ClassifiedCount, fc.UnclassifiedCount)
			if fc.HasMixedSiblings {
				fmt.Println(cli.WarningStyle.Render("Family has mixed classified/unclassified siblings"))
			}
			fmt.Printf("Unclassified amount: %s\n", fc.UnclassifiedAmount.StringFixed(2))
			fmt.Printf("Recommended strategy: %s\n\n", cli.InfoStyle.Render(string(fc.Recommended)))

			if len(fc.Siblings) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No siblings at this level."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Code"),
				cli.HeaderStyle.Render("Label"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Status"))
			for _, sib := range fc.Siblings {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					sib.Row.AccountCode,
					sib.Row.Label,
					sib.Row.Amount.StringFixed(2),
					string(sib.Status))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&reportID, "report", "", "report id to inspect (required)")
	_ = cmd.MarkFlagRequired("report")

	return cmd
}
