package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/cli"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/engine"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/service"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage classification rules",
		Long:  `List, add, apply, and deactivate the rules that map account codes to classifications.`,
	}

	cmd.AddCommand(listRulesCmd())
	cmd.AddCommand(addRuleCmd())
	cmd.AddCommand(applyRuleCmd())
	cmd.AddCommand(disableRuleCmd())

	return cmd
}

func listRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active classification rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			listings, err := engine.New(store, store).ListRules(ctx)
			if err != nil {
				return err
			}

			if len(listings) == 0 {
				fmt.Println(cli.InfoStyle.Render("No active rules. Use 'ledgerclass rules add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Code"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Classification"),
				cli.HeaderStyle.Render("Level"),
				cli.HeaderStyle.Render("Modified"))
			for _, l := range listings {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s / %s\t%d\t%s\n",
					l.ID,
					l.AccountCode,
					l.AccountName,
					l.Classification.Category,
					l.Classification.Final,
					l.Level,
					l.LastModified.Format("2006-01-02"))
			}

			return nil
		},
	}
}

func addRuleCmd() *cobra.Command {
	var (
		name        string
		classType   string
		category    string
		subCategory string
		final       string
		user        string
	)

	cmd := &cobra.Command{
		Use:   "add <account-code>",
		Short: "Create a classification rule for an account code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rule := &model.ClassificationRule{
				AccountCode: args[0],
				AccountName: name,
				CreatedBy:   user,
				Classification: model.Classification{
					Type:        classType,
					Category:    category,
					SubCategory: subCategory,
					Final:       final,
				},
			}
			if err := engine.New(store, store).CreateRule(ctx, rule); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created rule %s for %s", rule.ID, rule.AccountCode)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&classType, "type", "", "classification type")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&subCategory, "sub-category", "", "sub-category")
	cmd.Flags().StringVar(&final, "final", "", "final classification")
	cmd.Flags().StringVar(&user, "user", "", "creating user (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func applyRuleCmd() *cobra.Command {
	var (
		classType   string
		category    string
		subCategory string
		final       string
		user        string
		retroactive bool
	)

	cmd := &cobra.Command{
		Use:   "apply <rule-id>",
		Short: "Update a rule, optionally propagating to historical rows",
		Long: `Apply a partial classification update to a rule. Omitted fields keep
their current values. With --retroactive, every ledger row matching the
rule's account code across all reports is rewritten, and the financial
impact of doing so is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			updates := model.ClassificationUpdate{}
			if cmd.Flags().Changed("type") {
				updates.Type = &classType
			}
			if cmd.Flags().Changed("category") {
				updates.Category = &category
			}
			if cmd.Flags().Changed("sub-category") {
				updates.SubCategory = &subCategory
			}
			if cmd.Flags().Changed("final") {
				updates.Final = &final
			}

			impact, err := engine.New(store, store).ApplyRule(ctx, service.RuleUpdateRequest{
				RuleID:             args[0],
				UserID:             user,
				Updates:            updates,
				ApplyRetroactively: retroactive,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("Rule updated"))
			if !retroactive {
				return nil
			}

			fmt.Printf("Affected records: %d\n", impact.AffectedRecords())
			fmt.Printf("Affected reports: %d\n", len(impact.AffectedReports))
			fmt.Printf("Total financial impact: %s\n", impact.TotalImpact.StringFixed(2))
			fmt.Printf("Estimated processing: %s\n", impact.EstimatedProcessing)
			if len(impact.Skipped) > 0 {
				fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Skipped %d rows:", len(impact.Skipped))))
				for _, skip := range impact.Skipped {
					fmt.Printf("  %s: %s\n", skip.RowID, skip.Reason)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&classType, "type", "", "new classification type")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&subCategory, "sub-category", "", "new sub-category")
	cmd.Flags().StringVar(&final, "final", "", "new final classification")
	cmd.Flags().StringVar(&user, "user", "", "acting user (required)")
	cmd.Flags().BoolVar(&retroactive, "retroactive", false, "rewrite matching historical ledger rows")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func disableRuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <rule-id>",
		Short: "Soft-deactivate a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := engine.New(store, store).DeactivateRule(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("Rule deactivated"))
			return nil
		},
	}
}
