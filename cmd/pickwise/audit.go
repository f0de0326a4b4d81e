package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pickwise/internal/audit"
	"pickwise/internal/cli"
)

func auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Scan persisted matrices for fabricated data",
		Long: `Audit runs the fabrication detector over every persisted matrix cell:
placeholder product/brand names and denylisted brand-category pairings.

The scan is read-only and idempotent; re-run it after any repair pass.`,
		RunE: runAudit,
	}
}

func runAudit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	st, err := openStore()
	if err != nil {
		return err
	}
	categories, err := st.Load(ctx)
	if err != nil {
		return err
	}

	detector, err := newDetector()
	if err != nil {
		return err
	}

	report := audit.New(detector).Audit(categories)
	printReport(report)
	return nil
}

func printReport(report audit.Report) {
	fmt.Println(cli.TitleStyle.Render("Quality audit"))
	fmt.Printf("  Pattern table:    %s\n", report.PatternVersion)
	fmt.Printf("  Categories:       %d\n", report.TotalCategories)
	fmt.Printf("  Cells scanned:    %d\n", report.TotalCells)
	fmt.Printf("  Fabricated cells: %d\n", report.FabricatedCells)
	fmt.Printf("  Mismatched cells: %d\n", report.MismatchedCells)

	if report.Clean() {
		fmt.Println(cli.FormatSuccess("No fabricated data detected."))
		return
	}

	fmt.Println()
	fmt.Println(cli.FormatWarning("Suspect cells (sample):"))
	for _, ex := range report.Examples {
		fmt.Printf("  - [%s] %s / %s / %s: %q (%s): %s\n",
			ex.CategoryID, ex.Category, ex.Interval, ex.Dimension,
			ex.Product, ex.Brand, ex.Problem)
	}
	fmt.Println(cli.SubtleStyle.Render("Re-generate the affected categories with: pickwise clear && pickwise run"))
}
