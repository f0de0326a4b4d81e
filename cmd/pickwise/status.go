package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pickwise/internal/cli"
	"pickwise/internal/model"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print evaluation progress for the store",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	categories, err := st.Load(cmd.Context())
	if err != nil {
		return err
	}

	snap := model.Snapshot(categories)

	fmt.Println(cli.TitleStyle.Render("Store status"))
	fmt.Printf("  Store:       %s\n", st.Path())
	fmt.Printf("  Categories:  %d\n", snap.Total)
	fmt.Printf("  Pending:     %d\n", snap.Pending)
	fmt.Printf("  Processing:  %d\n", snap.Processing)
	fmt.Printf("  Completed:   %d\n", snap.Completed)
	fmt.Printf("  Failed:      %d\n", snap.Failed)
	fmt.Printf("  Cells filled: %d\n", snap.CellsFilled)

	if backups, err := st.BackupCount(); err == nil {
		fmt.Printf("  Backups:     %d\n", backups)
	}
	return nil
}
