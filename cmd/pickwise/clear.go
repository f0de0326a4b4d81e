package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pickwise/internal/cli"
)

var clearForce bool

func clearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset all category evaluations",
		Long: `Clear resets every category to pending with an empty matrix so the
corpus can be re-evaluated from scratch.

The current store is backed up first; the backup path is printed for
your audit trail.`,
		RunE: runClear,
	}

	cmd.Flags().BoolVarP(&clearForce, "force", "f", false, "Skip confirmation prompt")
	return cmd
}

func runClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	st, err := openStore()
	if err != nil {
		return err
	}

	categories, err := st.Load(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Println("Store is empty. Nothing to clear.")
		return nil
	}

	if !clearForce {
		fmt.Printf("This will reset evaluations for %d categories.\n", len(categories))
		fmt.Print("Are you sure you want to continue? [y/N]: ")

		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if response != "y" && response != "Y" {
			fmt.Println("Clear canceled.")
			return nil
		}
	}

	backupPath, err := st.ClearAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Reset %d categories to pending", len(categories))))
	if backupPath != "" {
		fmt.Fprintf(os.Stdout, "Previous store backed up to: %s\n", backupPath)
	}
	return nil
}
