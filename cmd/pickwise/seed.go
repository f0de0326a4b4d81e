package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pickwise/internal/cli"
	"pickwise/internal/common"
	"pickwise/internal/store"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <corpus file>",
		Short: "Load a category corpus into the store",
		Long: `Seed reads a YAML or JSON corpus file of level1/level2/item
classification paths and adds them to the store as pending categories.

Seeding is idempotent: paths already present are skipped, and category
IDs derive from the path, so re-seeding the same file changes nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	seed, err := store.LoadSeedFile(args[0])
	if err != nil {
		return common.NewUserError(fmt.Sprintf("could not load corpus file %s", args[0]), err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	categories, err := st.Load(ctx)
	if err != nil {
		return err
	}

	merged, added := store.MergeSeed(categories, seed)
	if added == 0 {
		fmt.Println("All categories already present. Nothing to do.")
		return nil
	}

	if err := st.Save(ctx, merged); err != nil {
		return fmt.Errorf("failed to save seeded store: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %d categories (%d total)", added, len(merged))))
	return nil
}
