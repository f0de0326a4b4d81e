package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pickwise/internal/cli"
	"pickwise/internal/common"
	"pickwise/internal/engine"
	"pickwise/internal/plan"
	"pickwise/internal/selector"
	"pickwise/internal/service"
	"pickwise/internal/store"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start or resume the batch evaluation loop",
		Long: `Run processes pending categories in bounded batches, filling each
category's price-interval × dimension matrix through the fact source.

Progress persists after every batch, so an interrupted run resumes where
it left off. Categories left mid-flight by a crash are requeued first.

Examples:
  pickwise run                      # Process all pending categories
  pickwise run --batch-size 25     # Larger batches between saves
  pickwise run --call-delay 200ms  # Faster pacing against the source`,
		RunE: runRun,
	}

	cmd.Flags().IntP("batch-size", "b", 10, "Categories per batch (persisted together)")
	cmd.Flags().Duration("call-delay", 500*time.Millisecond, "Delay between fact-source calls")
	cmd.Flags().Duration("batch-delay", 2*time.Second, "Delay between batches")
	cmd.Flags().Bool("progress", true, "Show a progress bar")
	cmd.Flags().String("progress-file", "data/progress.json", "Telemetry file for external dashboards")

	_ = viper.BindPFlag("run.batch_size", cmd.Flags().Lookup("batch-size"))
	_ = viper.BindPFlag("run.call_delay", cmd.Flags().Lookup("call-delay"))
	_ = viper.BindPFlag("run.batch_delay", cmd.Flags().Lookup("batch-delay"))
	_ = viper.BindPFlag("run.progress", cmd.Flags().Lookup("progress"))
	_ = viper.BindPFlag("run.progress_file", cmd.Flags().Lookup("progress-file"))

	return cmd
}

func runRun(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(os.Stdout)
	ctx := handler.HandleInterrupts(cmd.Context())

	st, err := openStore()
	if err != nil {
		return err
	}

	source, err := newFactSource()
	if err != nil {
		return err
	}

	planner := plan.NewPlanner()
	config := engine.DefaultConfig()
	config.BatchSize = viper.GetInt("run.batch_size")
	config.CallDelay = viper.GetDuration("run.call_delay")
	config.BatchDelay = viper.GetDuration("run.batch_delay")
	config.ShowProgress = viper.GetBool("run.progress")
	config.ProgressPath = viper.GetString("run.progress_file")

	scheduler := engine.New(st, selector.New(source), planner, planner, config)

	summary, err := scheduler.Run(ctx)
	if err != nil {
		if errors.Is(err, common.ErrEmptyCorpus) {
			fmt.Println(cli.FormatWarning("Store is empty. Seed it first: pickwise seed <corpus file>"))
			return nil
		}
		if errors.Is(err, context.Canceled) {
			// Interrupted before any work started; still a clean exit.
			return nil
		}
		return fmt.Errorf("evaluation run failed: %w", err)
	}

	printSummary(st, summary)
	return nil
}

func printSummary(st *store.JSONStore, summary engine.Summary) {
	fmt.Println()
	fmt.Println(cli.TitleStyle.Render("Run summary"))
	fmt.Printf("  Run ID:               %s\n", summary.RunID)
	fmt.Printf("  Categories completed: %d\n", summary.CategoriesCompleted)
	fmt.Printf("  Categories failed:    %d\n", summary.CategoriesFailed)
	fmt.Printf("  Cells succeeded:      %d/%d\n", summary.CellsSucceeded, summary.CellsAttempted)
	fmt.Printf("  Total cost:           %.4f\n", summary.TotalCost)
	fmt.Printf("  Elapsed:              %s\n", summary.Elapsed)

	if backup, err := st.LatestBackup(); err == nil && backup != "" {
		fmt.Printf("  Latest backup:        %s\n", backup)
	}

	if summary.Interrupted {
		fmt.Println(cli.FormatInfo("Interrupted cleanly; run again to continue."))
	} else {
		fmt.Println(cli.FormatSuccess("All categories processed."))
	}
}

// newFactSource builds the configured fact source. Only the built-in
// deterministic mock ships with this binary; real sources are injected
// by deployments that carry their credentials.
func newFactSource() (service.FactSource, error) {
	kind := viper.GetString("source.kind")
	if kind == "" {
		kind = "mock"
	}
	switch kind {
	case "mock":
		slog.Warn("Using the built-in mock fact source; generated data is synthetic")
		return &selector.MockFactSource{CostPerCall: viper.GetFloat64("source.cost_per_call")}, nil
	case "real":
		return nil, fmt.Errorf("%w: real fact source needs injected credentials, none configured", common.ErrMissingConfig)
	default:
		return nil, fmt.Errorf("%w: unknown fact source %q", common.ErrInvalidConfig, kind)
	}
}
