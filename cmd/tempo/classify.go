package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/the-time-must-flow/internal/cli"
	"github.com/Veraticus/the-time-must-flow/internal/common"
	"github.com/Veraticus/the-time-must-flow/internal/config"
	"github.com/Veraticus/the-time-must-flow/internal/engine"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify time records for a date",
		Long: `Classify the time records of a single day with AI assistance.

Records that already carry both a category and a time type are skipped;
everything else is sent to the configured LLM and the matched option is
written back to Notion.

Examples:
  tempo classify                    # Classify today's records
  tempo classify --date 2026-08-27  # Classify a specific day
  tempo classify --dry-run          # Preview without writing to Notion`,
		RunE: runClassify,
	}

	// Flags
	cmd.Flags().StringP("date", "d", "", "Date to process (YYYY-MM-DD, default today)")
	cmd.Flags().Bool("dry-run", false, "Classify without updating Notion")

	_ = viper.BindPFlag("classification.date", cmd.Flags().Lookup("date"))
	_ = viper.BindPFlag("classification.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	date, err := resolveDate(viper.GetString("classification.date"))
	if err != nil {
		return err
	}
	dryRun := viper.GetBool("classification.dry_run")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return common.NewUserError("configuration incomplete", err)
	}

	store, err := initNotionClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Notion client: %w", err)
	}

	classifier, err := createClassifier(cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM classifier: %w", err)
	}

	engineCfg := engine.Config{DryRun: dryRun}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		engineCfg.ProgressWriter = os.Stderr
	}

	stats, err := engine.NewWithConfig(store, classifier, logger, engineCfg).Run(ctx, date)
	if err != nil {
		return fmt.Errorf("classification run failed: %w", err)
	}

	title := fmt.Sprintf("Classification Summary for %s", date.Format("2006-01-02"))
	if dryRun {
		title += " (dry run)"
	}
	content := fmt.Sprintf("Records:    %d\nClassified: %d\nSkipped:    %d\nFailed:     %d",
		stats.Total, stats.Classified, stats.Skipped, stats.Failed)
	fmt.Println(cli.RenderBox(title, content))

	return nil
}
