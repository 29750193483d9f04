package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-time-must-flow/internal/cli"
	"github.com/Veraticus/the-time-must-flow/internal/common"
	"github.com/Veraticus/the-time-must-flow/internal/config"
	"github.com/Veraticus/the-time-must-flow/internal/model"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the allowed classification options",
		Long: `Print the category and time-type options defined in the Notion
database schema, in the order the matcher considers them.`,
		RunE: runCategories,
	}
}

func runCategories(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return common.NewUserError("configuration incomplete", err)
	}

	store, err := initNotionClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Notion client: %w", err)
	}

	categories, err := store.GetCategoryOptions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load category options: %w", err)
	}
	fmt.Println(cli.RenderBox("Categories", optionLines(categories)))

	timeTypes, err := store.GetTimeTypeOptions(ctx)
	if err != nil {
		logger.Warn("time type options unavailable", "error", err)
		return nil
	}
	fmt.Println(cli.RenderBox("Time Types", optionLines(timeTypes)))

	return nil
}

func optionLines(options model.CategorySet) string {
	if len(options) == 0 {
		return cli.SubtleStyle.Render("(none defined)")
	}
	lines := make([]string, len(options))
	for i, option := range options {
		lines[i] = "• " + option
	}
	return strings.Join(lines, "\n")
}
