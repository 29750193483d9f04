package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/the-time-must-flow/internal/cli"
	"github.com/Veraticus/the-time-must-flow/internal/common"
	"github.com/Veraticus/the-time-must-flow/internal/config"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Add a time record to the database",
		Long: `Insert a new time record, mostly useful for trying out classification
against a fresh database.

Examples:
  tempo add "30 minute run in the park"
  tempo add "sprint planning" --date 2026-08-27 --category Work`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAdd,
	}

	// Flags
	cmd.Flags().StringP("date", "d", "", "Date for the record (YYYY-MM-DD, default today)")
	cmd.Flags().String("category", "", "Pre-set category")
	cmd.Flags().String("time-type", "", "Pre-set time type")

	_ = viper.BindPFlag("add.date", cmd.Flags().Lookup("date"))
	_ = viper.BindPFlag("add.category", cmd.Flags().Lookup("category"))
	_ = viper.BindPFlag("add.time_type", cmd.Flags().Lookup("time-type"))

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	content := strings.Join(args, " ")

	date, err := resolveDate(viper.GetString("add.date"))
	if err != nil {
		return err
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return common.NewUserError("configuration incomplete", err)
	}

	store, err := initNotionClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Notion client: %w", err)
	}

	id, err := store.CreateRecord(ctx, content, date, viper.GetString("add.category"), viper.GetString("add.time_type"))
	if err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added record %s for %s", id, date.Format("2006-01-02"))))
	return nil
}
