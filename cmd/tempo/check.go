package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-time-must-flow/internal/cli"
	"github.com/Veraticus/the-time-must-flow/internal/config"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify configuration and connectivity",
		Long: `Validate the configuration and test the connection to both external
collaborators: the Notion database and the chat-completion endpoint.`,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	failed := false

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Println(cli.FormatError(fmt.Sprintf("Configuration: %v", err)))
		return fmt.Errorf("configuration incomplete")
	}
	fmt.Println(cli.FormatSuccess("Configuration complete"))

	store, err := initNotionClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Notion client: %w", err)
	}
	if title, connErr := store.TestConnection(ctx); connErr != nil {
		fmt.Println(cli.FormatError(fmt.Sprintf("Notion: %v", connErr)))
		failed = true
	} else {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Notion: connected to database %q", title)))
	}

	classifier, err := createClassifier(cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM classifier: %w", err)
	}
	if pingErr := classifier.Ping(ctx); pingErr != nil {
		fmt.Println(cli.FormatError(fmt.Sprintf("LLM (%s): %v", cfg.LLM.Model, pingErr)))
		failed = true
	} else {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("LLM: %s reachable", cfg.LLM.Model)))
	}

	if failed {
		return fmt.Errorf("one or more checks failed")
	}
	return nil
}
