package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/the-time-must-flow/internal/config"
	"github.com/Veraticus/the-time-must-flow/internal/notion"
)

// initNotionClient builds the Notion adapter from validated configuration.
func initNotionClient(cfg *config.Config) (*notion.Client, error) {
	return notion.NewClient(notion.Config{
		Token:      cfg.Notion.Token,
		DatabaseID: cfg.Notion.DatabaseID,
		BaseURL:    cfg.Notion.BaseURL,
		Properties: notion.Properties{
			Content:  cfg.Notion.Properties.Content,
			Date:     cfg.Notion.Properties.Date,
			Category: cfg.Notion.Properties.Category,
			TimeType: cfg.Notion.Properties.TimeType,
		},
	}, logger)
}

// resolveDate parses a --date value, defaulting to today when absent.
func resolveDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", value, err)
	}
	return date, nil
}
