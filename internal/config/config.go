// Package config loads and validates the runtime configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/the-time-must-flow/internal/common"
)

// PropertyNames identifies the database properties the tool reads and writes.
type PropertyNames struct {
	Content  string // title (or rich_text) property holding the entry text
	Date     string // date property the daily query filters on
	Category string // select property receiving the classification
	TimeType string // select property receiving the time type
}

// NotionConfig holds the Notion collaborator settings.
type NotionConfig struct {
	Token      string
	DatabaseID string
	BaseURL    string
	Properties PropertyNames
}

// LLMConfig holds the chat-completion collaborator settings. Any
// OpenAI-compatible endpoint works; BaseURL selects the provider.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Config is the fully resolved configuration for one run.
type Config struct {
	Notion NotionConfig
	LLM    LLMConfig
}

// Load resolves configuration from viper (config file and TEMPO_* variables)
// with fallbacks to the plain environment variables the tool has always
// honored (NOTION_TOKEN, OPENAI_API_KEY, ...). A .env file in the working
// directory is read first if present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Notion: NotionConfig{
			Token:      fromViperOrEnv("notion.token", "NOTION_TOKEN"),
			DatabaseID: fromViperOrEnv("notion.database_id", "NOTION_DATABASE_ID"),
			BaseURL:    viper.GetString("notion.base_url"),
			Properties: PropertyNames{
				Content:  viper.GetString("notion.properties.content"),
				Date:     viper.GetString("notion.properties.date"),
				Category: viper.GetString("notion.properties.category"),
				TimeType: viper.GetString("notion.properties.time_type"),
			},
		},
		LLM: LLMConfig{
			APIKey:      fromViperOrEnv("llm.api_key", "OPENAI_API_KEY"),
			BaseURL:     fromViperOrEnv("llm.base_url", "OPENAI_BASE_URL"),
			Model:       fromViperOrEnv("llm.model", "OPENAI_MODEL"),
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
			Timeout:     viper.GetDuration("llm.timeout"),
		},
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}

	return cfg
}

// Validate fails fast on incomplete configuration, enumerating every missing
// key in one error rather than reporting them one at a time.
func (c *Config) Validate() error {
	var missing []string
	if c.Notion.Token == "" {
		missing = append(missing, "NOTION_TOKEN")
	}
	if c.Notion.DatabaseID == "" {
		missing = append(missing, "NOTION_DATABASE_ID")
	}
	if c.LLM.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

func fromViperOrEnv(key, envVar string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(envVar)
}
