// Package notion is a thin adapter over the Notion REST API: record queries
// by date, select options from the database schema, and page updates.
package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/the-time-must-flow/internal/common"
	"github.com/Veraticus/the-time-must-flow/internal/model"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	notionVersion  = "2022-06-28"
	dateLayout     = "2006-01-02"
)

// Properties names the database properties the tool reads and writes.
type Properties struct {
	Content  string
	Date     string
	Category string
	TimeType string
}

// DefaultProperties returns the property names used when none are configured.
func DefaultProperties() Properties {
	return Properties{
		Content:  "Record",
		Date:     "Date",
		Category: "Category",
		TimeType: "Time Type",
	}
}

// Config holds the connection settings for the Notion adapter.
type Config struct {
	Token      string
	DatabaseID string
	BaseURL    string
	Properties Properties
	Timeout    time.Duration
}

// Client talks to one Notion database.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	token      string
	databaseID string
	baseURL    string
	props      Properties
}

// NewClient creates a Notion API client for the configured database.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: notion token is required", common.ErrMissingConfig)
	}
	if cfg.DatabaseID == "" {
		return nil, fmt.Errorf("%w: notion database id is required", common.ErrMissingConfig)
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	props := cfg.Properties
	defaults := DefaultProperties()
	if props.Content == "" {
		props.Content = defaults.Content
	}
	if props.Date == "" {
		props.Date = defaults.Date
	}
	if props.Category == "" {
		props.Category = defaults.Category
	}
	if props.TimeType == "" {
		props.TimeType = defaults.TimeType
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		token:      cfg.Token,
		databaseID: cfg.DatabaseID,
		baseURL:    baseURL,
		props:      props,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GetRecords fetches all records whose date property equals the target date,
// following cursor pagination until the result set is complete.
func (c *Client) GetRecords(ctx context.Context, date time.Time) ([]model.Record, error) {
	day := date.Format(dateLayout)

	var records []model.Record
	cursor := ""
	for {
		reqBody := queryRequest{
			Filter: &propertyFilter{
				Property: c.props.Date,
				Date:     dateCondition{Equals: day},
			},
			StartCursor: cursor,
		}

		var resp queryResponse
		if err := c.do(ctx, http.MethodPost, "/databases/"+c.databaseID+"/query", reqBody, &resp); err != nil {
			return nil, fmt.Errorf("failed to query records: %w", err)
		}

		for i := range resp.Results {
			records = append(records, c.parseRecord(resp.Results[i]))
		}

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	c.logger.Debug("fetched records", "date", day, "count", len(records))
	return records, nil
}

// GetCategoryOptions returns the allowed values of the category select
// property, in schema order.
func (c *Client) GetCategoryOptions(ctx context.Context) (model.CategorySet, error) {
	return c.selectOptions(ctx, c.props.Category)
}

// GetTimeTypeOptions returns the allowed values of the time-type select
// property, in schema order.
func (c *Client) GetTimeTypeOptions(ctx context.Context) (model.CategorySet, error) {
	return c.selectOptions(ctx, c.props.TimeType)
}

// UpdateRecord patches the select properties of a page. Empty values are
// left untouched rather than cleared.
func (c *Client) UpdateRecord(ctx context.Context, id, category, timeType string) error {
	props := map[string]any{}
	if category != "" {
		props[c.props.Category] = map[string]any{
			"select": map[string]any{"name": category},
		}
	}
	if timeType != "" {
		props[c.props.TimeType] = map[string]any{
			"select": map[string]any{"name": timeType},
		}
	}
	if len(props) == 0 {
		return nil
	}

	body := map[string]any{"properties": props}
	if err := c.do(ctx, http.MethodPatch, "/pages/"+id, body, nil); err != nil {
		return fmt.Errorf("failed to update record %s: %w", id, err)
	}

	c.logger.Debug("updated record", "record_id", id, "category", category, "time_type", timeType)
	return nil
}

// CreateRecord inserts a new record into the database and returns its page id.
func (c *Client) CreateRecord(ctx context.Context, content string, date time.Time, category, timeType string) (string, error) {
	props := map[string]any{
		c.props.Content: map[string]any{
			"title": []map[string]any{
				{"text": map[string]any{"content": content}},
			},
		},
		c.props.Date: map[string]any{
			"date": map[string]any{"start": date.Format(dateLayout)},
		},
	}
	if category != "" {
		props[c.props.Category] = map[string]any{
			"select": map[string]any{"name": category},
		}
	}
	if timeType != "" {
		props[c.props.TimeType] = map[string]any{
			"select": map[string]any{"name": timeType},
		}
	}

	body := map[string]any{
		"parent":     map[string]any{"database_id": c.databaseID},
		"properties": props,
	}

	var created page
	if err := c.do(ctx, http.MethodPost, "/pages", body, &created); err != nil {
		return "", fmt.Errorf("failed to create record: %w", err)
	}

	c.logger.Debug("created record", "record_id", created.ID)
	return created.ID, nil
}

// TestConnection verifies the token and database id by fetching the database,
// returning its title.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	var db database
	if err := c.do(ctx, http.MethodGet, "/databases/"+c.databaseID, nil, &db); err != nil {
		return "", fmt.Errorf("connection test failed: %w", err)
	}

	if len(db.Title) == 0 {
		return "Untitled", nil
	}
	return db.Title[0].PlainText, nil
}

func (c *Client) selectOptions(ctx context.Context, propertyName string) (model.CategorySet, error) {
	var db database
	if err := c.do(ctx, http.MethodGet, "/databases/"+c.databaseID, nil, &db); err != nil {
		return nil, fmt.Errorf("failed to fetch database schema: %w", err)
	}

	prop, ok := db.Properties[propertyName]
	if !ok {
		return nil, fmt.Errorf("property %q not found in database schema", propertyName)
	}
	if prop.Type != "select" || prop.Select == nil {
		return nil, fmt.Errorf("property %q is not a select field", propertyName)
	}

	options := make(model.CategorySet, 0, len(prop.Select.Options))
	for _, opt := range prop.Select.Options {
		if opt.Name != "" {
			options = append(options, opt.Name)
		}
	}
	return options, nil
}

// parseRecord maps a Notion page onto the domain record. Content may live in
// a title or rich_text property; only the first fragment carries the entry
// text for records this tool manages.
func (c *Client) parseRecord(p page) model.Record {
	record := model.Record{ID: p.ID}

	if prop, ok := p.Properties[c.props.Content]; ok {
		switch prop.Type {
		case "title":
			if len(prop.Title) > 0 {
				record.Content = strings.TrimSpace(prop.Title[0].PlainText)
			}
		case "rich_text":
			if len(prop.RichText) > 0 {
				record.Content = strings.TrimSpace(prop.RichText[0].PlainText)
			}
		}
	}

	if prop, ok := p.Properties[c.props.Date]; ok && prop.Date != nil {
		start := prop.Date.Start
		if len(start) >= len(dateLayout) {
			if parsed, err := time.Parse(dateLayout, start[:len(dateLayout)]); err == nil {
				record.Date = parsed
			}
		}
	}

	if prop, ok := p.Properties[c.props.Category]; ok && prop.Type == "select" && prop.Select != nil {
		record.Category = prop.Select.Name
	}
	if prop, ok := p.Properties[c.props.TimeType]; ok && prop.Type == "select" && prop.Select != nil {
		record.TimeType = prop.Select.Name
	}

	return record
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = strings.NewReader(string(jsonBody))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrAPICallFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: notion API error (status %d): %s", common.ErrAPICallFailed, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: failed to parse response: %v", common.ErrAPICallFailed, err)
		}
	}

	return nil
}
