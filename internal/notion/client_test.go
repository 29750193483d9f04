package notion

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-time-must-flow/internal/common"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		Token:      "secret-token",
		DatabaseID: "db-123",
		BaseURL:    baseURL,
	}, testLogger())
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{DatabaseID: "db-123"}, testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	_, err = NewClient(Config{Token: "secret-token"}, testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestNewClient_PropertyDefaults(t *testing.T) {
	client, err := NewClient(Config{
		Token:      "secret-token",
		DatabaseID: "db-123",
		Properties: Properties{Category: "分类"},
	}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "Record", client.props.Content)
	assert.Equal(t, "Date", client.props.Date)
	assert.Equal(t, "分类", client.props.Category)
	assert.Equal(t, "Time Type", client.props.TimeType)
}

func queryPage(id, content, category, timeType string) map[string]any {
	props := map[string]any{
		"Record": map[string]any{
			"type":  "title",
			"title": []map[string]any{{"plain_text": content}},
		},
		"Date": map[string]any{
			"type": "date",
			"date": map[string]any{"start": "2026-08-28"},
		},
	}
	if category != "" {
		props["Category"] = map[string]any{
			"type":   "select",
			"select": map[string]any{"name": category},
		}
	}
	if timeType != "" {
		props["Time Type"] = map[string]any{
			"type":   "select",
			"select": map[string]any{"name": timeType},
		}
	}
	return map[string]any{"id": id, "properties": props}
}

func TestClient_GetRecords(t *testing.T) {
	var gotFilter map[string]any
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/databases/db-123/query", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotFilter))

		resp := map[string]any{
			"has_more":    false,
			"next_cursor": nil,
			"results": []map[string]any{
				queryPage("page-1", "morning run", "", ""),
				queryPage("page-2", "standup meeting", "Work", "Fragmented"),
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	records, err := client.GetRecords(context.Background(), time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "page-1", records[0].ID)
	assert.Equal(t, "morning run", records[0].Content)
	assert.Empty(t, records[0].Category)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, "Work", records[1].Category)
	assert.Equal(t, "Fragmented", records[1].TimeType)

	assert.Equal(t, "Bearer secret-token", gotHeaders.Get("Authorization"))
	assert.Equal(t, "2022-06-28", gotHeaders.Get("Notion-Version"))

	filter, ok := gotFilter["filter"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Date", filter["property"])
	assert.Equal(t, map[string]any{"equals": "2026-08-28"}, filter["date"])
}

func TestClient_GetRecords_Pagination(t *testing.T) {
	var cursors []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		cursor, _ := req["start_cursor"].(string)
		cursors = append(cursors, cursor)

		var resp map[string]any
		if cursor == "" {
			resp = map[string]any{
				"has_more":    true,
				"next_cursor": "cursor-2",
				"results":     []map[string]any{queryPage("page-1", "first", "", "")},
			}
		} else {
			resp = map[string]any{
				"has_more":    false,
				"next_cursor": nil,
				"results":     []map[string]any{queryPage("page-2", "second", "", "")},
			}
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	records, err := client.GetRecords(context.Background(), time.Now())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, []string{"", "cursor-2"}, cursors)
}

func TestClient_GetRecords_RichTextContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := map[string]any{
			"has_more": false,
			"results": []map[string]any{
				{
					"id": "page-1",
					"properties": map[string]any{
						"Record": map[string]any{
							"type":      "rich_text",
							"rich_text": []map[string]any{{"plain_text": "  reading a novel  "}},
						},
					},
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	records, err := client.GetRecords(context.Background(), time.Now())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "reading a novel", records[0].Content, "content should be trimmed")
}

func schemaBody() string {
	db := map[string]any{
		"title": []map[string]any{{"plain_text": "Time Tracking"}},
		"properties": map[string]any{
			"Category": map[string]any{
				"type": "select",
				"select": map[string]any{
					"options": []map[string]any{
						{"name": "Work"},
						{"name": "Exercise"},
						{"name": "Reading"},
					},
				},
			},
			"Time Type": map[string]any{
				"type": "select",
				"select": map[string]any{
					"options": []map[string]any{
						{"name": "Focused"},
						{"name": "Fragmented"},
					},
				},
			},
			"Record": map[string]any{"type": "title"},
		},
	}
	b, _ := json.Marshal(db)
	return string(b)
}

func TestClient_GetCategoryOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/databases/db-123", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(schemaBody()))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	categories, err := client.GetCategoryOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Work", "Exercise", "Reading"}, []string(categories), "schema order must be preserved")

	timeTypes, err := client.GetTimeTypeOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Focused", "Fragmented"}, []string(timeTypes))
}

func TestClient_GetCategoryOptions_NotASelect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(schemaBody()))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		Token:      "secret-token",
		DatabaseID: "db-123",
		BaseURL:    server.URL,
		Properties: Properties{Category: "Record"},
	}, testLogger())
	require.NoError(t, err)

	_, err = client.GetCategoryOptions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a select field")

	client.props.Category = "Missing"
	_, err = client.GetCategoryOptions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in database schema")
}

func TestClient_UpdateRecord(t *testing.T) {
	var gotBody map[string]any
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id": "page-1"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	require.NoError(t, client.UpdateRecord(context.Background(), "page-1", "Work", "Focused"))

	assert.Equal(t, "/pages/page-1", gotPath)
	want := map[string]any{
		"properties": map[string]any{
			"Category":  map[string]any{"select": map[string]any{"name": "Work"}},
			"Time Type": map[string]any{"select": map[string]any{"name": "Focused"}},
		},
	}
	assert.Equal(t, want, gotBody)
}

func TestClient_UpdateRecord_OnlyNewValues(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id": "page-1"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	require.NoError(t, client.UpdateRecord(context.Background(), "page-1", "Work", ""))

	props := gotBody["properties"].(map[string]any)
	assert.Contains(t, props, "Category")
	assert.NotContains(t, props, "Time Type")
}

func TestClient_UpdateRecord_NothingToWrite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request should be issued when both values are empty")
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	require.NoError(t, client.UpdateRecord(context.Background(), "page-1", "", ""))
}

func TestClient_UpdateRecord_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "validation failed"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	err := client.UpdateRecord(context.Background(), "page-1", "Work", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAPICallFailed)
	assert.Contains(t, err.Error(), "status 400")
}

func TestClient_CreateRecord(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pages", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id": "page-new"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	id, err := client.CreateRecord(context.Background(), "afternoon workout", time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), "Exercise", "")
	require.NoError(t, err)
	assert.Equal(t, "page-new", id)

	assert.Equal(t, map[string]any{"database_id": "db-123"}, gotBody["parent"])
	props := gotBody["properties"].(map[string]any)
	assert.Contains(t, props, "Record")
	assert.Contains(t, props, "Date")
	assert.Contains(t, props, "Category")
	assert.NotContains(t, props, "Time Type")
}

func TestClient_TestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(schemaBody()))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	title, err := client.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Time Tracking", title)
}

func TestClient_TestConnection_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "API token is invalid"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.TestConnection(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAPICallFailed)
}
