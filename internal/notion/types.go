package notion

// Wire types for the subset of the Notion API the tool touches. Write
// payloads are built as plain maps; these structs cover what we read back.

type queryRequest struct {
	Filter      *propertyFilter `json:"filter,omitempty"`
	StartCursor string          `json:"start_cursor,omitempty"`
}

type propertyFilter struct {
	Property string        `json:"property"`
	Date     dateCondition `json:"date"`
}

type dateCondition struct {
	Equals string `json:"equals"`
}

type queryResponse struct {
	NextCursor string `json:"next_cursor"`
	Results    []page `json:"results"`
	HasMore    bool   `json:"has_more"`
}

type page struct {
	ID         string              `json:"id"`
	Properties map[string]property `json:"properties"`
}

// property is a union across the property types we read; Type selects which
// field is populated.
type property struct {
	Type     string       `json:"type"`
	Title    []richText   `json:"title,omitempty"`
	RichText []richText   `json:"rich_text,omitempty"`
	Select   *selectValue `json:"select,omitempty"`
	Date     *dateValue   `json:"date,omitempty"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type selectValue struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

type database struct {
	Title      []richText                `json:"title"`
	Properties map[string]schemaProperty `json:"properties"`
}

type schemaProperty struct {
	Type   string        `json:"type"`
	Select *selectSchema `json:"select,omitempty"`
}

type selectSchema struct {
	Options []selectOption `json:"options"`
}

type selectOption struct {
	Name string `json:"name"`
}
