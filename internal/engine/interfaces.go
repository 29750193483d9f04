package engine

import (
	"context"
	"time"

	"github.com/Veraticus/the-time-must-flow/internal/model"
)

// Classifier produces select-option suggestions for record content.
type Classifier interface {
	SuggestCategory(ctx context.Context, content string, categories model.CategorySet) (model.ClassificationResult, error)
	SuggestTimeType(ctx context.Context, content string, timeTypes model.CategorySet) (model.ClassificationResult, error)
}

// RecordStore is the Notion-facing contract the engine consumes.
type RecordStore interface {
	GetRecords(ctx context.Context, date time.Time) ([]model.Record, error)
	GetCategoryOptions(ctx context.Context) (model.CategorySet, error)
	GetTimeTypeOptions(ctx context.Context) (model.CategorySet, error)
	UpdateRecord(ctx context.Context, id, category, timeType string) error
}
