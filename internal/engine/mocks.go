package engine

import (
	"context"
	"time"

	"github.com/Veraticus/the-time-must-flow/internal/model"
)

// MockClassifier is a scriptable Classifier for engine tests.
type MockClassifier struct {
	SuggestCategoryFunc func(ctx context.Context, content string, categories model.CategorySet) (model.ClassificationResult, error)
	SuggestTimeTypeFunc func(ctx context.Context, content string, timeTypes model.CategorySet) (model.ClassificationResult, error)
	CategoryCalls       int
	TimeTypeCalls       int
}

// SuggestCategory implements Classifier.
func (m *MockClassifier) SuggestCategory(ctx context.Context, content string, categories model.CategorySet) (model.ClassificationResult, error) {
	m.CategoryCalls++
	if m.SuggestCategoryFunc != nil {
		return m.SuggestCategoryFunc(ctx, content, categories)
	}
	return model.ClassificationResult{Tier: model.TierNone}, nil
}

// SuggestTimeType implements Classifier.
func (m *MockClassifier) SuggestTimeType(ctx context.Context, content string, timeTypes model.CategorySet) (model.ClassificationResult, error) {
	m.TimeTypeCalls++
	if m.SuggestTimeTypeFunc != nil {
		return m.SuggestTimeTypeFunc(ctx, content, timeTypes)
	}
	return model.ClassificationResult{Tier: model.TierNone}, nil
}

// RecordedUpdate captures one UpdateRecord call.
type RecordedUpdate struct {
	ID       string
	Category string
	TimeType string
}

// MockStore is a scriptable RecordStore for engine tests.
type MockStore struct {
	Records     []model.Record
	Categories  model.CategorySet
	TimeTypes   model.CategorySet
	RecordsErr  error
	CategoryErr error
	TimeTypeErr error
	UpdateErr   error
	Updates     []RecordedUpdate
}

// GetRecords implements RecordStore.
func (m *MockStore) GetRecords(_ context.Context, _ time.Time) ([]model.Record, error) {
	return m.Records, m.RecordsErr
}

// GetCategoryOptions implements RecordStore.
func (m *MockStore) GetCategoryOptions(_ context.Context) (model.CategorySet, error) {
	return m.Categories, m.CategoryErr
}

// GetTimeTypeOptions implements RecordStore.
func (m *MockStore) GetTimeTypeOptions(_ context.Context) (model.CategorySet, error) {
	return m.TimeTypes, m.TimeTypeErr
}

// UpdateRecord implements RecordStore.
func (m *MockStore) UpdateRecord(_ context.Context, id, category, timeType string) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Updates = append(m.Updates, RecordedUpdate{ID: id, Category: category, TimeType: timeType})
	return nil
}
