// Package engine runs the sequential classification pass over one day of
// records: fetch options, fetch records, classify what is missing, write
// matches back. Per-record failures are logged and skipped; only missing
// schema aborts the run.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/the-time-must-flow/internal/common"
	"github.com/Veraticus/the-time-must-flow/internal/model"
)

// Config holds the options for a classification run.
type Config struct {
	// ProgressWriter receives the progress bar; nil disables it.
	ProgressWriter io.Writer
	// DryRun classifies records without writing anything back.
	DryRun bool
}

// Stats summarizes one run.
type Stats struct {
	Total      int
	Classified int
	Skipped    int
	Failed     int
}

// Engine orchestrates one classification run. Records are processed strictly
// one after another; each record's outcome is independent of the others.
type Engine struct {
	store      RecordStore
	classifier Classifier
	logger     *slog.Logger
	cfg        Config
}

// New creates a classification engine with the given collaborators.
func New(store RecordStore, classifier Classifier, logger *slog.Logger) *Engine {
	return NewWithConfig(store, classifier, logger, Config{})
}

// NewWithConfig creates a classification engine with run options.
func NewWithConfig(store RecordStore, classifier Classifier, logger *slog.Logger, cfg Config) *Engine {
	return &Engine{
		store:      store,
		classifier: classifier,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run classifies every record on the given date that still lacks a category
// or time type. It returns run statistics; the error is non-nil only for
// run-level failures (missing schema, unreachable database), never for
// individual records.
func (e *Engine) Run(ctx context.Context, date time.Time) (Stats, error) {
	day := date.Format("2006-01-02")
	e.logger.Info("starting classification run", "date", day)

	categories, err := e.store.GetCategoryOptions(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load category options: %w", err)
	}
	if len(categories) == 0 {
		return Stats{}, fmt.Errorf("%w: no category options defined in the database schema", common.ErrMissingConfig)
	}

	// A database without the time-type property is fine; that dimension is
	// simply not classified.
	timeTypes, err := e.store.GetTimeTypeOptions(ctx)
	if err != nil {
		e.logger.Warn("time type options unavailable, classifying category only", "error", err)
		timeTypes = nil
	}

	e.logger.Info("loaded select options",
		"categories", len(categories),
		"time_types", len(timeTypes))

	records, err := e.store.GetRecords(ctx, date)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to fetch records: %w", err)
	}
	if len(records) == 0 {
		e.logger.Info("no records found", "date", day)
		return Stats{}, nil
	}

	e.logger.Info("fetched records", "date", day, "count", len(records))

	stats := Stats{Total: len(records)}
	bar := e.newProgressBar(len(records))
	for i := range records {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		e.processRecord(ctx, &records[i], categories, timeTypes, &stats)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	e.logger.Info("run complete",
		"total", stats.Total,
		"classified", stats.Classified,
		"skipped", stats.Skipped,
		"failed", stats.Failed)

	return stats, nil
}

func (e *Engine) processRecord(ctx context.Context, record *model.Record, categories, timeTypes model.CategorySet, stats *Stats) {
	needsTimeType := len(timeTypes) > 0 && record.TimeType == ""
	if record.Category != "" && !needsTimeType {
		e.logger.Debug("record already classified",
			"record_id", record.ID,
			"category", record.Category,
			"time_type", record.TimeType)
		stats.Skipped++
		return
	}

	if strings.TrimSpace(record.Content) == "" {
		e.logger.Warn("record has no content, skipping", "record_id", record.ID)
		stats.Skipped++
		return
	}

	e.logger.Info("processing record",
		"record_id", record.ID,
		"content", record.Preview(100))

	var category string
	if record.Category == "" {
		result, err := e.classifier.SuggestCategory(ctx, record.Content, categories)
		if err != nil {
			e.logger.Error("category classification failed",
				"record_id", record.ID,
				"error", err)
			stats.Failed++
			return
		}
		if result.Matched() {
			category = result.Category
			e.logger.Info("category matched",
				"record_id", record.ID,
				"category", result.Category,
				"tier", result.Tier)
		} else {
			e.logger.Warn("record left unclassified",
				"record_id", record.ID,
				"answer", result.Response,
				"reason", common.ErrNoMatch)
		}
	}

	// A time-type failure does not discard a matched category.
	var timeType string
	if needsTimeType {
		result, err := e.classifier.SuggestTimeType(ctx, record.Content, timeTypes)
		switch {
		case err != nil:
			e.logger.Warn("time type classification failed",
				"record_id", record.ID,
				"error", err)
		case result.Matched():
			timeType = result.Category
			e.logger.Info("time type matched",
				"record_id", record.ID,
				"time_type", result.Category,
				"tier", result.Tier)
		default:
			e.logger.Warn("no matching time type",
				"record_id", record.ID,
				"answer", result.Response)
		}
	}

	if category == "" && timeType == "" {
		stats.Skipped++
		return
	}

	if e.cfg.DryRun {
		e.logger.Info("dry run, not updating record",
			"record_id", record.ID,
			"category", category,
			"time_type", timeType)
		stats.Classified++
		return
	}

	if err := e.store.UpdateRecord(ctx, record.ID, category, timeType); err != nil {
		e.logger.Error("failed to update record",
			"record_id", record.ID,
			"error", err)
		stats.Failed++
		return
	}

	stats.Classified++
	e.logger.Info("record updated",
		"record_id", record.ID,
		"category", category,
		"time_type", timeType)
}

func (e *Engine) newProgressBar(total int) *progressbar.ProgressBar {
	if e.cfg.ProgressWriter == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(e.cfg.ProgressWriter),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying records..."),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(e.cfg.ProgressWriter)
		}),
	)
}
