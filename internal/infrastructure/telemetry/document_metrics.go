// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// DocumentMetrics provides business metrics for the document lifecycle.
// It tracks document creation, posting activity and ledger health.
type DocumentMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	documentCreatedTotal *Counter
	documentPostedTotal  *Counter
	documentVoidedTotal  *Counter
	postingFailedTotal   *Counter

	// Histogram metrics
	postingDuration *Histogram

	// Gauge metrics (point-in-time values)
	openDocumentCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	countProvider DocumentCountProvider
}

// DocumentCountProvider provides document counts for periodic metrics
// collection. This interface lets the telemetry layer query document state
// without depending on the document domain directly.
type DocumentCountProvider interface {
	// GetOpenCountByType returns the number of not-yet-terminal documents per type
	GetOpenCountByType(ctx context.Context) (map[string]int64, error)
}

// DocumentMetricsConfig holds configuration for document metrics.
type DocumentMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	CountProvider   DocumentCountProvider
}

// NewDocumentMetrics creates a new DocumentMetrics instance.
func NewDocumentMetrics(cfg DocumentMetricsConfig) (*DocumentMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dm := &DocumentMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		countProvider: cfg.CountProvider,
	}

	var err error

	dm.documentCreatedTotal, err = NewCounter(
		cfg.Meter,
		"findoc_document_created_total",
		"Total number of documents created",
		"{documents}",
	)
	if err != nil {
		return nil, err
	}

	dm.documentPostedTotal, err = NewCounter(
		cfg.Meter,
		"findoc_document_posted_total",
		"Total number of documents posted to the ledger",
		"{documents}",
	)
	if err != nil {
		return nil, err
	}

	dm.documentVoidedTotal, err = NewCounter(
		cfg.Meter,
		"findoc_document_voided_total",
		"Total number of posted documents voided",
		"{documents}",
	)
	if err != nil {
		return nil, err
	}

	dm.postingFailedTotal, err = NewCounter(
		cfg.Meter,
		"findoc_posting_failed_total",
		"Total number of posting attempts rejected by the ledger backend",
		"{attempts}",
	)
	if err != nil {
		return nil, err
	}

	dm.postingDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "findoc_posting_duration_seconds",
		Description: "Posting pipeline latency distribution in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	dm.openDocumentCount, err = NewGauge(
		cfg.Meter,
		"findoc_open_document_count",
		"Number of documents not yet in a terminal status",
		"{documents}",
	)
	if err != nil {
		return nil, err
	}

	return dm, nil
}

// RecordDocumentCreated records a document creation.
// This should be called from the application layer when a document is created.
func (dm *DocumentMetrics) RecordDocumentCreated(ctx context.Context, documentType string) {
	dm.documentCreatedTotal.Inc(ctx,
		AttrDocumentType.String(documentType),
	)
}

// RecordDocumentPosted records a successful posting and its duration.
func (dm *DocumentMetrics) RecordDocumentPosted(ctx context.Context, documentType string, elapsed time.Duration) {
	dm.documentPostedTotal.Inc(ctx,
		AttrDocumentType.String(documentType),
	)
	dm.postingDuration.RecordDuration(ctx, elapsed,
		AttrDocumentType.String(documentType),
		AttrResult.String("success"),
	)
}

// RecordDocumentVoided records a void of a posted document.
func (dm *DocumentMetrics) RecordDocumentVoided(ctx context.Context, documentType string) {
	dm.documentVoidedTotal.Inc(ctx,
		AttrDocumentType.String(documentType),
	)
}

// RecordPostingFailed records a posting attempt that the ledger backend rejected.
func (dm *DocumentMetrics) RecordPostingFailed(ctx context.Context, documentType string, elapsed time.Duration) {
	dm.postingFailedTotal.Inc(ctx,
		AttrDocumentType.String(documentType),
	)
	dm.postingDuration.RecordDuration(ctx, elapsed,
		AttrDocumentType.String(documentType),
		AttrResult.String("failed"),
	)
}

// RecordOpenDocumentCount records the current count of open documents per type.
// This is a gauge metric that should be updated periodically.
func (dm *DocumentMetrics) RecordOpenDocumentCount(ctx context.Context, documentType string, count int64) {
	dm.openDocumentCount.Record(ctx, count,
		AttrDocumentType.String(documentType),
	)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// This is non-blocking - use Stop() to stop collection.
func (dm *DocumentMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	dm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go dm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (dm *DocumentMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	dm.collectDocumentCounts(ctx)

	for {
		select {
		case <-dm.stopChan:
			dm.logger.Info("Stopping periodic document metrics collection")
			return
		case <-ctx.Done():
			dm.logger.Info("Context cancelled, stopping periodic document metrics collection")
			return
		case <-ticker.C:
			dm.collectDocumentCounts(ctx)
		}
	}
}

// collectDocumentCounts collects open document gauge metrics.
func (dm *DocumentMetrics) collectDocumentCounts(ctx context.Context) {
	if dm.countProvider == nil {
		dm.logger.Debug("No count provider configured, skipping document metrics collection")
		return
	}

	counts, err := dm.countProvider.GetOpenCountByType(ctx)
	if err != nil {
		dm.logger.Warn("Failed to get open document counts", zap.Error(err))
		return
	}

	for documentType, count := range counts {
		dm.RecordOpenDocumentCount(ctx, documentType, count)
	}
}

// Stop stops the periodic collection.
func (dm *DocumentMetrics) Stop() {
	dm.stopOnce.Do(func() {
		close(dm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewDocumentMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
