package repository

import (
	"context"
	"time"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
	"github.com/sohailkhan2596/saas-analytics-service/internal/engine"
)

// MetricsFilter restricts metrics reads to a month range and/or breakdown
// dimensions. Zero values mean no restriction.
type MetricsFilter struct {
	From    time.Time
	To      time.Time
	Segment string
	Country string
	Source  string
}

// DatasetRepository loads the cleaned input relations
type DatasetRepository interface {
	// LoadDataset reads the customer, subscription and event relations
	LoadDataset(ctx context.Context) (engine.Dataset, error)
}

// MetricsRepository stores and serves the computed output relations
type MetricsRepository interface {
	// ReplaceCoreMetrics swaps the stored core metrics relation for rows
	ReplaceCoreMetrics(ctx context.Context, rows []domain.CoreMetricsRow) error

	// ReplaceFunnelMetrics swaps the stored funnel metrics relation for rows
	ReplaceFunnelMetrics(ctx context.Context, rows []domain.FunnelMetricsRow) error

	// QueryCoreMetrics reads stored core metrics matching the filter
	QueryCoreMetrics(ctx context.Context, filter MetricsFilter) ([]domain.CoreMetricsRow, error)

	// QueryFunnelMetrics reads stored funnel metrics matching the filter
	QueryFunnelMetrics(ctx context.Context, filter MetricsFilter) ([]domain.FunnelMetricsRow, error)
}

// AnalyticsRepository is the full storage surface used by the service and worker
type AnalyticsRepository interface {
	DatasetRepository
	MetricsRepository

	// InitSchema initializes the database schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}
