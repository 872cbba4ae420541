package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sohailkhan2596/saas-analytics-service/internal/engine"
	"github.com/sohailkhan2596/saas-analytics-service/internal/repository"
	"github.com/sohailkhan2596/saas-analytics-service/internal/validation"
)

// MetricsEngine computes the output relations from a dataset
type MetricsEngine interface {
	Run(ctx context.Context, ds engine.Dataset) (*engine.Result, error)
}

// Pipeline executes one full recompute: load the input relations, report data
// quality, compute both metrics relations, replace the stored outputs. There
// is no partial-output mode: a failed run leaves the previous outputs in place.
type Pipeline struct {
	repo   repository.AnalyticsRepository
	engine MetricsEngine
	log    *zap.Logger
}

// NewPipeline creates a new recompute pipeline
func NewPipeline(repo repository.AnalyticsRepository, eng MetricsEngine, log *zap.Logger) *Pipeline {
	return &Pipeline{
		repo:   repo,
		engine: eng,
		log:    log,
	}
}

// Run executes the pipeline once
func (p *Pipeline) Run(ctx context.Context) error {
	ds, err := p.repo.LoadDataset(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	report := validation.Check(ds, time.Now().UTC())
	if !report.Clean() {
		// Findings are surfaced, not fatal: only broken references stop
		// the run, and those are rejected by the engine itself.
		p.log.Warn("Data quality issues detected",
			zap.Int("issue_count", report.IssueCount()),
			zap.Int("orphan_subscriptions", len(report.OrphanSubscriptions)),
			zap.Int("orphan_events", len(report.OrphanEvents)),
			zap.Int("signup_mismatches", len(report.SignupMismatches)))
	}

	result, err := p.engine.Run(ctx, ds)
	if err != nil {
		return fmt.Errorf("failed to compute metrics: %w", err)
	}

	if err := p.repo.ReplaceCoreMetrics(ctx, result.Core); err != nil {
		return fmt.Errorf("failed to store core metrics: %w", err)
	}
	if err := p.repo.ReplaceFunnelMetrics(ctx, result.Funnel); err != nil {
		return fmt.Errorf("failed to store funnel metrics: %w", err)
	}

	p.log.Info("Recompute finished",
		zap.Int("core_rows", len(result.Core)),
		zap.Int("funnel_rows", len(result.Funnel)))

	return nil
}
