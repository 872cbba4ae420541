// Package engine implements the temporal cohort metrics engine: a single
// deterministic batch computation turning the customer, subscription and
// event relations into the core metrics and funnel metrics relations.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
)

// Dataset is the engine's input: three already-cleaned, deduplicated relations
type Dataset struct {
	Customers     []domain.Customer
	Subscriptions []domain.Subscription
	Events        []domain.Event
}

// Result is the engine's output: both metrics relations, fully ordered
type Result struct {
	Core   []domain.CoreMetricsRow
	Funnel []domain.FunnelMetricsRow
}

// Engine computes the metrics relations from a dataset
type Engine struct {
	log *zap.Logger
}

// New creates a new engine
func New(log *zap.Logger) *Engine {
	return &Engine{log: log}
}

// Run executes one full recompute over the dataset. The computation is
// deterministic: two runs over identical inputs produce identical output
// relations, ordered by (month_start, segment, country, source). An empty
// customer set short-circuits to empty relations rather than an error; a
// subscription or event referencing an unknown customer rejects the whole run
// before anything is emitted.
func (e *Engine) Run(ctx context.Context, ds Dataset) (*Result, error) {
	start := time.Now()

	if len(ds.Customers) == 0 {
		e.log.Info("No customers in dataset, emitting empty relations")
		return &Result{
			Core:   []domain.CoreMetricsRow{},
			Funnel: []domain.FunnelMetricsRow{},
		}, nil
	}

	if err := checkReferences(ds); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	subsByCustomer := lo.GroupBy(ds.Subscriptions, func(s domain.Subscription) string { return s.CustomerID })
	eventsByCustomer := lo.GroupBy(ds.Events, func(ev domain.Event) string { return ev.CustomerID })

	customers := resolveCustomers(ds.Customers, ds.Events)

	min, max, _ := dataRange(customers, ds.Subscriptions, ds.Events)
	spine := MonthSpine(min, max)

	// The three aggregations share no mutable state once the inputs are
	// resolved, so they run concurrently.
	var (
		wg       sync.WaitGroup
		activity map[periodKey]activityAggregate
		churn    map[periodKey]churnAggregate
		funnel   map[periodKey]funnelAggregate
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		activity = aggregateActivity(spine, customers, subsByCustomer)
	}()
	go func() {
		defer wg.Done()
		churn = aggregateChurn(customers, subsByCustomer, eventsByCustomer)
	}()
	go func() {
		defer wg.Done()
		funnel = buildFunnel(customers, subsByCustomer, eventsByCustomer)
	}()
	wg.Wait()

	result := &Result{
		Core:   calculateCoreMetrics(activity, churn),
		Funnel: calculateFunnelMetrics(funnel),
	}

	e.log.Info("Metrics computation finished",
		zap.Int("customers", len(ds.Customers)),
		zap.Int("spine_months", len(spine)),
		zap.Int("core_rows", len(result.Core)),
		zap.Int("funnel_rows", len(result.Funnel)),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

// checkReferences rejects the dataset when a subscription or event references
// a customer that does not exist
func checkReferences(ds Dataset) error {
	known := lo.SliceToMap(ds.Customers, func(c domain.Customer) (string, struct{}) {
		return c.CustomerID, struct{}{}
	})

	for _, s := range ds.Subscriptions {
		if _, ok := known[s.CustomerID]; !ok {
			return fmt.Errorf("subscription %s references unknown customer %s", s.SubscriptionID, s.CustomerID)
		}
	}
	for _, ev := range ds.Events {
		if _, ok := known[ev.CustomerID]; !ok {
			return fmt.Errorf("event %s references unknown customer %s", ev.EventID, ev.CustomerID)
		}
	}
	return nil
}
