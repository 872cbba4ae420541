package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
	"github.com/sohailkhan2596/saas-analytics-service/internal/dto"
	"github.com/sohailkhan2596/saas-analytics-service/internal/queue"
	"github.com/sohailkhan2596/saas-analytics-service/internal/repository"
	"github.com/sohailkhan2596/saas-analytics-service/internal/validation"
)

const monthLayout = "2006-01"

// MetricsService represents the metrics service
type MetricsService struct {
	publisher  queue.RecomputePublisher
	repository repository.AnalyticsRepository
	log        *zap.Logger
}

// NewMetricsService creates a new metrics service
func NewMetricsService(publisher queue.RecomputePublisher, repo repository.AnalyticsRepository, log *zap.Logger) *MetricsService {
	return &MetricsService{
		publisher:  publisher,
		repository: repo,
		log:        log,
	}
}

// buildFilter parses the shared query parameters into a repository filter
func buildFilter(from, to, segment, country, source string) (repository.MetricsFilter, error) {
	filter := repository.MetricsFilter{
		Segment: segment,
		Country: country,
		Source:  source,
	}

	if from != "" {
		t, err := time.Parse(monthLayout, from)
		if err != nil {
			return filter, fmt.Errorf("invalid from month %q (expected YYYY-MM)", from)
		}
		filter.From = t
	}
	if to != "" {
		t, err := time.Parse(monthLayout, to)
		if err != nil {
			return filter, fmt.Errorf("invalid to month %q (expected YYYY-MM)", to)
		}
		filter.To = t
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return filter, fmt.Errorf("from month must not be after to month")
	}

	return filter, nil
}

// GetCoreMetrics retrieves stored core metrics matching the request
func (s *MetricsService) GetCoreMetrics(req *dto.GetCoreMetricsRequest) (*dto.GetCoreMetricsResponse, error) {
	ctx := context.Background()

	filter, err := buildFilter(req.From, req.To, req.Segment, req.Country, req.Source)
	if err != nil {
		s.log.Warn("Invalid core metrics request", zap.Error(err))
		return nil, err
	}

	rows, err := s.repository.QueryCoreMetrics(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get core metrics from repository: %w", err)
	}

	return &dto.GetCoreMetricsResponse{
		Count: len(rows),
		Rows: lo.Map(rows, func(row domain.CoreMetricsRow, _ int) dto.CoreMetricsData {
			return dto.CoreMetricsData{
				MonthStart:          row.MonthStart.Format("2006-01-02"),
				Segment:             row.Segment,
				Country:             row.Country,
				Source:              row.Source,
				MRR:                 row.MRR.InexactFloat64(),
				ARR:                 row.ARR.InexactFloat64(),
				ActiveCustomers:     row.ActiveCustomers,
				ChurnedLogos:        row.ChurnedLogos,
				LostMRR:             row.LostMRR.InexactFloat64(),
				LogoChurnRatePct:    row.LogoChurnRatePct.InexactFloat64(),
				RevenueChurnRatePct: row.RevenueChurnRatePct.InexactFloat64(),
				ARPC:                row.ARPC.InexactFloat64(),
			}
		}),
	}, nil
}

// GetFunnelMetrics retrieves stored funnel metrics matching the request
func (s *MetricsService) GetFunnelMetrics(req *dto.GetFunnelMetricsRequest) (*dto.GetFunnelMetricsResponse, error) {
	ctx := context.Background()

	filter, err := buildFilter(req.From, req.To, req.Segment, req.Country, req.Source)
	if err != nil {
		s.log.Warn("Invalid funnel metrics request", zap.Error(err))
		return nil, err
	}

	rows, err := s.repository.QueryFunnelMetrics(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get funnel metrics from repository: %w", err)
	}

	return &dto.GetFunnelMetricsResponse{
		Count: len(rows),
		Rows: lo.Map(rows, func(row domain.FunnelMetricsRow, _ int) dto.FunnelMetricsData {
			return dto.FunnelMetricsData{
				MonthStart:       row.MonthStart.Format("2006-01-02"),
				Segment:          row.Segment,
				Country:          row.Country,
				Source:           row.Source,
				TotalSignups:     row.TotalSignups,
				TotalTrials:      row.TotalTrials,
				TotalActivated:   row.TotalActivated,
				TotalPaid:        row.TotalPaid,
				TotalChurned:     row.TotalChurned,
				SignupToTrialPct: row.SignupToTrialPct.InexactFloat64(),
				SignupDropoffPct: row.SignupDropoffPct.InexactFloat64(),
				TrialToActivePct: row.TrialToActivePct.InexactFloat64(),
				TrialDropoffPct:  row.TrialDropoffPct.InexactFloat64(),
				ActiveToPaidPct:  row.ActiveToPaidPct.InexactFloat64(),
				ActiveDropoffPct: row.ActiveDropoffPct.InexactFloat64(),
				PaidToChurnPct:   row.PaidToChurnPct.InexactFloat64(),
				PaidRetentionPct: row.PaidRetentionPct.InexactFloat64(),
				DataFlag:         row.DataFlag,
			}
		}),
	}, nil
}

// ValidateDataset runs the data-quality checks over the current input relations
func (s *MetricsService) ValidateDataset() (*validation.Report, error) {
	ctx := context.Background()

	ds, err := s.repository.LoadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	report := validation.Check(ds, time.Now().UTC())

	s.log.Info("Dataset validated",
		zap.Int("customers", len(ds.Customers)),
		zap.Int("issue_count", report.IssueCount()))

	return report, nil
}

// Ping checks that the metrics storage is reachable
func (s *MetricsService) Ping() error {
	return s.repository.Ping(context.Background())
}

// computeRequestID generates a unique recompute request ID from the request
// content and submission time
func computeRequestID(req *dto.RecomputeRequest) string {
	data := fmt.Sprintf("%s|%s|%d", req.RequestedBy, req.Reason, time.Now().UnixNano())
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// RequestRecompute publishes a recompute request to the queue
func (s *MetricsService) RequestRecompute(req *dto.RecomputeRequest) (string, error) {
	ctx := context.Background()

	requestID := computeRequestID(req)

	if err := s.publisher.PublishRecompute(ctx, req, requestID); err != nil {
		return "", fmt.Errorf("failed to publish recompute request to queue: %w", err)
	}

	return requestID, nil
}
