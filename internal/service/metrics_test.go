package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
	"github.com/sohailkhan2596/saas-analytics-service/internal/dto"
	"github.com/sohailkhan2596/saas-analytics-service/internal/engine"
	"github.com/sohailkhan2596/saas-analytics-service/internal/repository"
)

// MockRecomputePublisher is a mock implementation of queue.RecomputePublisher
type MockRecomputePublisher struct {
	mock.Mock
}

func (m *MockRecomputePublisher) PublishRecompute(ctx context.Context, req *dto.RecomputeRequest, requestID string) error {
	args := m.Called(ctx, req, requestID)
	return args.Error(0)
}

// MockAnalyticsRepository is a mock implementation of repository.AnalyticsRepository
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) LoadDataset(ctx context.Context) (engine.Dataset, error) {
	args := m.Called(ctx)
	return args.Get(0).(engine.Dataset), args.Error(1)
}

func (m *MockAnalyticsRepository) ReplaceCoreMetrics(ctx context.Context, rows []domain.CoreMetricsRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) ReplaceFunnelMetrics(ctx context.Context, rows []domain.FunnelMetricsRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) QueryCoreMetrics(ctx context.Context, filter repository.MetricsFilter) ([]domain.CoreMetricsRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CoreMetricsRow), args.Error(1)
}

func (m *MockAnalyticsRepository) QueryFunnelMetrics(ctx context.Context, filter repository.MetricsFilter) ([]domain.FunnelMetricsRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FunnelMetricsRow), args.Error(1)
}

func (m *MockAnalyticsRepository) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestBuildFilter(t *testing.T) {
	filter, err := buildFilter("2023-01", "2023-06", "SMB", "US", "ads")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), filter.From)
	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), filter.To)
	assert.Equal(t, "SMB", filter.Segment)
	assert.Equal(t, "US", filter.Country)
	assert.Equal(t, "ads", filter.Source)
}

func TestBuildFilter_Empty(t *testing.T) {
	filter, err := buildFilter("", "", "", "", "")

	assert.NoError(t, err)
	assert.True(t, filter.From.IsZero())
	assert.True(t, filter.To.IsZero())
}

func TestBuildFilter_InvalidMonth(t *testing.T) {
	_, err := buildFilter("2023-13", "", "", "", "")
	assert.Error(t, err)

	_, err = buildFilter("january", "", "", "", "")
	assert.Error(t, err)
}

func TestBuildFilter_InvertedRange(t *testing.T) {
	_, err := buildFilter("2023-06", "2023-01", "", "", "")

	assert.EqualError(t, err, "from month must not be after to month")
}

func TestGetCoreMetrics_Success(t *testing.T) {
	mockRepo := new(MockAnalyticsRepository)
	svc := NewMetricsService(nil, mockRepo, zap.NewNop())

	rows := []domain.CoreMetricsRow{
		{
			MonthStart:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			Segment:         "SMB",
			Country:         "US",
			Source:          "ads",
			MRR:             decimal.NewFromInt(1200),
			ARR:             decimal.NewFromInt(14400),
			ActiveCustomers: 12,
			ARPC:            decimal.NewFromInt(100),
		},
	}
	mockRepo.On("QueryCoreMetrics", mock.Anything, mock.Anything).Return(rows, nil)

	resp, err := svc.GetCoreMetrics(&dto.GetCoreMetricsRequest{Segment: "SMB"})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "2023-01-01", resp.Rows[0].MonthStart)
	assert.Equal(t, 1200.0, resp.Rows[0].MRR)
	assert.Equal(t, uint64(12), resp.Rows[0].ActiveCustomers)
	mockRepo.AssertExpectations(t)
}

func TestGetCoreMetrics_InvalidRequest(t *testing.T) {
	mockRepo := new(MockAnalyticsRepository)
	svc := NewMetricsService(nil, mockRepo, zap.NewNop())

	resp, err := svc.GetCoreMetrics(&dto.GetCoreMetricsRequest{From: "bad"})

	assert.Error(t, err)
	assert.Nil(t, resp)
	mockRepo.AssertNotCalled(t, "QueryCoreMetrics")
}

func TestGetCoreMetrics_RepositoryError(t *testing.T) {
	mockRepo := new(MockAnalyticsRepository)
	svc := NewMetricsService(nil, mockRepo, zap.NewNop())

	mockRepo.On("QueryCoreMetrics", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	resp, err := svc.GetCoreMetrics(&dto.GetCoreMetricsRequest{})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to get core metrics from repository")
}

func TestGetFunnelMetrics_Success(t *testing.T) {
	mockRepo := new(MockAnalyticsRepository)
	svc := NewMetricsService(nil, mockRepo, zap.NewNop())

	rows := []domain.FunnelMetricsRow{
		{
			MonthStart:       time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			Segment:          "SMB",
			Country:          "US",
			Source:           "ads",
			TotalSignups:     40,
			TotalTrials:      30,
			SignupToTrialPct: decimal.NewFromInt(75),
			DataFlag:         domain.ConsistentFlag,
		},
	}
	mockRepo.On("QueryFunnelMetrics", mock.Anything, mock.Anything).Return(rows, nil)

	resp, err := svc.GetFunnelMetrics(&dto.GetFunnelMetricsRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, uint64(40), resp.Rows[0].TotalSignups)
	assert.Equal(t, 75.0, resp.Rows[0].SignupToTrialPct)
	assert.Equal(t, "consistent", resp.Rows[0].DataFlag)
}

func TestValidateDataset(t *testing.T) {
	mockRepo := new(MockAnalyticsRepository)
	svc := NewMetricsService(nil, mockRepo, zap.NewNop())

	ds := engine.Dataset{
		Customers: []domain.Customer{{CustomerID: "c1", SignupDate: time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)}},
	}
	mockRepo.On("LoadDataset", mock.Anything).Return(ds, nil)

	report, err := svc.ValidateDataset()

	assert.NoError(t, err)
	assert.True(t, report.Clean())
	mockRepo.AssertExpectations(t)
}

func TestValidateDataset_LoadError(t *testing.T) {
	mockRepo := new(MockAnalyticsRepository)
	svc := NewMetricsService(nil, mockRepo, zap.NewNop())

	mockRepo.On("LoadDataset", mock.Anything).Return(engine.Dataset{}, errors.New("connection refused"))

	report, err := svc.ValidateDataset()

	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "failed to load dataset")
}

func TestRequestRecompute_Success(t *testing.T) {
	mockPublisher := new(MockRecomputePublisher)
	svc := NewMetricsService(mockPublisher, nil, zap.NewNop())

	req := &dto.RecomputeRequest{RequestedBy: "reporting-cron", Reason: "nightly refresh"}
	mockPublisher.On("PublishRecompute", mock.Anything, req, mock.AnythingOfType("string")).Return(nil)

	requestID, err := svc.RequestRecompute(req)

	assert.NoError(t, err)
	assert.Len(t, requestID, 64)
	mockPublisher.AssertExpectations(t)
}

func TestRequestRecompute_PublishError(t *testing.T) {
	mockPublisher := new(MockRecomputePublisher)
	svc := NewMetricsService(mockPublisher, nil, zap.NewNop())

	req := &dto.RecomputeRequest{RequestedBy: "reporting-cron"}
	mockPublisher.On("PublishRecompute", mock.Anything, req, mock.AnythingOfType("string")).Return(errors.New("queue unavailable"))

	requestID, err := svc.RequestRecompute(req)

	assert.Error(t, err)
	assert.Empty(t, requestID)
	assert.Contains(t, err.Error(), "failed to publish recompute request to queue")
}

func TestPing(t *testing.T) {
	mockRepo := new(MockAnalyticsRepository)
	svc := NewMetricsService(nil, mockRepo, zap.NewNop())

	mockRepo.On("Ping", mock.Anything).Return(nil)

	assert.NoError(t, svc.Ping())
	mockRepo.AssertExpectations(t)
}

func TestPing_StorageDown(t *testing.T) {
	mockRepo := new(MockAnalyticsRepository)
	svc := NewMetricsService(nil, mockRepo, zap.NewNop())

	mockRepo.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	assert.Error(t, svc.Ping())
}

func TestRequestRecompute_UniqueIDs(t *testing.T) {
	first := computeRequestID(&dto.RecomputeRequest{RequestedBy: "a"})
	second := computeRequestID(&dto.RecomputeRequest{RequestedBy: "a"})

	assert.NotEqual(t, first, second, "the submission timestamp feeds the hash")
}
