package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/sohailkhan2596/saas-analytics-service/internal/dto"
	"github.com/sohailkhan2596/saas-analytics-service/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockMetricsService is a mock implementation of service.MetricsServicer
type MockMetricsService struct {
	mock.Mock
}

func (m *MockMetricsService) GetCoreMetrics(req *dto.GetCoreMetricsRequest) (*dto.GetCoreMetricsResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GetCoreMetricsResponse), args.Error(1)
}

func (m *MockMetricsService) GetFunnelMetrics(req *dto.GetFunnelMetricsRequest) (*dto.GetFunnelMetricsResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GetFunnelMetricsResponse), args.Error(1)
}

func (m *MockMetricsService) ValidateDataset() (*validation.Report, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validation.Report), args.Error(1)
}

func (m *MockMetricsService) RequestRecompute(req *dto.RecomputeRequest) (string, error) {
	args := m.Called(req)
	return args.String(0), args.Error(1)
}

func (m *MockMetricsService) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func TestHealthCheck_StorageUp(t *testing.T) {
	mockService := new(MockMetricsService)
	mockService.On("Ping").Return(nil)
	h := NewHandler(mockService, zap.NewNop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestHealthCheck_StorageDown(t *testing.T) {
	mockService := new(MockMetricsService)
	mockService.On("Ping").Return(errors.New("connection refused"))
	h := NewHandler(mockService, zap.NewNop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
}
