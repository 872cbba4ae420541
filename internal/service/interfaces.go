package service

import (
	"github.com/sohailkhan2596/saas-analytics-service/internal/dto"
	"github.com/sohailkhan2596/saas-analytics-service/internal/validation"
)

// MetricsServicer defines the interface for metrics service operations
type MetricsServicer interface {
	GetCoreMetrics(req *dto.GetCoreMetricsRequest) (*dto.GetCoreMetricsResponse, error)
	GetFunnelMetrics(req *dto.GetFunnelMetricsRequest) (*dto.GetFunnelMetricsResponse, error)
	ValidateDataset() (*validation.Report, error)
	RequestRecompute(req *dto.RecomputeRequest) (string, error)
	Ping() error
}
