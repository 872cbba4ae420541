package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sohailkhan2596/saas-analytics-service/docs"
	"github.com/sohailkhan2596/saas-analytics-service/internal/dto"
	"github.com/sohailkhan2596/saas-analytics-service/internal/service"
)

type Handler struct {
	metricsService service.MetricsServicer
	router         *gin.Engine
	log            *zap.Logger
}

func NewHandler(metricsService service.MetricsServicer, log *zap.Logger) *Handler {
	h := &Handler{
		metricsService: metricsService,
		router:         gin.Default(),
		log:            log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/metrics/core", h.getCoreMetrics)
	h.router.GET("/metrics/funnel", h.getFunnelMetrics)
	h.router.GET("/validation", h.getValidation)
	h.router.POST("/recompute", h.requestRecompute)
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running and its storage is reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	if err := h.metricsService.Ping(); err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// getCoreMetrics handles GET /metrics/core
// @Summary Get core metrics
// @Description Retrieve stored monthly revenue, activity and churn metrics per breakdown key
// @Tags metrics
// @Produce json
// @Param from query string false "First month (YYYY-MM)" example:"2023-01"
// @Param to query string false "Last month (YYYY-MM)" example:"2023-12"
// @Param segment query string false "Segment filter" example:"SMB"
// @Param country query string false "Country filter" example:"US"
// @Param source query string false "Acquisition source filter" example:"ads"
// @Success 200 {object} dto.GetCoreMetricsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /metrics/core [get]
func (h *Handler) getCoreMetrics(c *gin.Context) {
	var req dto.GetCoreMetricsRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid core metrics request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.metricsService.GetCoreMetrics(&req)
	if err != nil {
		h.log.Error("Failed to get core metrics",
			zap.Error(err),
			zap.String("from", req.From),
			zap.String("to", req.To))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// getFunnelMetrics handles GET /metrics/funnel
// @Summary Get funnel metrics
// @Description Retrieve stored signup-cohort funnel metrics per breakdown key
// @Tags metrics
// @Produce json
// @Param from query string false "First cohort month (YYYY-MM)" example:"2023-01"
// @Param to query string false "Last cohort month (YYYY-MM)" example:"2023-12"
// @Param segment query string false "Segment filter" example:"SMB"
// @Param country query string false "Country filter" example:"US"
// @Param source query string false "Acquisition source filter" example:"ads"
// @Success 200 {object} dto.GetFunnelMetricsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /metrics/funnel [get]
func (h *Handler) getFunnelMetrics(c *gin.Context) {
	var req dto.GetFunnelMetricsRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid funnel metrics request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.metricsService.GetFunnelMetrics(&req)
	if err != nil {
		h.log.Error("Failed to get funnel metrics",
			zap.Error(err),
			zap.String("from", req.From),
			zap.String("to", req.To))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// getValidation handles GET /validation
// @Summary Validate the dataset
// @Description Run the data-quality checks over the current input relations and return the findings
// @Tags validation
// @Produce json
// @Success 200 {object} validation.Report
// @Failure 500 {object} dto.ErrorResponse
// @Router /validation [get]
func (h *Handler) getValidation(c *gin.Context) {
	report, err := h.metricsService.ValidateDataset()
	if err != nil {
		h.log.Error("Failed to validate dataset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// requestRecompute handles POST /recompute
// @Summary Request a metrics recompute
// @Description Queue a full recompute of both metrics relations
// @Tags metrics
// @Accept json
// @Produce json
// @Param request body dto.RecomputeRequest true "Recompute request"
// @Success 202 {object} dto.RecomputeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /recompute [post]
func (h *Handler) requestRecompute(c *gin.Context) {
	var req dto.RecomputeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid recompute request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	requestID, err := h.metricsService.RequestRecompute(&req)
	if err != nil {
		h.log.Error("Failed to queue recompute",
			zap.Error(err),
			zap.String("requested_by", req.RequestedBy))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("Recompute queued",
		zap.String("request_id", requestID),
		zap.String("requested_by", req.RequestedBy))

	c.JSON(http.StatusAccepted, dto.RecomputeResponse{
		RequestID: requestID,
		Status:    "queued",
	})
}
