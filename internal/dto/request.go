package dto

// GetCoreMetricsRequest represents a core metrics query.
// Months use the YYYY-MM format; empty filters match everything.
type GetCoreMetricsRequest struct {
	From    string `form:"from" example:"2023-01"`
	To      string `form:"to" example:"2023-12"`
	Segment string `form:"segment" example:"SMB"`
	Country string `form:"country" example:"US"`
	Source  string `form:"source" example:"ads"`
}

// GetFunnelMetricsRequest represents a funnel metrics query, filtered by
// signup cohort month
type GetFunnelMetricsRequest struct {
	From    string `form:"from" example:"2023-01"`
	To      string `form:"to" example:"2023-12"`
	Segment string `form:"segment" example:"SMB"`
	Country string `form:"country" example:"US"`
	Source  string `form:"source" example:"ads"`
}

// RecomputeRequest represents a request to recompute both metrics relations
type RecomputeRequest struct {
	RequestedBy string `json:"requested_by" binding:"required" example:"reporting-cron"`
	Reason      string `json:"reason" example:"nightly refresh"`
}
