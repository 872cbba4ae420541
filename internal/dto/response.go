package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"from month must not be after to month"`
}

// CoreMetricsData is one core metrics row in API form
type CoreMetricsData struct {
	MonthStart          string  `json:"month_start" example:"2023-01-01"`
	Segment             string  `json:"segment" example:"SMB"`
	Country             string  `json:"country" example:"US"`
	Source              string  `json:"source" example:"ads"`
	MRR                 float64 `json:"mrr" example:"1200"`
	ARR                 float64 `json:"arr" example:"14400"`
	ActiveCustomers     uint64  `json:"active_customers" example:"12"`
	ChurnedLogos        uint64  `json:"churned_logos" example:"1"`
	LostMRR             float64 `json:"lost_mrr" example:"100"`
	LogoChurnRatePct    float64 `json:"logo_churn_rate_pct" example:"8.33"`
	RevenueChurnRatePct float64 `json:"revenue_churn_rate_pct" example:"7.69"`
	ARPC                float64 `json:"arpc" example:"100"`
}

// GetCoreMetricsResponse represents the core metrics query response
type GetCoreMetricsResponse struct {
	Count int               `json:"count" example:"24"`
	Rows  []CoreMetricsData `json:"rows"`
}

// FunnelMetricsData is one funnel metrics row in API form
type FunnelMetricsData struct {
	MonthStart       string  `json:"month_start" example:"2023-01-01"`
	Segment          string  `json:"segment" example:"SMB"`
	Country          string  `json:"country" example:"US"`
	Source           string  `json:"source" example:"ads"`
	TotalSignups     uint64  `json:"total_signups" example:"40"`
	TotalTrials      uint64  `json:"total_trials" example:"30"`
	TotalActivated   uint64  `json:"total_activated" example:"22"`
	TotalPaid        uint64  `json:"total_paid" example:"15"`
	TotalChurned     uint64  `json:"total_churned" example:"3"`
	SignupToTrialPct float64 `json:"signup_to_trial_pct" example:"75"`
	SignupDropoffPct float64 `json:"signup_dropoff_pct" example:"25"`
	TrialToActivePct float64 `json:"trial_to_activated_pct" example:"73.33"`
	TrialDropoffPct  float64 `json:"trial_dropoff_pct" example:"26.67"`
	ActiveToPaidPct  float64 `json:"activated_to_paid_pct" example:"68.18"`
	ActiveDropoffPct float64 `json:"activated_dropoff_pct" example:"31.82"`
	PaidToChurnPct   float64 `json:"paid_to_churn_pct" example:"20"`
	PaidRetentionPct float64 `json:"paid_retention_pct" example:"80"`
	DataFlag         string  `json:"data_flag" example:"consistent"`
}

// GetFunnelMetricsResponse represents the funnel metrics query response
type GetFunnelMetricsResponse struct {
	Count int                 `json:"count" example:"12"`
	Rows  []FunnelMetricsData `json:"rows"`
}

// RecomputeResponse represents an accepted recompute request
type RecomputeResponse struct {
	RequestID string `json:"request_id" example:"rcp_1a2b3c4d5e6f"`
	Status    string `json:"status" example:"queued"`
}
