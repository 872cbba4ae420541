package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BreakdownKey is the (segment, country, source) dimension tuple every
// aggregate is partitioned by
type BreakdownKey struct {
	Segment string
	Country string
	Source  string
}

// CoreMetricsRow is one (month, breakdown key) row of the core metrics relation
type CoreMetricsRow struct {
	MonthStart          time.Time       `ch:"month_start"`
	Segment             string          `ch:"segment"`
	Country             string          `ch:"country"`
	Source              string          `ch:"source"`
	MRR                 decimal.Decimal `ch:"mrr"`
	ARR                 decimal.Decimal `ch:"arr"`
	ActiveCustomers     uint64          `ch:"active_customers"`
	ChurnedLogos        uint64          `ch:"churned_logos"`
	LostMRR             decimal.Decimal `ch:"lost_mrr"`
	LogoChurnRatePct    decimal.Decimal `ch:"logo_churn_rate_pct"`
	RevenueChurnRatePct decimal.Decimal `ch:"revenue_churn_rate_pct"`
	ARPC                decimal.Decimal `ch:"arpc"`
}

// Key returns the row's breakdown key
func (r CoreMetricsRow) Key() BreakdownKey {
	return BreakdownKey{Segment: r.Segment, Country: r.Country, Source: r.Source}
}

// FunnelMetricsRow is one (cohort month, breakdown key) row of the funnel relation
type FunnelMetricsRow struct {
	MonthStart        time.Time       `ch:"month_start"`
	Segment           string          `ch:"segment"`
	Country           string          `ch:"country"`
	Source            string          `ch:"source"`
	TotalSignups      uint64          `ch:"total_signups"`
	TotalTrials       uint64          `ch:"total_trials"`
	TotalActivated    uint64          `ch:"total_activated"`
	TotalPaid         uint64          `ch:"total_paid"`
	TotalChurned      uint64          `ch:"total_churned"`
	SignupToTrialPct  decimal.Decimal `ch:"signup_to_trial_pct"`
	SignupDropoffPct  decimal.Decimal `ch:"signup_dropoff_pct"`
	TrialToActivePct  decimal.Decimal `ch:"trial_to_activated_pct"`
	TrialDropoffPct   decimal.Decimal `ch:"trial_dropoff_pct"`
	ActiveToPaidPct   decimal.Decimal `ch:"activated_to_paid_pct"`
	ActiveDropoffPct  decimal.Decimal `ch:"activated_dropoff_pct"`
	PaidToChurnPct    decimal.Decimal `ch:"paid_to_churn_pct"`
	PaidRetentionPct  decimal.Decimal `ch:"paid_retention_pct"`
	DataFlag          string          `ch:"data_flag"`
}

// Key returns the row's breakdown key
func (r FunnelMetricsRow) Key() BreakdownKey {
	return BreakdownKey{Segment: r.Segment, Country: r.Country, Source: r.Source}
}

// AnomalyKind tags one funnel consistency violation detected on raw stage counts
type AnomalyKind string

const (
	AnomalyPaidExceedsActivated AnomalyKind = "paid > activated"
	AnomalyPaidExceedsTrials    AnomalyKind = "paid > trials"
	AnomalyChurnedExceedsPaid   AnomalyKind = "churned > paid"
	AnomalyStagesWithoutSignups AnomalyKind = "no signups but later stages"
)

// ConsistentFlag is the data_flag value for rows with no detected anomalies
const ConsistentFlag = "consistent"

// FlagString serializes anomaly kinds into the human-readable data_flag column.
// An empty set serializes to ConsistentFlag.
func FlagString(anomalies []AnomalyKind) string {
	if len(anomalies) == 0 {
		return ConsistentFlag
	}
	parts := make([]string, 0, len(anomalies))
	for _, a := range anomalies {
		parts = append(parts, string(a))
	}
	return strings.Join(parts, "; ")
}
