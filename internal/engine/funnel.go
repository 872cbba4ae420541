package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// funnelAggregate holds summed stage flags for one (cohort month, breakdown
// key) bucket
type funnelAggregate struct {
	Signups   uint64
	Trials    uint64
	Activated uint64
	Paid      uint64
	Churned   uint64
}

// buildFunnel groups customers into signup cohorts keyed by the month of the
// resolved signup date and sums the five stage flags. The flags are
// independent booleans, not a state machine: real funnels have bypass paths
// (enterprise deals skip trial), so membership in a later stage never requires
// the earlier ones. Consistency is checked downstream, not enforced here.
func buildFunnel(customers []resolvedCustomer, subsByCustomer map[string][]domain.Subscription, eventsByCustomer map[string][]domain.Event) map[periodKey]funnelAggregate {
	out := make(map[periodKey]funnelAggregate)

	for _, c := range customers {
		var trial, activated, churnSignal bool
		for _, e := range eventsByCustomer[c.CustomerID] {
			switch e.Type {
			case domain.EventTrialStart:
				trial = true
			case domain.EventActivated:
				activated = true
			case domain.EventChurned:
				churnSignal = true
			}
		}

		subs := subsByCustomer[c.CustomerID]
		paid := len(subs) > 0
		for _, s := range subs {
			if s.Status == domain.SubscriptionCanceled {
				churnSignal = true
			}
		}

		pk := periodKey{Month: c.CohortMonth(), Key: c.Key()}
		agg := out[pk]
		agg.Signups++
		if trial {
			agg.Trials++
		}
		if activated {
			agg.Activated++
		}
		if paid {
			agg.Paid++
		}
		if paid && churnSignal {
			agg.Churned++
		}
		out[pk] = agg
	}
	return out
}

// cappedPct is ratePct clamped into [0, 100], the funnel-side division rule.
// Unlike churn rates, funnel conversions are hard-capped because a conversion
// above 100% is always a data inconsistency, which the anomaly flags surface
// separately from raw counts.
func cappedPct(numerator, denominator uint64) decimal.Decimal {
	pct := ratePct(decimal.NewFromInt(int64(numerator)), decimal.NewFromInt(int64(denominator)))
	return clampPct(pct)
}

func clampPct(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// detectAnomalies evaluates the funnel consistency conditions against raw
// stage counts, independent of the capped percentages
func detectAnomalies(agg funnelAggregate) []domain.AnomalyKind {
	var anomalies []domain.AnomalyKind
	if agg.Paid > agg.Activated {
		anomalies = append(anomalies, domain.AnomalyPaidExceedsActivated)
	}
	if agg.Paid > agg.Trials {
		anomalies = append(anomalies, domain.AnomalyPaidExceedsTrials)
	}
	if agg.Churned > agg.Paid {
		anomalies = append(anomalies, domain.AnomalyChurnedExceedsPaid)
	}
	if agg.Signups == 0 && (agg.Trials > 0 || agg.Activated > 0 || agg.Paid > 0 || agg.Churned > 0) {
		anomalies = append(anomalies, domain.AnomalyStagesWithoutSignups)
	}
	return anomalies
}

// calculateFunnelMetrics derives stage-to-stage conversion, drop-off and
// retention percentages plus the data_flag column for every cohort bucket.
// Flagged rows still get full rate calculations under the capping rules; the
// flag is information for the reader, never a suppression. Only buckets with
// at least one signup are emitted.
func calculateFunnelMetrics(funnel map[periodKey]funnelAggregate) []domain.FunnelMetricsRow {
	rows := make([]domain.FunnelMetricsRow, 0, len(funnel))
	for pk, agg := range funnel {
		if agg.Signups == 0 {
			continue
		}

		signupToTrial := cappedPct(agg.Trials, agg.Signups)
		trialToActivated := cappedPct(agg.Activated, agg.Trials)
		activatedToPaid := cappedPct(agg.Paid, agg.Activated)
		paidToChurn := cappedPct(agg.Churned, agg.Paid)

		rows = append(rows, domain.FunnelMetricsRow{
			MonthStart:       pk.Month.Start(),
			Segment:          pk.Key.Segment,
			Country:          pk.Key.Country,
			Source:           pk.Key.Source,
			TotalSignups:     agg.Signups,
			TotalTrials:      agg.Trials,
			TotalActivated:   agg.Activated,
			TotalPaid:        agg.Paid,
			TotalChurned:     agg.Churned,
			SignupToTrialPct: signupToTrial,
			SignupDropoffPct: hundred.Sub(signupToTrial),
			TrialToActivePct: trialToActivated,
			TrialDropoffPct:  hundred.Sub(trialToActivated),
			ActiveToPaidPct:  activatedToPaid,
			ActiveDropoffPct: hundred.Sub(activatedToPaid),
			PaidToChurnPct:   paidToChurn,
			PaidRetentionPct: clampPct(hundred.Sub(paidToChurn)),
			DataFlag:         domain.FlagString(detectAnomalies(agg)),
		})
	}

	sortFunnelRows(rows)
	return rows
}

func sortFunnelRows(rows []domain.FunnelMetricsRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.MonthStart.Equal(b.MonthStart) {
			return a.MonthStart.Before(b.MonthStart)
		}
		if a.Segment != b.Segment {
			return a.Segment < b.Segment
		}
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		return a.Source < b.Source
	})
}
