package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
)

var twelve = decimal.NewFromInt(12)

// ratePct divides numerator by denominator and scales to a percentage rounded
// to two decimal places. A zero or unusable denominator yields 0, never an
// error: division by zero is an arithmetic condition here, not a failure.
func ratePct(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Mul(decimal.NewFromInt(100)).Round(2)
}

// calculateCoreMetrics joins the activity and churn aggregates and derives the
// per-row rates. Churn rates are measured against the previous row in the same
// breakdown key's chronologically ordered timeline (keys may start in
// different months, so ordering is per key, never global). Churn and retention
// rates are deliberately uncapped: a shrinking base can validly push them past
// 100.
func calculateCoreMetrics(activity map[periodKey]activityAggregate, churn map[periodKey]churnAggregate) []domain.CoreMetricsRow {
	// Per-key ordered month lists replace the original's LAG lookup, so a
	// previous-row read can never leak across keys.
	monthsByKey := make(map[domain.BreakdownKey][]domain.Month)
	for pk := range activity {
		monthsByKey[pk.Key] = append(monthsByKey[pk.Key], pk.Month)
	}
	for key := range monthsByKey {
		months := monthsByKey[key]
		sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	}

	rows := make([]domain.CoreMetricsRow, 0, len(activity))
	for key, months := range monthsByKey {
		for i, month := range months {
			act := activity[periodKey{Month: month, Key: key}]
			ch := churn[periodKey{Month: month, Key: key}]

			var prevActive uint64
			prevMRR := decimal.Zero
			if i > 0 {
				prev := activity[periodKey{Month: months[i-1], Key: key}]
				prevActive = prev.ActiveCustomers
				prevMRR = prev.MRR
			}

			row := domain.CoreMetricsRow{
				MonthStart:          month.Start(),
				Segment:             key.Segment,
				Country:             key.Country,
				Source:              key.Source,
				MRR:                 act.MRR,
				ARR:                 act.MRR.Mul(twelve),
				ActiveCustomers:     act.ActiveCustomers,
				ChurnedLogos:        ch.ChurnedLogos,
				LostMRR:             ch.LostMRR,
				LogoChurnRatePct:    ratePct(decimal.NewFromInt(int64(ch.ChurnedLogos)), decimal.NewFromInt(int64(prevActive))),
				RevenueChurnRatePct: ratePct(ch.LostMRR, prevMRR),
				ARPC:                act.MRR.DivRound(decimal.NewFromInt(int64(act.ActiveCustomers)), 2),
			}
			rows = append(rows, row)
		}
	}

	sortCoreRows(rows)
	return rows
}

func sortCoreRows(rows []domain.CoreMetricsRow) {
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
