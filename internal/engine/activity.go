package engine

import (
	"github.com/shopspring/decimal"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
)

// periodKey identifies one (month, breakdown key) aggregation bucket
type periodKey struct {
	Month domain.Month
	Key   domain.BreakdownKey
}

// activityAggregate holds the month-end revenue and activity state for one
// (month, breakdown key) bucket
type activityAggregate struct {
	MRR             decimal.Decimal
	ActiveCustomers uint64
}

// aggregateActivity computes, for every spine month, the distinct customers
// with at least one subscription active at month end and the MRR they carry.
// A customer with several overlapping active subscriptions contributes every
// price to MRR but counts as a single active customer. Buckets with no active
// customers are simply absent: zero rows are never materialized.
func aggregateActivity(spine []domain.Month, customers []resolvedCustomer, subsByCustomer map[string][]domain.Subscription) map[periodKey]activityAggregate {
	out := make(map[periodKey]activityAggregate)

	for _, month := range spine {
		monthEnd := month.End()
		for _, c := range customers {
			active := false
			mrr := decimal.Zero
			for _, s := range subsByCustomer[c.CustomerID] {
				if s.ActiveAt(monthEnd) {
					active = true
					mrr = mrr.Add(s.MonthlyPrice)
				}
			}
			if !active {
				continue
			}

			pk := periodKey{Month: month, Key: c.Key()}
			agg := out[pk]
			agg.MRR = agg.MRR.Add(mrr)
			agg.ActiveCustomers++
			out[pk] = agg
		}
	}
	return out
}
