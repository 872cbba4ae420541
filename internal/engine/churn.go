package engine

import (
	"github.com/shopspring/decimal"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
)

// churnAggregate holds the churn state for one (month, breakdown key) bucket
type churnAggregate struct {
	ChurnedLogos uint64
	LostMRR      decimal.Decimal
}

// aggregateChurn attributes each customer's churn to the month of the churn
// signal: a churned-type event date, a canceled subscription end date, or
// both. A customer counts at most once per month toward the logo count even
// when both signals fire. Lost MRR only accrues from canceled subscriptions,
// since an event carries no price; logo churn and revenue churn are therefore
// tracked independently and are not forced to agree.
func aggregateChurn(customers []resolvedCustomer, subsByCustomer map[string][]domain.Subscription, eventsByCustomer map[string][]domain.Event) map[periodKey]churnAggregate {
	out := make(map[periodKey]churnAggregate)

	for _, c := range customers {
		key := c.Key()
		churnMonths := make(map[domain.Month]bool)
		lost := make(map[domain.Month]decimal.Decimal)

		for _, e := range eventsByCustomer[c.CustomerID] {
			if e.Type == domain.EventChurned {
				churnMonths[domain.MonthOf(e.Date)] = true
			}
		}
		for _, s := range subsByCustomer[c.CustomerID] {
			if s.Status != domain.SubscriptionCanceled || s.EndDate == nil {
				continue
			}
			m := domain.MonthOf(*s.EndDate)
			churnMonths[m] = true
			lost[m] = lost[m].Add(s.MonthlyPrice)
		}

		for m := range churnMonths {
			pk := periodKey{Month: m, Key: key}
			agg := out[pk]
			agg.ChurnedLogos++
			agg.LostMRR = agg.LostMRR.Add(lost[m])
			out[pk] = agg
		}
	}
	return out
}
