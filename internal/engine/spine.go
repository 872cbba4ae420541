package engine

import (
	"time"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
)

// MonthSpine builds the ordered, gap-free sequence of calendar months from the
// month containing min to the month containing max, inclusive. A single month
// of activity yields a single-element spine.
func MonthSpine(min, max time.Time) []domain.Month {
	if max.Before(min) {
		return nil
	}

	first := domain.MonthOf(min)
	last := domain.MonthOf(max)

	spine := make([]domain.Month, 0, 12)
	for m := first; !last.Before(m); m = m.Next() {
		spine = append(spine, m)
	}
	return spine
}

// dataRange returns the minimum resolved signup date and the maximum date
// observed anywhere in the dataset (signup dates, subscription start/end
// dates, event dates). ok is false when there are no customers.
func dataRange(customers []resolvedCustomer, subscriptions []domain.Subscription, events []domain.Event) (min, max time.Time, ok bool) {
	if len(customers) == 0 {
		return time.Time{}, time.Time{}, false
	}

	min = customers[0].SignupDate
	max = customers[0].SignupDate
	for _, c := range customers[1:] {
		if c.SignupDate.Before(min) {
			min = c.SignupDate
		}
		if c.SignupDate.After(max) {
			max = c.SignupDate
		}
	}
	for _, s := range subscriptions {
		if s.StartDate.After(max) {
			max = s.StartDate
		}
		if s.EndDate != nil && s.EndDate.After(max) {
			max = *s.EndDate
		}
	}
	for _, e := range events {
		if e.Date.After(max) {
			max = e.Date
		}
	}
	return min, max, true
}
