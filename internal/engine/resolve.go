package engine

import (
	"time"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
)

// resolvedCustomer is a customer after signup-date and source resolution.
// SignupDate is never zero and Key is fully populated (with "Unknown"
// fallbacks) once resolution has run.
type resolvedCustomer struct {
	domain.Customer
	Source string
}

// Key returns the customer's breakdown key
func (c resolvedCustomer) Key() domain.BreakdownKey {
	return domain.BreakdownKey{Segment: c.Segment, Country: c.Country, Source: c.Source}
}

// CohortMonth is the calendar month of the resolved signup date
func (c resolvedCustomer) CohortMonth() domain.Month {
	return domain.MonthOf(c.SignupDate)
}

// resolveCustomers resolves each customer's authoritative signup date and
// acquisition source. The earliest signup-type event wins over the profile
// date; its channel becomes the source. Customers without a signup event keep
// the profile date and fall back to "Unknown". The earliest-event rule is
// stable, so resolving already-resolved data is a no-op.
func resolveCustomers(customers []domain.Customer, events []domain.Event) []resolvedCustomer {
	type earliestSignup struct {
		date   time.Time
		source string
	}

	earliest := make(map[string]earliestSignup, len(customers))
	for _, e := range events {
		if e.Type != domain.EventSignup {
			continue
		}
		cur, seen := earliest[e.CustomerID]
		if !seen || e.Date.Before(cur.date) {
			earliest[e.CustomerID] = earliestSignup{date: e.Date, source: e.Source}
		}
	}

	resolved := make([]resolvedCustomer, 0, len(customers))
	for _, c := range customers {
		rc := resolvedCustomer{Customer: c, Source: domain.UnknownDimension}
		if c.Segment == "" {
			rc.Segment = domain.UnknownDimension
		}
		if c.Country == "" {
			rc.Country = domain.UnknownDimension
		}
		if es, ok := earliest[c.CustomerID]; ok {
			rc.SignupDate = es.date
			if es.source != "" {
				rc.Source = es.source
			}
		}
		resolved = append(resolved, rc)
	}
	return resolved
}
