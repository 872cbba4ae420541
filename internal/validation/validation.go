// Package validation runs the data-quality checks on the input relations.
// Findings are data for operators, not errors: the engine only rejects on
// broken references, everything else is reported and left alone.
package validation

import (
	"time"

	"github.com/samber/lo"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
	"github.com/sohailkhan2596/saas-analytics-service/internal/engine"
)

// SequenceIssue lists the lifecycle ordering problems found for one customer
type SequenceIssue struct {
	CustomerID string   `json:"customer_id"`
	Issues     []string `json:"issues"`
}

// SignupMismatch records a customer whose profile signup date disagrees with
// the earliest signup event
type SignupMismatch struct {
	CustomerID  string    `json:"customer_id"`
	ProfileDate time.Time `json:"profile_date"`
	EventDate   time.Time `json:"event_date"`
}

// Report is the outcome of one validation pass over the dataset
type Report struct {
	AsOf                     time.Time        `json:"as_of"`
	DuplicateCustomerIDs     []string         `json:"duplicate_customer_ids"`
	DuplicateSubscriptionIDs []string         `json:"duplicate_subscription_ids"`
	DuplicateEventIDs        []string         `json:"duplicate_event_ids"`
	OrphanSubscriptions      []string         `json:"orphan_subscriptions"`
	OrphanEvents             []string         `json:"orphan_events"`
	NonPositivePrices        []string         `json:"non_positive_prices"`
	InvertedDateRanges       []string         `json:"inverted_date_ranges"`
	ActiveWithEndDate        []string         `json:"active_with_end_date"`
	CanceledWithoutEndDate   []string         `json:"canceled_without_end_date"`
	FutureCustomers          []string         `json:"future_customers"`
	FutureSubscriptions      []string         `json:"future_subscriptions"`
	FutureEvents             []string         `json:"future_events"`
	SequenceIssues           []SequenceIssue  `json:"sequence_issues"`
	SignupMismatches         []SignupMismatch `json:"signup_mismatches"`
}

// IssueCount is the total number of findings across all checks
func (r *Report) IssueCount() int {
	return len(r.DuplicateCustomerIDs) + len(r.DuplicateSubscriptionIDs) + len(r.DuplicateEventIDs) +
		len(r.OrphanSubscriptions) + len(r.OrphanEvents) +
		len(r.NonPositivePrices) + len(r.InvertedDateRanges) +
		len(r.ActiveWithEndDate) + len(r.CanceledWithoutEndDate) +
		len(r.FutureCustomers) + len(r.FutureSubscriptions) + len(r.FutureEvents) +
		len(r.SequenceIssues) + len(r.SignupMismatches)
}

// Clean reports whether the pass found nothing at all
func (r *Report) Clean() bool {
	return r.IssueCount() == 0
}

// Check runs every validation over the dataset. asOf anchors the future-date
// checks, normally the extract or wall-clock date.
func Check(ds engine.Dataset, asOf time.Time) *Report {
	r := &Report{AsOf: asOf}

	r.DuplicateCustomerIDs = duplicates(lo.Map(ds.Customers, func(c domain.Customer, _ int) string { return c.CustomerID }))
	r.DuplicateSubscriptionIDs = duplicates(lo.Map(ds.Subscriptions, func(s domain.Subscription, _ int) string { return s.SubscriptionID }))
	r.DuplicateEventIDs = duplicates(lo.Map(ds.Events, func(e domain.Event, _ int) string { return e.EventID }))

	known := lo.SliceToMap(ds.Customers, func(c domain.Customer) (string, struct{}) {
		return c.CustomerID, struct{}{}
	})

	for _, s := range ds.Subscriptions {
		if _, ok := known[s.CustomerID]; !ok {
			r.OrphanSubscriptions = append(r.OrphanSubscriptions, s.SubscriptionID)
		}
		if !s.MonthlyPrice.IsPositive() {
			r.NonPositivePrices = append(r.NonPositivePrices, s.SubscriptionID)
		}
		if s.EndDate != nil && s.StartDate.After(*s.EndDate) {
			r.InvertedDateRanges = append(r.InvertedDateRanges, s.SubscriptionID)
		}
		if s.Status == domain.SubscriptionActive && s.EndDate != nil {
			r.ActiveWithEndDate = append(r.ActiveWithEndDate, s.SubscriptionID)
		}
		if s.Status == domain.SubscriptionCanceled && s.EndDate == nil {
			r.CanceledWithoutEndDate = append(r.CanceledWithoutEndDate, s.SubscriptionID)
		}
		if s.StartDate.After(asOf) || (s.EndDate != nil && s.EndDate.After(asOf)) {
			r.FutureSubscriptions = append(r.FutureSubscriptions, s.SubscriptionID)
		}
	}

	for _, e := range ds.Events {
		if _, ok := known[e.CustomerID]; !ok {
			r.OrphanEvents = append(r.OrphanEvents, e.EventID)
		}
		if e.Date.After(asOf) {
			r.FutureEvents = append(r.FutureEvents, e.EventID)
		}
	}

	for _, c := range ds.Customers {
		if c.SignupDate.After(asOf) {
			r.FutureCustomers = append(r.FutureCustomers, c.CustomerID)
		}
	}

	r.SequenceIssues = sequenceIssues(ds.Customers, ds.Events)
	r.SignupMismatches = signupMismatches(ds.Customers, ds.Events)

	return r
}

// duplicates returns each id that appears more than once, once
func duplicates(ids []string) []string {
	seen := make(map[string]int, len(ids))
	for _, id := range ids {
		seen[id]++
	}
	var dups []string
	for _, id := range lo.Uniq(ids) {
		if seen[id] > 1 {
			dups = append(dups, id)
		}
	}
	return dups
}

// earliestByType returns, per customer, the earliest event date of the given type
func earliestByType(events []domain.Event, typ domain.EventType) map[string]time.Time {
	out := make(map[string]time.Time)
	for _, e := range events {
		if e.Type != typ {
			continue
		}
		if cur, ok := out[e.CustomerID]; !ok || e.Date.Before(cur) {
			out[e.CustomerID] = e.Date
		}
	}
	return out
}

// sequenceIssues flags customers whose trial, activation or churn events
// precede their earliest signup event. Customers without a signup event are
// skipped: there is no anchor to compare against.
func sequenceIssues(customers []domain.Customer, events []domain.Event) []SequenceIssue {
	signups := earliestByType(events, domain.EventSignup)
	trials := earliestByType(events, domain.EventTrialStart)
	activations := earliestByType(events, domain.EventActivated)
	churns := earliestByType(events, domain.EventChurned)

	var issues []SequenceIssue
	for _, c := range customers {
		signup, ok := signups[c.CustomerID]
		if !ok {
			continue
		}

		var found []string
		if t, ok := trials[c.CustomerID]; ok && t.Before(signup) {
			found = append(found, "trial_before_signup")
		}
		if t, ok := activations[c.CustomerID]; ok && t.Before(signup) {
			found = append(found, "activated_before_signup")
		}
		if t, ok := churns[c.CustomerID]; ok && t.Before(signup) {
			found = append(found, "churned_before_signup")
		}
		if len(found) > 0 {
			issues = append(issues, SequenceIssue{CustomerID: c.CustomerID, Issues: found})
		}
	}
	return issues
}

// signupMismatches flags customers whose profile signup date differs from the
// earliest signup event date
func signupMismatches(customers []domain.Customer, events []domain.Event) []SignupMismatch {
	signups := earliestByType(events, domain.EventSignup)

	var mismatches []SignupMismatch
	for _, c := range customers {
		eventDate, ok := signups[c.CustomerID]
		if !ok || eventDate.Equal(c.SignupDate) {
			continue
		}
		mismatches = append(mismatches, SignupMismatch{
			CustomerID:  c.CustomerID,
			ProfileDate: c.SignupDate,
			EventDate:   eventDate,
		})
	}
	return mismatches
}
