package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
	"github.com/sohailkhan2596/saas-analytics-service/internal/engine"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestCheck_CleanDataset(t *testing.T) {
	ds := engine.Dataset{
		Customers: []domain.Customer{
			{CustomerID: "c1", SignupDate: date(2023, 1, 5), Segment: "SMB", Country: "US"},
		},
		Subscriptions: []domain.Subscription{
			{SubscriptionID: "s1", CustomerID: "c1", StartDate: date(2023, 1, 10), MonthlyPrice: decimal.NewFromInt(100), Status: domain.SubscriptionActive},
		},
		Events: []domain.Event{
			{EventID: "e1", CustomerID: "c1", Type: domain.EventSignup, Date: date(2023, 1, 5), Source: "ads"},
			{EventID: "e2", CustomerID: "c1", Type: domain.EventTrialStart, Date: date(2023, 1, 6)},
		},
	}

	report := Check(ds, date(2024, 1, 1))

	assert.True(t, report.Clean())
	assert.Equal(t, 0, report.IssueCount())
}

func TestCheck_Duplicates(t *testing.T) {
	ds := engine.Dataset{
		Customers: []domain.Customer{
			{CustomerID: "c1", SignupDate: date(2023, 1, 5)},
			{CustomerID: "c1", SignupDate: date(2023, 2, 5)},
			{CustomerID: "c2", SignupDate: date(2023, 1, 5)},
		},
	}

	report := Check(ds, date(2024, 1, 1))

	assert.Equal(t, []string{"c1"}, report.DuplicateCustomerIDs, "each duplicated id is reported once")
}

func TestCheck_Orphans(t *testing.T) {
	ds := engine.Dataset{
		Customers: []domain.Customer{{CustomerID: "c1", SignupDate: date(2023, 1, 5)}},
		Subscriptions: []domain.Subscription{
			{SubscriptionID: "s1", CustomerID: "ghost", StartDate: date(2023, 1, 10), MonthlyPrice: decimal.NewFromInt(10), Status: domain.SubscriptionActive},
		},
		Events: []domain.Event{
			{EventID: "e1", CustomerID: "ghost", Type: domain.EventSignup, Date: date(2023, 1, 5)},
		},
	}

	report := Check(ds, date(2024, 1, 1))

	assert.Equal(t, []string{"s1"}, report.OrphanSubscriptions)
	assert.Equal(t, []string{"e1"}, report.OrphanEvents)
}

func TestCheck_SubscriptionShape(t *testing.T) {
	ds := engine.Dataset{
		Customers: []domain.Customer{{CustomerID: "c1", SignupDate: date(2023, 1, 1)}},
		Subscriptions: []domain.Subscription{
			{SubscriptionID: "s1", CustomerID: "c1", StartDate: date(2023, 1, 1), MonthlyPrice: decimal.Zero, Status: domain.SubscriptionActive},
			{SubscriptionID: "s2", CustomerID: "c1", StartDate: date(2023, 5, 1), EndDate: datePtr(2023, 2, 1), MonthlyPrice: decimal.NewFromInt(10), Status: domain.SubscriptionCanceled},
			{SubscriptionID: "s3", CustomerID: "c1", StartDate: date(2023, 1, 1), EndDate: datePtr(2023, 6, 1), MonthlyPrice: decimal.NewFromInt(10), Status: domain.SubscriptionActive},
			{SubscriptionID: "s4", CustomerID: "c1", StartDate: date(2023, 1, 1), MonthlyPrice: decimal.NewFromInt(10), Status: domain.SubscriptionCanceled},
		},
	}

	report := Check(ds, date(2024, 1, 1))

	assert.Equal(t, []string{"s1"}, report.NonPositivePrices)
	assert.Equal(t, []string{"s2"}, report.InvertedDateRanges)
	assert.Equal(t, []string{"s3"}, report.ActiveWithEndDate)
	assert.Equal(t, []string{"s4"}, report.CanceledWithoutEndDate)
}

func TestCheck_FutureDates(t *testing.T) {
	asOf := date(2023, 6, 1)
	ds := engine.Dataset{
		Customers: []domain.Customer{
			{CustomerID: "c1", SignupDate: date(2023, 1, 1)},
			{CustomerID: "c2", SignupDate: date(2023, 8, 1)},
		},
		Subscriptions: []domain.Subscription{
			{SubscriptionID: "s1", CustomerID: "c1", StartDate: date(2023, 1, 1), EndDate: datePtr(2023, 9, 1), MonthlyPrice: decimal.NewFromInt(10), Status: domain.SubscriptionCanceled},
		},
		Events: []domain.Event{
			{EventID: "e1", CustomerID: "c1", Type: domain.EventSignup, Date: date(2023, 1, 1)},
			{EventID: "e2", CustomerID: "c1", Type: domain.EventChurned, Date: date(2023, 7, 1)},
		},
	}

	report := Check(ds, asOf)

	assert.Equal(t, []string{"c2"}, report.FutureCustomers)
	assert.Equal(t, []string{"s1"}, report.FutureSubscriptions, "an end date past the as-of anchor is a future finding")
	assert.Equal(t, []string{"e2"}, report.FutureEvents)
}

func TestCheck_SequenceIssues(t *testing.T) {
	ds := engine.Dataset{
		Customers: []domain.Customer{
			{CustomerID: "c1", SignupDate: date(2023, 2, 1)},
			{CustomerID: "c2", SignupDate: date(2023, 2, 1)},
		},
		Events: []domain.Event{
			{EventID: "e1", CustomerID: "c1", Type: domain.EventSignup, Date: date(2023, 2, 1)},
			{EventID: "e2", CustomerID: "c1", Type: domain.EventTrialStart, Date: date(2023, 1, 15)},
			{EventID: "e3", CustomerID: "c1", Type: domain.EventChurned, Date: date(2023, 1, 20)},
			// c2 has no signup event, so its early trial is not comparable.
			{EventID: "e4", CustomerID: "c2", Type: domain.EventTrialStart, Date: date(2023, 1, 1)},
		},
	}

	report := Check(ds, date(2024, 1, 1))

	assert.Equal(t, []SequenceIssue{
		{CustomerID: "c1", Issues: []string{"trial_before_signup", "churned_before_signup"}},
	}, report.SequenceIssues)
}

func TestCheck_SignupMismatches(t *testing.T) {
	ds := engine.Dataset{
		Customers: []domain.Customer{
			{CustomerID: "c1", SignupDate: date(2023, 2, 1)},
			{CustomerID: "c2", SignupDate: date(2023, 1, 5)},
		},
		Events: []domain.Event{
			{EventID: "e1", CustomerID: "c1", Type: domain.EventSignup, Date: date(2023, 1, 5)},
			{EventID: "e2", CustomerID: "c2", Type: domain.EventSignup, Date: date(2023, 1, 5)},
		},
	}

	report := Check(ds, date(2024, 1, 1))

	assert.Equal(t, []SignupMismatch{
		{CustomerID: "c1", ProfileDate: date(2023, 2, 1), EventDate: date(2023, 1, 5)},
	}, report.SignupMismatches)
	assert.False(t, report.Clean())
	assert.Equal(t, 1, report.IssueCount())
}
