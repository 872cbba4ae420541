package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatus is the lifecycle state of a subscription
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// EventType identifies a customer lifecycle event
type EventType string

const (
	EventSignup     EventType = "signup"
	EventTrialStart EventType = "trial_start"
	EventActivated  EventType = "activated"
	EventChurned    EventType = "churned"
)

// UnknownDimension is the fallback value for unresolvable breakdown dimensions
const UnknownDimension = "Unknown"

// Customer represents a cleaned customer profile row
type Customer struct {
	CustomerID string    `ch:"customer_id"`
	SignupDate time.Time `ch:"signup_date"`
	Segment    string    `ch:"segment"`
	Country    string    `ch:"country"`
}

// Subscription represents a cleaned subscription row.
// EndDate is nil while the subscription is still open at extract time.
type Subscription struct {
	SubscriptionID string             `ch:"subscription_id"`
	CustomerID     string             `ch:"customer_id"`
	StartDate      time.Time          `ch:"start_date"`
	EndDate        *time.Time         `ch:"end_date"`
	MonthlyPrice   decimal.Decimal    `ch:"monthly_price"`
	Status         SubscriptionStatus `ch:"status"`
}

// ActiveAt reports whether the subscription is active at instant t:
// started on or before t, not yet ended at t, and not canceled.
func (s Subscription) ActiveAt(t time.Time) bool {
	if s.Status != SubscriptionActive {
		return false
	}
	if s.StartDate.After(t) {
		return false
	}
	return s.EndDate == nil || s.EndDate.After(t)
}

// Event represents a cleaned lifecycle event row
type Event struct {
	EventID    string    `ch:"event_id"`
	CustomerID string    `ch:"customer_id"`
	Type       EventType `ch:"event_type"`
	Date       time.Time `ch:"event_date"`
	Source     string    `ch:"source"`
}
