package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sohailkhan2596/saas-analytics-service/internal/domain"
)

func testDataset() Dataset {
	return Dataset{
		Customers: []domain.Customer{
			{CustomerID: "c1", SignupDate: date(2023, 2, 1), Segment: "SMB", Country: "US"},
			{CustomerID: "c2", SignupDate: date(2023, 1, 20), Segment: "SMB", Country: "US"},
		},
		Subscriptions: []domain.Subscription{
			{SubscriptionID: "s1", CustomerID: "c1", StartDate: date(2023, 1, 15), MonthlyPrice: price("100"), Status: domain.SubscriptionActive},
			{SubscriptionID: "s2", CustomerID: "c2", StartDate: date(2023, 1, 20), EndDate: datePtr(2023, 3, 10), MonthlyPrice: price("50"), Status: domain.SubscriptionCanceled},
		},
		Events: []domain.Event{
			{EventID: "e1", CustomerID: "c1", Type: domain.EventSignup, Date: date(2023, 1, 5), Source: "ads"},
			{EventID: "e2", CustomerID: "c2", Type: domain.EventSignup, Date: date(2023, 1, 20), Source: "ads"},
			{EventID: "e3", CustomerID: "c2", Type: domain.EventChurned, Date: date(2023, 3, 12)},
		},
	}
}

func TestEngine_Run(t *testing.T) {
	eng := New(zap.NewNop())

	result, err := eng.Run(context.Background(), testDataset())

	assert.NoError(t, err)

	// Spine covers January through March: the earliest resolved signup is
	// 2023-01-05 and the latest data point is the churned event on 2023-03-12.
	assert.Len(t, result.Core, 3)
	for i, month := range []time.Month{time.January, time.February, time.March} {
		row := result.Core[i]
		assert.Equal(t, date(2023, month, 1), row.MonthStart)
		assert.Equal(t, "SMB", row.Segment)
		assert.Equal(t, "US", row.Country)
		assert.Equal(t, "ads", row.Source)
		assert.Equal(t, uint64(1), row.ActiveCustomers, "the canceled subscription never counts as active")
		assert.True(t, row.MRR.Equal(price("100")))
		assert.True(t, row.ARR.Equal(price("1200")))
		assert.True(t, row.ARPC.Equal(price("100")))
	}

	march := result.Core[2]
	assert.Equal(t, uint64(1), march.ChurnedLogos)
	assert.True(t, march.LostMRR.Equal(price("50")))
	assert.True(t, march.LogoChurnRatePct.Equal(price("100")), "1 churned of 1 active in February")
	assert.True(t, march.RevenueChurnRatePct.Equal(price("50")), "50 lost of 100 February MRR")

	assert.Len(t, result.Funnel, 1)
	funnel := result.Funnel[0]
	assert.Equal(t, date(2023, 1, 1), funnel.MonthStart, "c1's cohort follows the signup event, not the later profile date")
	assert.Equal(t, uint64(2), funnel.TotalSignups)
	assert.Equal(t, uint64(2), funnel.TotalPaid)
	assert.Equal(t, uint64(1), funnel.TotalChurned)
	assert.Equal(t, "paid > activated; paid > trials", funnel.DataFlag)
	assert.True(t, funnel.PaidToChurnPct.Equal(price("50")))
	assert.True(t, funnel.PaidRetentionPct.Equal(price("50")))
}

func TestEngine_Run_Deterministic(t *testing.T) {
	eng := New(zap.NewNop())
	ds := testDataset()

	first, err := eng.Run(context.Background(), ds)
	assert.NoError(t, err)
	second, err := eng.Run(context.Background(), ds)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_Run_EmptyCustomers(t *testing.T) {
	eng := New(zap.NewNop())

	result, err := eng.Run(context.Background(), Dataset{})

	assert.NoError(t, err)
	assert.NotNil(t, result.Core)
	assert.NotNil(t, result.Funnel)
	assert.Empty(t, result.Core)
	assert.Empty(t, result.Funnel)
}

func TestEngine_Run_UnknownSubscriptionCustomer(t *testing.T) {
	eng := New(zap.NewNop())
	ds := testDataset()
	ds.Subscriptions = append(ds.Subscriptions, domain.Subscription{
		SubscriptionID: "s9", CustomerID: "ghost", StartDate: date(2023, 1, 1), MonthlyPrice: price("10"), Status: domain.SubscriptionActive,
	})

	result, err := eng.Run(context.Background(), ds)

	assert.Nil(t, result)
	assert.EqualError(t, err, "subscription s9 references unknown customer ghost")
}

func TestEngine_Run_UnknownEventCustomer(t *testing.T) {
	eng := New(zap.NewNop())
	ds := testDataset()
	ds.Events = append(ds.Events, domain.Event{
		EventID: "e9", CustomerID: "ghost", Type: domain.EventSignup, Date: date(2023, 1, 1),
	})

	result, err := eng.Run(context.Background(), ds)

	assert.Nil(t, result)
	assert.EqualError(t, err, "event e9 references unknown customer ghost")
}

func TestEngine_Run_CanceledContextRejected(t *testing.T) {
	eng := New(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := eng.Run(ctx, testDataset())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}
