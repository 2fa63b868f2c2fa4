package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComputePrices(t *testing.T) {
	items := []OrderItem{
		{Name: "EOS R6", Quantity: 1, Price: 2499.99},
		{Name: "SD Card", Quantity: 2, Price: 19.99},
	}

	itemsPrice, taxPrice, shippingPrice, totalPrice := ComputePrices(items)

	assert.InDelta(t, 2539.97, itemsPrice, 0.001)
	assert.InDelta(t, 381.0, taxPrice, 0.005)
	assert.Equal(t, float64(0), shippingPrice)
	assert.InDelta(t, itemsPrice+taxPrice, totalPrice, 0.001)
}

func TestComputePricesSmallOrderPaysShipping(t *testing.T) {
	items := []OrderItem{{Name: "Lens cap", Quantity: 1, Price: 9.99}}

	itemsPrice, taxPrice, shippingPrice, totalPrice := ComputePrices(items)

	assert.InDelta(t, 9.99, itemsPrice, 0.001)
	assert.Equal(t, float64(10), shippingPrice)
	assert.InDelta(t, itemsPrice+taxPrice+shippingPrice, totalPrice, 0.001)
}

func TestMarkPaid(t *testing.T) {
	o := Order{Status: OrderStatusCreated, TotalPrice: 100}
	now := time.Now()

	require.NoError(t, o.MarkPaid(PaymentResult{ID: "PAY-1", Status: "COMPLETED"}, now))
	assert.True(t, o.IsPaid)
	require.NotNil(t, o.PaidAt)
	assert.Equal(t, now, *o.PaidAt)

	require.ErrorIs(t, o.MarkPaid(PaymentResult{}, now), ErrOrderAlreadyPaid)
}

func TestMarkPaidRejectsCancelledOrder(t *testing.T) {
	o := Order{Status: OrderStatusCancelled}
	require.ErrorIs(t, o.MarkPaid(PaymentResult{}, time.Now()), ErrOrderCancelled)
}

func TestMarkDeliveredRequiresPayment(t *testing.T) {
	o := Order{Status: OrderStatusCreated}
	require.ErrorIs(t, o.MarkDelivered(time.Now()), ErrOrderNotPaid)

	now := time.Now()
	require.NoError(t, o.MarkPaid(PaymentResult{}, now))
	require.NoError(t, o.MarkDelivered(now))
	assert.True(t, o.IsDelivered)

	require.ErrorIs(t, o.MarkDelivered(now), ErrOrderAlreadyDelivered)
}

func TestEligibleForReview(t *testing.T) {
	user := primitive.NewObjectID()
	product := primitive.NewObjectID()
	order := Order{
		User:        user,
		OrderItems:  []OrderItem{{Product: product, Name: "EOS R6", Quantity: 1, Price: 2499.99}},
		Status:      OrderStatusCreated,
		IsPaid:      true,
		IsDelivered: true,
	}

	assert.True(t, order.EligibleForReview(product, user))
}

func TestEligibleForReviewRequiresPaidAndDelivered(t *testing.T) {
	user := primitive.NewObjectID()
	product := primitive.NewObjectID()
	order := Order{
		User:       user,
		OrderItems: []OrderItem{{Product: product, Quantity: 1}},
		Status:     OrderStatusCreated,
	}

	assert.False(t, order.EligibleForReview(product, user), "unpaid order does not qualify")

	order.IsPaid = true
	assert.False(t, order.EligibleForReview(product, user), "undelivered order does not qualify")

	order.IsDelivered = true
	assert.True(t, order.EligibleForReview(product, user))
}

func TestEligibleForReviewRequiresOwnOrderWithProduct(t *testing.T) {
	user := primitive.NewObjectID()
	product := primitive.NewObjectID()
	order := Order{
		User:        user,
		OrderItems:  []OrderItem{{Product: product, Quantity: 1}},
		Status:      OrderStatusCreated,
		IsPaid:      true,
		IsDelivered: true,
	}

	assert.False(t, order.EligibleForReview(product, primitive.NewObjectID()), "someone else's order does not qualify")
	assert.False(t, order.EligibleForReview(primitive.NewObjectID(), user), "order without the product does not qualify")
}

func TestCanCancel(t *testing.T) {
	o := Order{Status: OrderStatusCreated}
	assert.True(t, o.CanCancel())

	now := time.Now()
	require.NoError(t, o.MarkPaid(PaymentResult{}, now))
	assert.True(t, o.CanCancel(), "paid but undelivered orders can still be cancelled")

	require.NoError(t, o.MarkDelivered(now))
	assert.False(t, o.CanCancel(), "delivered orders are terminal")

	cancelled := Order{Status: OrderStatusCancelled}
	assert.False(t, cancelled.CanCancel())
}
