package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusCreated   = "Created"
	OrderStatusCancelled = "Cancelled"
)

var (
	ErrOrderAlreadyPaid      = errors.New("order is already paid")
	ErrOrderNotPaid          = errors.New("order is not paid yet")
	ErrOrderCancelled        = errors.New("order is cancelled")
	ErrOrderAlreadyDelivered = errors.New("order is already delivered")
)

// OrderItem is a point-in-time snapshot of a product at checkout. Later
// product edits must not change what the customer agreed to pay.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Name     string             `bson:"name" json:"name"`
	Image    string             `bson:"image" json:"image"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

type ShippingAddress struct {
	Address    string `bson:"address" json:"address" binding:"required"`
	City       string `bson:"city" json:"city" binding:"required"`
	PostalCode string `bson:"postalCode" json:"postalCode" binding:"required"`
	Country    string `bson:"country" json:"country" binding:"required"`
}

// PaymentResult is what the payment provider hands back after a
// client-side capture.
type PaymentResult struct {
	ID         string `bson:"id,omitempty" json:"id,omitempty"`
	Status     string `bson:"status,omitempty" json:"status,omitempty"`
	UpdateTime string `bson:"updateTime,omitempty" json:"updateTime,omitempty"`
	Email      string `bson:"email,omitempty" json:"email,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	OrderItems      []OrderItem        `bson:"orderItems" json:"orderItems"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentResult   PaymentResult      `bson:"paymentResult,omitempty" json:"paymentResult,omitempty"`
	ItemsPrice      float64            `bson:"itemsPrice" json:"itemsPrice"`
	TaxPrice        float64            `bson:"taxPrice" json:"taxPrice"`
	ShippingPrice   float64            `bson:"shippingPrice" json:"shippingPrice"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	IsPaid          bool               `bson:"isPaid" json:"isPaid"`
	PaidAt          *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsDelivered     bool               `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ComputePrices derives the order price breakdown from the item
// snapshots. Orders over 100 ship free, tax is a flat 15%.
func ComputePrices(items []OrderItem) (itemsPrice, taxPrice, shippingPrice, totalPrice float64) {
	for _, item := range items {
		itemsPrice += item.Price * float64(item.Quantity)
	}
	itemsPrice = round2(itemsPrice)
	if itemsPrice <= 100 {
		shippingPrice = 10
	}
	taxPrice = round2(itemsPrice * 0.15)
	totalPrice = round2(itemsPrice + taxPrice + shippingPrice)
	return
}

// MarkPaid records a successful payment capture. After this the total is
// frozen; nothing in the codebase updates totalPrice on a paid order.
func (o *Order) MarkPaid(result PaymentResult, at time.Time) error {
	if o.Status == OrderStatusCancelled {
		return ErrOrderCancelled
	}
	if o.IsPaid {
		return ErrOrderAlreadyPaid
	}
	o.IsPaid = true
	o.PaidAt = &at
	o.PaymentResult = result
	return nil
}

// MarkDelivered transitions a paid order into its terminal delivered state.
func (o *Order) MarkDelivered(at time.Time) error {
	if o.Status == OrderStatusCancelled {
		return ErrOrderCancelled
	}
	if !o.IsPaid {
		return ErrOrderNotPaid
	}
	if o.IsDelivered {
		return ErrOrderAlreadyDelivered
	}
	o.IsDelivered = true
	o.DeliveredAt = &at
	return nil
}

// CanCancel reports whether the order may still be cancelled. Delivery is
// terminal.
func (o *Order) CanCancel() bool {
	return !o.IsDelivered && o.Status != OrderStatusCancelled
}

// EligibleForReview reports whether this order entitles the given user to
// review the given product: it must be the user's own paid and delivered
// order, and it must contain the product.
func (o *Order) EligibleForReview(productID, userID primitive.ObjectID) bool {
	if o.User != userID || !o.IsPaid || !o.IsDelivered {
		return false
	}
	for _, item := range o.OrderItems {
		if item.Product == productID {
			return true
		}
	}
	return false
}
