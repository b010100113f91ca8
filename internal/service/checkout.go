package service

import (
	"context"
	"time"

	"checkout-service/internal/models"
)

type ShippingInfo struct {
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
	Notes      string
}

type CheckoutOptions struct {
	// Timeout bounds one transaction attempt.
	Timeout time.Duration
	// NotifyTimeout bounds the post-commit confirmation.
	NotifyTimeout  time.Duration
	Currency       string
	DefaultCountry string
	// NumberAttempts is how many times the whole transaction is retried on an order number collision.
	NumberAttempts int
}

func DefaultCheckoutOptions() CheckoutOptions {
	return CheckoutOptions{
		Timeout:        10 * time.Second,
		NotifyTimeout:  5 * time.Second,
		Currency:       "USD",
		DefaultCountry: "Canada",
		NumberAttempts: 3,
	}
}

type CheckoutService interface {
	PlaceOrder(ctx context.Context, in ShippingInfo) (*models.Order, error)
}

// Checkout outcomes reported to CheckoutObserver.
const (
	OutcomeSuccess           = "success"
	OutcomeEmptyCart         = "empty_cart"
	OutcomeInvalidAddress    = "invalid_address"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeAborted           = "aborted"
	OutcomeError             = "error"
)
