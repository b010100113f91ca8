package service

import (
	"context"
	"time"

	"checkout-service/internal/models"

	"github.com/google/uuid"
)

// ProductCache is an optional read-through cache in front of the catalog.
type ProductCache interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, bool)
	SetProduct(ctx context.Context, p *models.Product)
	InvalidateProduct(ctx context.Context, ids ...uuid.UUID)
}

// Authorizer decides whether a role may perform action on resource.
type Authorizer interface {
	Allow(role, resource, action string) (bool, error)
}

// CheckoutObserver receives one call per place-order attempt.
type CheckoutObserver interface {
	ObserveCheckout(outcome string, took time.Duration)
}

const (
	ResourceProducts = "products"
	ResourceOrders   = "orders"
	ResourceRefunds  = "refunds"
	ResourceCart     = "cart"

	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionWrite   = "write"
	ActionPlace   = "place"
	ActionPay     = "pay"
	ActionAdvance = "advance"
	ActionCancel  = "cancel"
	ActionRequest = "request"
	ActionProcess = "process"
)

func authorize(ctx context.Context, a Authorizer, resource, action string) error {
	_, role, err := requireAuth(ctx)
	if err != nil {
		return err
	}
	if a == nil {
		if role == RoleAdmin {
			return nil
		}
		return ErrForbidden
	}
	ok, err := a.Allow(string(role), resource, action)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func isAllowed(ctx context.Context, a Authorizer, resource, action string) bool {
	return authorize(ctx, a, resource, action) == nil
}
