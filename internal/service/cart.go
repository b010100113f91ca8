package service

import (
	"context"

	"checkout-service/internal/models"
	"checkout-service/internal/pricing"

	"github.com/google/uuid"
)

// CartView is the cart with totals computed from live catalog prices.
type CartView struct {
	Cart   *models.Cart
	Totals pricing.CartTotals
}

type CartService interface {
	GetOrCreate(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context) (*CartView, error)
	AddItem(ctx context.Context, productID uuid.UUID, qty int32) (*models.CartItem, error)
	// UpdateItem applies change to the line quantity. removed is true when the line was deleted
	// because the result dropped to zero or below.
	UpdateItem(ctx context.Context, itemID uuid.UUID, change int32) (item *models.CartItem, removed bool, err error)
	SetItemQuantity(ctx context.Context, itemID uuid.UUID, qty int32) (item *models.CartItem, removed bool, err error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	Clear(ctx context.Context) error
}
