package service

import (
	"errors"
	"fmt"

	"checkout-service/internal/models"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is no longer available")
	ErrProductInUse       = errors.New("product is referenced by orders and cannot be deleted")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryExists     = errors.New("category already exists")
	ErrSKUAlreadyExists   = errors.New("sku already exists")
	ErrInvalidProduct     = errors.New("invalid product")

	ErrCartItemNotFound = errors.New("cart item not found")
	ErrQuantityInvalid  = errors.New("quantity must be > 0")

	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidAddress     = errors.New("shipping address is required")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrTransactionAborted = errors.New("transaction aborted, retry the request")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrImmutableOrder    = models.ErrImmutableOrder

	ErrRefundNotFound    = errors.New("refund not found")
	ErrRefundNotAllowed  = errors.New("order cannot be refunded in its current status")
	ErrRefundEmpty       = errors.New("refund has no items")
	ErrRefundQuantity    = errors.New("refund quantity exceeds refundable quantity")
	ErrRefundTransition  = errors.New("invalid refund status transition")
	ErrOrderItemNotFound = errors.New("order item not found")
)

// InsufficientStockError names the product that could not cover the requested quantity.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int32
	Available   int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// TransactionAbortedError wraps a storage-level failure (lock timeout, deadlock, serialization
// conflict, deadline). Nothing from the aborted attempt was committed.
type TransactionAbortedError struct {
	Cause error
}

func (e *TransactionAbortedError) Error() string {
	return "transaction aborted: " + e.Cause.Error()
}

func (e *TransactionAbortedError) Unwrap() []error { return []error{ErrTransactionAborted, e.Cause} }
