package handlers

import (
	"context"
	"sync"
	"time"

	"checkout-service/internal/cache"
	"checkout-service/internal/models"
	"checkout-service/internal/service"

	"github.com/google/uuid"
)

type MockCheckoutService struct {
	PlaceOrderFunc func(ctx context.Context, in service.ShippingInfo) (*models.Order, error)
	Calls          int
}

func (m *MockCheckoutService) PlaceOrder(ctx context.Context, in service.ShippingInfo) (*models.Order, error) {
	m.Calls++
	return m.PlaceOrderFunc(ctx, in)
}

// MockOrderService embeds the interface: calling a method without a Func panics.
type MockOrderService struct {
	service.OrderService
	BulkCancelFunc    func(ctx context.Context, ids []uuid.UUID, reason string) (*service.BulkCancelResult, error)
	AdvanceStatusFunc func(ctx context.Context, id uuid.UUID, to models.OrderStatus) (*models.Order, error)
	ListOrdersFunc    func(ctx context.Context, f service.ListFilter) ([]models.Order, int64, error)
}

func (m *MockOrderService) BulkCancel(ctx context.Context, ids []uuid.UUID, reason string) (*service.BulkCancelResult, error) {
	return m.BulkCancelFunc(ctx, ids, reason)
}

func (m *MockOrderService) AdvanceStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus) (*models.Order, error) {
	return m.AdvanceStatusFunc(ctx, id, to)
}

func (m *MockOrderService) ListOrders(ctx context.Context, f service.ListFilter) ([]models.Order, int64, error) {
	return m.ListOrdersFunc(ctx, f)
}

type MockCartService struct {
	service.CartService
	UpdateItemFunc      func(ctx context.Context, itemID uuid.UUID, change int32) (*models.CartItem, bool, error)
	SetItemQuantityFunc func(ctx context.Context, itemID uuid.UUID, qty int32) (*models.CartItem, bool, error)
	AddItemFunc         func(ctx context.Context, productID uuid.UUID, qty int32) (*models.CartItem, error)
}

func (m *MockCartService) UpdateItem(ctx context.Context, itemID uuid.UUID, change int32) (*models.CartItem, bool, error) {
	return m.UpdateItemFunc(ctx, itemID, change)
}

func (m *MockCartService) SetItemQuantity(ctx context.Context, itemID uuid.UUID, qty int32) (*models.CartItem, bool, error) {
	return m.SetItemQuantityFunc(ctx, itemID, qty)
}

func (m *MockCartService) AddItem(ctx context.Context, productID uuid.UUID, qty int32) (*models.CartItem, error) {
	return m.AddItemFunc(ctx, productID, qty)
}

type memoryIdempotency struct {
	mu     sync.Mutex
	data   map[string]cache.IdempotentResponse
	claims map[string]bool
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{data: map[string]cache.IdempotentResponse{}, claims: map[string]bool{}}
}

func (m *memoryIdempotency) ClaimIdempotent(_ context.Context, userID uuid.UUID, key string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := userID.String() + ":" + key
	if m.claims[k] {
		return false, nil
	}
	m.claims[k] = true
	return true, nil
}

func (m *memoryIdempotency) ReleaseIdempotent(_ context.Context, userID uuid.UUID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.claims, userID.String()+":"+key)
	return nil
}

func (m *memoryIdempotency) LookupIdempotent(_ context.Context, userID uuid.UUID, key string) (*cache.IdempotentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.data[userID.String()+":"+key]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memoryIdempotency) RememberIdempotent(_ context.Context, userID uuid.UUID, key string, resp cache.IdempotentResponse, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := userID.String() + ":" + key
	if _, ok := m.data[k]; !ok {
		m.data[k] = resp
	}
	return nil
}
