package service_test

import (
	"context"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
)

// MockCartRepo
type MockCartRepo struct {
	GetOrCreateFunc  func(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetByUserIDFunc  func(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetWithItemsFunc func(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	LockByIDFunc     func(ctx context.Context, id uuid.UUID) (*models.Cart, error)
}

func (m *MockCartRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, userID)
	}
	return &models.Cart{ID: uuid.New(), UserID: userID}, nil
}

func (m *MockCartRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCartRepo) GetWithItems(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if m.GetWithItemsFunc != nil {
		return m.GetWithItemsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCartRepo) LockByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	if m.LockByIDFunc != nil {
		return m.LockByIDFunc(ctx, id)
	}
	return &models.Cart{ID: id}, nil
}

// MockCartItemRepo
type MockCartItemRepo struct {
	AddOrIncrementFunc func(ctx context.Context, cartID, productID uuid.UUID, qty int32) (*models.CartItem, error)
	ListByCartFunc     func(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	DeleteFunc         func(ctx context.Context, cartID, itemID uuid.UUID) (bool, error)
	DeleteByCartFunc   func(ctx context.Context, cartID uuid.UUID) (int64, error)
}

func (m *MockCartItemRepo) AddOrIncrement(ctx context.Context, cartID, productID uuid.UUID, qty int32) (*models.CartItem, error) {
	if m.AddOrIncrementFunc != nil {
		return m.AddOrIncrementFunc(ctx, cartID, productID, qty)
	}
	return &models.CartItem{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: qty}, nil
}

func (m *MockCartItemRepo) GetInCart(context.Context, uuid.UUID, uuid.UUID) (*models.CartItem, error) {
	return nil, nil
}

func (m *MockCartItemRepo) LockInCart(context.Context, uuid.UUID, uuid.UUID) (*models.CartItem, error) {
	return nil, nil
}

func (m *MockCartItemRepo) SetQuantity(context.Context, uuid.UUID, int32) error { return nil }

func (m *MockCartItemRepo) Delete(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, cartID, itemID)
	}
	return false, nil
}

func (m *MockCartItemRepo) DeleteByCart(ctx context.Context, cartID uuid.UUID) (int64, error) {
	if m.DeleteByCartFunc != nil {
		return m.DeleteByCartFunc(ctx, cartID)
	}
	return 0, nil
}

func (m *MockCartItemRepo) ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	if m.ListByCartFunc != nil {
		return m.ListByCartFunc(ctx, cartID)
	}
	return nil, nil
}

func (m *MockCartItemRepo) DeleteStale(context.Context, time.Time) (int64, error) { return 0, nil }

// MockProductRepo
type MockProductRepo struct {
	GetActiveByIDFunc func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

func (m *MockProductRepo) Create(context.Context, *models.Product) error { return nil }

func (m *MockProductRepo) UpdateFields(context.Context, uuid.UUID, map[string]any) error { return nil }

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetActiveByIDFunc != nil {
		return m.GetActiveByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) GetBySKU(context.Context, string) (*models.Product, error) { return nil, nil }

func (m *MockProductRepo) SlugsWithPrefix(context.Context, string) ([]string, error) { return nil, nil }

func (m *MockProductRepo) List(context.Context, repository.ProductListFilter) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (m *MockProductRepo) Delete(context.Context, uuid.UUID) (bool, error) { return false, nil }

func (m *MockProductRepo) BatchGetByIDs(context.Context, []uuid.UUID) ([]models.Product, error) {
	return nil, nil
}

func (m *MockProductRepo) LockForUpdate(context.Context, []uuid.UUID) ([]models.Product, error) {
	return nil, nil
}

func (m *MockProductRepo) DecrementStock(context.Context, uuid.UUID, int32) (bool, error) {
	return false, nil
}

func (m *MockProductRepo) AdjustStock(context.Context, uuid.UUID, int32) (bool, error) {
	return false, nil
}

// MockCache
type MockCache struct {
	Items       map[uuid.UUID]*models.Product
	Invalidated []uuid.UUID
}

func (m *MockCache) GetProduct(_ context.Context, id uuid.UUID) (*models.Product, bool) {
	p, ok := m.Items[id]
	return p, ok
}

func (m *MockCache) SetProduct(_ context.Context, p *models.Product) {
	if m.Items == nil {
		m.Items = map[uuid.UUID]*models.Product{}
	}
	m.Items[p.ID] = p
}

func (m *MockCache) InvalidateProduct(_ context.Context, ids ...uuid.UUID) {
	m.Invalidated = append(m.Invalidated, ids...)
}

// MockObserver
type MockObserver struct {
	Outcomes []string
}

func (m *MockObserver) ObserveCheckout(outcome string, _ time.Duration) {
	m.Outcomes = append(m.Outcomes, outcome)
}
