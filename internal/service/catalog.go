package service

import (
	"context"

	"checkout-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductInput struct {
	CategoryID    *uuid.UUID
	Name          string
	SKU           string
	Description   string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	TaxPercent    decimal.Decimal
	Stock         int32
	IsActive      bool
}

type ProductPatch struct {
	CategoryID    *uuid.UUID
	Name          *string
	SKU           *string
	Description   *string
	Price         *decimal.Decimal
	DiscountPrice *decimal.Decimal
	ClearDiscount bool
	TaxPercent    *decimal.Decimal
	IsActive      *bool
}

type ProductListFilter struct {
	CategorySlug string
	Query        string
	// IncludeInactive is honoured for admins only.
	IncludeInactive bool
	Limit           int
	Offset          int
}

type CatalogService interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error)
	// Restock adds delta (may be negative) to stock; the result cannot go below zero.
	Restock(ctx context.Context, id uuid.UUID, delta int32) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
}
