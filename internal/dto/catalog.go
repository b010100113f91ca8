package dto

import (
	"time"

	"checkout-service/internal/models"

	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Денежные поля принимаются строкой или числом: "19.99" / 19.99
type CreateProductRequest struct {
	CategoryID    *string          `json:"category_id" binding:"omitempty,uuid"`
	Name          string           `json:"name" binding:"required,max=255"`
	SKU           string           `json:"sku" binding:"omitempty,max=64"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price" swaggertype:"string" example:"19.99"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty" swaggertype:"string" example:"14.99"`
	TaxPercent    decimal.Decimal  `json:"tax_percent" swaggertype:"string" example:"13"`
	Stock         int32            `json:"stock" binding:"min=0"`
	IsActive      *bool            `json:"is_active"`
}

type UpdateProductRequest struct {
	CategoryID    *string          `json:"category_id" binding:"omitempty,uuid"`
	Name          *string          `json:"name" binding:"omitempty,max=255"`
	SKU           *string          `json:"sku" binding:"omitempty,max=64"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price" swaggertype:"string"`
	DiscountPrice *decimal.Decimal `json:"discount_price" swaggertype:"string"`
	ClearDiscount bool             `json:"clear_discount"`
	TaxPercent    *decimal.Decimal `json:"tax_percent" swaggertype:"string"`
	IsActive      *bool            `json:"is_active"`
}

type RestockRequest struct {
	Delta int32 `json:"delta" binding:"required"`
}

type ProductResponse struct {
	ID            string    `json:"id"`
	CategoryID    *string   `json:"category_id,omitempty"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	SKU           *string   `json:"sku,omitempty"`
	Description   string    `json:"description,omitempty"`
	Price         string    `json:"price" example:"19.99"`
	DiscountPrice *string   `json:"discount_price,omitempty"`
	FinalPrice    string    `json:"final_price"`
	TaxPercent    string    `json:"tax_percent"`
	PriceWithTax  string    `json:"price_with_tax"`
	Stock         int32     `json:"stock"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProductListResponse struct {
	Items  []ProductResponse `json:"items"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

func Money(d decimal.Decimal) string { return d.StringFixed(2) }

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID.String(), Name: c.Name, Slug: c.Slug, CreatedAt: c.CreatedAt}
}

func NewProductResponse(p *models.Product) ProductResponse {
	r := ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Slug:         p.Slug,
		SKU:          p.SKU,
		Description:  p.Description,
		Price:        Money(p.Price),
		FinalPrice:   Money(p.FinalPrice()),
		TaxPercent:   Money(p.TaxPercent),
		PriceWithTax: Money(p.PriceWithTax()),
		Stock:        p.Stock,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.CategoryID != nil {
		s := p.CategoryID.String()
		r.CategoryID = &s
	}
	if p.DiscountPrice.Valid {
		s := Money(p.DiscountPrice.Decimal)
		r.DiscountPrice = &s
	}
	return r
}

func NewProductList(list []models.Product, total int64, limit, offset int) ProductListResponse {
	items := make([]ProductResponse, 0, len(list))
	for i := range list {
		items = append(items, NewProductResponse(&list[i]))
	}
	return ProductListResponse{Items: items, Total: total, Limit: limit, Offset: offset}
}
