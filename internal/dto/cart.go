package dto

import (
	"checkout-service/internal/models"
	"checkout-service/internal/pricing"
)

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int32  `json:"quantity" example:"1"`
}

// UpdateCartItemRequest: ровно одно из полей.
// change задает относительное изменение (может быть отрицательным), quantity задает абсолютное значение.
type UpdateCartItemRequest struct {
	Change   *int32 `json:"change,omitempty" example:"-1"`
	Quantity *int32 `json:"quantity,omitempty" example:"3"`
}

type CartItemResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Name       string `json:"name,omitempty"`
	UnitPrice  string `json:"unit_price,omitempty"`
	TaxPercent string `json:"tax_percent,omitempty"`
	Quantity   int32  `json:"quantity"`
	LineTotal  string `json:"line_total,omitempty"`
}

type CartResponse struct {
	ID       string             `json:"id"`
	Items    []CartItemResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
	TaxTotal string             `json:"tax_total"`
	Total    string             `json:"total"`
}

type UpdateCartItemResponse struct {
	Item    *CartItemResponse `json:"item,omitempty"`
	Removed bool              `json:"removed"`
}

func NewCartResponse(c *models.Cart, t pricing.CartTotals) CartResponse {
	items := make([]CartItemResponse, 0, len(t.Lines))
	for _, l := range t.Lines {
		items = append(items, CartItemResponse{
			ID:         l.ItemID.String(),
			ProductID:  l.ProductID.String(),
			Name:       l.Name,
			UnitPrice:  Money(l.UnitPrice),
			TaxPercent: Money(l.TaxPercent),
			Quantity:   l.Quantity,
			LineTotal:  Money(l.LineTotal),
		})
	}
	return CartResponse{
		ID:       c.ID.String(),
		Items:    items,
		Subtotal: Money(t.Subtotal),
		TaxTotal: Money(t.TaxTotal),
		Total:    Money(t.Total),
	}
}

func NewCartItemResponse(it *models.CartItem) CartItemResponse {
	r := CartItemResponse{
		ID:        it.ID.String(),
		ProductID: it.ProductID.String(),
		Quantity:  it.Quantity,
	}
	if it.Product != nil {
		r.Name = it.Product.Name
		r.UnitPrice = Money(it.Product.FinalPrice())
		r.TaxPercent = Money(it.Product.TaxPercent)
	}
	return r
}
