// Package pricing holds the money arithmetic shared by the cart and checkout paths.
// All amounts are decimals rounded half away from zero to two places at line level.
package pricing

import (
	"checkout-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const scale = 2

var hundred = decimal.NewFromInt(100)

// LineTax is unit * qty * taxPercent / 100.
func LineTax(unit decimal.Decimal, qty int32, taxPercent decimal.Decimal) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt32(qty)).Mul(taxPercent).Div(hundred).Round(scale)
}

// LineTotal is unit * qty + tax - discount.
func LineTotal(unit decimal.Decimal, qty int32, tax, discount decimal.Decimal) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt32(qty)).Add(tax).Sub(discount).Round(scale)
}

// SnapshotItem copies the live product into an order line. The result never reads the product again.
func SnapshotItem(p *models.Product, qty int32) models.OrderItem {
	unit := p.FinalPrice()
	tax := LineTax(unit, qty, p.TaxPercent)
	discount := decimal.Zero

	pid := p.ID
	item := models.OrderItem{
		ProductID:      &pid,
		ProductName:    p.Name,
		Description:    p.Description,
		UnitPrice:      unit,
		Quantity:       qty,
		TaxPercent:     p.TaxPercent,
		TaxAmount:      tax,
		DiscountAmount: discount,
		LineTotal:      LineTotal(unit, qty, tax, discount),
	}
	if p.SKU != nil {
		item.SKU = *p.SKU
	}
	return item
}

type OrderTotals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// FreezeTotals derives order totals from persisted items. shipping and discount are order level.
func FreezeTotals(items []models.OrderItem, shipping, discount decimal.Decimal) OrderTotals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt32(it.Quantity)))
		tax = tax.Add(it.TaxAmount)
	}
	subtotal = subtotal.Round(scale)
	tax = tax.Round(scale)
	return OrderTotals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax).Add(shipping).Sub(discount).Round(scale),
	}
}

type CartLine struct {
	ItemID     uuid.UUID
	ProductID  uuid.UUID
	Name       string
	UnitPrice  decimal.Decimal
	TaxPercent decimal.Decimal
	Quantity   int32
	LineTotal  decimal.Decimal
}

type CartTotals struct {
	Lines    []CartLine
	Subtotal decimal.Decimal
	TaxTotal decimal.Decimal
	Total    decimal.Decimal
}

// PriceCart computes cart totals from current catalog prices. Items without a loaded product are skipped.
func PriceCart(items []models.CartItem) CartTotals {
	out := CartTotals{
		Lines:    make([]CartLine, 0, len(items)),
		Subtotal: decimal.Zero,
		TaxTotal: decimal.Zero,
	}
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		unit := it.Product.FinalPrice()
		base := unit.Mul(decimal.NewFromInt32(it.Quantity))
		tax := LineTax(unit, it.Quantity, it.Product.TaxPercent)

		out.Subtotal = out.Subtotal.Add(base)
		out.TaxTotal = out.TaxTotal.Add(tax)
		out.Lines = append(out.Lines, CartLine{
			ItemID:     it.ID,
			ProductID:  it.ProductID,
			Name:       it.Product.Name,
			UnitPrice:  unit,
			TaxPercent: it.Product.TaxPercent,
			Quantity:   it.Quantity,
			LineTotal:  base.Add(tax).Round(scale),
		})
	}
	out.Subtotal = out.Subtotal.Round(scale)
	out.TaxTotal = out.TaxTotal.Round(scale)
	out.Total = out.Subtotal.Add(out.TaxTotal)
	return out
}

// RefundShare returns the part of a line total that corresponds to qty units when already units
// of the line were refunded before. Shares are differences of rounded cumulative amounts, so refunding
// every unit in any split adds up to exactly the line total.
func RefundShare(item models.OrderItem, already, qty int32) decimal.Decimal {
	if item.Quantity <= 0 {
		return decimal.Zero
	}
	return cumulativeShare(item, already+qty).Sub(cumulativeShare(item, already))
}

func cumulativeShare(item models.OrderItem, units int32) decimal.Decimal {
	if units >= item.Quantity {
		return item.LineTotal
	}
	return item.LineTotal.Mul(decimal.NewFromInt32(units)).Div(decimal.NewFromInt32(item.Quantity)).Round(scale)
}
