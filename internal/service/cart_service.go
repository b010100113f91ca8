package service

import (
	"context"

	"checkout-service/internal/models"
	"checkout-service/internal/pricing"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	if log == nil {
		log = zap.NewNop()
	}
	return &cartService{repo: repo, log: log}
}

func (s *cartService) GetOrCreate(ctx context.Context) (*models.Cart, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Carts.GetOrCreate(ctx, userID)
}

func (s *cartService) GetCart(ctx context.Context) (*CartView, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Carts.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	cart, err := s.repo.Carts.GetWithItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &CartView{Cart: cart, Totals: pricing.PriceCart(cart.Items)}, nil
}

func (s *cartService) AddItem(ctx context.Context, productID uuid.UUID, qty int32) (*models.CartItem, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if qty < 1 {
		return nil, ErrQuantityInvalid
	}

	p, err := s.repo.Products.GetActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.repo.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.CartItems.AddOrIncrement(ctx, cart.ID, productID, qty)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *cartService) UpdateItem(ctx context.Context, itemID uuid.UUID, change int32) (*models.CartItem, bool, error) {
	return s.update(ctx, itemID, func(cur int32) int32 { return cur + change })
}

func (s *cartService) SetItemQuantity(ctx context.Context, itemID uuid.UUID, qty int32) (*models.CartItem, bool, error) {
	if qty < 0 {
		return nil, false, ErrQuantityInvalid
	}
	return s.update(ctx, itemID, func(int32) int32 { return qty })
}

// update locks the line, derives the new quantity and either deletes the line (<= 0) or stores it.
// Increases are checked against the current stock.
func (s *cartService) update(ctx context.Context, itemID uuid.UUID, next func(cur int32) int32) (*models.CartItem, bool, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, false, err
	}

	cart, err := s.repo.Carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if cart == nil {
		return nil, false, ErrCartItemNotFound
	}

	var (
		out     *models.CartItem
		removed bool
	)
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		item, err := tx.CartItems.LockInCart(ctx, cart.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrCartItemNotFound
		}

		qty := next(item.Quantity)
		if qty <= 0 {
			if _, err := tx.CartItems.Delete(ctx, cart.ID, itemID); err != nil {
				return err
			}
			removed = true
			return nil
		}

		if qty > item.Quantity && item.Product != nil && item.Product.Stock < qty {
			return &InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Requested:   qty,
				Available:   item.Product.Stock,
			}
		}

		if err := tx.CartItems.SetQuantity(ctx, itemID, qty); err != nil {
			return err
		}
		item.Quantity = qty
		out = item
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, removed, nil
}

func (s *cartService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return err
	}
	cart, err := s.repo.Carts.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartItemNotFound
	}

	ok, err := s.repo.CartItems.Delete(ctx, cart.ID, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context) error {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return err
	}
	cart, err := s.repo.Carts.GetByUserID(ctx, userID)
	if err != nil || cart == nil {
		return err
	}
	n, err := s.repo.CartItems.DeleteByCart(ctx, cart.ID)
	if err != nil {
		return err
	}
	s.log.Debug("cart cleared", zap.String("cart_id", cart.ID.String()), zap.Int64("lines", n))
	return nil
}
