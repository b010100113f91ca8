package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/ordernum"
	"checkout-service/internal/pricing"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const orderNumberIndex = "idx_orders_order_number"

type checkoutService struct {
	repo     *repository.Repository
	numbers  ordernum.Generator
	notifier Notifier
	cache    ProductCache
	observer CheckoutObserver
	opts     CheckoutOptions
	log      *zap.Logger
	now      func() time.Time
}

type CheckoutDeps struct {
	Repo     *repository.Repository
	Numbers  ordernum.Generator
	Notifier Notifier
	Cache    ProductCache
	Observer CheckoutObserver
	Log      *zap.Logger
}

func NewCheckoutService(d CheckoutDeps, opts CheckoutOptions) CheckoutService {
	def := DefaultCheckoutOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = def.NotifyTimeout
	}
	if opts.Currency == "" {
		opts.Currency = def.Currency
	}
	if opts.DefaultCountry == "" {
		opts.DefaultCountry = def.DefaultCountry
	}
	if opts.NumberAttempts <= 0 {
		opts.NumberAttempts = def.NumberAttempts
	}
	if d.Numbers == nil {
		d.Numbers = ordernum.New()
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &checkoutService{
		repo:     d.Repo,
		numbers:  d.Numbers,
		notifier: d.Notifier,
		cache:    d.Cache,
		observer: d.Observer,
		opts:     opts,
		log:      d.Log,
		now:      time.Now,
	}
}

func (s *checkoutService) PlaceOrder(ctx context.Context, in ShippingInfo) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	start := s.now()
	order, err := s.placeOrder(ctx, userID, in)
	s.observe(err, s.now().Sub(start))
	if err != nil {
		s.log.Info("Заказ не оформлен", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	s.log.Info("Заказ оформлен",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.TotalAmount.StringFixed(2)),
	)
	s.afterCommit(ctx, order)
	return order, nil
}

func (s *checkoutService) placeOrder(ctx context.Context, userID uuid.UUID, in ShippingInfo) (*models.Order, error) {
	cart, err := s.repo.Carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrEmptyCart
	}
	lines, err := s.repo.CartItems.ListByCart(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if strings.TrimSpace(in.Address) == "" {
		return nil, ErrInvalidAddress
	}

	for attempt := 1; ; attempt++ {
		order, err := s.attempt(ctx, userID, cart.ID, in)
		if err == nil {
			return order, nil
		}
		if repository.IsUniqueViolation(err, orderNumberIndex) && attempt < s.opts.NumberAttempts {
			s.log.Warn("order number collision, retrying", zap.Int("attempt", attempt))
			continue
		}
		if repository.IsRetryable(err) || repository.IsUniqueViolation(err, orderNumberIndex) {
			return nil, &TransactionAbortedError{Cause: err}
		}
		return nil, err
	}
}

// attempt runs one checkout transaction. Either all of it commits or none of it does.
func (s *checkoutService) attempt(ctx context.Context, userID, cartID uuid.UUID, in ShippingInfo) (*models.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	var placed *models.Order
	err := s.repo.WithTx(txCtx, func(tx *repository.Repository) error {
		// корзина блокируется первой: параллельный checkout той же корзины ждет коммита
		// и затем видит уже пустые строки
		cart, err := tx.Carts.LockByID(txCtx, cartID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrEmptyCart
		}

		number, err := s.numbers.Next()
		if err != nil {
			return fmt.Errorf("order number: %w", err)
		}

		country := strings.TrimSpace(in.Country)
		if country == "" {
			country = s.opts.DefaultCountry
		}
		now := s.now().UTC()
		order := &models.Order{
			OrderNumber:     number,
			UserID:          userID,
			Status:          models.OrderStatusPending,
			Currency:        s.opts.Currency,
			Subtotal:        decimal.Zero,
			TaxAmount:       decimal.Zero,
			DiscountAmount:  decimal.Zero,
			ShippingAmount:  decimal.Zero,
			TotalAmount:     decimal.Zero,
			ShippingAddress: strings.TrimSpace(in.Address),
			Phone:           strings.TrimSpace(in.Phone),
			City:            strings.TrimSpace(in.City),
			State:           strings.TrimSpace(in.State),
			PostalCode:      strings.TrimSpace(in.PostalCode),
			Country:         country,
			Notes:           strings.TrimSpace(in.Notes),
			Metadata:        models.JSONMap{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.Orders.Create(txCtx, order); err != nil {
			return err
		}

		// строки читаются под блокировкой корзины
		lines, err := tx.CartItems.ListByCart(txCtx, cartID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		want := make(map[uuid.UUID]int32, len(lines))
		ids := make([]uuid.UUID, 0, len(lines))
		for _, l := range lines {
			if _, seen := want[l.ProductID]; !seen {
				ids = append(ids, l.ProductID)
			}
			want[l.ProductID] += l.Quantity
		}
		slices.SortFunc(ids, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })

		locked, err := tx.Products.LockForUpdate(txCtx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*models.Product, len(locked))
		for i := range locked {
			byID[locked[i].ID] = &locked[i]
		}

		for _, id := range ids {
			p, ok := byID[id]
			if !ok || !p.IsActive {
				return fmt.Errorf("%w: %s", ErrProductUnavailable, id)
			}
			qty := want[id]
			if p.Stock < qty {
				return &InsufficientStockError{ProductID: id, ProductName: p.Name, Requested: qty, Available: p.Stock}
			}
			ok, err := tx.Products.DecrementStock(txCtx, id, qty)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{ProductID: id, ProductName: p.Name, Requested: qty, Available: p.Stock}
			}
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, l := range lines {
			item := pricing.SnapshotItem(byID[l.ProductID], l.Quantity)
			item.OrderID = order.ID
			item.CreatedAt = now
			item.UpdatedAt = now
			items = append(items, item)
		}
		if err := tx.OrderItems.BulkCreate(txCtx, items); err != nil {
			return err
		}

		persisted, err := tx.OrderItems.GetByOrderID(txCtx, order.ID)
		if err != nil {
			return err
		}
		totals := pricing.FreezeTotals(persisted, order.ShippingAmount, order.DiscountAmount)
		if err := tx.Orders.UpdateTotals(txCtx, order.ID, totals); err != nil {
			return err
		}

		if _, err := tx.CartItems.DeleteByCart(txCtx, cartID); err != nil {
			return err
		}

		placed, err = tx.Orders.GetByID(txCtx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// afterCommit refreshes cached stock and sends the confirmation without holding up the caller.
func (s *checkoutService) afterCommit(ctx context.Context, order *models.Order) {
	if s.cache != nil {
		ids := make([]uuid.UUID, 0, len(order.Items))
		for _, it := range order.Items {
			if it.ProductID != nil {
				ids = append(ids, *it.ProductID)
			}
		}
		s.cache.InvalidateProduct(ctx, ids...)
	}

	if s.notifier == nil {
		return
	}
	email, _ := EmailFromContext(ctx)
	ev := NewOrderPlacedEvent(order, email)
	detached := context.WithoutCancel(ctx)

	go func() {
		nctx, cancel := context.WithTimeout(detached, s.opts.NotifyTimeout)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("order confirmation panicked", zap.String("order_number", ev.OrderNumber), zap.Any("panic", r))
			}
		}()
		if err := s.notifier.SendOrderConfirmation(nctx, ev); err != nil {
			s.log.Warn("Не удалось отправить подтверждение заказа",
				zap.String("order_number", ev.OrderNumber),
				zap.Error(err),
			)
		}
	}()
}

func (s *checkoutService) observe(err error, took time.Duration) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveCheckout(checkoutOutcome(err), took)
}

func checkoutOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrEmptyCart):
		return OutcomeEmptyCart
	case errors.Is(err, ErrInvalidAddress):
		return OutcomeInvalidAddress
	case errors.Is(err, ErrInsufficientStock):
		return OutcomeInsufficientStock
	case errors.Is(err, ErrTransactionAborted):
		return OutcomeAborted
	default:
		return OutcomeError
	}
}
