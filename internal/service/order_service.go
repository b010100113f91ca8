package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"checkout-service/internal/models"
	"checkout-service/internal/pricing"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxReasonLen считается в символах, как и binding max=500 в dto.
const maxReasonLen = 500

type orderService struct {
	repo  *repository.Repository
	cache ProductCache
	authz Authorizer
	log   *zap.Logger
	now   func() time.Time
}

func NewOrderService(repo *repository.Repository, cache ProductCache, authz Authorizer, log *zap.Logger) OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &orderService{
		repo:  repo,
		cache: cache,
		authz: authz,
		log:   log,
		now:   time.Now,
	}
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var ord *models.Order
	if isAllowed(ctx, s.authz, ResourceOrders, ActionReadAll) {
		ord, err = s.repo.Orders.GetByID(ctx, id)
	} else {
		ord, err = s.repo.Orders.GetByIDForUser(ctx, id, userID)
	}
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.UserID != userID && !isAllowed(ctx, s.authz, ResourceOrders, ActionReadAll) {
		// чужой заказ не раскрываем
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}

	if !isAllowed(ctx, s.authz, ResourceOrders, ActionReadAll) {
		f.UserID = &userID
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	ordersPtr, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{
		UserID: f.UserID,
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

func (s *orderService) MarkAsPaid(ctx context.Context, id uuid.UUID, provider, reference string) (*models.Order, error) {
	if err := authorize(ctx, s.authz, ResourceOrders, ActionPay); err != nil {
		return nil, err
	}

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		ord, err := tx.Orders.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if ord == nil {
			return ErrOrderNotFound
		}
		if !models.CanTransition(ord.Status, models.OrderStatusPaid) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ord.Status, models.OrderStatusPaid)
		}
		return tx.Orders.MarkPaid(ctx, id, strings.TrimSpace(provider), strings.TrimSpace(reference), s.now().UTC())
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Заказ оплачен", zap.String("order_id", id.String()), zap.String("provider", provider))
	return s.repo.Orders.GetByID(ctx, id)
}

// advanceTargets are the statuses reachable through AdvanceStatus. PAID, CANCELLED and REFUNDED
// have dedicated operations.
var advanceTargets = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
	models.OrderStatusCompleted,
	models.OrderStatusFailed,
}

func (s *orderService) AdvanceStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus) (*models.Order, error) {
	if err := authorize(ctx, s.authz, ResourceOrders, ActionAdvance); err != nil {
		return nil, err
	}
	if !slices.Contains(advanceTargets, to) {
		return nil, fmt.Errorf("%w: %q cannot be set directly", ErrInvalidTransition, to)
	}

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		ord, err := tx.Orders.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if ord == nil {
			return ErrOrderNotFound
		}
		if !models.CanTransition(ord.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ord.Status, to)
		}
		return tx.Orders.UpdateStatus(ctx, id, to, nil)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Orders.GetByID(ctx, id)
}

func (s *orderService) BulkCancel(ctx context.Context, ids []uuid.UUID, reason string) (*BulkCancelResult, error) {
	if err := authorize(ctx, s.authz, ResourceOrders, ActionCancel); err != nil {
		return nil, err
	}

	reason = sanitizeReason(reason)
	uniq := slices.Clone(ids)
	slices.SortFunc(uniq, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })
	uniq = slices.Compact(uniq)

	res := &BulkCancelResult{Cancelled: []uuid.UUID{}, Skipped: []BulkCancelSkip{}}
	var restocked []uuid.UUID

	for _, id := range uniq {
		var (
			skip    string
			touched []uuid.UUID
		)
		err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
			ord, err := tx.Orders.LockByID(ctx, id)
			if err != nil {
				return err
			}
			if ord == nil {
				skip = ErrOrderNotFound.Error()
				return nil
			}
			if !models.CanTransition(ord.Status, models.OrderStatusCancelled) {
				skip = fmt.Sprintf("status %s cannot be cancelled", ord.Status)
				return nil
			}

			items, err := tx.OrderItems.GetByOrderID(ctx, id)
			if err != nil {
				return err
			}
			if err := tx.Orders.UpdateStatus(ctx, id, models.OrderStatusCancelled, &reason); err != nil {
				return err
			}
			for _, it := range items {
				if it.ProductID == nil {
					continue
				}
				if _, err := tx.Products.AdjustStock(ctx, *it.ProductID, it.Quantity); err != nil {
					return err
				}
				touched = append(touched, *it.ProductID)
			}
			return nil
		})
		if err != nil {
			// уже отменённые заказы закоммичены, поэтому ошибка уходит в отчёт, а не наружу
			s.log.Warn("Не удалось отменить заказ", zap.String("order_id", id.String()), zap.Error(err))
			skip = "cancel failed: internal error"
			if repository.IsRetryable(err) {
				skip = "cancel failed: " + ErrTransactionAborted.Error()
			}
		}
		if skip != "" {
			res.Skipped = append(res.Skipped, BulkCancelSkip{OrderID: id, Reason: skip})
			continue
		}
		res.Cancelled = append(res.Cancelled, id)
		restocked = append(restocked, touched...)
	}

	if s.cache != nil && len(restocked) > 0 {
		s.cache.InvalidateProduct(ctx, restocked...)
	}
	s.log.Info("Массовая отмена заказов",
		zap.Int("cancelled", len(res.Cancelled)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

func (s *orderService) RecalculateTotals(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if err := authorize(ctx, s.authz, ResourceOrders, ActionAdvance); err != nil {
		return nil, err
	}

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		ord, err := tx.Orders.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if ord == nil {
			return ErrOrderNotFound
		}
		if !ord.Status.Mutable() {
			return ErrImmutableOrder
		}
		items, err := tx.OrderItems.GetByOrderID(ctx, id)
		if err != nil {
			return err
		}
		return tx.Orders.UpdateTotals(ctx, id, pricing.FreezeTotals(items, ord.ShippingAmount, ord.DiscountAmount))
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Orders.GetByID(ctx, id)
}

func sanitizeReason(reason string) string {
	r := strings.TrimSpace(reason)
	if utf8.RuneCountInString(r) <= maxReasonLen {
		return r
	}
	return string([]rune(r)[:maxReasonLen])
}
