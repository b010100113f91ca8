package service

import (
	"context"
	"fmt"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/pricing"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var refundableStatuses = map[models.OrderStatus]bool{
	models.OrderStatusPaid:       true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCompleted:  true,
}

type refundService struct {
	repo  *repository.Repository
	authz Authorizer
	log   *zap.Logger
	now   func() time.Time
}

func NewRefundService(repo *repository.Repository, authz Authorizer, log *zap.Logger) RefundService {
	if log == nil {
		log = zap.NewNop()
	}
	return &refundService{repo: repo, authz: authz, log: log, now: time.Now}
}

func (s *refundService) RequestRefund(ctx context.Context, orderID uuid.UUID, in RefundInput) (*models.Refund, error) {
	if err := authorize(ctx, s.authz, ResourceRefunds, ActionRequest); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, ErrRefundEmpty
	}

	var created *models.Refund
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		ord, err := tx.Orders.LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return ErrOrderNotFound
		}
		if !refundableStatuses[ord.Status] {
			return fmt.Errorf("%w: %s", ErrRefundNotAllowed, ord.Status)
		}

		items, err := tx.OrderItems.GetByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]models.OrderItem, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}

		already, err := tx.Refunds.RefundedQuantities(ctx, orderID)
		if err != nil {
			return err
		}

		requested := make(map[uuid.UUID]int32, len(in.Items))
		for _, ri := range in.Items {
			if ri.Quantity < 1 {
				return ErrQuantityInvalid
			}
			requested[ri.OrderItemID] += ri.Quantity
		}

		refund := &models.Refund{
			OrderID:  orderID,
			Currency: ord.Currency,
			Reason:   sanitizeReason(in.Reason),
			Status:   models.RefundStatusRequested,
			Amount:   decimal.Zero,
		}
		taken := make(map[uuid.UUID]int32, len(in.Items))
		for _, ri := range in.Items {
			it, ok := byID[ri.OrderItemID]
			if !ok {
				return ErrOrderItemNotFound
			}
			if already[it.ID]+requested[it.ID] > it.Quantity {
				return fmt.Errorf("%w: %s has %d refundable", ErrRefundQuantity, it.ProductName, it.Quantity-already[it.ID])
			}
			amount := pricing.RefundShare(it, already[it.ID]+taken[it.ID], ri.Quantity)
			taken[it.ID] += ri.Quantity
			refund.Amount = refund.Amount.Add(amount)
			refund.Items = append(refund.Items, models.RefundItem{
				OrderItemID: it.ID,
				Quantity:    ri.Quantity,
				Amount:      amount,
			})
		}

		if err := tx.Refunds.Create(ctx, refund); err != nil {
			return err
		}
		created = refund
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Запрошен возврат",
		zap.String("order_id", orderID.String()),
		zap.String("refund_id", created.ID.String()),
		zap.String("amount", created.Amount.StringFixed(2)),
	)
	return s.repo.Refunds.GetByID(ctx, created.ID)
}

func (s *refundService) ListRefunds(ctx context.Context, orderID uuid.UUID) ([]models.Refund, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if !isAllowed(ctx, s.authz, ResourceRefunds, ActionProcess) {
		ord, err := s.repo.Orders.GetByIDForUser(ctx, orderID, userID)
		if err != nil {
			return nil, err
		}
		if ord == nil {
			return nil, ErrOrderNotFound
		}
	}
	return s.repo.Refunds.ListByOrder(ctx, orderID)
}

func (s *refundService) MarkRefundProcessing(ctx context.Context, refundID uuid.UUID) (*models.Refund, error) {
	return s.transition(ctx, refundID, models.RefundStatusProcessing, nil)
}

func (s *refundService) CompleteRefund(ctx context.Context, refundID uuid.UUID, provider, reference string) (*models.Refund, error) {
	return s.transition(ctx, refundID, models.RefundStatusCompleted, map[string]any{
		"payment_provider":   provider,
		"provider_reference": reference,
		"processed_at":       s.now().UTC(),
	})
}

func (s *refundService) FailRefund(ctx context.Context, refundID uuid.UUID, reason string) (*models.Refund, error) {
	fields := map[string]any{"processed_at": s.now().UTC()}
	if r := sanitizeReason(reason); r != "" {
		fields["reason"] = r
	}
	return s.transition(ctx, refundID, models.RefundStatusFailed, fields)
}

func (s *refundService) transition(ctx context.Context, refundID uuid.UUID, to models.RefundStatus, fields map[string]any) (*models.Refund, error) {
	if err := authorize(ctx, s.authz, ResourceRefunds, ActionProcess); err != nil {
		return nil, err
	}

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		rf, err := tx.Refunds.GetByID(ctx, refundID)
		if err != nil {
			return err
		}
		if rf == nil {
			return ErrRefundNotFound
		}
		// order lock first so concurrent completions of sibling refunds serialize
		ord, err := tx.Orders.LockByID(ctx, rf.OrderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return ErrOrderNotFound
		}
		if !models.CanTransitionRefund(rf.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrRefundTransition, rf.Status, to)
		}
		if err := tx.Refunds.UpdateStatus(ctx, refundID, to, fields); err != nil {
			return err
		}
		if to != models.RefundStatusCompleted {
			return nil
		}

		done, err := tx.Refunds.CompletedQuantities(ctx, ord.ID)
		if err != nil {
			return err
		}
		items, err := tx.OrderItems.GetByOrderID(ctx, ord.ID)
		if err != nil {
			return err
		}
		if fullyRefunded(items, done) && models.CanTransition(ord.Status, models.OrderStatusRefunded) {
			refunded, err := tx.Refunds.SumCompleted(ctx, ord.ID)
			if err != nil {
				return err
			}
			s.log.Info("Заказ полностью возвращён",
				zap.String("order_id", ord.ID.String()),
				zap.String("refunded", refunded.StringFixed(2)),
				zap.String("total", ord.TotalAmount.StringFixed(2)),
			)
			return tx.Orders.UpdateStatus(ctx, ord.ID, models.OrderStatusRefunded, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Refunds.GetByID(ctx, refundID)
}

// fullyRefunded: every purchased unit is covered by a completed refund.
func fullyRefunded(items []models.OrderItem, done map[uuid.UUID]int32) bool {
	if len(items) == 0 {
		return false
	}
	for _, it := range items {
		if done[it.ID] < it.Quantity {
			return false
		}
	}
	return true
}
