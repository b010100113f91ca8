package cleanup

import (
	"context"
	"time"

	"checkout-service/internal/repository"

	"go.uber.org/zap"
)

type CleanupService struct {
	carts        repository.CartItemRepo
	abandonAfter time.Duration
	log          *zap.Logger
	now          func() time.Time
}

func NewCleanupService(carts repository.CartItemRepo, abandonAfter time.Duration, log *zap.Logger) *CleanupService {
	return &CleanupService{
		carts:        carts,
		abandonAfter: abandonAfter,
		log:          log,
		now:          time.Now,
	}
}

// CleanupAbandonedCarts удаляет позиции корзин, которые не менялись дольше abandonAfter.
// Сами корзины остаются.
func (c *CleanupService) CleanupAbandonedCarts(ctx context.Context) (int64, error) {
	if c.abandonAfter <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.abandonAfter)

	n, err := c.carts.DeleteStale(ctx, cutoff)
	if err != nil {
		c.log.Error("failed to cleanup abandoned cart items", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		c.log.Info("cleaned up abandoned cart items", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
