package cleanup

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	cleanup  *CleanupService
	interval time.Duration
	log      *zap.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
	done     chan struct{}
}

func NewScheduler(cleanup *CleanupService, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		cleanup:  cleanup,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает планировщик задач
func (s *Scheduler) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	s.log.Info("starting cleanup scheduler", zap.Duration("interval", s.interval))
	go s.runCartsCleanup(ctx)
}

// Stop останавливает планировщик и ждёт завершения текущего прохода
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.log.Info("stopping cleanup scheduler")
		close(s.stopCh)
	})
	if s.started.Load() {
		<-s.done
	}
}

func (s *Scheduler) runCartsCleanup(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Выполняем сразу при старте
	if _, err := s.cleanup.CleanupAbandonedCarts(ctx); err != nil {
		s.log.Error("initial cart cleanup failed", zap.Error(err))
	}

	for {
		select {
		case <-ticker.C:
			if _, err := s.cleanup.CleanupAbandonedCarts(ctx); err != nil {
				s.log.Error("cart cleanup failed", zap.Error(err))
			}
		case <-s.stopCh:
			s.log.Info("cart cleanup stopped")
			return
		case <-ctx.Done():
			s.log.Info("cart cleanup cancelled")
			return
		}
	}
}

// RunOnceNow выполняет очистку немедленно
func (s *Scheduler) RunOnceNow(ctx context.Context) (int64, error) {
	return s.cleanup.CleanupAbandonedCarts(ctx)
}
