package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"
	"salon-booking/internal/infrastructure/marketplace"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// DefaultSyncSchedule is used when no cron spec is configured
	DefaultSyncSchedule = "@every 5m"

	// Batch size for ledger reads; one remote call is made per order
	orderSyncBatchSize = 100

	// Upper bound of one sync run
	orderSyncTimeout = 2 * time.Minute
)

// OrderStatusSync refreshes the status of ledger orders that can still change
// remotely. It runs on a cron schedule with the marketplace service token and
// is disabled when no token is configured.
//
// Runs never overlap: a run still in progress when the next tick fires makes
// that tick a no-op.
type OrderStatusSync struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	orders    repository.OrderGateway
	audit     AuditService
	token     string
	schedule  string
	log       *logrus.Logger

	cron    *cron.Cron
	started atomic.Bool
	stopped atomic.Bool
}

func NewOrderStatusSync(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	orders repository.OrderGateway,
	audit AuditService,
	token, schedule string,
	log *logrus.Logger,
) *OrderStatusSync {
	if schedule == "" {
		schedule = DefaultSyncSchedule
	}

	cronLogger := cron.PrintfLogger(log)

	return &OrderStatusSync{
		db:        db,
		orderRepo: orderRepo,
		orders:    orders,
		audit:     audit,
		token:     token,
		schedule:  schedule,
		log:       log,
		cron:      cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
	}
}

// Start registers the sync job and starts the scheduler.
// Returns an error only for an invalid cron spec.
func (s *OrderStatusSync) Start() error {
	if s.token == "" {
		s.log.Info("Order status sync disabled: no marketplace service token configured")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("invalid order sync schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.started.Store(true)
	s.log.Infof("Order status sync scheduled (%s)", s.schedule)
	return nil
}

// Stop waits for a running job to finish. Safe to call multiple times.
func (s *OrderStatusSync) Stop() {
	if !s.started.Load() {
		return
	}
	if s.stopped.CompareAndSwap(false, true) {
		<-s.cron.Stop().Done()
		s.log.Info("Order status sync stopped")
	}
}

func (s *OrderStatusSync) run() {
	ctx, cancel := context.WithTimeout(context.Background(), orderSyncTimeout)
	defer cancel()

	if _, err := s.SyncOnce(ctx); err != nil {
		s.log.Warnf("Failed to sync order statuses: %+v", err)
	}
}

// SyncOnce walks the active ledger orders in batches, fetches each from the
// marketplace and stores changed statuses. Returns the number of updated orders.
// A failure on a single order is logged and skipped.
func (s *OrderStatusSync) SyncOnce(ctx context.Context) (int, error) {
	startTime := time.Now()
	offset := 0
	checked := 0
	updated := 0

	for {
		batch, err := s.orderRepo.FindActive(ctx, s.db, orderSyncBatchSize, offset)
		if err != nil {
			return updated, fmt.Errorf("query active orders at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			break
		}

		// Orders that reached a terminal status leave the active set, so the
		// next page starts after the ones that are still active.
		stillActive := 0
		for i := range batch {
			order := &batch[i]
			checked++

			changed, err := s.syncOrder(ctx, order)
			if err != nil {
				s.log.Warnf("Failed to sync order %s: %+v", order.RemoteOrderID, err)
			}
			if changed {
				updated++
			}
			if order.IsActive() {
				stillActive++
			}
		}

		if len(batch) < orderSyncBatchSize {
			break
		}
		offset += stillActive

		select {
		case <-ctx.Done():
			return updated, ctx.Err()
		default:
		}
	}

	s.log.Infof("Order status sync completed: %d checked, %d updated in %v", checked, updated, time.Since(startTime))
	return updated, nil
}

// syncOrder updates order in place when the remote status differs
func (s *OrderStatusSync) syncOrder(ctx context.Context, order *entity.Order) (bool, error) {
	remote, err := s.orders.GetOrder(ctx, s.token, order.RemoteOrderID)
	if err != nil {
		if marketplace.IsNotFound(err) {
			s.log.Debugf("Order %s no longer exists remotely", order.RemoteOrderID)
			return false, nil
		}
		return false, err
	}

	if remote.Status == "" || remote.Status == order.Status {
		return false, nil
	}

	affected, err := s.orderRepo.UpdateStatus(ctx, s.db, order.RemoteOrderID, remote.Status)
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	previous := order.Status
	order.Status = remote.Status

	_ = s.audit.Record(ctx, nil, order.UserID, "", entity.AuditActionOrderSync, entity.JSON{
		"remote_order_id": order.RemoteOrderID,
		"old_status":      string(previous),
		"new_status":      string(remote.Status),
	})

	s.log.Debugf("Order %s status %s -> %s", order.RemoteOrderID, previous, remote.Status)
	return true, nil
}
