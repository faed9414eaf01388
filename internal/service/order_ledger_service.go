package service

import (
	"context"
	"errors"
	"strings"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Submission is everything known about an order at the moment it was created
type Submission struct {
	UserID    string
	SessionID string
	Draft     *entity.BookingDraft
	Request   *entity.OrderRequest
	Remote    *entity.RemoteOrder
	Quote     entity.Quote
}

// OrderLedger keeps the local record of orders placed through the wizard
type OrderLedger interface {
	RecordSubmission(ctx context.Context, sub *Submission) error
	RecordCancellation(ctx context.Context, userID string, remote *entity.RemoteOrder, reason string) error
}

type orderLedger struct {
	db           *gorm.DB
	log          *logrus.Logger
	orderRepo    repository.OrderRepository
	auditService AuditService
}

func NewOrderLedger(db *gorm.DB, log *logrus.Logger, orderRepo repository.OrderRepository, auditService AuditService) OrderLedger {
	return &orderLedger{
		db:           db,
		log:          log,
		orderRepo:    orderRepo,
		auditService: auditService,
	}
}

// RecordSubmission stores the ledger row and the submit audit entry in one transaction.
// Recording the same remote order twice is not an error.
func (l *orderLedger) RecordSubmission(ctx context.Context, sub *Submission) error {
	items := make([]interface{}, len(sub.Request.Items))
	for i, it := range sub.Request.Items {
		items[i] = map[string]interface{}{"service_id": it.ServiceID, "quantity": it.Quantity}
	}

	status := sub.Remote.Status
	if status == "" {
		status = entity.OrderStatusPending
	}

	order := &entity.Order{
		RemoteOrderID:      sub.Remote.ID,
		UserID:             sub.UserID,
		VendorID:           sub.Request.VendorID,
		Status:             status,
		OrderType:          sub.Request.OrderType,
		RecurringFrequency: sub.Request.RecurringFrequency,
		ScheduledDate:      sub.Request.Date,
		ScheduledTime:      sub.Request.Time,
		ProfessionalID:     sub.Request.TechnicianID,
		AddressID:          sub.Request.AddressID,
		Items:              entity.JSON{"services": items},
		Subtotal:           sub.Quote.Subtotal.Round(2),
		Discount:           sub.Quote.Discount.Round(2),
		Tax:                sub.Quote.Tax.Round(2),
		Total:              sub.Quote.Total.Round(2),
	}

	tx := l.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := l.orderRepo.Create(ctx, tx, order); err != nil {
		if isDuplicateKeyError(err, "remote_order_id") {
			l.log.Debugf("Order %s already in ledger", sub.Remote.ID)
			return nil
		}
		l.log.Warnf("Failed to create ledger order %s: %+v", sub.Remote.ID, err)
		return err
	}

	metadata := entity.JSON{
		"vendor_id":       sub.Request.VendorID,
		"remote_order_id": sub.Remote.ID,
		"order_type":      string(sub.Request.OrderType),
		"services":        sub.Draft.ServiceIDs(),
		"total":           order.Total.StringFixed(2),
	}
	if err := l.auditService.Record(ctx, tx, sub.UserID, sub.SessionID, entity.AuditActionDraftSubmit, metadata); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		l.log.Warnf("Failed to commit ledger order %s: %+v", sub.Remote.ID, err)
		return err
	}

	return nil
}

// RecordCancellation updates the ledger status when the order is known locally
// and records the cancel audit entry either way.
func (l *orderLedger) RecordCancellation(ctx context.Context, userID string, remote *entity.RemoteOrder, reason string) error {
	status := remote.Status
	if status == "" {
		status = entity.OrderStatusCancelled
	}

	tx := l.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := l.orderRepo.UpdateStatus(ctx, tx, remote.ID, status); err != nil {
		l.log.Warnf("Failed to update ledger order %s: %+v", remote.ID, err)
		return err
	}

	metadata := entity.JSON{
		"remote_order_id": remote.ID,
		"status":          string(status),
	}
	if reason != "" {
		metadata["reason"] = reason
	}
	if err := l.auditService.Record(ctx, tx, userID, "", entity.AuditActionOrderCancel, metadata); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		l.log.Warnf("Failed to commit cancellation of order %s: %+v", remote.ID, err)
		return err
	}

	return nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
