package repository

import (
	"context"
	"errors"
	"time"

	"salon-booking/internal/domain/entity"
)

// ErrRevisionMismatch is returned when a draft was saved by someone else
// since the caller read it
var ErrRevisionMismatch = errors.New("draft revision mismatch")

// AnyRevision skips the revision check on save
const AnyRevision int64 = -1

// DraftRepository keeps one booking draft per (session, vendor)
type DraftRepository interface {
	// Get returns the stored draft, or a default empty draft when none exists
	// or the stored payload cannot be decoded.
	Get(ctx context.Context, sessionID, vendorID string) (*entity.BookingDraft, error)
	// Save stores the draft when expectedRevision matches (or is AnyRevision)
	// and sets draft.Revision to the new revision.
	Save(ctx context.Context, sessionID string, draft *entity.BookingDraft, expectedRevision int64) error
	Delete(ctx context.Context, sessionID, vendorID string) error
	// AcquireSubmitLock returns false when another submission holds the lock
	AcquireSubmitLock(ctx context.Context, sessionID, vendorID string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, sessionID, vendorID string) error
}
