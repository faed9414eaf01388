package repository

import (
	"context"
	"io"
	"testing"
	"time"

	"salon-booking/internal/domain/entity"
	domainRepo "salon-booking/internal/domain/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDraftRepository(t *testing.T) (domainRepo.DraftRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewDraftRepository(client, log, time.Hour), mr
}

func sampleDraft() *entity.BookingDraft {
	pro := "tech-7"
	return &entity.BookingDraft{
		VendorID: "vendor-1",
		Services: []entity.ServiceSelection{
			{
				ID:            "svc-1",
				Name:          "Haircut",
				Price:         decimal.RequireFromString("150"),
				OriginalPrice: decimal.RequireFromString("166.67"),
				Duration:      45,
				Category:      "hair",
			},
		},
		ProfessionalID:     &pro,
		ProfessionalChosen: true,
		Date:               "2026-10-20",
		Time:               "10:30",
		OrderType:          entity.OrderTypeSchedule,
		CreatedAt:          time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		UpdatedAt:          time.Date(2026, 10, 19, 9, 5, 0, 0, time.UTC),
	}
}

func TestDraftRepository_GetMissingReturnsDefault(t *testing.T) {
	repo, _ := newTestDraftRepository(t)

	draft, err := repo.Get(context.Background(), "session-a", "vendor-1")
	require.NoError(t, err)

	assert.Equal(t, "vendor-1", draft.VendorID)
	assert.Empty(t, draft.Services)
	assert.Nil(t, draft.ProfessionalID)
	assert.Equal(t, int64(0), draft.Revision)
}

func TestDraftRepository_RoundTrip(t *testing.T) {
	repo, _ := newTestDraftRepository(t)
	ctx := context.Background()

	draft := sampleDraft()
	require.NoError(t, repo.Save(ctx, "session-a", draft, domainRepo.AnyRevision))
	assert.Equal(t, int64(1), draft.Revision)

	loaded, err := repo.Get(ctx, "session-a", "vendor-1")
	require.NoError(t, err)

	assert.Equal(t, draft.VendorID, loaded.VendorID)
	require.Len(t, loaded.Services, 1)
	assert.Equal(t, "svc-1", loaded.Services[0].ID)
	assert.True(t, draft.Services[0].Price.Equal(loaded.Services[0].Price))
	assert.True(t, draft.Services[0].OriginalPrice.Equal(loaded.Services[0].OriginalPrice))
	assert.Equal(t, 45, loaded.Services[0].Duration)
	require.NotNil(t, loaded.ProfessionalID)
	assert.Equal(t, "tech-7", *loaded.ProfessionalID)
	assert.Equal(t, draft.Date, loaded.Date)
	assert.Equal(t, draft.Time, loaded.Time)
	assert.Equal(t, draft.OrderType, loaded.OrderType)
	assert.True(t, draft.UpdatedAt.Equal(loaded.UpdatedAt))
	assert.Equal(t, int64(1), loaded.Revision)
}

func TestDraftRepository_DraftsAreScopedBySessionAndVendor(t *testing.T) {
	repo, _ := newTestDraftRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "session-a", sampleDraft(), domainRepo.AnyRevision))

	other, err := repo.Get(ctx, "session-b", "vendor-1")
	require.NoError(t, err)
	assert.Empty(t, other.Services)

	otherVendor, err := repo.Get(ctx, "session-a", "vendor-2")
	require.NoError(t, err)
	assert.Empty(t, otherVendor.Services)
}

func TestDraftRepository_StaleRevisionRejected(t *testing.T) {
	repo, _ := newTestDraftRepository(t)
	ctx := context.Background()

	first := sampleDraft()
	require.NoError(t, repo.Save(ctx, "session-a", first, 0))
	require.NoError(t, repo.Save(ctx, "session-a", first, 1))
	assert.Equal(t, int64(2), first.Revision)

	stale := sampleDraft()
	stale.Time = "11:00"
	err := repo.Save(ctx, "session-a", stale, 1)
	assert.ErrorIs(t, err, domainRepo.ErrRevisionMismatch)

	loaded, err := repo.Get(ctx, "session-a", "vendor-1")
	require.NoError(t, err)
	assert.Equal(t, "10:30", loaded.Time)
}

func TestDraftRepository_MalformedPayloadFallsBackToDefaults(t *testing.T) {
	repo, mr := newTestDraftRepository(t)

	mr.HSet("booking:session-a:vendor-1", "data", "{not json", "rev", "4")

	draft, err := repo.Get(context.Background(), "session-a", "vendor-1")
	require.NoError(t, err)
	assert.Empty(t, draft.Services)
	assert.Equal(t, "vendor-1", draft.VendorID)
	assert.Equal(t, int64(4), draft.Revision)
}

func TestDraftRepository_SaveSetsTTL(t *testing.T) {
	repo, mr := newTestDraftRepository(t)

	require.NoError(t, repo.Save(context.Background(), "session-a", sampleDraft(), domainRepo.AnyRevision))
	assert.Equal(t, time.Hour, mr.TTL("booking:session-a:vendor-1"))

	mr.FastForward(2 * time.Hour)
	assert.False(t, mr.Exists("booking:session-a:vendor-1"))
}

func TestDraftRepository_Delete(t *testing.T) {
	repo, _ := newTestDraftRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "session-a", sampleDraft(), domainRepo.AnyRevision))
	require.NoError(t, repo.Delete(ctx, "session-a", "vendor-1"))

	draft, err := repo.Get(ctx, "session-a", "vendor-1")
	require.NoError(t, err)
	assert.Empty(t, draft.Services)
}

func TestDraftRepository_SubmitLock(t *testing.T) {
	repo, _ := newTestDraftRepository(t)
	ctx := context.Background()

	ok, err := repo.AcquireSubmitLock(ctx, "session-a", "vendor-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.AcquireSubmitLock(ctx, "session-a", "vendor-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.ReleaseSubmitLock(ctx, "session-a", "vendor-1"))

	ok, err = repo.AcquireSubmitLock(ctx, "session-a", "vendor-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
