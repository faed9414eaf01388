package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"salon-booking/internal/domain/entity"
	domainRepo "salon-booking/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// booking:<session>:<vendor> is a hash with fields data (JSON draft) and rev
	RedisDraftKeyPrefix = "booking:"
	RedisLockKeyPrefix  = "booking:lock:"

	draftDataField = "data"
	draftRevField  = "rev"
)

// saveDraftScript stores the payload only when the stored revision equals
// ARGV[1] (ARGV[1] < 0 skips the check), bumps the revision and refreshes the TTL.
//
// Returns the new revision, or -1 on mismatch.
var saveDraftScript = redis.NewScript(`
	local rev = tonumber(redis.call('HGET', KEYS[1], 'rev') or '0')
	local expected = tonumber(ARGV[1])
	if expected >= 0 and rev ~= expected then
		return -1
	end
	rev = rev + 1
	redis.call('HSET', KEYS[1], 'data', ARGV[2], 'rev', rev)
	redis.call('PEXPIRE', KEYS[1], ARGV[3])
	return rev
`)

type draftRepository struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewDraftRepository(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) domainRepo.DraftRepository {
	return &draftRepository{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func draftKey(sessionID, vendorID string) string {
	return fmt.Sprintf("%s%s:%s", RedisDraftKeyPrefix, sessionID, vendorID)
}

func lockKey(sessionID, vendorID string) string {
	return fmt.Sprintf("%s%s:%s", RedisLockKeyPrefix, sessionID, vendorID)
}

func (r *draftRepository) Get(ctx context.Context, sessionID, vendorID string) (*entity.BookingDraft, error) {
	values, err := r.redisClient.HMGet(ctx, draftKey(sessionID, vendorID), draftDataField, draftRevField).Result()
	if err != nil {
		return nil, fmt.Errorf("get draft %s/%s: %w", sessionID, vendorID, err)
	}

	draft := entity.NewBookingDraft(vendorID)
	draft.Revision = parseRevision(values[1])

	raw, ok := values[0].(string)
	if !ok || raw == "" {
		return draft, nil
	}

	var stored entity.BookingDraft
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		r.log.Warnf("Failed to decode draft %s/%s, using defaults: %+v", sessionID, vendorID, err)
		return draft, nil
	}

	stored.VendorID = vendorID
	stored.Revision = draft.Revision
	if stored.Services == nil {
		stored.Services = []entity.ServiceSelection{}
	}
	return &stored, nil
}

func (r *draftRepository) Save(ctx context.Context, sessionID string, draft *entity.BookingDraft, expectedRevision int64) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	key := draftKey(sessionID, draft.VendorID)
	rev, err := saveDraftScript.Run(ctx, r.redisClient, []string{key}, expectedRevision, string(payload), r.ttl.Milliseconds()).Int64()
	if err != nil {
		r.log.Warnf("Failed Lua script saveDraft for %s: %+v", key, err)
		return fmt.Errorf("save draft %s: %w", key, err)
	}

	if rev == -1 {
		return domainRepo.ErrRevisionMismatch
	}

	draft.Revision = rev
	r.log.Debugf("Saved draft %s: revision=%d", key, rev)
	return nil
}

func (r *draftRepository) Delete(ctx context.Context, sessionID, vendorID string) error {
	if err := r.redisClient.Del(ctx, draftKey(sessionID, vendorID)).Err(); err != nil {
		return fmt.Errorf("delete draft %s/%s: %w", sessionID, vendorID, err)
	}
	return nil
}

func (r *draftRepository) AcquireSubmitLock(ctx context.Context, sessionID, vendorID string, ttl time.Duration) (bool, error) {
	ok, err := r.redisClient.SetNX(ctx, lockKey(sessionID, vendorID), time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire submit lock %s/%s: %w", sessionID, vendorID, err)
	}
	return ok, nil
}

func (r *draftRepository) ReleaseSubmitLock(ctx context.Context, sessionID, vendorID string) error {
	if err := r.redisClient.Del(ctx, lockKey(sessionID, vendorID)).Err(); err != nil {
		return fmt.Errorf("release submit lock %s/%s: %w", sessionID, vendorID, err)
	}
	return nil
}

func parseRevision(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	rev, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return rev
}
