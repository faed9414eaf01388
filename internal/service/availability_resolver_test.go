package service

import (
	"errors"
	"io"
	"testing"
	"time"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/infrastructure/marketplace"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// 2026-10-19 is a Monday
var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func mondayHours(ranges ...entity.HourRange) []entity.CompanyHour {
	return []entity.CompanyHour{
		{Day: "Monday", IsAvailable: true, Slots: ranges},
		{Day: "Sunday", IsAvailable: false, Slots: []entity.HourRange{{Start: "08:00", End: "12:00"}}},
	}
}

func newResolverAt(now time.Time) *AvailabilityResolver {
	return NewAvailabilityResolver(10*time.Minute, time.UTC, fixedClock{now: now}, quietLogger())
}

func TestGenerateSlots_FutureDateFitsIntervals(t *testing.T) {
	r := newResolverAt(monday.AddDate(0, 0, -3))

	slots := r.GenerateSlots(mondayHours(
		entity.HourRange{Start: "09:00", End: "09:40"},
		entity.HourRange{Start: "14:00", End: "14:25"},
	), monday)

	assert.Equal(t, []string{"09:00", "09:10", "09:20", "09:30", "14:00", "14:10"}, slots)
}

func TestGenerateSlots_TodayDropsPastTimes(t *testing.T) {
	r := newResolverAt(monday.Add(9*time.Hour + 20*time.Minute))

	slots := r.GenerateSlots(mondayHours(entity.HourRange{Start: "09:00", End: "10:00"}), monday)

	assert.Equal(t, []string{"09:30", "09:40", "09:50"}, slots)
}

func TestGenerateSlots_TodayWithSecondsPastCandidate(t *testing.T) {
	r := newResolverAt(monday.Add(9*time.Hour + 30*time.Minute + 5*time.Second))

	slots := r.GenerateSlots(mondayHours(entity.HourRange{Start: "09:00", End: "10:00"}), monday)

	assert.Equal(t, []string{"09:40", "09:50"}, slots)
}

func TestGenerateSlots_PastDateIsEmpty(t *testing.T) {
	r := newResolverAt(monday.AddDate(0, 0, 1))

	slots := r.GenerateSlots(mondayHours(entity.HourRange{Start: "09:00", End: "10:00"}), monday)

	assert.Empty(t, slots)
}

func TestGenerateSlots_ClosedDayIsEmpty(t *testing.T) {
	r := newResolverAt(monday.AddDate(0, 0, -7))
	sunday := monday.AddDate(0, 0, 6)

	slots := r.GenerateSlots(mondayHours(entity.HourRange{Start: "09:00", End: "10:00"}), sunday)

	assert.Empty(t, slots)
}

func TestGenerateSlots_OverlappingRangesAreDeduplicated(t *testing.T) {
	r := newResolverAt(monday.AddDate(0, 0, -1))

	slots := r.GenerateSlots(mondayHours(
		entity.HourRange{Start: "09:00", End: "09:30"},
		entity.HourRange{Start: "09:10", End: "09:40"},
	), monday)

	assert.Equal(t, []string{"09:00", "09:10", "09:20", "09:30"}, slots)
}

func TestGenerateSlots_BadRangeIsSkipped(t *testing.T) {
	r := newResolverAt(monday.AddDate(0, 0, -1))

	slots := r.GenerateSlots(mondayHours(
		entity.HourRange{Start: "nine", End: "10:00"},
		entity.HourRange{Start: "11:00", End: "11:20"},
	), monday)

	assert.Equal(t, []string{"11:00", "11:10"}, slots)
}

func TestMatchesWeekday(t *testing.T) {
	assert.True(t, matchesWeekday("Monday", time.Monday))
	assert.True(t, matchesWeekday("mon", time.Monday))
	assert.True(t, matchesWeekday(" TUESDAY ", time.Tuesday))
	assert.True(t, matchesWeekday("0", time.Sunday))
	assert.True(t, matchesWeekday("6", time.Saturday))
	assert.False(t, matchesWeekday("Monday", time.Tuesday))
	assert.False(t, matchesWeekday("mo", time.Monday))
}

func TestNormalizeClock(t *testing.T) {
	cases := map[string]string{
		"9:00":     "09:00",
		"09:00":    "09:00",
		"09:00:00": "09:00",
		"24:00":    "24:00",
	}
	for in, want := range cases {
		got, err := NormalizeClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"", "9", "9:0", "25:00", "12:60", "ab:cd"} {
		_, err := NormalizeClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestApplyCounts_MissingKeysAreUnavailable(t *testing.T) {
	slots := ApplyCounts(
		[]string{"09:00", "09:10", "09:20"},
		map[string]int{"9:00": 2, "09:10:00": 0, "garbage": 4},
	)

	assert.Equal(t, []entity.TimeSlot{
		{Time: "09:00", Available: true},
		{Time: "09:10", Available: false},
		{Time: "09:20", Available: false},
	}, slots)
}

func TestResolve_RemoteCounts(t *testing.T) {
	r := newResolverAt(monday.AddDate(0, 0, -1))
	hours := mondayHours(entity.HourRange{Start: "09:00", End: "09:30"})

	result := r.Resolve(hours, monday, 45, map[string]int{"09:10": 1}, nil)

	assert.Equal(t, SlotSourceRemote, result.Source)
	assert.False(t, result.AuthRequired)
	assert.Equal(t, "2026-10-19", result.Date)
	assert.Equal(t, 45, result.Duration)
	assert.Equal(t, []entity.TimeSlot{
		{Time: "09:00", Available: false},
		{Time: "09:10", Available: true},
		{Time: "09:20", Available: false},
	}, result.Slots)
}

func TestResolve_UnauthorizedFallsBackWithFlag(t *testing.T) {
	r := newResolverAt(monday.AddDate(0, 0, -1))
	hours := mondayHours(entity.HourRange{Start: "09:00", End: "09:20"})

	result := r.Resolve(hours, monday, 30, nil, &marketplace.APIError{StatusCode: 401, Message: "Unauthenticated"})

	assert.Equal(t, SlotSourceBasic, result.Source)
	assert.True(t, result.AuthRequired)
	assert.Equal(t, []entity.TimeSlot{
		{Time: "09:00", Available: true},
		{Time: "09:10", Available: true},
	}, result.Slots)
}

func TestResolve_OtherErrorFallsBack(t *testing.T) {
	r := newResolverAt(monday.AddDate(0, 0, -1))
	hours := mondayHours(entity.HourRange{Start: "09:00", End: "09:20"})

	result := r.Resolve(hours, monday, 30, nil, errors.New("connection refused"))

	assert.Equal(t, SlotSourceBasic, result.Source)
	assert.False(t, result.AuthRequired)
	assert.Len(t, result.Slots, 2)
	for _, s := range result.Slots {
		assert.True(t, s.Available)
	}
}

func TestToday_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	r := NewAvailabilityResolver(0, loc, fixedClock{now: time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC)}, quietLogger())

	assert.Equal(t, "2026-10-20", r.Today())
	assert.Equal(t, loc, r.Location())
}
