package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/infrastructure/marketplace"

	"github.com/sirupsen/logrus"
)

// Slot sources reported with an availability result
const (
	SlotSourceRemote = "remote"
	SlotSourceBasic  = "basic"
)

// DefaultSlotGranularity is the spacing between candidate start times
const DefaultSlotGranularity = 10 * time.Minute

// Clock returns the current time; tests pin it
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Availability is the slot list of one vendor day
type Availability struct {
	Date         string
	Duration     int
	Slots        []entity.TimeSlot
	Source       string
	AuthRequired bool
}

// AvailabilityResolver turns vendor opening hours and remote technician
// counts into bookable start times.
type AvailabilityResolver struct {
	granularity time.Duration
	location    *time.Location
	clock       Clock
	log         *logrus.Logger
}

func NewAvailabilityResolver(granularity time.Duration, location *time.Location, clock Clock, log *logrus.Logger) *AvailabilityResolver {
	if granularity <= 0 {
		granularity = DefaultSlotGranularity
	}
	if location == nil {
		location = time.UTC
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &AvailabilityResolver{
		granularity: granularity,
		location:    location,
		clock:       clock,
		log:         log,
	}
}

// Location is the timezone in which dates and "now" are interpreted
func (r *AvailabilityResolver) Location() *time.Location {
	return r.location
}

// Now returns the current time in the booking timezone
func (r *AvailabilityResolver) Now() time.Time {
	return r.clock.Now().In(r.location)
}

// Today returns the current date as YYYY-MM-DD in the booking timezone
func (r *AvailabilityResolver) Today() string {
	return r.clock.Now().In(r.location).Format(entity.DateFormat)
}

// GenerateSlots lists candidate start times ("HH:MM", ascending) for date.
// A start t is a candidate when start <= t and t+granularity <= end of an open
// interval of the date's weekday. For today, times at or before now are dropped;
// past dates have no candidates.
func (r *AvailabilityResolver) GenerateSlots(hours []entity.CompanyHour, date time.Time) []string {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, r.location)
	now := r.clock.Now().In(r.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.location)

	if day.Before(today) {
		return []string{}
	}

	cutoff := -1
	if day.Equal(today) {
		cutoff = now.Hour()*3600 + now.Minute()*60 + now.Second()
	}

	step := int(r.granularity / time.Minute)
	seen := make(map[int]struct{})

	for _, h := range hours {
		if !h.IsAvailable || !matchesWeekday(h.Day, day.Weekday()) {
			continue
		}
		for _, rng := range h.Slots {
			start, err := parseClock(rng.Start)
			if err != nil {
				r.log.Warnf("Skipping opening range with bad start %q: %+v", rng.Start, err)
				continue
			}
			end, err := parseClock(rng.End)
			if err != nil {
				r.log.Warnf("Skipping opening range with bad end %q: %+v", rng.End, err)
				continue
			}
			for t := start; t+step <= end; t += step {
				if cutoff >= 0 && t*60 <= cutoff {
					continue
				}
				seen[t] = struct{}{}
			}
		}
	}

	minutes := make([]int, 0, len(seen))
	for t := range seen {
		minutes = append(minutes, t)
	}
	sort.Ints(minutes)

	slots := make([]string, len(minutes))
	for i, t := range minutes {
		slots[i] = formatClock(t)
	}
	return slots
}

// ApplyCounts marks each candidate available only when the remote count for
// its normalized time is positive. Missing times are fully booked.
func ApplyCounts(candidates []string, counts map[string]int) []entity.TimeSlot {
	normalized := make(map[string]int, len(counts))
	for key, count := range counts {
		t, err := NormalizeClock(key)
		if err != nil {
			continue
		}
		normalized[t] += count
	}

	slots := make([]entity.TimeSlot, len(candidates))
	for i, t := range candidates {
		slots[i] = entity.TimeSlot{Time: t, Available: normalized[t] > 0}
	}
	return slots
}

// BasicSlots marks every candidate available; duration and authorization are not enforced
func BasicSlots(candidates []string) []entity.TimeSlot {
	slots := make([]entity.TimeSlot, len(candidates))
	for i, t := range candidates {
		slots[i] = entity.TimeSlot{Time: t, Available: true}
	}
	return slots
}

// Resolve combines the locally generated candidates with the outcome of the
// remote availability read. A failed read degrades to the basic list; a 401
// additionally flags the day as not bookable until the customer signs in.
func (r *AvailabilityResolver) Resolve(hours []entity.CompanyHour, date time.Time, duration int, counts map[string]int, countsErr error) *Availability {
	candidates := r.GenerateSlots(hours, date)
	result := &Availability{
		Date:     date.Format(entity.DateFormat),
		Duration: duration,
	}

	switch {
	case countsErr == nil && counts != nil:
		result.Slots = ApplyCounts(candidates, counts)
		result.Source = SlotSourceRemote
	case marketplace.IsUnauthorized(countsErr):
		result.Slots = BasicSlots(candidates)
		result.Source = SlotSourceBasic
		result.AuthRequired = true
	default:
		if countsErr != nil {
			r.log.Warnf("Failed to read remote availability for %s, using basic slots: %+v", result.Date, countsErr)
		}
		result.Slots = BasicSlots(candidates)
		result.Source = SlotSourceBasic
	}

	return result
}

// NormalizeClock turns "9:00", "09:00" or "09:00:00" into "09:00"
func NormalizeClock(value string) (string, error) {
	minutes, err := parseClock(value)
	if err != nil {
		return "", err
	}
	return formatClock(minutes), nil
}

// parseClock returns minutes since midnight; "24:00" is accepted as an end of day
func parseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}

	if hour == 24 && minute == 0 {
		return 24 * 60, nil
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", value)
	}
	return hour*60 + minute, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// matchesWeekday accepts names ("Monday", "mon") and numbers ("1", Sunday = 0)
func matchesWeekday(day string, weekday time.Weekday) bool {
	day = strings.ToLower(strings.TrimSpace(day))
	if n, err := strconv.Atoi(day); err == nil {
		return n == int(weekday)
	}
	if len(day) < 3 {
		return false
	}
	return day[:3] == strings.ToLower(weekday.String())[:3]
}
