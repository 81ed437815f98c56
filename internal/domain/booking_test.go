package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)

func interval(startOffset, duration time.Duration) *Booking {
	return &Booking{
		StartTime: base.Add(startOffset),
		EndTime:   base.Add(startOffset + duration),
	}
}

func TestOverlaps(t *testing.T) {
	b := interval(0, time.Hour) // 14:00-15:00

	assert.True(t, b.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)), "partial overlap")
	assert.True(t, b.Overlaps(base, base.Add(time.Hour)), "identical interval")
	assert.True(t, b.Overlaps(base.Add(-time.Hour), base.Add(2*time.Hour)), "containing interval")
	assert.True(t, b.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)), "touching end is inclusive")
	assert.True(t, b.Overlaps(base.Add(-time.Hour), base), "touching start is inclusive")

	assert.False(t, b.Overlaps(base.Add(2*time.Hour), base.Add(3*time.Hour)), "disjoint after")
	assert.False(t, b.Overlaps(base.Add(-2*time.Hour), base.Add(-time.Hour)), "disjoint before")
}

func TestSameSlot(t *testing.T) {
	b := interval(0, time.Hour)
	b.AmenityID = 1

	assert.True(t, b.SameSlot(1, base, base.Add(time.Hour)))
	assert.False(t, b.SameSlot(2, base, base.Add(time.Hour)), "different amenity")
	assert.False(t, b.SameSlot(1, base.Add(30*time.Minute), base.Add(90*time.Minute)), "shifted interval")
	assert.False(t, b.SameSlot(1, base, base.Add(2*time.Hour)), "different end")
}

func TestHasStarted(t *testing.T) {
	b := interval(0, time.Hour)

	assert.False(t, b.HasStarted(base.Add(-time.Minute)))
	assert.True(t, b.HasStarted(base), "start moment counts as started")
	assert.True(t, b.HasStarted(base.Add(time.Minute)))
	assert.True(t, b.HasStarted(base.Add(2*time.Hour)), "past booking counts as started")
}

func TestDayBounds(t *testing.T) {
	dayStart, dayEnd := DayBounds(base)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local), dayStart)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local), dayEnd)

	// Полночь принадлежит своему дню
	midnightStart, _ := DayBounds(dayStart)
	assert.Equal(t, dayStart, midnightStart)
}

func TestStatusPredicates(t *testing.T) {
	confirmed := &Booking{Status: StatusConfirmed}
	assert.True(t, confirmed.IsConfirmed())
	assert.False(t, confirmed.IsWaitlisted())

	waitlisted := &Booking{Status: StatusWaitlist}
	assert.True(t, waitlisted.IsWaitlisted())
	assert.False(t, waitlisted.IsConfirmed())
}

func TestMaxAdvanceHorizon(t *testing.T) {
	rules := DefaultRules()
	horizon := rules.MaxAdvanceHorizon(base)

	assert.Equal(t, base.AddDate(0, 0, 7), horizon)
}

func TestDurationWithinBounds(t *testing.T) {
	rules := DefaultRules() // 30..120 минут

	assert.False(t, rules.DurationWithinBounds(29))
	assert.True(t, rules.DurationWithinBounds(30))
	assert.True(t, rules.DurationWithinBounds(120))
	assert.False(t, rules.DurationWithinBounds(121))
}
