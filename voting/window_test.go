package voting

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func ptr(t time.Time) *time.Time { return &t }

func TestWindowStatus_Disabled(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
	}{
		{"no bounds", nil, nil},
		{"inside bounds", ptr(now.Add(-time.Hour)), ptr(now.Add(time.Hour))},
		{"before start", ptr(now.Add(time.Hour)), nil},
		{"after end", nil, ptr(now.Add(-time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := WindowStatus(false, tt.start, tt.end, now)
			assert.False(t, status.IsOpen)
			assert.False(t, status.HasStarted)
			assert.False(t, status.HasEnded)
			assert.Nil(t, status.StartDate)
			assert.Nil(t, status.EndDate)
		})
	}
}

func TestWindowStatus_Unbounded(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	status := WindowStatus(true, nil, nil, now)
	assert.True(t, status.IsOpen)
	assert.True(t, status.HasStarted)
	assert.False(t, status.HasEnded)

	onlyStart := WindowStatus(true, ptr(now.Add(time.Minute)), nil, now)
	assert.False(t, onlyStart.IsOpen)
	assert.False(t, onlyStart.HasStarted)

	onlyEnd := WindowStatus(true, nil, ptr(now.Add(-time.Minute)), now)
	assert.False(t, onlyEnd.IsOpen)
	assert.True(t, onlyEnd.HasStarted)
	assert.True(t, onlyEnd.HasEnded)
}

func TestWindowStatus_Boundaries(t *testing.T) {
	t1 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC)
	eps := time.Nanosecond

	clock := clockwork.NewFakeClockAt(t1.Add(-eps))
	check := func() bool { return WindowStatus(true, &t1, &t2, clock.Now()).IsOpen }

	assert.False(t, check(), "just before start")

	clock.Advance(eps)
	assert.True(t, check(), "at start")

	clock.Advance(t2.Sub(t1))
	assert.True(t, check(), "at end")

	clock.Advance(eps)
	assert.False(t, check(), "just after end")

	status := WindowStatus(true, &t1, &t2, clock.Now())
	assert.True(t, status.HasStarted)
	assert.True(t, status.HasEnded)
	assert.Equal(t, t1, *status.StartDate)
	assert.Equal(t, t2, *status.EndDate)
}
