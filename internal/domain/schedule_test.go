package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-01-02 is a Friday.
func fridayAt(hour, minute int) time.Time {
	return time.Date(2026, 1, 2, hour, minute, 0, 0, time.UTC)
}

func window(startH, startM, endH, endM int) (*TimeOfDay, *TimeOfDay) {
	s := MustTimeOfDay(startH, startM)
	e := MustTimeOfDay(endH, endM)
	return &s, &e
}

func TestScheduleOvernightWindow(t *testing.T) {
	start, end := window(22, 0, 2, 0)
	s, err := NewSchedule([]Weekday{Friday}, start, end)
	require.NoError(t, err)

	tests := []struct {
		name   string
		at     time.Time
		active bool
	}{
		{"friday 23:30", fridayAt(23, 30), true},
		{"saturday 01:00", fridayAt(0, 0).AddDate(0, 0, 1).Add(1 * time.Hour), true},
		{"saturday 03:00", fridayAt(0, 0).AddDate(0, 0, 1).Add(3 * time.Hour), false},
		{"thursday 23:30", fridayAt(23, 30).AddDate(0, 0, -1), false},
		{"friday 21:59", fridayAt(21, 59), false},
		{"friday 22:00", fridayAt(22, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, s.IsActiveAt(tt.at))
		})
	}
}

func TestScheduleAllDayWhenNoWindow(t *testing.T) {
	s, err := NewSchedule([]Weekday{Monday}, nil, nil)
	require.NoError(t, err)

	// 2026-01-05 is a Monday.
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.True(t, s.IsActiveAt(monday))
	assert.True(t, s.IsActiveAt(monday.Add(23*time.Hour+59*time.Minute)))
	assert.False(t, s.IsActiveAt(monday.AddDate(0, 0, 1)))
}

func TestScheduleEmptyMaskNeverActive(t *testing.T) {
	var s Schedule
	assert.False(t, s.IsActiveAt(fridayAt(12, 0)))

	_, _, ok := s.NextActiveWindow(fridayAt(12, 0))
	assert.False(t, ok)
}

func TestScheduleValidation(t *testing.T) {
	start, _ := window(17, 0, 0, 0)

	_, err := NewSchedule([]Weekday{Friday}, start, nil)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidTimeRange, CodeOf(err))

	same := MustTimeOfDay(17, 0)
	_, err = NewSchedule([]Weekday{Friday}, &same, &same)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidTimeRange, CodeOf(err))

	// Overnight is legal, not an error.
	s, e := window(22, 0, 2, 0)
	sched, err := NewSchedule([]Weekday{Friday}, s, e)
	require.NoError(t, err)
	assert.True(t, sched.IsOvernight())
}

func TestSetActiveDaysIdempotent(t *testing.T) {
	var s Schedule
	days := []Weekday{Monday, Wednesday, Friday}

	s.SetActiveDays(days)
	first := s.DaysMask
	s.SetActiveDays(days)
	assert.Equal(t, first, s.DaysMask)
	assert.Equal(t, days, s.ActiveDays())
}

func TestNextActiveWindow(t *testing.T) {
	start, end := window(17, 0, 19, 0)
	s, err := NewSchedule([]Weekday{Friday}, start, end)
	require.NoError(t, err)

	// Before the window on Friday: the window later that day.
	ws, we, ok := s.NextActiveWindow(fridayAt(12, 0))
	require.True(t, ok)
	assert.Equal(t, fridayAt(17, 0), ws)
	assert.Equal(t, fridayAt(19, 0), we)

	// Inside the window: the current window.
	ws, _, ok = s.NextActiveWindow(fridayAt(18, 0))
	require.True(t, ok)
	assert.Equal(t, fridayAt(17, 0), ws)

	// After the window: next week's Friday.
	ws, _, ok = s.NextActiveWindow(fridayAt(20, 0))
	require.True(t, ok)
	assert.Equal(t, fridayAt(17, 0).AddDate(0, 0, 7), ws)
}

func TestNextActiveWindowOvernightInProgress(t *testing.T) {
	start, end := window(22, 0, 2, 0)
	s, err := NewSchedule([]Weekday{Friday}, start, end)
	require.NoError(t, err)

	// Saturday 01:00 is inside Friday's overnight window.
	saturday1am := fridayAt(0, 0).AddDate(0, 0, 1).Add(1 * time.Hour)
	ws, we, ok := s.NextActiveWindow(saturday1am)
	require.True(t, ok)
	assert.Equal(t, fridayAt(22, 0), ws)
	assert.Equal(t, fridayAt(0, 0).AddDate(0, 0, 1).Add(2*time.Hour), we)
}

func TestMatchesTimeFilter(t *testing.T) {
	lookahead := 60 * time.Minute
	start, end := window(17, 0, 19, 0)
	evening, err := NewSchedule([]Weekday{Friday}, start, end)
	require.NoError(t, err)

	start2, end2 := window(11, 30, 13, 0)
	lunch, err := NewSchedule([]Weekday{Friday}, start2, end2)
	require.NoError(t, err)

	tests := []struct {
		name    string
		s       Schedule
		f       TimeFilter
		at      time.Time
		matches bool
	}{
		{"now inside window", evening, TimeFilterNow, fridayAt(18, 0), true},
		{"now outside window", evening, TimeFilterNow, fridayAt(12, 0), false},
		{"soon within lookahead", evening, TimeFilterSoon, fridayAt(16, 30), true},
		{"soon beyond lookahead", evening, TimeFilterSoon, fridayAt(15, 0), false},
		{"soon while active", evening, TimeFilterSoon, fridayAt(18, 0), true},
		{"today ignores time", evening, TimeFilterToday, fridayAt(3, 0), true},
		{"today wrong day", evening, TimeFilterToday, fridayAt(3, 0).AddDate(0, 0, 1), false},
		{"tonight evening start", evening, TimeFilterTonight, fridayAt(12, 0), true},
		{"tonight lunch window", lunch, TimeFilterTonight, fridayAt(12, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.s.MatchesTimeFilter(tt.f, tt.at, lookahead))
		})
	}
}

func TestParseTimeFilter(t *testing.T) {
	f, err := ParseTimeFilter("")
	require.NoError(t, err)
	assert.Equal(t, TimeFilterNow, f)

	_, err = ParseTimeFilter("yesterday")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidTimeFilter, CodeOf(err))
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("22:30")
	require.NoError(t, err)
	assert.Equal(t, 22, tod.Hour())
	assert.Equal(t, 30, tod.Minute())
	assert.Equal(t, "22:30", tod.String())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("22h30")
	assert.Error(t, err)
}
