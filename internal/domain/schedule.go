package domain

import (
	"fmt"
	"time"
)

// Weekday is a day of the week with Monday = 0, matching the schedule
// bitmask layout.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// IsValid checks if the weekday is in range
func (w Weekday) IsValid() bool {
	return w >= Monday && w <= Sunday
}

// Prev returns the preceding weekday
func (w Weekday) Prev() Weekday {
	return (w + 6) % 7
}

// ParseWeekday parses a lowercase weekday name
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if name == s {
			return Weekday(i), nil
		}
	}
	return 0, NewValidationError("INVALID_WEEKDAY", fmt.Sprintf("unknown weekday %q", s))
}

// WeekdayOf maps a time to the Monday-based weekday of its wall clock.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// TimeOfDay is a wall-clock time with no date component, stored as
// minutes since midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from hour and minute
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, NewValidationError("INVALID_TIME_OF_DAY", fmt.Sprintf("invalid time %02d:%02d", hour, minute))
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustTimeOfDay is NewTimeOfDay that panics on invalid input
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay parses "15:04" formatted times
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, NewValidationError("INVALID_TIME_OF_DAY", fmt.Sprintf("invalid time %q, expected HH:MM", s))
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// Hour returns the hour component
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Duration returns the offset from midnight
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Minute
}

// minutesOf extracts the wall-clock minutes since midnight of an instant
func minutesOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// TimeFilter is a feed time-filter keyword.
type TimeFilter string

const (
	TimeFilterNow     TimeFilter = "now"
	TimeFilterSoon    TimeFilter = "soon"
	TimeFilterToday   TimeFilter = "today"
	TimeFilterTonight TimeFilter = "tonight"
)

// ParseTimeFilter parses a time-filter keyword; empty defaults to "now".
func ParseTimeFilter(s string) (TimeFilter, error) {
	if s == "" {
		return TimeFilterNow, nil
	}
	f := TimeFilter(s)
	switch f {
	case TimeFilterNow, TimeFilterSoon, TimeFilterToday, TimeFilterTonight:
		return f, nil
	}
	return "", NewValidationError(CodeInvalidTimeFilter, fmt.Sprintf("unknown time filter %q", s))
}

// Schedule encodes a deal's recurring weekly availability: a 7-bit day
// mask (bit 0 = Monday) plus an optional start/end wall-clock window.
// A window whose start is later than its end crosses midnight; such a
// window belongs to the mask bit of the day it starts on, so a deal
// scheduled Friday 22:00-02:00 is still active early Saturday morning.
type Schedule struct {
	DaysMask  uint8      `json:"days_mask"`
	StartTime *TimeOfDay `json:"start_time,omitempty"`
	EndTime   *TimeOfDay `json:"end_time,omitempty"`
}

// NewSchedule builds a schedule from an explicit day list and an
// optional time window. Start and end must be both set or both unset.
func NewSchedule(days []Weekday, start, end *TimeOfDay) (Schedule, error) {
	s := Schedule{StartTime: start, EndTime: end}
	s.SetActiveDays(days)
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// Validate checks the schedule's invariants
func (s Schedule) Validate() error {
	if (s.StartTime == nil) != (s.EndTime == nil) {
		return NewValidationError(CodeInvalidTimeRange, "start and end time must both be set or both be unset")
	}
	if s.StartTime != nil && *s.StartTime == *s.EndTime {
		return NewValidationError(CodeInvalidTimeRange, "start and end time must differ")
	}
	if s.DaysMask > 0x7F {
		return NewValidationError("INVALID_DAYS_MASK", "days mask has bits beyond the 7 weekdays")
	}
	return nil
}

// SetActiveDays rebuilds the day mask from scratch. Calling it twice
// with the same list yields the same mask.
func (s *Schedule) SetActiveDays(days []Weekday) {
	s.DaysMask = 0
	for _, d := range days {
		if d.IsValid() {
			s.DaysMask |= 1 << uint(d)
		}
	}
}

// ActiveDays returns the list of days derived from the mask
func (s Schedule) ActiveDays() []Weekday {
	days := make([]Weekday, 0, 7)
	for d := Monday; d <= Sunday; d++ {
		if s.DayActive(d) {
			days = append(days, d)
		}
	}
	return days
}

// DayActive reports whether the mask bit for d is set
func (s Schedule) DayActive(d Weekday) bool {
	return d.IsValid() && s.DaysMask&(1<<uint(d)) != 0
}

// HasWindow reports whether a time-of-day window is set
func (s Schedule) HasWindow() bool {
	return s.StartTime != nil && s.EndTime != nil
}

// IsOvernight reports whether the window crosses midnight
func (s Schedule) IsOvernight() bool {
	return s.HasWindow() && *s.StartTime > *s.EndTime
}

// IsActiveAt reports whether the schedule is active at the given local
// wall-clock instant. The caller is responsible for converting the
// instant to the relevant local time zone.
func (s Schedule) IsActiveAt(t time.Time) bool {
	if s.DaysMask == 0 {
		return false
	}

	day := WeekdayOf(t)
	if !s.HasWindow() {
		return s.DayActive(day)
	}

	tod := minutesOf(t)
	start, end := *s.StartTime, *s.EndTime

	if start <= end {
		return s.DayActive(day) && tod >= start && tod < end
	}

	// Overnight window: governed by the mask bit of the day the window
	// starts on.
	if s.DayActive(day) && tod >= start {
		return true
	}
	return s.DayActive(day.Prev()) && tod < end
}

// NextActiveWindow returns the earliest active window whose end is
// after the given instant, scanning forward at most 7 days. If the
// instant is inside a window, that window is returned. Reports false
// when the mask is empty.
func (s Schedule) NextActiveWindow(from time.Time) (time.Time, time.Time, bool) {
	if s.DaysMask == 0 {
		return time.Time{}, time.Time{}, false
	}

	// Offset -1 catches an overnight window that started the previous day.
	for offset := -1; offset <= 7; offset++ {
		dayStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location()).
			AddDate(0, 0, offset)
		if !s.DayActive(WeekdayOf(dayStart)) {
			continue
		}

		var ws, we time.Time
		switch {
		case !s.HasWindow():
			ws = dayStart
			we = dayStart.AddDate(0, 0, 1)
		case s.IsOvernight():
			ws = dayStart.Add(s.StartTime.Duration())
			we = dayStart.AddDate(0, 0, 1).Add(s.EndTime.Duration())
		default:
			ws = dayStart.Add(s.StartTime.Duration())
			we = dayStart.Add(s.EndTime.Duration())
		}

		if we.After(from) {
			return ws, we, true
		}
	}

	return time.Time{}, time.Time{}, false
}

// MatchesTimeFilter evaluates a feed time-filter keyword against the
// schedule. "soon" means active now or within the lookahead window.
func (s Schedule) MatchesTimeFilter(f TimeFilter, now time.Time, soonLookahead time.Duration) bool {
	switch f {
	case TimeFilterNow:
		return s.IsActiveAt(now)
	case TimeFilterSoon:
		if s.IsActiveAt(now) {
			return true
		}
		ws, _, ok := s.NextActiveWindow(now)
		return ok && !ws.After(now.Add(soonLookahead))
	case TimeFilterToday:
		return s.DayActive(WeekdayOf(now))
	case TimeFilterTonight:
		if !s.DayActive(WeekdayOf(now)) {
			return false
		}
		return s.StartTime == nil || *s.StartTime >= MustTimeOfDay(17, 0)
	}
	return false
}
