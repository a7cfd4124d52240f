package appointments

import (
	"fmt"
	"math"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// Default working day used when a user has not published availability
const (
	BusinessDayStart = 9 * 60
	BusinessDayEnd   = 17 * 60
	minutesPerDay    = 24 * 60
)

// AvailabilitySlot is a weekly recurring window, in UTC minutes of day
type AvailabilitySlot struct {
	ID          string `validate:"required,uuid4"`
	UserID      string `validate:"required,uuid4"`
	DayOfWeek   int    `validate:"gte=0,lte=6"`
	StartMinute int    `validate:"gte=0,lt=1440"`
	EndMinute   int    `validate:"gt=0,lte=1440,gtfield=StartMinute"`
}

// Validate for validating AvailabilitySlot struct
func (s *AvailabilitySlot) Validate() error {
	return validators.ValidateStruct(s)
}

// Covers reports whether the slot contains [start, end), which must fall on one UTC day
func (s *AvailabilitySlot) Covers(start, end time.Time) bool {
	start, end = start.UTC(), end.UTC()
	if int(start.Weekday()) != s.DayOfWeek || !sameDay(start, end) {
		return false
	}
	return minuteOfDay(start) >= s.StartMinute && endMinute(start, end) <= s.EndMinute
}

// WithinBusinessHours reports whether [start, end) is on a UTC weekday between 09:00 and 17:00
func WithinBusinessHours(start, end time.Time) bool {
	start, end = start.UTC(), end.UTC()
	if isWeekend(start) || !sameDay(start, end) {
		return false
	}
	return minuteOfDay(start) >= BusinessDayStart && endMinute(start, end) <= BusinessDayEnd
}

// Available applies the availability rule to a window with no conflicts:
// a published slot must cover it, or with no slots it must be in business hours.
func Available(slots []*AvailabilitySlot, start, end time.Time) bool {
	if len(slots) == 0 {
		return WithinBusinessHours(start, end)
	}
	for _, slot := range slots {
		if slot.Covers(start, end) {
			return true
		}
	}
	return false
}

// AvailabilityResult answers CheckAvailability
type AvailabilityResult struct {
	UserID    string
	Start     time.Time
	End       time.Time
	Available bool
	Conflicts []Conflict
}

// SlotQuery asks for free windows shared by several users
type SlotQuery struct {
	UserIDs           []string `validate:"required,min=1,max=20,dive,uuid4"`
	From              time.Time
	To                time.Time
	Duration          time.Duration
	BusinessHoursOnly bool
	ExcludeWeekends   bool
}

// Maximum search window for FindSlots
const MaxSlotSearchRange = 31 * 24 * time.Hour

// Validate checks the users, the range and the duration
func (q *SlotQuery) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	if err := ValidateWindow(q.From, q.To); err != nil {
		return err
	}
	if q.To.Sub(q.From) > MaxSlotSearchRange {
		return fmt.Errorf("%w: search range exceeds %s", apperr.ErrValidation, MaxSlotSearchRange)
	}
	if q.Duration < 15*time.Minute || q.Duration > 12*time.Hour {
		return fmt.Errorf("%w: duration must be between 15 minutes and 12 hours", apperr.ErrValidation)
	}
	return nil
}

// TimeSlot is a free window
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// CandidateSlots steps through the query range by Duration and keeps the windows
// that overlap none of busy and pass the hour and weekend filters.
func CandidateSlots(q *SlotQuery, busy []TimeSlot) []TimeSlot {
	var slots []TimeSlot
	for start := q.From; !start.Add(q.Duration).After(q.To); start = start.Add(q.Duration) {
		end := start.Add(q.Duration)
		if q.ExcludeWeekends && isWeekend(start.UTC()) {
			continue
		}
		if q.BusinessHoursOnly && !WithinBusinessHours(start, end) {
			continue
		}
		free := true
		for _, b := range busy {
			if Overlaps(b.Start, b.End, start, end) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, TimeSlot{Start: start, End: end})
		}
	}
	return slots
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// endMinute measures end from start's day so that midnight counts as 1440.
func endMinute(start, end time.Time) int {
	return minuteOfDay(start) + int(math.Ceil(end.Sub(start).Minutes()))
}

// sameDay treats an end at exactly midnight as belonging to the previous day.
func sameDay(start, end time.Time) bool {
	if end.Sub(start) > minutesPerDay*time.Minute {
		return false
	}
	endDay := end
	if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 && end.Nanosecond() == 0 {
		endDay = end.Add(-time.Nanosecond)
	}
	y1, m1, d1 := start.Date()
	y2, m2, d2 := endDay.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
