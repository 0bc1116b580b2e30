package booking

import (
	"errors"
	"fmt"
	"time"
)

// Date is a calendar day. Slots never span midnight, so the day plus two
// minute-of-day marks fully describe an interval.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return other.Before(d)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// MinuteOfDay is a time of day at minute granularity, counted from
// midnight (so 10:30 is 630).
type MinuteOfDay int

func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return MinuteOfDay(t.Hour()*60 + t.Minute()), nil
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

func (m MinuteOfDay) Minutes() int {
	return int(m)
}

// TimeSlot is a half-open interval [start, end) on a single day.
// Back-to-back slots sharing a boundary minute do not overlap.
type TimeSlot struct {
	date  Date
	start MinuteOfDay
	end   MinuteOfDay
}

var ErrSlotOrder = errors.New("slot start must be before end")

func NewTimeSlot(date Date, start, end MinuteOfDay) (TimeSlot, error) {
	if start >= end {
		return TimeSlot{}, ErrSlotOrder
	}
	return TimeSlot{date: date, start: start, end: end}, nil
}

func (ts TimeSlot) Date() Date {
	return ts.date
}

func (ts TimeSlot) Start() MinuteOfDay {
	return ts.start
}

func (ts TimeSlot) End() MinuteOfDay {
	return ts.end
}

func (ts TimeSlot) DurationMinutes() int {
	return int(ts.end - ts.start)
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	if ts.date != other.date {
		return false
	}
	return ts.start < other.end && other.start < ts.end
}

func (ts TimeSlot) Equal(other TimeSlot) bool {
	return ts == other
}

func (ts TimeSlot) IsZero() bool {
	return ts == TimeSlot{}
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", ts.date, ts.start, ts.end)
}
