package domain

import (
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

// Day is a calendar date with no time-of-day or zone component.
// All calendar keys in the service go through this type instead of
// ad hoc formatted strings.
type Day struct {
	t time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

func Today() Day {
	return DayOf(time.Now())
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return d.t.Format(DayLayout)
}

func (d Day) Time() time.Time {
	return d.t
}

func (d Day) IsZero() bool {
	return d.t.IsZero()
}

func (d Day) Next() Day {
	return Day{t: d.t.AddDate(0, 0, 1)}
}

func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

func (d Day) AddYears(n int) Day {
	return Day{t: d.t.AddDate(n, 0, 0)}
}

func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

func (d Day) After(other Day) bool {
	return d.t.After(other.t)
}

func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// DaysUntil returns the number of calendar days from d to other.
// Negative when other is earlier.
func (d Day) DaysUntil(other Day) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// Horizon bounds how far into the past and future a calendar write
// may reach, rejecting unbounded growth of the override table.
type Horizon struct {
	PastDays    int
	FutureYears int
}

var DefaultHorizon = Horizon{PastDays: 1, FutureYears: 2}

func (h Horizon) Contains(today, d Day) bool {
	earliest := today.AddDays(-h.PastDays)
	latest := today.AddYears(h.FutureYears)
	return !d.Before(earliest) && !d.After(latest)
}
