package calendar

import "time"

const dateLayout = "2006-01-02"

// Calendar is a business-day calendar: weekends plus an explicit holiday set.
// It is immutable after construction.
type Calendar struct {
	holidays map[string]struct{}
}

// New builds a calendar from a list of holiday dates.
func New(holidays ...time.Time) *Calendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Format(dateLayout)] = struct{}{}
	}
	return &Calendar{holidays: set}
}

// Parse builds a calendar from YYYY-MM-DD strings.
func Parse(holidays []string) (*Calendar, error) {
	dates := make([]time.Time, 0, len(holidays))
	for _, s := range holidays {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, t)
	}
	return New(dates...), nil
}

// HolidayCount returns the number of configured holidays.
func (c *Calendar) HolidayCount() int {
	return len(c.holidays)
}

// IsBusinessDay checks weekends and the holiday set.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	_, ok := c.holidays[t.Format(dateLayout)]
	return !ok
}

// Adjust applies Modified Following.
func (c *Calendar) Adjust(t time.Time) time.Time {
	origMonth := t.Month()
	for !c.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !c.IsBusinessDay(t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func (c *Calendar) AddBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if c.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

// BusinessDaysBetween counts business days in (start, end].
func (c *Calendar) BusinessDaysBetween(start, end time.Time) int {
	n := 0
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsBusinessDay(d) {
			n++
		}
	}
	return n
}
