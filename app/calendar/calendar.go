// Package calendar models the named 12-month academic calendar used for dues
// tracking and the strategies that map a payment onto a month key.
package calendar

import (
	"fmt"
	"time"
)

// MonthsInYear is the length of the academic cycle.
const MonthsInYear = 12

// SolarMonths are the months of the solar hijri calendar in academic order.
var SolarMonths = []string{
	"Hamal", "Saur", "Jawza", "Saratan", "Asad", "Sunbula",
	"Mizan", "Aqrab", "Qaws", "Jadi", "Dalw", "Hoot",
}

// DefaultStartOffset anchors the first academic month on the third Gregorian month.
const DefaultStartOffset = 2

// AcademicCalendar is an ordered cycle of month names. StartOffset is the
// zero-based Gregorian month on which the first academic month begins.
type AcademicCalendar struct {
	months      []string
	index       map[string]int
	startOffset int
}

// New builds a calendar from exactly twelve distinct month names.
func New(months []string, startOffset int) (*AcademicCalendar, error) {
	if len(months) != MonthsInYear {
		return nil, fmt.Errorf("academic calendar needs %d months, got %d", MonthsInYear, len(months))
	}
	if startOffset < 0 || startOffset >= MonthsInYear {
		return nil, fmt.Errorf("start offset %d out of range 0..%d", startOffset, MonthsInYear-1)
	}

	index := make(map[string]int, len(months))
	for i, name := range months {
		if name == "" {
			return nil, fmt.Errorf("month %d has no name", i+1)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate month name %q", name)
		}
		index[name] = i
	}

	return &AcademicCalendar{
		months:      append([]string(nil), months...),
		index:       index,
		startOffset: startOffset,
	}, nil
}

// Solar returns the solar hijri calendar with the given start offset.
func Solar(startOffset int) (*AcademicCalendar, error) {
	return New(SolarMonths, startOffset)
}

// MustSolar is Solar with the default offset.
func MustSolar() *AcademicCalendar {
	c, err := Solar(DefaultStartOffset)
	if err != nil {
		panic(err)
	}
	return c
}

// Months returns the month names in academic order.
func (c *AcademicCalendar) Months() []string {
	return append([]string(nil), c.months...)
}

// StartOffset returns the configured Gregorian anchor.
func (c *AcademicCalendar) StartOffset() int {
	return c.startOffset
}

// Index returns the zero-based position of name in the cycle.
func (c *AcademicCalendar) Index(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// Contains reports whether name is one of the calendar's months.
func (c *AcademicCalendar) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// CurrentIndex maps the Gregorian month of t onto the academic cycle.
func (c *AcademicCalendar) CurrentIndex(t time.Time) int {
	gregorian := int(t.Month()) - 1
	return (gregorian - c.startOffset + MonthsInYear) % MonthsInYear
}

// MonthsOverdue is the cyclical distance from month index back to current.
// It is zero for the current month and never negative.
func MonthsOverdue(current, index int) int {
	if current >= index {
		return current - index
	}
	return (MonthsInYear - index) + current
}
