package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentIndex(t *testing.T) {
	cal := MustSolar()

	tests := []struct {
		month time.Month
		want  int
	}{
		{time.January, 10},
		{time.February, 11},
		{time.March, 0},
		{time.April, 1},
		{time.August, 5},
		{time.December, 9},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			now := time.Date(2025, tt.month, 15, 10, 0, 0, 0, time.UTC)
			assert.Equal(t, tt.want, cal.CurrentIndex(now))
		})
	}
}

func TestCurrentIndexCustomOffset(t *testing.T) {
	cal, err := Solar(0)
	require.NoError(t, err)
	assert.Equal(t, 0, cal.CurrentIndex(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 11, cal.CurrentIndex(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthsOverdue(t *testing.T) {
	assert.Equal(t, 10, MonthsOverdue(5, 7))
	assert.Equal(t, 2, MonthsOverdue(5, 3))
	assert.Equal(t, 0, MonthsOverdue(5, 5))
	assert.Equal(t, 11, MonthsOverdue(0, 1))
	assert.Equal(t, 11, MonthsOverdue(11, 0))

	for current := 0; current < MonthsInYear; current++ {
		for index := 0; index < MonthsInYear; index++ {
			got := MonthsOverdue(current, index)
			assert.GreaterOrEqual(t, got, 0)
			assert.Less(t, got, MonthsInYear)
		}
	}
}

func TestNewRejectsBadCalendars(t *testing.T) {
	_, err := New(SolarMonths[:11], 2)
	assert.Error(t, err)

	_, err = Solar(12)
	assert.Error(t, err)

	dup := append([]string(nil), SolarMonths...)
	dup[11] = "Hamal"
	_, err = New(dup, 2)
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	cal := MustSolar()
	i, ok := cal.Index("Hoot")
	assert.True(t, ok)
	assert.Equal(t, 11, i)

	_, ok = cal.Index("January")
	assert.False(t, ok)
	assert.Equal(t, SolarMonths, cal.Months())
}
