package calendar

import (
	"testing"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/stretchr/testify/assert"
)

func payment(remarks string, date time.Time) *models.Payment {
	p := &models.Payment{ID: "p1", PaymentDate: date}
	if remarks != "" {
		p.Remarks = &remarks
	}
	return p
}

func TestTagOrGregorian(t *testing.T) {
	date := time.Date(2025, time.April, 3, 9, 0, 0, 0, time.UTC)
	strategy := TagOrGregorian()

	key, ok := strategy.MonthKey(payment(`{"paymentMonth":"Hamal"}`, date))
	assert.True(t, ok)
	assert.Equal(t, "Hamal", key)

	key, ok = strategy.MonthKey(payment("not json", date))
	assert.True(t, ok)
	assert.Equal(t, "2025-04", key)

	key, _ = strategy.MonthKey(payment("", date))
	assert.Equal(t, "2025-04", key)
}

func TestGregorianKeyUsesUTC(t *testing.T) {
	kabul := time.FixedZone("AFT", 4*3600+1800)
	// 1 May 02:00 in Kabul is still 30 April in UTC
	date := time.Date(2025, time.May, 1, 2, 0, 0, 0, kabul)
	assert.Equal(t, "2025-04", GregorianKey(date))
}

func TestAcademicMonthKeyRejectsUnknownTags(t *testing.T) {
	strategy := AcademicMonthKey{Calendar: MustSolar()}
	date := time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC)

	_, ok := strategy.MonthKey(payment(`{"month":"April"}`, date))
	assert.False(t, ok)

	key, ok := strategy.MonthKey(payment(`{"month":"Saur"}`, date))
	assert.True(t, ok)
	assert.Equal(t, "Saur", key)
}

func TestRecentGregorianKeys(t *testing.T) {
	now := time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC)
	keys := RecentGregorianKeys(now, 12)

	assert.Len(t, keys, 12)
	assert.Equal(t, "2025-03", keys[0])
	assert.Equal(t, "2025-02", keys[1])
	assert.Equal(t, "2024-04", keys[11])
}

func TestRecentGregorianKeysUseUTCMonth(t *testing.T) {
	kabul := time.FixedZone("AFT", 4*60*60+30*60)
	now := time.Date(2025, time.September, 1, 2, 0, 0, 0, kabul)
	keys := RecentGregorianKeys(now, 12)

	assert.Equal(t, "2025-08", keys[0])
	assert.Equal(t, "2024-09", keys[11])
	assert.Equal(t, GregorianKey(now), keys[0])
}
