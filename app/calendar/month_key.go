package calendar

import (
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/aria7-op/School-MIS-sub029/app/remarks"
)

// GregorianLayout is the bucket key format for untagged payments.
const GregorianLayout = "2006-01"

// MonthKeyStrategy decides which month bucket a payment belongs to.
type MonthKeyStrategy interface {
	// MonthKey returns the bucket key, or ok=false when the strategy has no
	// opinion about the payment.
	MonthKey(p *models.Payment) (key string, ok bool)
}

// TaggedMonthKey uses the month tag from the payment remarks as-is.
type TaggedMonthKey struct{}

func (TaggedMonthKey) MonthKey(p *models.Payment) (string, bool) {
	return remarks.MonthName(p.RemarksText())
}

// AcademicMonthKey accepts only tags that name a month of the calendar.
type AcademicMonthKey struct {
	Calendar *AcademicCalendar
}

func (s AcademicMonthKey) MonthKey(p *models.Payment) (string, bool) {
	name, ok := remarks.MonthName(p.RemarksText())
	if !ok || !s.Calendar.Contains(name) {
		return "", false
	}
	return name, true
}

// GregorianMonthKey buckets by the UTC year and month of the payment date.
type GregorianMonthKey struct{}

func (GregorianMonthKey) MonthKey(p *models.Payment) (string, bool) {
	return GregorianKey(p.PaymentDate), true
}

// FallbackMonthKey tries Primary and falls back to Fallback.
type FallbackMonthKey struct {
	Primary  MonthKeyStrategy
	Fallback MonthKeyStrategy
}

func (s FallbackMonthKey) MonthKey(p *models.Payment) (string, bool) {
	if key, ok := s.Primary.MonthKey(p); ok {
		return key, true
	}
	return s.Fallback.MonthKey(p)
}

// TagOrGregorian is the bucketing used by payment aggregation.
func TagOrGregorian() MonthKeyStrategy {
	return FallbackMonthKey{Primary: TaggedMonthKey{}, Fallback: GregorianMonthKey{}}
}

// GregorianKey formats t as YYYY-MM in UTC.
func GregorianKey(t time.Time) string {
	return t.UTC().Format(GregorianLayout)
}

// RecentGregorianKeys returns n YYYY-MM keys ending at the month of now,
// newest first. Keys are taken in UTC so they line up with GregorianKey.
func RecentGregorianKeys(now time.Time, n int) []string {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, first.AddDate(0, -i, 0).Format(GregorianLayout))
	}
	return keys
}
