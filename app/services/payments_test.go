package services

import (
	"context"
	"testing"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/database/memory"
	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPaymentsBuckets(t *testing.T) {
	store := memory.New()
	student := addStudent(store, 1000)
	svc := newTestService(store)

	may := time.Date(2025, time.May, 10, 8, 0, 0, 0, time.UTC)
	june := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)
	july := time.Date(2025, time.July, 20, 8, 0, 0, 0, time.UTC)

	addPayment(store, student, 1000, tagged("Hamal"), paidOn(may), withDiscount(100))
	addPayment(store, student, 600, withRemarks("not json"), paidOn(june), withFine(50))
	addPayment(store, student, 400, withRemarks(`{"month":"Hamal"}`), paidOn(july), withStatus(models.PaymentPartiallyPaid))
	addPayment(store, student, 900, tagged("Saur"), paidOn(july), withStatus(models.PaymentUnpaid))

	totals, err := svc.TotalPayments(context.Background(), student.ID, schoolID, models.PaymentFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, totals.TotalPayments)
	assertAmount(t, "2000", totals.TotalPaid)
	assertAmount(t, "100", totals.TotalDiscount)
	assertAmount(t, "50", totals.TotalFine)
	assertAmount(t, "1950", totals.NetPaid)

	require.Contains(t, totals.PaymentsByMonth, "Hamal")
	hamal := totals.PaymentsByMonth["Hamal"]
	assert.Equal(t, 2, hamal.Count)
	assertAmount(t, "1400", hamal.Total)
	assert.True(t, hamal.IsAcademicMonth)

	require.Contains(t, totals.PaymentsByMonth, "2025-06")
	assert.False(t, totals.PaymentsByMonth["2025-06"].IsAcademicMonth)
	assert.NotContains(t, totals.PaymentsByMonth, "Saur")

	assert.Equal(t, []string{"Hamal"}, totals.PaidMonths)

	require.NotNil(t, totals.LatestPayment)
	assertAmount(t, "400", totals.LatestPayment.Amount)
	if assert.NotNil(t, totals.LatestPayment.Month) {
		assert.Equal(t, "Hamal", *totals.LatestPayment.Month)
	}
}

func TestTotalPaymentsMalformedRemarksFallBackToGregorian(t *testing.T) {
	store := memory.New()
	student := addStudent(store, 1000)
	svc := newTestService(store)

	addPayment(store, student, 250, withRemarks("not json"), paidOn(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)))
	addPayment(store, student, 250, withRemarks(`{"paymentMonth":`), paidOn(time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)))

	totals, err := svc.TotalPayments(context.Background(), student.ID, schoolID, models.PaymentFilter{})
	require.NoError(t, err)
	require.Contains(t, totals.PaymentsByMonth, "2025-03")
	assert.Equal(t, 2, totals.PaymentsByMonth["2025-03"].Count)
	assert.Empty(t, totals.PaidMonths)
	assert.Nil(t, totals.LatestPayment.Month)
}

func TestTotalPaymentsFilters(t *testing.T) {
	store := memory.New()
	student := addStudent(store, 1000)
	svc := newTestService(store)

	addPayment(store, student, 100, paidOn(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)))
	addPayment(store, student, 200, paidOn(time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC)))
	addPayment(store, student, 300, paidOn(time.Date(2025, time.April, 6, 0, 0, 0, 0, time.UTC)), withStatus(models.PaymentUnpaid))

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	totals, err := svc.TotalPayments(context.Background(), student.ID, schoolID, models.PaymentFilter{From: &from})
	require.NoError(t, err)
	assertAmount(t, "200", totals.TotalPaid)

	totals, err = svc.TotalPayments(context.Background(), student.ID, schoolID, models.PaymentFilter{
		Statuses: []models.PaymentStatus{models.PaymentUnpaid},
	})
	require.NoError(t, err)
	assertAmount(t, "300", totals.TotalPaid)
}

func TestTotalPaymentsEmpty(t *testing.T) {
	store := memory.New()
	student := addStudent(store, 1000)
	svc := newTestService(store)

	totals, err := svc.TotalPayments(context.Background(), student.ID, schoolID, models.PaymentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, totals.TotalPayments)
	assertAmount(t, "0", totals.NetPaid)
	assert.Nil(t, totals.LatestPayment)
	assert.Empty(t, totals.PaymentsByMonth)
}
