package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/calendar"
	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/shopspring/decimal"
)

const noDuesMessage = "No dues"

// Dues classifies every month of the academic calendar as paid, partially paid
// or unpaid for a student who owes money. Payments without a month tag count
// towards the balance but are not attributed to any month.
func (s *FeeService) Dues(ctx context.Context, studentID, schoolID string) (*models.DuesReport, error) {
	balance, err := s.Balance(ctx, studentID, schoolID)
	if err != nil {
		return nil, err
	}

	if balance.Balance.Status != models.BalanceDue {
		return &models.DuesReport{
			StudentID:            balance.StudentID,
			StudentName:          balance.StudentName,
			HasDues:              false,
			TotalDue:             decimal.Zero,
			MonthlyExpected:      balance.Expected.Total,
			PaidMonthTags:        balance.Paid.PaidMonths,
			PaidMonths:           []models.MonthDues{},
			PartiallyPaidMonths:  []models.MonthDues{},
			UnpaidMonths:         []models.MonthDues{},
			UnpaidCalendarMonths: []models.CalendarMonthDue{},
			UnassignedPayments:   decimal.Zero,
			Message:              noDuesMessage,
		}, nil
	}

	payments, err := s.store.ListPayments(ctx, studentID, schoolID, models.PaymentFilter{
		Statuses: models.QualifyingStatuses,
	})
	if err != nil {
		return nil, fmt.Errorf("list payments for student %s: %w", studentID, err)
	}

	now := s.now()
	monthly := balance.Expected.Total
	paidByMonth, unassigned := attributeToMonths(payments, calendar.AcademicMonthKey{Calendar: s.calendar})

	report := &models.DuesReport{
		StudentID:            balance.StudentID,
		StudentName:          balance.StudentName,
		HasDues:              true,
		TotalDue:             balance.Balance.DueAmount,
		MonthlyExpected:      monthly,
		PaidMonthTags:        balance.Paid.PaidMonths,
		PaidMonths:           []models.MonthDues{},
		PartiallyPaidMonths:  []models.MonthDues{},
		UnpaidMonths:         []models.MonthDues{},
		UnpaidCalendarMonths: unpaidCalendarMonths(now, monthly, balance.Paid.PaymentsByMonth),
		UnassignedPayments:   unassigned,
	}

	current := s.calendar.CurrentIndex(now)
	for index, name := range s.calendar.Months() {
		paid, ok := paidByMonth[name]
		if !ok {
			paid = decimal.Zero
		}
		month, pct := classifyMonth(name, index, current, monthly, paid)

		switch {
		case pct.GreaterThanOrEqual(hundred):
			report.PaidMonths = append(report.PaidMonths, month)
		case pct.IsPositive():
			report.PartiallyPaidMonths = append(report.PartiallyPaidMonths, month)
		default:
			report.UnpaidMonths = append(report.UnpaidMonths, month)
		}
	}

	report.MonthsWithoutPayment = len(report.UnpaidMonths)
	report.TotalUnpaidMonths = max(len(report.UnpaidMonths), len(report.UnpaidCalendarMonths))
	report.Summary = &models.DuesSummary{
		FullyPaid:     len(report.PaidMonths),
		PartiallyPaid: len(report.PartiallyPaidMonths),
		Unpaid:        len(report.UnpaidMonths),
		Total:         calendar.MonthsInYear,
	}
	return report, nil
}

// attributeToMonths sums payment totals per academic month. Totals of payments
// the strategy cannot place are returned as unassigned.
func attributeToMonths(payments []*models.Payment, keys calendar.MonthKeyStrategy) (map[string]decimal.Decimal, decimal.Decimal) {
	byMonth := make(map[string]decimal.Decimal)
	unassigned := decimal.Zero

	for _, p := range payments {
		name, ok := keys.MonthKey(p)
		if !ok {
			unassigned = unassigned.Add(p.Total)
			continue
		}
		byMonth[name] = byMonth[name].Add(p.Total)
	}
	return byMonth, unassigned
}

// classifyMonth returns the month view and its unrounded payment percentage.
func classifyMonth(name string, index, current int, monthly, paid decimal.Decimal) (models.MonthDues, decimal.Decimal) {
	pct := decimal.Zero
	if monthly.IsPositive() {
		pct = paid.Div(monthly).Mul(hundred)
	}

	remaining := monthly.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	overdue := calendar.MonthsOverdue(current, index)
	return models.MonthDues{
		Month:             name,
		MonthNumber:       index + 1,
		ExpectedAmount:    monthly,
		PaidAmount:        paid,
		RemainingAmount:   remaining,
		PaymentPercentage: pct.Round(2),
		MonthsOverdue:     overdue,
		IsOverdue:         overdue > 0 && paid.IsZero(),
	}, pct
}

// unpaidCalendarMonths lists the last twelve Gregorian months that have no
// Gregorian-keyed payment bucket. monthsOverdue is the linear distance from now.
func unpaidCalendarMonths(now time.Time, monthly decimal.Decimal, buckets map[string]*models.MonthBucket) []models.CalendarMonthDue {
	unpaid := []models.CalendarMonthDue{}
	for i, key := range calendar.RecentGregorianKeys(now, calendar.MonthsInYear) {
		if _, ok := buckets[key]; ok {
			continue
		}
		unpaid = append(unpaid, models.CalendarMonthDue{
			Month:          key,
			ExpectedAmount: monthly,
			MonthsOverdue:  i,
		})
	}
	return unpaid
}
