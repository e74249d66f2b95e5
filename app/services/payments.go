package services

import (
	"context"
	"fmt"

	"github.com/aria7-op/School-MIS-sub029/app/calendar"
	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/aria7-op/School-MIS-sub029/app/remarks"
	"github.com/shopspring/decimal"
)

// TotalPayments aggregates a student's payments. An empty status list means
// PAID and PARTIALLY_PAID.
func (s *FeeService) TotalPayments(ctx context.Context, studentID, schoolID string, filter models.PaymentFilter) (*models.PaymentTotals, error) {
	if len(filter.Statuses) == 0 {
		filter.Statuses = models.QualifyingStatuses
	}

	payments, err := s.store.ListPayments(ctx, studentID, schoolID, filter)
	if err != nil {
		return nil, fmt.Errorf("list payments for student %s: %w", studentID, err)
	}
	return aggregatePayments(studentID, payments, calendar.TagOrGregorian()), nil
}

// aggregatePayments expects payments newest first.
func aggregatePayments(studentID string, payments []*models.Payment, keys calendar.MonthKeyStrategy) *models.PaymentTotals {
	totals := &models.PaymentTotals{
		StudentID:       studentID,
		TotalPayments:   len(payments),
		TotalPaid:       decimal.Zero,
		TotalDiscount:   decimal.Zero,
		TotalFine:       decimal.Zero,
		PaymentsByMonth: make(map[string]*models.MonthBucket),
		PaidMonths:      []string{},
	}

	seen := make(map[string]bool)
	for _, p := range payments {
		totals.TotalPaid = totals.TotalPaid.Add(p.Total)
		totals.TotalDiscount = totals.TotalDiscount.Add(p.Discount)
		totals.TotalFine = totals.TotalFine.Add(p.Fine)

		tag, tagged := remarks.MonthName(p.RemarksText())
		if tagged && !seen[tag] {
			seen[tag] = true
			totals.PaidMonths = append(totals.PaidMonths, tag)
		}

		key, ok := keys.MonthKey(p)
		if !ok {
			continue
		}
		bucket, exists := totals.PaymentsByMonth[key]
		if !exists {
			bucket = &models.MonthBucket{
				Total:           decimal.Zero,
				Payments:        []models.PaymentSummary{},
				IsAcademicMonth: tagged && key == tag,
			}
			totals.PaymentsByMonth[key] = bucket
		}
		bucket.Count++
		bucket.Total = bucket.Total.Add(p.Total)
		bucket.Payments = append(bucket.Payments, summarize(p))
	}

	totals.NetPaid = totals.TotalPaid.Sub(totals.TotalDiscount).Add(totals.TotalFine)
	if len(payments) > 0 {
		latest := summarize(payments[0])
		totals.LatestPayment = &latest
	}
	return totals
}

func summarize(p *models.Payment) models.PaymentSummary {
	summary := models.PaymentSummary{
		ID:     p.ID,
		Amount: p.Total,
		Date:   p.PaymentDate,
		Status: p.Status,
		Method: p.Method,
	}
	if month, ok := remarks.MonthName(p.RemarksText()); ok {
		summary.Month = &month
	}
	return summary
}
