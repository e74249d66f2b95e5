package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ReconcilePaymentStatuses re-derives the status of every pending, unpaid or
// partially paid payment of a school and persists the ones that changed.
//
// A past due date turns UNPAID and PENDING into OVERDUE. The student's balance
// then takes precedence: net payments below the monthly entitlement make the
// payment PARTIALLY_PAID, at or above it PAID. Payments whose balance or update
// fails are logged and skipped.
func (s *FeeService) ReconcilePaymentStatuses(ctx context.Context, schoolID string) (*models.ReconcileResult, error) {
	payments, err := s.store.ListPaymentsForSchool(ctx, schoolID, models.ReconcilableStatuses)
	if err != nil {
		return nil, fmt.Errorf("list payments for school %s: %w", schoolID, err)
	}

	now := s.now()
	result := &models.ReconcileResult{Updates: []models.StatusChange{}}

	for _, p := range payments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next := s.deriveStatus(ctx, schoolID, p, now)
		if next == p.Status {
			continue
		}

		if err := s.store.UpdatePaymentStatus(ctx, p.ID, next); err != nil {
			s.log.Error().Err(err).
				Str("school_id", schoolID).
				Str("payment_id", p.ID).
				Str("status", string(next)).
				Msg("Failed to update payment status")
			continue
		}

		change := models.StatusChange{
			PaymentID:   p.ID,
			OldStatus:   p.Status,
			NewStatus:   next,
			StudentName: studentNameOf(p),
		}
		result.UpdatedCount++
		result.Updates = append(result.Updates, change)
		s.notify(ctx, schoolID, change)
	}

	s.log.Info().
		Str("school_id", schoolID).
		Int("scanned", len(payments)).
		Int("updated", result.UpdatedCount).
		Msg("Payment status reconciliation completed")
	return result, nil
}

func (s *FeeService) deriveStatus(ctx context.Context, schoolID string, p *models.Payment, now time.Time) models.PaymentStatus {
	status := p.Status
	if p.IsPastDue(now) && lo.Contains([]models.PaymentStatus{models.PaymentUnpaid, models.PaymentPending}, p.Status) {
		status = models.PaymentOverdue
	}

	if !p.HasStudent() {
		return status
	}

	balance, err := s.Balance(ctx, *p.StudentID, schoolID)
	if err != nil {
		s.log.Warn().Err(err).
			Str("school_id", schoolID).
			Str("payment_id", p.ID).
			Str("student_id", *p.StudentID).
			Msg("Error checking balance for payment")
		return status
	}

	switch paidBand(balance.Paid.Total, balance.Expected.Total) {
	case bandPartial:
		status = models.PaymentPartiallyPaid
	case bandFull:
		status = models.PaymentPaid
	}
	return status
}

type band int

const (
	bandNone band = iota
	bandPartial
	bandFull
)

// paidBand compares net payments with the monthly entitlement. A student with
// no entitlement who has paid anything counts as fully paid.
func paidBand(paid, expected decimal.Decimal) band {
	if !expected.IsPositive() {
		if paid.IsPositive() {
			return bandFull
		}
		return bandNone
	}

	pct := paid.Div(expected).Mul(hundred)
	switch {
	case pct.GreaterThanOrEqual(hundred):
		return bandFull
	case pct.IsPositive():
		return bandPartial
	}
	return bandNone
}

func studentNameOf(p *models.Payment) string {
	if !p.HasStudent() || p.StudentName == "" {
		return "N/A"
	}
	return p.StudentName
}

func (s *FeeService) notify(ctx context.Context, schoolID string, change models.StatusChange) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PaymentStatusChanged(ctx, schoolID, change); err != nil {
		s.log.Warn().Err(err).
			Str("school_id", schoolID).
			Str("payment_id", change.PaymentID).
			Msg("Failed to publish payment status change")
	}
}
