package services

import (
	"context"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
)

// Balance combines the expected fees and qualifying payments of a student into
// a single verdict against the annual entitlement.
func (s *FeeService) Balance(ctx context.Context, studentID, schoolID string) (*models.BalanceReport, error) {
	var (
		fees   *models.ExpectedFees
		totals *models.PaymentTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fees, err = s.ExpectedFees(gctx, studentID, schoolID)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.TotalPayments(gctx, studentID, schoolID, models.PaymentFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildBalance(fees, totals), nil
}

func buildBalance(fees *models.ExpectedFees, totals *models.PaymentTotals) *models.BalanceReport {
	annual := fees.TotalExpected.Mul(monthsPerYear)
	balance := annual.Sub(totals.NetPaid)

	return &models.BalanceReport{
		StudentID:    fees.StudentID,
		StudentName:  fees.StudentName,
		ClassName:    fees.ClassName,
		FeeStructure: fees.FeeStructure,
		Expected: models.ExpectedSummary{
			Total:    fees.TotalExpected,
			Annual:   annual,
			Optional: fees.OptionalTotal,
			Items:    fees.Items,
		},
		Paid: models.PaidSummary{
			Total:           totals.NetPaid,
			TotalPayments:   totals.TotalPayments,
			TotalDiscount:   totals.TotalDiscount,
			TotalFine:       totals.TotalFine,
			PaymentsByMonth: totals.PaymentsByMonth,
			PaidMonths:      totals.PaidMonths,
			LatestPayment:   totals.LatestPayment,
		},
		Balance:    verdict(balance),
		Percentage: percentOf(totals.NetPaid, annual),
	}
}

func verdict(balance decimal.Decimal) models.BalanceVerdict {
	v := models.BalanceVerdict{
		Amount:        balance.Abs(),
		Status:        models.BalanceCleared,
		DueAmount:     decimal.Zero,
		PrepaidAmount: decimal.Zero,
	}
	switch balance.Sign() {
	case 1:
		v.Status = models.BalanceDue
		v.DueAmount = balance
	case -1:
		v.Status = models.BalancePrepaid
		v.PrepaidAmount = balance.Neg()
	}
	return v
}

// percentOf returns part/whole*100 rounded to two places, zero when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
