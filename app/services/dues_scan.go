package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DefaultDuesScanLimit caps the students loaded by a dues scan.
const DefaultDuesScanLimit = 100

// StudentsWithDues runs the dues classification for the active students of a
// school and returns those owing at least query.MinDueAmount, largest debt
// first. A student whose dues cannot be computed is logged and left out.
func (s *FeeService) StudentsWithDues(ctx context.Context, schoolID string, query models.DuesQuery) (*models.DuesScan, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultDuesScanLimit
	}

	students, err := s.store.ListActiveStudents(ctx, schoolID, models.StudentFilter{
		ClassID: query.ClassID,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list active students for school %s: %w", schoolID, err)
	}

	withDues := []models.StudentDues{}
	for _, student := range students {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dues, err := s.Dues(ctx, student.ID, schoolID)
		if err != nil {
			s.log.Error().Err(err).
				Str("school_id", schoolID).
				Str("student_id", student.ID).
				Msg("Error calculating dues for student")
			continue
		}

		if !dues.HasDues || dues.TotalDue.LessThan(query.MinDueAmount) {
			continue
		}
		withDues = append(withDues, models.StudentDues{
			StudentID:            student.ID,
			StudentName:          student.FullName(),
			ClassName:            student.ClassName(),
			ClassCode:            student.ClassCode(),
			RollNumber:           student.RollNumber,
			TotalDue:             dues.TotalDue,
			MonthsWithoutPayment: dues.MonthsWithoutPayment,
		})
	}

	sort.SliceStable(withDues, func(i, j int) bool {
		return withDues[i].TotalDue.GreaterThan(withDues[j].TotalDue)
	})

	total := lo.Reduce(withDues, func(sum decimal.Decimal, d models.StudentDues, _ int) decimal.Decimal {
		return sum.Add(d.TotalDue)
	}, decimal.Zero)

	return &models.DuesScan{
		Students: withDues,
		Total:    len(withDues),
		Summary: models.DuesScanSummary{
			TotalStudentsWithDues: len(withDues),
			TotalDueAmount:        total,
		},
	}, nil
}
