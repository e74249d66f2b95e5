package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/shopspring/decimal"
)

const noExpectedFeesMessage = "No expected fees set for this student"

// ExpectedFees resolves the monthly fee entitlement of a student.
func (s *FeeService) ExpectedFees(ctx context.Context, studentID, schoolID string) (*models.ExpectedFees, error) {
	student, err := s.store.FindStudent(ctx, studentID, schoolID)
	if err != nil {
		if errors.Is(err, models.ErrStudentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find student %s: %w", studentID, err)
	}
	return expectedFeesFor(student), nil
}

func expectedFeesFor(student *models.Student) *models.ExpectedFees {
	name := student.FullName()
	total := student.MonthlyExpected()

	fees := &models.ExpectedFees{
		StudentID:     student.ID,
		StudentName:   name,
		ClassName:     student.ClassName(),
		ClassCode:     student.ClassCode(),
		TotalExpected: total,
		OptionalTotal: decimal.Zero,
		Items:         []models.FeeItem{},
	}

	if !total.IsPositive() {
		msg := noExpectedFeesMessage
		fees.Message = &msg
		return fees
	}

	className := "class"
	if student.Class != nil && student.Class.Name != "" {
		className = student.Class.Name
	}
	fees.FeeStructure = &models.FeeStructure{
		ID:          student.ID,
		Name:        name + " Fees",
		Description: "Expected fees for student in " + className,
	}
	fees.Items = append(fees.Items, models.FeeItem{
		ID:     "1",
		Name:   "Total Fees",
		Amount: total,
	})
	return fees
}
