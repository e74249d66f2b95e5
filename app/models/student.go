package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Student is the fee profile of an enrolled student. MonthlyExpectedAmount is
// authored directly on the student record by school staff.
type Student struct {
	ID                    string           `json:"id"`
	SchoolID              string           `json:"school_id"`
	ClassID               *string          `json:"class_id,omitempty"`
	FirstName             string           `json:"first_name"`
	LastName              string           `json:"last_name"`
	RollNumber            *string          `json:"roll_number,omitempty"`
	MonthlyExpectedAmount *decimal.Decimal `json:"monthly_expected_amount,omitempty"`
	UserStatus            UserStatus       `json:"user_status"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
	DeletedAt             *time.Time       `json:"deleted_at,omitempty"`

	Class *Class `json:"class,omitempty"`
}

// FullName joins first and last name.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// MonthlyExpected returns the entitled monthly amount, zero when unset.
func (s *Student) MonthlyExpected() decimal.Decimal {
	if s.MonthlyExpectedAmount == nil {
		return decimal.Zero
	}
	return *s.MonthlyExpectedAmount
}

// ClassName returns the class name or "N/A" when the student has no class.
func (s *Student) ClassName() string {
	if s.Class == nil || s.Class.Name == "" {
		return "N/A"
	}
	return s.Class.Name
}

// ClassCode returns the class code or "N/A" when the student has no class.
func (s *Student) ClassCode() string {
	if s.Class == nil || s.Class.Code == "" {
		return "N/A"
	}
	return s.Class.Code
}
