package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a payment record captured for a student within a school.
// Remarks is free text written by the capture workflow and may carry a JSON tag
// naming the academic month the payment covers.
type Payment struct {
	ID          string          `json:"id"`
	StudentID   *string         `json:"student_id,omitempty"`
	SchoolID    string          `json:"school_id"`
	Total       decimal.Decimal `json:"total"`
	Discount    decimal.Decimal `json:"discount"`
	Fine        decimal.Decimal `json:"fine"`
	Method      string          `json:"method,omitempty"`
	PaymentDate time.Time       `json:"payment_date"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Status      PaymentStatus   `json:"status"`
	Remarks     *string         `json:"remarks,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`

	// StudentName is joined from the owning student when listing school-wide.
	StudentName string `json:"student_name,omitempty"`
}

// HasStudent reports whether the payment is linked to a student.
func (p *Payment) HasStudent() bool {
	return p.StudentID != nil && *p.StudentID != ""
}

// RemarksText returns the remarks or an empty string when unset.
func (p *Payment) RemarksText() string {
	if p.Remarks == nil {
		return ""
	}
	return *p.Remarks
}

// IsPastDue reports whether the payment has a due date strictly before now.
func (p *Payment) IsPastDue(now time.Time) bool {
	return p.DueDate != nil && p.DueDate.Before(now)
}
