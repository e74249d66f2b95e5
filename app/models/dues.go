package models

import "github.com/shopspring/decimal"

// MonthDues is the classification of one academic month for a student.
type MonthDues struct {
	Month             string          `json:"month"`
	MonthNumber       int             `json:"month_number"`
	ExpectedAmount    decimal.Decimal `json:"expected_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount"`
	PaymentPercentage decimal.Decimal `json:"payment_percentage"`
	MonthsOverdue     int             `json:"months_overdue"`
	IsOverdue         bool            `json:"is_overdue"`
}

// CalendarMonthDue is a Gregorian YYYY-MM month without any payment bucket.
type CalendarMonthDue struct {
	Month          string          `json:"month"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	MonthsOverdue  int             `json:"months_overdue"`
}

// DuesSummary counts the academic months per classification.
type DuesSummary struct {
	FullyPaid     int `json:"fully_paid"`
	PartiallyPaid int `json:"partially_paid"`
	Unpaid        int `json:"unpaid"`
	Total         int `json:"total"`
}

// DuesReport is the month-by-month dues breakdown of a student.
//
// A student with nothing due gets a short report: PaidMonthTags carries the
// tags of the paid months and PaidMonths stays empty. Only the full breakdown
// fills PaidMonths.
type DuesReport struct {
	StudentID            string             `json:"student_id"`
	StudentName          string             `json:"student_name,omitempty"`
	HasDues              bool               `json:"has_dues"`
	TotalDue             decimal.Decimal    `json:"total_due"`
	MonthlyExpected      decimal.Decimal    `json:"monthly_expected"`
	PaidMonthTags        []string           `json:"paid_month_tags"`
	PaidMonths           []MonthDues        `json:"paid_months"`
	PartiallyPaidMonths  []MonthDues        `json:"partially_paid_months"`
	UnpaidMonths         []MonthDues        `json:"unpaid_months"`
	UnpaidCalendarMonths []CalendarMonthDue `json:"unpaid_calendar_months"`
	UnassignedPayments   decimal.Decimal    `json:"unassigned_payments"`
	MonthsWithoutPayment int                `json:"months_without_payment"`
	TotalUnpaidMonths    int                `json:"total_unpaid_months"`
	Summary              *DuesSummary       `json:"summary,omitempty"`
	Message              string             `json:"message,omitempty"`
}

// StudentDues is one row of a school-wide dues scan.
type StudentDues struct {
	StudentID            string          `json:"student_id"`
	StudentName          string          `json:"student_name"`
	ClassName            string          `json:"class_name"`
	ClassCode            string          `json:"class_code"`
	RollNumber           *string         `json:"roll_number"`
	TotalDue             decimal.Decimal `json:"total_due"`
	MonthsWithoutPayment int             `json:"months_without_payment"`
}

// DuesScanSummary aggregates a dues scan.
type DuesScanSummary struct {
	TotalStudentsWithDues int             `json:"total_students_with_dues"`
	TotalDueAmount        decimal.Decimal `json:"total_due_amount"`
}

// DuesScan lists students with outstanding dues, largest first.
type DuesScan struct {
	Students []StudentDues   `json:"students"`
	Total    int             `json:"total"`
	Summary  DuesScanSummary `json:"summary"`
}

// StatusChange records one payment status transition made by the reconciler.
type StatusChange struct {
	PaymentID   string        `json:"payment_id"`
	OldStatus   PaymentStatus `json:"old_status"`
	NewStatus   PaymentStatus `json:"new_status"`
	StudentName string        `json:"student_name"`
}

// ReconcileResult is the outcome of a reconciliation run.
type ReconcileResult struct {
	UpdatedCount int            `json:"updated_count"`
	Updates      []StatusChange `json:"updates"`
}
