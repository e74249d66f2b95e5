package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeItem is one line of a student's expected fee breakdown.
type FeeItem struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	IsOptional bool            `json:"is_optional"`
	DueDate    *time.Time      `json:"due_date"`
}

// FeeStructure describes where a student's expected fees come from.
type FeeStructure struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ExpectedFees is the resolved monthly fee entitlement of a student.
type ExpectedFees struct {
	StudentID     string          `json:"student_id"`
	StudentName   string          `json:"student_name"`
	ClassName     string          `json:"class_name"`
	ClassCode     string          `json:"class_code"`
	FeeStructure  *FeeStructure   `json:"fee_structure"`
	TotalExpected decimal.Decimal `json:"total_expected"`
	OptionalTotal decimal.Decimal `json:"optional_total"`
	Items         []FeeItem       `json:"items"`
	Message       *string         `json:"message"`
}

// PaymentSummary is the compact view of a payment used in buckets and listings.
type PaymentSummary struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Status PaymentStatus   `json:"status"`
	Method string          `json:"method,omitempty"`
	Month  *string         `json:"month"`
}

// MonthBucket groups payments under an academic month tag or a Gregorian YYYY-MM key.
type MonthBucket struct {
	Count           int              `json:"count"`
	Total           decimal.Decimal  `json:"total"`
	Payments        []PaymentSummary `json:"payments"`
	IsAcademicMonth bool             `json:"is_academic_month"`
}

// PaymentTotals is the aggregate of a student's qualifying payments.
type PaymentTotals struct {
	StudentID       string                  `json:"student_id"`
	TotalPayments   int                     `json:"total_payments"`
	TotalPaid       decimal.Decimal         `json:"total_paid"`
	TotalDiscount   decimal.Decimal         `json:"total_discount"`
	TotalFine       decimal.Decimal         `json:"total_fine"`
	NetPaid         decimal.Decimal         `json:"net_paid"`
	PaymentsByMonth map[string]*MonthBucket `json:"payments_by_month"`
	PaidMonths      []string                `json:"paid_months"`
	LatestPayment   *PaymentSummary         `json:"latest_payment"`
}

// ExpectedSummary is the entitlement part of a balance report.
type ExpectedSummary struct {
	Total    decimal.Decimal `json:"total"`
	Annual   decimal.Decimal `json:"annual"`
	Optional decimal.Decimal `json:"optional"`
	Items    []FeeItem       `json:"items"`
}

// PaidSummary is the payment part of a balance report. Total is the net paid amount.
type PaidSummary struct {
	Total           decimal.Decimal         `json:"total"`
	TotalPayments   int                     `json:"total_payments"`
	TotalDiscount   decimal.Decimal         `json:"total_discount"`
	TotalFine       decimal.Decimal         `json:"total_fine"`
	PaymentsByMonth map[string]*MonthBucket `json:"payments_by_month"`
	PaidMonths      []string                `json:"paid_months"`
	LatestPayment   *PaymentSummary         `json:"latest_payment"`
}

// BalanceVerdict says whether a student owes money, has prepaid, or is even.
// At most one of DueAmount and PrepaidAmount is non-zero.
type BalanceVerdict struct {
	Amount        decimal.Decimal `json:"amount"`
	Status        BalanceStatus   `json:"status"`
	DueAmount     decimal.Decimal `json:"due_amount"`
	PrepaidAmount decimal.Decimal `json:"prepaid_amount"`
}

// BalanceReport is the full point-in-time balance of a student.
type BalanceReport struct {
	StudentID    string          `json:"student_id"`
	StudentName  string          `json:"student_name"`
	ClassName    string          `json:"class_name"`
	FeeStructure *FeeStructure   `json:"fee_structure"`
	Expected     ExpectedSummary `json:"expected"`
	Paid         PaidSummary     `json:"paid"`
	Balance      BalanceVerdict  `json:"balance"`
	Percentage   decimal.Decimal `json:"percentage"`
}
