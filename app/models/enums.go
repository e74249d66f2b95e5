package models

// PaymentStatus defines the lifecycle status of a payment
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentUnpaid        PaymentStatus = "UNPAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentOverdue       PaymentStatus = "OVERDUE"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentUnpaid, PaymentPartiallyPaid, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

// BalanceStatus is the verdict of comparing expected fees against net payments.
type BalanceStatus string

const (
	BalanceDue     BalanceStatus = "DUE"
	BalancePrepaid BalanceStatus = "PREPAID"
	BalanceCleared BalanceStatus = "CLEARED"
)

// UserStatus mirrors the account status of the user behind a student record.
type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserInactive  UserStatus = "INACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

// QualifyingStatuses are the payment statuses that count towards a student's balance.
var QualifyingStatuses = []PaymentStatus{PaymentPaid, PaymentPartiallyPaid}

// ReconcilableStatuses are the payment statuses the status reconciler re-derives.
var ReconcilableStatuses = []PaymentStatus{PaymentPending, PaymentUnpaid, PaymentPartiallyPaid}
