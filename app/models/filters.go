package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentFilter narrows the payments listed for one student. From and To are
// inclusive bounds on the payment date.
type PaymentFilter struct {
	From     *time.Time
	To       *time.Time
	Statuses []PaymentStatus
}

// StudentFilter narrows the active students listed for a school.
type StudentFilter struct {
	ClassID string
	Limit   int
}

// DuesQuery are the options of a school-wide dues scan.
type DuesQuery struct {
	ClassID      string
	MinDueAmount decimal.Decimal
	Limit        int
}
