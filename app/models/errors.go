package models

import "errors"

// ErrStudentNotFound is returned when no non-deleted student with the given id
// exists in the given school.
var ErrStudentNotFound = errors.New("student not found")

// ErrPaymentNotFound is returned when a status update targets a missing payment.
var ErrPaymentNotFound = errors.New("payment not found")
