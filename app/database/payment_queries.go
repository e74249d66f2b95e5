package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/lib/pq"
)

const paymentColumns = `p.id, p.student_id, p.school_id, p.total, p.discount, p.fine, p.method,
	p.payment_date, p.due_date, p.status, p.remarks, p.created_at, p.updated_at`

func scanPayment(row rowScanner, extra ...any) (*models.Payment, error) {
	payment := &models.Payment{}
	var status string

	dest := []any{
		&payment.ID, &payment.StudentID, &payment.SchoolID, &payment.Total, &payment.Discount,
		&payment.Fine, &payment.Method, &payment.PaymentDate, &payment.DueDate, &status,
		&payment.Remarks, &payment.CreatedAt, &payment.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	payment.Status = models.PaymentStatus(status)
	return payment, nil
}

// invalidTextRepresentation is raised when an id parameter is not a valid
// uuid. Such an id cannot match any row.
const invalidTextRepresentation pq.ErrorCode = "22P02"

func isInvalidID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation
}

func statusStrings(statuses []models.PaymentStatus) pq.StringArray {
	out := make(pq.StringArray, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// GetStudentPayments lists a student's payments newest first, filtered by
// payment date range and status.
func GetStudentPayments(ctx context.Context, db *sql.DB, studentID, schoolID string, filter models.PaymentFilter) ([]*models.Payment, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + paymentColumns + `
			  FROM payments p
			  WHERE p.student_id = $1 AND p.school_id = $2 AND p.deleted_at IS NULL`)
	args := []any{studentID, schoolID}

	if len(filter.Statuses) > 0 {
		args = append(args, statusStrings(filter.Statuses))
		fmt.Fprintf(&sb, " AND p.status = ANY($%d)", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		fmt.Fprintf(&sb, " AND p.payment_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		fmt.Fprintf(&sb, " AND p.payment_date <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY p.payment_date DESC, p.id")

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if isInvalidID(err) {
		return []*models.Payment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list payments for student %s: %w", studentID, err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// GetSchoolPaymentsByStatus lists the school's payments in the given statuses
// with the student's name joined in.
func GetSchoolPaymentsByStatus(ctx context.Context, db *sql.DB, schoolID string, statuses []models.PaymentStatus) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + `,
			  COALESCE(TRIM(s.first_name || ' ' || s.last_name), '')
			  FROM payments p
			  LEFT JOIN students s ON s.id = p.student_id
			  WHERE p.school_id = $1 AND p.status = ANY($2) AND p.deleted_at IS NULL
			  ORDER BY p.created_at, p.id`

	rows, err := db.QueryContext(ctx, query, schoolID, statusStrings(statuses))
	if isInvalidID(err) {
		return []*models.Payment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list payments for school %s: %w", schoolID, err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		var name string
		payment, err := scanPayment(rows, &name)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payment.StudentName = name
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// UpdatePaymentStatus sets a payment's status and bumps updated_at.
func UpdatePaymentStatus(ctx context.Context, db *sql.DB, paymentID string, status models.PaymentStatus) error {
	res, err := db.ExecContext(ctx,
		`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		string(status), paymentID)
	if err != nil {
		return fmt.Errorf("update payment %s: %w", paymentID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment %s: %w", paymentID, err)
	}
	if n == 0 {
		return models.ErrPaymentNotFound
	}
	return nil
}
