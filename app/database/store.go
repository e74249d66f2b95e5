package database

import (
	"context"
	"database/sql"

	"github.com/aria7-op/School-MIS-sub029/app/models"
)

// Store serves the fee engine from PostgreSQL.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindStudent(ctx context.Context, studentID, schoolID string) (*models.Student, error) {
	return GetStudentByID(ctx, s.db, studentID, schoolID)
}

func (s *Store) ListPayments(ctx context.Context, studentID, schoolID string, filter models.PaymentFilter) ([]*models.Payment, error) {
	return GetStudentPayments(ctx, s.db, studentID, schoolID, filter)
}

func (s *Store) ListPaymentsForSchool(ctx context.Context, schoolID string, statuses []models.PaymentStatus) ([]*models.Payment, error) {
	return GetSchoolPaymentsByStatus(ctx, s.db, schoolID, statuses)
}

func (s *Store) ListActiveStudents(ctx context.Context, schoolID string, filter models.StudentFilter) ([]*models.Student, error) {
	return GetActiveStudents(ctx, s.db, schoolID, filter)
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error {
	return UpdatePaymentStatus(ctx, s.db, paymentID, status)
}
