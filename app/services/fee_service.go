package services

import (
	"context"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/calendar"
	"github.com/aria7-op/School-MIS-sub029/app/logger"
	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/rs/zerolog"
)

// Store is the persistence the fee engine reads from. Every query is scoped to a
// school and never returns soft-deleted rows.
type Store interface {
	// FindStudent returns models.ErrStudentNotFound when the student does not
	// exist in the school.
	FindStudent(ctx context.Context, studentID, schoolID string) (*models.Student, error)

	// ListPayments returns the student's payments newest first.
	ListPayments(ctx context.Context, studentID, schoolID string, filter models.PaymentFilter) ([]*models.Payment, error)

	// ListPaymentsForSchool returns payments in the given statuses with the
	// owning student's name joined in.
	ListPaymentsForSchool(ctx context.Context, schoolID string, statuses []models.PaymentStatus) ([]*models.Payment, error)

	// ListActiveStudents returns students whose user account is ACTIVE.
	ListActiveStudents(ctx context.Context, schoolID string, filter models.StudentFilter) ([]*models.Student, error)

	UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error
}

// StatusNotifier is told about every payment status the reconciler persists.
type StatusNotifier interface {
	PaymentStatusChanged(ctx context.Context, schoolID string, change models.StatusChange) error
}

// FeeService computes balances, dues and payment statuses for students.
type FeeService struct {
	store    Store
	calendar *calendar.AcademicCalendar
	notifier StatusNotifier
	now      func() time.Time
	log      zerolog.Logger
}

// Option configures a FeeService.
type Option func(*FeeService)

// WithCalendar sets the academic calendar used for dues.
func WithCalendar(c *calendar.AcademicCalendar) Option {
	return func(s *FeeService) {
		if c != nil {
			s.calendar = c
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *FeeService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNotifier publishes reconciler status changes.
func WithNotifier(n StatusNotifier) Option {
	return func(s *FeeService) {
		s.notifier = n
	}
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *FeeService) {
		s.log = l
	}
}

// NewFeeService creates a fee service over store. Without options it uses the
// solar calendar anchored on March and the wall clock.
func NewFeeService(store Store, opts ...Option) *FeeService {
	s := &FeeService{
		store:    store,
		calendar: calendar.MustSolar(),
		now:      time.Now,
		log:      logger.WithComponent("fees"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calendar returns the academic calendar in use.
func (s *FeeService) Calendar() *calendar.AcademicCalendar {
	return s.calendar
}
