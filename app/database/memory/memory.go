// Package memory is an in-process fee store used by tests and local runs
// without PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Store struct {
	mu       sync.Mutex
	students map[string]*models.Student
	payments map[string]*models.Payment
	order    []string

	// Updates counts successful status updates.
	Updates int
}

func New() *Store {
	return &Store{
		students: make(map[string]*models.Student),
		payments: make(map[string]*models.Payment),
	}
}

// AddStudent stores a copy of student, assigning an id when missing.
func (s *Store) AddStudent(student models.Student) *models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.UserStatus == "" {
		student.UserStatus = models.UserActive
	}
	s.students[student.ID] = &student
	s.order = append(s.order, "s:"+student.ID)
	return &student
}

// AddPayment stores a copy of payment, assigning an id when missing.
func (s *Store) AddPayment(payment models.Payment) *models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	s.payments[payment.ID] = &payment
	s.order = append(s.order, "p:"+payment.ID)
	return &payment
}

// Payment returns a copy of the stored payment.
func (s *Store) Payment(id string) (models.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return models.Payment{}, false
	}
	return *p, true
}

func (s *Store) FindStudent(_ context.Context, studentID, schoolID string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[studentID]
	if !ok || st.SchoolID != schoolID || st.DeletedAt != nil {
		return nil, models.ErrStudentNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *Store) ListPayments(_ context.Context, studentID, schoolID string, filter models.PaymentFilter) ([]*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Payment
	for _, p := range s.payments {
		if p.DeletedAt != nil || p.SchoolID != schoolID || !p.HasStudent() || *p.StudentID != studentID {
			continue
		}
		if len(filter.Statuses) > 0 && !lo.Contains(filter.Statuses, p.Status) {
			continue
		}
		if filter.From != nil && p.PaymentDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && p.PaymentDate.After(*filter.To) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].PaymentDate.After(out[j].PaymentDate)
	})
	return out, nil
}

func (s *Store) ListPaymentsForSchool(_ context.Context, schoolID string, statuses []models.PaymentStatus) ([]*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Payment
	for _, key := range s.order {
		p, ok := s.payments[key[2:]]
		if key[0] != 'p' || !ok {
			continue
		}
		if p.DeletedAt != nil || p.SchoolID != schoolID || !lo.Contains(statuses, p.Status) {
			continue
		}
		cp := *p
		if p.HasStudent() {
			if st, ok := s.students[*p.StudentID]; ok {
				cp.StudentName = st.FullName()
			}
		}
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) ListActiveStudents(_ context.Context, schoolID string, filter models.StudentFilter) ([]*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Student
	for _, key := range s.order {
		st, ok := s.students[key[2:]]
		if key[0] != 's' || !ok {
			continue
		}
		if st.DeletedAt != nil || st.SchoolID != schoolID || st.UserStatus != models.UserActive {
			continue
		}
		if filter.ClassID != "" && (st.ClassID == nil || *st.ClassID != filter.ClassID) {
			continue
		}
		cp := *st
		out = append(out, &cp)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *Store) UpdatePaymentStatus(_ context.Context, paymentID string, status models.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[paymentID]
	if !ok || p.DeletedAt != nil {
		return models.ErrPaymentNotFound
	}
	p.Status = status
	s.Updates++
	return nil
}
