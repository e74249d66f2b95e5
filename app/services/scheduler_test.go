package services

import (
	"context"
	"testing"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/database/memory"
	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedulerRejectsBadTime(t *testing.T) {
	_, err := NewScheduler(newTestService(memory.New()), []string{schoolID}, "25:99")
	assert.Error(t, err)
}

func TestSchedulerDue(t *testing.T) {
	s, err := NewScheduler(newTestService(memory.New()), []string{schoolID}, "02:30")
	require.NoError(t, err)

	at := time.Date(2025, 8, 15, 2, 30, 0, 0, time.UTC)
	assert.True(t, s.due(at))
	assert.False(t, s.due(at.Add(time.Minute)))
	assert.False(t, s.due(at.Add(-time.Hour)))

	s.lastRun = at.Format("2006-01-02")
	assert.False(t, s.due(at), "already ran today")
	assert.True(t, s.due(at.AddDate(0, 0, 1)))
}

func TestSchedulerRunOnceReconcilesEverySchool(t *testing.T) {
	store := memory.New()
	student := addStudent(store, 1000)
	p := addPayment(store, student, 1000, withStatus(models.PaymentPending), withDueDate(fixedNow.AddDate(0, 0, -3)))

	s, err := NewScheduler(newTestService(store), []string{"unknown-school", schoolID}, "01:00")
	require.NoError(t, err)
	s.RunOnce(context.Background())

	stored, _ := store.Payment(p.ID)
	assert.Equal(t, models.PaymentOverdue, stored.Status)
}
