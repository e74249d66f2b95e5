package events

import (
	"encoding/json"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/google/uuid"
)

// RoutingKeyStatusChanged is the routing key of payment status change events.
const RoutingKeyStatusChanged = "payment.status.changed"

// StatusChangedMessage announces a payment status persisted by the reconciler.
type StatusChangedMessage struct {
	ID          string               `json:"id"`
	SchoolID    string               `json:"school_id"`
	PaymentID   string               `json:"payment_id"`
	OldStatus   models.PaymentStatus `json:"old_status"`
	NewStatus   models.PaymentStatus `json:"new_status"`
	StudentName string               `json:"student_name"`
	Timestamp   time.Time            `json:"timestamp"`
}

func NewStatusChangedMessage(schoolID string, change models.StatusChange) *StatusChangedMessage {
	return &StatusChangedMessage{
		ID:          uuid.NewString(),
		SchoolID:    schoolID,
		PaymentID:   change.PaymentID,
		OldStatus:   change.OldStatus,
		NewStatus:   change.NewStatus,
		StudentName: change.StudentName,
		Timestamp:   time.Now().UTC(),
	}
}

func (m *StatusChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func StatusChangedMessageFromJSON(data []byte) (*StatusChangedMessage, error) {
	var msg StatusChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
