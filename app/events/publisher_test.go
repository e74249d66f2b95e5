package events

import (
	"context"
	"errors"
	"testing"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange  string
	key       string
	published []amqp091.Publishing
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.exchange, f.key = exchange, key
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

var change = models.StatusChange{
	PaymentID:   "pay-1",
	OldStatus:   models.PaymentUnpaid,
	NewStatus:   models.PaymentOverdue,
	StudentName: "Ahmad Karimi",
}

func TestPaymentStatusChanged(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "fees")

	require.NoError(t, p.PaymentStatusChanged(context.Background(), "school-1", change))
	require.Len(t, ch.published, 1)
	assert.Equal(t, "fees", ch.exchange)
	assert.Equal(t, RoutingKeyStatusChanged, ch.key)

	pub := ch.published[0]
	assert.Equal(t, "application/json", pub.ContentType)
	assert.Equal(t, amqp091.Persistent, pub.DeliveryMode)

	msg, err := StatusChangedMessageFromJSON(pub.Body)
	require.NoError(t, err)
	assert.Equal(t, pub.MessageId, msg.ID)
	assert.Equal(t, "school-1", msg.SchoolID)
	assert.Equal(t, "pay-1", msg.PaymentID)
	assert.Equal(t, models.PaymentOverdue, msg.NewStatus)
}

func TestPaymentStatusChangedPublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel/connection is not open")}
	p := newPublisher(ch, "fees")

	err := p.PaymentStatusChanged(context.Background(), "school-1", change)
	assert.ErrorContains(t, err, "publish message")
}

func TestMessageIDsAreUnique(t *testing.T) {
	a := NewStatusChangedMessage("school-1", change)
	b := NewStatusChangedMessage("school-1", change)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStatusChangedMessageFromJSONRejectsGarbage(t *testing.T) {
	_, err := StatusChangedMessageFromJSON([]byte("{"))
	assert.Error(t, err)
}

func TestClose(t *testing.T) {
	ch := &fakeChannel{}
	require.NoError(t, newPublisher(ch, "fees").Close())
	assert.True(t, ch.closed)
}
