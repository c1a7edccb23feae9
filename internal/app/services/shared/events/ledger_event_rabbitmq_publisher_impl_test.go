package events

import (
	"context"
	"errors"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func TestLedgerEventPublisher(t *testing.T) {
	event := contracts.LedgerEvent{
		Kind:       models.KindOrder,
		Flow:       "purchase_medicine",
		WizardID:   "w1",
		TxHash:     "0xbeef",
		EntityID:   12,
		OccurredAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")

	t.Run("Publishes a persistent JSON message to the queue", func(t *testing.T) {
		ch := new(mockChannel)
		var published amqp091.Publishing
		ch.On("PublishWithContext", ctx, "", "ledger.events", false, false, mock.Anything).
			Run(func(args mock.Arguments) { published = args.Get(5).(amqp091.Publishing) }).
			Return(nil).Once()

		err := newLedgerEventPublisher(ch, "ledger.events", nil).PublishLedgerEvent(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, amqp091.Persistent, published.DeliveryMode)
		assert.Equal(t, "0xbeef", published.MessageId)
		assert.Equal(t, "order", published.Type)
		assert.Equal(t, "req-1", published.Headers["request_id"])

		var decoded contracts.LedgerEvent
		require.NoError(t, json.Unmarshal(published.Body, &decoded))
		assert.Equal(t, event, decoded)
	})

	t.Run("Publish failure is reported", func(t *testing.T) {
		ch := new(mockChannel)
		ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("channel closed"))

		err := newLedgerEventPublisher(ch, "ledger.events", nil).PublishLedgerEvent(ctx, event)

		assert.Error(t, err)
	})
}
