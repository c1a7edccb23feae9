package events

import (
	"context"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// channel is the part of *amqp091.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type ledgerEventPublisher struct {
	Channel channel
	Queue   string
	Log     *zap.Logger
}

// NewLedgerEventPublisher opens a channel on the connection and declares the
// durable queue that collection owners consume.
func NewLedgerEventPublisher(rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger) (contracts.LedgerEventPublisher, error) {
	ch, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return newLedgerEventPublisher(ch, queue, logger), nil
}

func newLedgerEventPublisher(ch channel, queue string, logger *zap.Logger) *ledgerEventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ledgerEventPublisher{
		Channel: ch,
		Queue:   queue,
		Log:     logger,
	}
}

func (p *ledgerEventPublisher) PublishLedgerEvent(ctx context.Context, event contracts.LedgerEvent) error {
	requestID := utils.GetRequestID(ctx)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.TxHash,
		Type:         string(event.Kind),
		Timestamp:    event.OccurredAt,
		Headers: amqp091.Table{
			"message_type": "JSON",
			"request_id":   requestID,
		},
	}

	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	if err != nil {
		p.Log.Error("ledgerEventPublisher.PublishLedgerEvent error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, p.Queue),
			zap.String(constvars.LoggingTxHashKey, event.TxHash),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	p.Log.Info("ledgerEventPublisher.PublishLedgerEvent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, p.Queue),
		zap.String(constvars.LoggingEntityKindKey, event.Kind.String()),
		zap.String(constvars.LoggingTxHashKey, event.TxHash),
	)
	return nil
}
