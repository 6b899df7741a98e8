package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	queueBookingConfirmed = "booking.confirmed"
	queueBookingCancelled = "booking.cancelled"
)

// Publisher delivers booking events. Delivery is best effort: the booking
// transaction has already committed by the time events are published, so
// failures are logged and returned but never undo a booking.
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
	PublishBookingCancelled(ctx context.Context, event BookingCancelledEvent) error
}

type amqpPublisher struct {
	url string
	log *zap.Logger
}

// NewAMQPPublisher returns a Publisher backed by RabbitMQ, or nil when no
// broker URL is configured.
func NewAMQPPublisher(url string, log *zap.Logger) Publisher {
	if url == "" {
		return nil
	}
	return &amqpPublisher{
		url: url,
		log: log.With(zap.String("component", "queue_publisher")),
	}
}

func (p *amqpPublisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	return p.publish(ctx, queueBookingConfirmed, event)
}

func (p *amqpPublisher) PublishBookingCancelled(ctx context.Context, event BookingCancelledEvent) error {
	return p.publish(ctx, queueBookingCancelled, event)
}

func (p *amqpPublisher) publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("Broker dial failed", zap.Error(err), zap.String("queue", queueName))
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("Broker channel open failed", zap.Error(err), zap.String("queue", queueName))
		return err
	}
	defer ch.Close()

	// Durable queue, declared idempotently.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warn("Queue declare failed", zap.Error(err), zap.String("queue", queueName))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("Event marshal failed", zap.Error(err), zap.String("queue", queueName))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Warn("Event publish failed", zap.Error(err), zap.String("queue", queueName))
		return err
	}

	return nil
}
