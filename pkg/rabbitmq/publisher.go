package rabbitmq

import (
	"context"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends lifecycle events straight to the consumer queue via
// the default exchange.
type Publisher struct {
	channel *amqp.Channel
	queue   string
}

// NewPublisher opens a channel and declares the target queue (idempotent).
func NewPublisher(conn *Connection, queueName string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &Publisher{channel: ch, queue: queueName}, nil
}

// Publish sends a message body to the queue.
func (p *Publisher) Publish(body []byte, correlationID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Printf("[Publisher] Publishing event: queue=%s correlation_id=%s", p.queue, correlationID)

	return p.channel.PublishWithContext(
		ctx,
		"",      // default exchange
		p.queue, // routed directly to the queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: correlationID,
			Body:          body,
			DeliveryMode:  amqp.Persistent,
			Timestamp:     time.Now(),
		},
	)
}

// Close closes the publisher channel.
func (p *Publisher) Close() error {
	if p.channel != nil {
		return p.channel.Close()
	}
	return nil
}
