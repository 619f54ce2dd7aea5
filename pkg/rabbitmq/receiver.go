package rabbitmq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Receiver pulls messages from a queue in batches. RabbitMQ has no
// server-side long poll for basic.get, so ReceiveBatch emulates one by
// re-polling an empty queue until the wait window elapses.
type Receiver struct {
	channel  *amqp.Channel
	queue    string
	pollStep time.Duration
}

// NewReceiver opens a channel and declares the queue (idempotent).
func NewReceiver(conn *Connection, queueName string) (*Receiver, error) {
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

	return &Receiver{
		channel:  ch,
		queue:    queueName,
		pollStep: 500 * time.Millisecond,
	}, nil
}

// ReceiveBatch returns up to max messages without acknowledging them.
// On an empty queue it keeps polling until wait elapses or the context
// is canceled; as soon as at least one message is in hand it stops at
// the first empty poll and returns what it has.
func (r *Receiver) ReceiveBatch(ctx context.Context, max int, wait time.Duration) ([]amqp.Delivery, error) {
	deadline := time.Now().Add(wait)
	var batch []amqp.Delivery

	for len(batch) < max {
		delivery, ok, err := r.channel.Get(r.queue, false) // manual ack
		if err != nil {
			return nil, err
		}
		if ok {
			batch = append(batch, delivery)
			continue
		}
		if len(batch) > 0 || !time.Now().Before(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			return batch, ctx.Err()
		case <-time.After(r.pollStep):
		}
	}

	return batch, nil
}

// Delete acknowledges a delivery, removing it from the queue for good.
func (r *Receiver) Delete(delivery amqp.Delivery) error {
	return r.channel.Ack(delivery.DeliveryTag, false)
}

// Close closes the receiver channel.
func (r *Receiver) Close() error {
	if r.channel != nil {
		return r.channel.Close()
	}
	return nil
}
