package consumer

import (
	"context"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageQueue is the queue contract the loop consumes: batch receive
// with a long-poll wait, and delete by receipt.
type MessageQueue interface {
	ReceiveBatch(ctx context.Context, max int, wait time.Duration) ([]amqp.Delivery, error)
	Delete(delivery amqp.Delivery) error
}

// MessageHandler processes a delivered message. Its error is logged by
// the loop; the message is deleted either way.
type MessageHandler func(ctx context.Context, delivery amqp.Delivery) error

// Loop is the consume loop. Messages within a batch are processed
// strictly sequentially, each deleted right after its dispatch. An empty
// batch or a receive error is followed by one idle interval before the
// next receive; a non-empty batch re-polls immediately.
type Loop struct {
	Queue        MessageQueue
	Handler      MessageHandler
	BatchSize    int
	ReceiveWait  time.Duration
	IdleInterval time.Duration

	sleep func(ctx context.Context, d time.Duration)
}

// NewLoop creates a loop with the documented defaults: batches of 10,
// 20s receive wait, 10s idle interval.
func NewLoop(queue MessageQueue, handler MessageHandler) *Loop {
	return &Loop{
		Queue:        queue,
		Handler:      handler,
		BatchSize:    10,
		ReceiveWait:  20 * time.Second,
		IdleInterval: 10 * time.Second,
		sleep:        sleepCtx,
	}
}

// Run consumes until the context is canceled. Receive errors never
// terminate the loop; they are logged and retried after the idle
// interval.
func (l *Loop) Run(ctx context.Context) {
	log.Printf("[Consumer] Loop started: batch_size=%d receive_wait=%s idle_interval=%s",
		l.BatchSize, l.ReceiveWait, l.IdleInterval)

	for {
		processed := l.runOnce(ctx)
		if ctx.Err() != nil {
			log.Println("[Consumer] Loop stopped")
			return
		}
		if !processed {
			l.sleep(ctx, l.IdleInterval)
			if ctx.Err() != nil {
				log.Println("[Consumer] Loop stopped")
				return
			}
		}
	}
}

// runOnce performs a single receive-dispatch-delete iteration and
// reports whether the batch had any messages.
func (l *Loop) runOnce(ctx context.Context) bool {
	batch, err := l.Queue.ReceiveBatch(ctx, l.BatchSize, l.ReceiveWait)
	if err != nil {
		log.Printf("[Consumer] Error receiving batch: %v", err)
		return false
	}
	if len(batch) == 0 {
		log.Println("[Consumer] No messages received")
		return false
	}

	log.Printf("[Consumer] Received batch of %d message(s)", len(batch))

	for _, delivery := range batch {
		// The message is deleted whatever the handler reported; a failed
		// write is dropped rather than redelivered.
		if err := l.Handler(ctx, delivery); err != nil {
			log.Printf("[Consumer] Message failed, deleting anyway: %v correlation_id=%s",
				err, delivery.CorrelationId)
		}
		if err := l.Queue.Delete(delivery); err != nil {
			log.Printf("[Consumer] Error deleting message: %v correlation_id=%s",
				err, delivery.CorrelationId)
		}
	}

	return true
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
