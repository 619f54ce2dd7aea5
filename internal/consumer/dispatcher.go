package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/Rajendra1296/OMF-Consumer/internal/store"
	"github.com/Rajendra1296/OMF-Consumer/pkg/models"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Dispatcher parses a lifecycle event and routes it to the matching
// write path. Errors are returned for logging only: the loop deletes
// the message regardless of the outcome, so a failed write is dropped,
// not redelivered.
type Dispatcher struct {
	Store *store.UserStore
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(s *store.UserStore) *Dispatcher {
	return &Dispatcher{Store: s}
}

// HandleMessage processes one delivery.
func (d *Dispatcher) HandleMessage(ctx context.Context, delivery amqp.Delivery) error {
	if len(delivery.Body) == 0 {
		log.Printf("[Dispatcher] Message has no body correlation_id=%s", delivery.CorrelationId)
		return errors.New("message has no body")
	}

	var event models.EventEnvelope
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		log.Printf("[Dispatcher] Failed to unmarshal event: %v correlation_id=%s", err, delivery.CorrelationId)
		return err
	}
	if err := event.Validate(); err != nil {
		log.Printf("[Dispatcher] Invalid event: %v correlation_id=%s", err, delivery.CorrelationId)
		return err
	}

	log.Printf("[Dispatcher] Processing event: operation=%s user_id=%s correlation_id=%s",
		event.Operation, event.User.ID, delivery.CorrelationId)

	switch event.Operation {
	case models.OpCreate:
		return d.create(ctx, event.User, delivery.CorrelationId)
	case models.OpUpdate:
		return d.update(ctx, event.User, delivery.CorrelationId)
	case models.OpUpdateStatus:
		return d.updateStatus(ctx, event.User, delivery.CorrelationId)
	default:
		log.Printf("[Dispatcher] Unknown operation %q, skipping correlation_id=%s",
			event.Operation, delivery.CorrelationId)
		return nil
	}
}

func (d *Dispatcher) create(ctx context.Context, p *models.UserPayload, correlationID string) error {
	status := p.Status
	if status == "" {
		status = models.StatusActive
	}

	now := time.Now()
	user := models.User{
		ID:        uuid.New().String(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		DOB:       p.DOB,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := d.Store.Put(ctx, user); err != nil {
		log.Printf("[Dispatcher] Error creating user: %v correlation_id=%s", err, correlationID)
		return err
	}

	log.Printf("[Dispatcher] User created: id=%s status=%s correlation_id=%s", user.ID, user.Status, correlationID)
	return nil
}

func (d *Dispatcher) update(ctx context.Context, p *models.UserPayload, correlationID string) error {
	if p.ID == "" {
		log.Printf("[Dispatcher] Update event has no user id correlation_id=%s", correlationID)
		return errors.New("update event has no user id")
	}

	if err := d.Store.Update(ctx, p.ID, *p, time.Now()); err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			log.Printf("[Dispatcher] Update rejected, no such user: id=%s correlation_id=%s", p.ID, correlationID)
		} else {
			log.Printf("[Dispatcher] Error updating user: %v correlation_id=%s", err, correlationID)
		}
		return err
	}

	log.Printf("[Dispatcher] User updated: id=%s correlation_id=%s", p.ID, correlationID)
	return nil
}

func (d *Dispatcher) updateStatus(ctx context.Context, p *models.UserPayload, correlationID string) error {
	if p.ID == "" {
		log.Printf("[Dispatcher] Status event has no user id correlation_id=%s", correlationID)
		return errors.New("status event has no user id")
	}

	if err := d.Store.UpdateStatus(ctx, p.ID, p.Status, time.Now()); err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			log.Printf("[Dispatcher] Status update rejected, no such user: id=%s correlation_id=%s", p.ID, correlationID)
		} else {
			log.Printf("[Dispatcher] Error updating status: %v correlation_id=%s", err, correlationID)
		}
		return err
	}

	log.Printf("[Dispatcher] User status updated: id=%s status=%q correlation_id=%s", p.ID, p.Status, correlationID)
	return nil
}
