// publish-event is a dev tool that pushes user-lifecycle events onto the
// consumer queue, so the pipeline can be exercised without a producer
// system in place.
//
//	go run ./cmd/publish-event -operation create -first John -last Doe -email john@x.com -dob 2000-01-01
//	go run ./cmd/publish-event -operation update -id <uuid> -first Jane
//	go run ./cmd/publish-event -operation updateStatus -id <uuid> -status suspended
package main

import (
	"encoding/json"
	"flag"
	"log"

	"github.com/Rajendra1296/OMF-Consumer/pkg/config"
	"github.com/Rajendra1296/OMF-Consumer/pkg/models"
	"github.com/Rajendra1296/OMF-Consumer/pkg/rabbitmq"

	"github.com/google/uuid"
)

func main() {
	operation := flag.String("operation", "create", "operation tag: create | update | updateStatus")
	id := flag.String("id", "", "user id (required for update and updateStatus)")
	first := flag.String("first", "", "first name")
	last := flag.String("last", "", "last name")
	email := flag.String("email", "", "email")
	dob := flag.String("dob", "", "date of birth (YYYY-MM-DD)")
	status := flag.String("status", "", "status value")
	count := flag.Int("count", 1, "number of copies to publish")
	flag.Parse()

	cfg := config.Load()

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()

	publisher, err := rabbitmq.NewPublisher(conn, cfg.QueueName)
	if err != nil {
		log.Fatalf("Failed to create publisher: %v", err)
	}
	defer publisher.Close()

	env := models.EventEnvelope{
		User: &models.UserPayload{
			ID:        *id,
			FirstName: *first,
			LastName:  *last,
			Email:     *email,
			DOB:       *dob,
			Status:    *status,
		},
		Operation: models.Operation(*operation),
	}

	body, err := json.Marshal(env)
	if err != nil {
		log.Fatalf("Failed to marshal envelope: %v", err)
	}

	for i := 0; i < *count; i++ {
		correlationID := uuid.New().String()
		if err := publisher.Publish(body, correlationID); err != nil {
			log.Fatalf("Failed to publish: %v", err)
		}
	}

	log.Printf("Published %d %q event(s) to %s", *count, *operation, cfg.QueueName)
}
