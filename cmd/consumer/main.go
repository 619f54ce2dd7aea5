package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Rajendra1296/OMF-Consumer/internal/consumer"
	"github.com/Rajendra1296/OMF-Consumer/internal/store"
	"github.com/Rajendra1296/OMF-Consumer/pkg/config"
	"github.com/Rajendra1296/OMF-Consumer/pkg/postgres"
	"github.com/Rajendra1296/OMF-Consumer/pkg/rabbitmq"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[Consumer] Starting consumer...")

	cfg := config.Load()

	// Connect to PostgreSQL
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Consumer] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("[Consumer] Failed to run migrations: %v", err)
	}

	// Connect to RabbitMQ
	rmqConn, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("[Consumer] Failed to connect to RabbitMQ: %v", err)
	}
	defer rmqConn.Close()

	receiver, err := rabbitmq.NewReceiver(rmqConn, cfg.QueueName)
	if err != nil {
		log.Fatalf("[Consumer] Failed to create receiver: %v", err)
	}
	defer receiver.Close()

	dispatcher := consumer.NewDispatcher(store.NewUserStore(db))

	loop := consumer.NewLoop(receiver, dispatcher.HandleMessage)
	loop.BatchSize = cfg.BatchSize
	loop.ReceiveWait = cfg.ReceiveWait
	loop.IdleInterval = cfg.IdleInterval

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("[Consumer] Consuming from queue: %s", cfg.QueueName)
	loop.Run(ctx)

	log.Println("[Consumer] Shut down")
}
