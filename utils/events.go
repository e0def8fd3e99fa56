package utils

import (
	"context"
	"encoding/json"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderEvent is the payload published to the order event queues when an
// order is placed or canceled. Consumers (fulfilment, notifications) read
// these off RabbitMQ.
type OrderEvent struct {
	OrderID     uint      `json:"orderId"`
	UserID      uint      `json:"userId"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// PublishOrderEvent publishes an order event to the named queue
// ("order.placed" or "order.canceled"). Publishing is best-effort: when
// RABBITMQ_URL is unset or the broker is unreachable the error is logged
// and returned, and the request flow continues regardless.
func PublishOrderEvent(ctx context.Context, queue string, event OrderEvent) error {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		return nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		LogError("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		LogError("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		LogError("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		LogError("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		LogError("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
