// Package service publishes domain events to RabbitMQ.  Errors are logged
// and swallowed: event delivery is best-effort and must never interrupt the
// request flow that produced the event.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/FINZ1-ops/shop-api/internal/queue"
)

// Publisher sends domain events to the broker configured by URL.  A nil
// Publisher or an empty URL disables publishing entirely; every method is
// safe to call either way.
type Publisher struct {
	URL string
}

// NewPublisher returns a publisher for the given AMQP URL.  An empty URL
// yields a disabled publisher.
func NewPublisher(url string) *Publisher {
	return &Publisher{URL: url}
}

// StockAdjusted publishes a StockAdjustedEvent to the "stock.adjusted" queue.
func (p *Publisher) StockAdjusted(event q.StockAdjustedEvent) {
	p.publish("stock.adjusted", event)
}

// OrderCreated publishes an OrderCreatedEvent to the "order.created" queue.
func (p *Publisher) OrderCreated(event q.OrderCreatedEvent) {
	p.publish("order.created", event)
}

// publish declares the queue (idempotent, durable) and sends one persistent
// JSON message.  A fresh connection per event keeps the publisher stateless;
// event volume here is per-request, not per-message-batch.
func (p *Publisher) publish(queueName string, event any) {
	if p == nil || p.URL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
}
