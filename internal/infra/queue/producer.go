package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Event types carried on the marketplace exchange.
const (
	EventLeadCaptured      = "lead.captured"
	EventPurchaseCompleted = "purchase.completed"
	EventPurchaseRefunded  = "purchase.refunded"
)

type MarketplaceEvent struct {
	Type            string    `json:"type"`
	LeadID          string    `json:"lead_id,omitempty"`
	VendorID        string    `json:"vendor_id,omitempty"`
	PurchaseID      string    `json:"purchase_id,omitempty"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	JobType         string    `json:"job_type,omitempty"`
	Company         string    `json:"company,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type EventProducerInterface interface {
	PublishEvent(ctx context.Context, event MarketplaceEvent) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishEvent(ctx context.Context, event MarketplaceEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal marketplace event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish marketplace event: %w", err)
	}

	return nil
}
