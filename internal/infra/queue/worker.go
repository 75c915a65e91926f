package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/infra/integration/crm"
)

// CRMSyncer forwards marketplace events to the sales CRM.
type CRMSyncer interface {
	SyncEvent(ctx context.Context, event crm.Event) error
}

// Worker drains the marketplace queue and mirrors events into the CRM.
// It never touches the database.
type Worker struct {
	Channel *amqp.Channel
	CRM     CRMSyncer
	Logger  *zap.Logger
}

func NewWorker(ch *amqp.Channel, crmClient CRMSyncer, logger *zap.Logger) *Worker {
	return &Worker{
		Channel: ch,
		CRM:     crmClient,
		Logger:  logger,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		w.Logger.Fatal("register queue consumer", zap.Error(err))
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var event MarketplaceEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				// Poison message. Reject without requeue so it dead-letters.
				w.Logger.Error("malformed queue message, sending to DLQ", zap.Error(err))
				d.Nack(false, false)
				continue
			}

			if err := w.processMessage(context.Background(), event); err != nil {
				w.Logger.Error("crm sync failed, sending to DLQ",
					zap.String("event_type", event.Type),
					zap.String("lead_id", event.LeadID),
					zap.Error(err),
				)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	w.Logger.Info("crm sync worker running", zap.String("queue", queueName))
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, event MarketplaceEvent) error {
	switch event.Type {
	case EventLeadCaptured, EventPurchaseCompleted, EventPurchaseRefunded:
		return w.CRM.SyncEvent(ctx, crm.Event{
			Type:       event.Type,
			LeadID:     event.LeadID,
			VendorID:   event.VendorID,
			PurchaseID: event.PurchaseID,
			Company:    event.Company,
			JobType:    event.JobType,
			OccurredAt: event.OccurredAt.Format(time.RFC3339),
		})
	default:
		// Unknown event type: ack and move on, nothing to sync.
		w.Logger.Warn("unknown marketplace event type", zap.String("type", event.Type))
		return nil
	}
}
