package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	mw "github.com/restroiq/crm-api/internal/infra/http/middleware"
)

const (
	EventLeadCreated    = "lead.created"
	EventFollowUpLogged = "followup.logged"
	EventLeadConverted  = "lead.converted"
)

type LeadEventPayload struct {
	Event          string    `json:"event"`
	LeadID         string    `json:"leadId"`
	FollowUpID     string    `json:"followUpId,omitempty"`
	RestaurantName string    `json:"restaurantName"`
	City           string    `json:"city"`
	Status         string    `json:"status"`
	Stage          string    `json:"stage"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
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
		mw.RecordIntegrationError("rabbitmq")
		return fmt.Errorf("publish lead event: %w", err)
	}
	return nil
}
