package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	domoutbox "gomart/internal/domain/outbox"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher creates an outbox.Publisher backed by a RabbitMQ channel.
// Events are published to the topic exchange with their event name as the
// routing key (e.g. "order.created").
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

func (p *Publisher) Publish(ctx context.Context, e domoutbox.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal %s: %w", e.EventName(), err)
	}

	return p.ch.PublishWithContext(ctx,
		ExchangeName,  // exchange
		e.EventName(), // routing key
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
