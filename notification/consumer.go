package notification

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"stayvista_service/domain"
)

const reconnectDelay = 30 * time.Second

// Consumer drains the booking queue and turns each event into the
// reservation mails. Delivery problems are only ever visible in the logs.
type Consumer struct {
	url    string
	mailer *Mailer
	logger *logrus.Logger
}

func NewConsumer(url string, mailer *Mailer, logger *logrus.Logger) *Consumer {
	return &Consumer{
		url:    url,
		mailer: mailer,
		logger: logger,
	}
}

func (consumer *Consumer) Start(ctx context.Context) {
	for {
		if err := consumer.consume(ctx); err != nil {
			consumer.logger.Errorf("rabbitmq consumer stopped: %s", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (consumer *Consumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(consumer.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(bookingCreatedQueue, true, false, false, false, nil); err != nil {
		return err
	}

	deliveries, err := ch.Consume(bookingCreatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, open := <-deliveries:
			if !open {
				return nil
			}

			var event domain.BookingCreatedEvent
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				consumer.logger.Errorf("rabbitmq: discarding malformed event: %s", err)
				_ = delivery.Nack(false, false)
				continue
			}

			consumer.mailer.SendReservationMails(&event)
			_ = delivery.Ack(false)
		}
	}
}
