package notification

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"stayvista_service/domain"
)

const bookingCreatedQueue = "booking.created"

// RabbitMQPublisher pushes booking events onto a durable queue. It dials
// per publish and never panics, callers may ignore failures without
// interrupting the request flow.
type RabbitMQPublisher struct {
	url    string
	logger *logrus.Logger
}

func NewRabbitMQPublisher(url string, logger *logrus.Logger) domain.EventPublisher {
	return &RabbitMQPublisher{
		url:    url,
		logger: logger,
	}
}

func (publisher *RabbitMQPublisher) PublishBookingCreated(ctx context.Context, event *domain.BookingCreatedEvent) error {
	conn, err := amqp.Dial(publisher.url)
	if err != nil {
		publisher.logger.Errorf("rabbitmq: dial failed: %s", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		publisher.logger.Errorf("rabbitmq: channel open failed: %s", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(bookingCreatedQueue, true, false, false, false, nil); err != nil {
		publisher.logger.Errorf("rabbitmq: queue declare failed: %s", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", bookingCreatedQueue, false, false, pub); err != nil {
		publisher.logger.Errorf("rabbitmq: publish failed: %s", err)
		return err
	}

	return nil
}
