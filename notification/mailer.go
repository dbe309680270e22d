package notification

import (
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"

	"stayvista_service/domain"
)

type Mailer struct {
	smtpServer   string
	smtpPort     int
	smtpEmail    string
	smtpPassword string
	cb           *gobreaker.CircuitBreaker
	logger       *logrus.Logger
}

func NewMailer(smtpServer string, smtpPort int, smtpEmail, smtpPassword string, logger *logrus.Logger) *Mailer {
	return &Mailer{
		smtpServer:   smtpServer,
		smtpPort:     smtpPort,
		smtpEmail:    smtpEmail,
		smtpPassword: smtpPassword,
		cb:           CircuitBreaker("mailerService"),
		logger:       logger,
	}
}

// SendReservationMails notifies guest and host about a new reservation.
// A failed recipient is logged and does not stop the other mail.
func (mailer *Mailer) SendReservationMails(event *domain.BookingCreatedEvent) {
	date := event.Date.Format("2006-01-02")

	guestBody := fmt.Sprintf(
		"Hi %s,\n\nYour reservation for %s on %s is confirmed.\nAmount paid: $%.2f\nBooking reference: %s\n",
		event.GuestName, event.RoomTitle, date, event.Price, event.BookingID)
	if err := mailer.send(event.GuestEmail, "Your StayVista reservation is confirmed", guestBody); err != nil {
		mailer.logger.Errorf("failed to send reservation mail to guest %s: %s", event.GuestEmail, err)
	}

	hostBody := fmt.Sprintf(
		"Your room %s was booked by %s for %s.\nAmount: $%.2f\nBooking reference: %s\n",
		event.RoomTitle, event.GuestName, date, event.Price, event.BookingID)
	if err := mailer.send(event.HostEmail, "New reservation for your room", hostBody); err != nil {
		mailer.logger.Errorf("failed to send reservation mail to host %s: %s", event.HostEmail, err)
	}
}

func (mailer *Mailer) send(to, subject, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", mailer.smtpEmail)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	client := gomail.NewDialer(mailer.smtpServer, mailer.smtpPort, mailer.smtpEmail, mailer.smtpPassword)

	_, err := mailer.cb.Execute(func() (interface{}, error) {
		return nil, client.DialAndSend(message)
	})
	return err
}

func CircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Printf("Circuit Breaker '%s' changed from '%s' to '%s'\n", name, from, to)
			},
		},
	)
}
