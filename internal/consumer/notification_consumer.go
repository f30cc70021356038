package consumer

import (
	"encoding/json"
	"log"

	"github.com/gourmetgo/gourmetgo-backend/internal/notifier"
	amqp "github.com/rabbitmq/amqp091-go"
)

type NotificationConsumer struct {
	mailer notifier.Mailer
}

func NewNotificationConsumer(mailer notifier.Mailer) *NotificationConsumer {
	return &NotificationConsumer{mailer: mailer}
}

// Start listens for queued emails and hands them to the mailer. A failed
// delivery is nacked with requeue so the broker retries it.
func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		log.Println("[NotificationConsumer] channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var email notifier.EmailMessage
	if err := json.Unmarshal(msg.Body, &email); err != nil {
		log.Printf("[NotificationConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := nc.mailer.Deliver(email); err != nil {
		log.Printf("[NotificationConsumer] delivery to %s failed: %v", email.To, err)
		msg.Nack(false, true) // requeue
		return
	}

	msg.Ack(false)
}
