package notifier

import "log"

// EmailMessage is the payload carried on the notifications exchange.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Notifier enqueues a message for delivery. Enqueueing is fire-and-forget
// from the caller's perspective: a broker error is logged and must never
// fail the reservation or deletion that triggered it.
type Notifier interface {
	Send(to, subject, body string) error
}

// Mailer performs the actual delivery on the consumer side of the queue.
type Mailer interface {
	Deliver(msg EmailMessage) error
}

type publisher interface {
	Publish(routingKey string, payload any) error
}

// QueueNotifier publishes emails to RabbitMQ so failed deliveries are
// redelivered by the broker instead of being silently lost.
type QueueNotifier struct {
	pub publisher
}

func NewQueueNotifier(pub publisher) *QueueNotifier {
	return &QueueNotifier{pub: pub}
}

func (n *QueueNotifier) Send(to, subject, body string) error {
	return n.pub.Publish("notification.email", EmailMessage{
		To:      to,
		Subject: subject,
		Body:    body,
	})
}

// LogMailer is the development Mailer: it writes the email to the log
// instead of talking to an SMTP provider.
type LogMailer struct{}

func (LogMailer) Deliver(msg EmailMessage) error {
	log.Printf("[Mailer] to=%s subject=%q", msg.To, msg.Subject)
	return nil
}
