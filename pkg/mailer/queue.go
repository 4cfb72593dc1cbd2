package mailer

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel is the part of *amqp.Channel the queue sender needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// QueueSender publishes EmailJobs to a durable RabbitMQ queue; the email
// worker delivers them.
type QueueSender struct {
	conn  *amqp.Connection
	ch    channel
	Queue string
}

// NewQueueSender dials url and declares the durable queue.
func NewQueueSender(url, queue string) (*QueueSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err = DeclareQueue(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &QueueSender{conn: conn, ch: ch, Queue: queue}, nil
}

// DeclareQueue declares the durable email queue on ch.
func DeclareQueue(ch *amqp.Channel, queue string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
}

func (q *QueueSender) Close() {
	if q == nil {
		return
	}
	if c, ok := q.ch.(*amqp.Channel); ok && c != nil {
		_ = c.Close()
	}
	if q.conn != nil {
		_ = q.conn.Close()
	}
}

// Send enqueues the email. A nil error means the broker accepted the
// message, not that it was delivered.
func (q *QueueSender) Send(ctx context.Context, to, subject, text, html string) error {
	b, err := json.Marshal(EmailJob{To: to, Subject: subject, Text: text, HTML: html})
	if err != nil {
		return err
	}
	return q.ch.PublishWithContext(ctx,
		"",      // default exchange
		q.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
}
