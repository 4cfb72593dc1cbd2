package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
	"github.com/oksasatya/bookshelf-auth/pkg/mailer"
)

type ackRecorder struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ackRecorder) Ack(uint64, bool) error { a.acked = true; return nil }
func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}
func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

type stubSender struct {
	err error
	to  string
}

func (s *stubSender) Send(_ context.Context, to, _, _, _ string) error {
	s.to = to
	return s.err
}

func delivery(ack amqp.Acknowledger, body []byte) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}
}

func TestHandle(t *testing.T) {
	job, _ := json.Marshal(mailer.EmailJob{To: "a@x.com", Subject: "s", Text: "t"})
	logger := helpers.NewNopLogger()

	t.Run("sent", func(t *testing.T) {
		ack, s := &ackRecorder{}, &stubSender{}
		handle(context.Background(), s, logger, delivery(ack, job))
		assert.True(t, ack.acked)
		assert.Equal(t, "a@x.com", s.to)
	})

	t.Run("send failure requeues", func(t *testing.T) {
		ack := &ackRecorder{}
		handle(context.Background(), &stubSender{err: errors.New("mailgun down")}, logger, delivery(ack, job))
		assert.True(t, ack.nacked)
		assert.True(t, ack.requeue)
	})

	t.Run("bad payload dropped", func(t *testing.T) {
		ack, s := &ackRecorder{}, &stubSender{}
		handle(context.Background(), s, logger, delivery(ack, []byte("{")))
		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
		assert.Empty(t, s.to)
	})
}
