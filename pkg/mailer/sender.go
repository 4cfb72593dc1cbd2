package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// LogSender writes emails to the log instead of delivering them.
type LogSender struct {
	Logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{Logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, subject, text, _ string) error {
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info(text)
	}
	return nil
}
