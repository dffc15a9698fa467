package notify

import (
	"context"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/observability/logger"
	"go.uber.org/zap"
)

// Sender delivers a rendered message to one contact. Implementations
// wrap whatever gateway the deployment uses.
type Sender interface {
	Send(ctx context.Context, contact, message string) error
}

// LogSender writes messages to the application log instead of a
// gateway. It is the default sender until an SMS provider is wired in.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log.Named("notify.sender")}
}

func (s *LogSender) Send(ctx context.Context, contact, message string) error {
	s.log.Info("receipt delivered",
		zap.String("contact", logger.MaskContact(contact)),
		zap.String("message", message),
	)
	return nil
}
