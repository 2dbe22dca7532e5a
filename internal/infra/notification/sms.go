// Package notification provides the delivery channel for verification codes.
package notification

import (
	"context"
	"log/slog"

	"shophub/internal/domain/service"
)

// smsNotifier is a simulated SMS channel. It logs the delivery instead of
// calling a carrier API; swapping in a real provider only touches this file.
type smsNotifier struct {
	logger *slog.Logger
}

// NewSMSNotifier creates the simulated SMS notifier.
func NewSMSNotifier(logger *slog.Logger) service.Notifier {
	return &smsNotifier{logger: logger}
}

func (n *smsNotifier) SendCode(_ context.Context, mobile, code string) error {
	n.logger.Info("[SMS] verification code sent",
		slog.String("mobile", mobile),
		slog.String("code", code),
	)

	return nil
}
