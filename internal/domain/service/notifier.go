package service

import "context"

// Notifier defines the interface for delivering verification codes to a
// user's mobile number.
type Notifier interface {
	// SendCode delivers a verification code to the given mobile number.
	SendCode(ctx context.Context, mobile, code string) error
}
