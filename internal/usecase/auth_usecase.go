// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"shophub/internal/domain/entity"
)

// AuthUsecase defines the interface for mobile verification and login operations.
type AuthUsecase interface {
	// RequestCode issues a verification code for a mobile number and sends it
	// through the notifier. Reissuing replaces any live code.
	RequestCode(ctx context.Context, mobile string) error

	// VerifyCode checks a submitted code and, on success, logs the user in.
	// Unknown mobile numbers become new accounts when a name is supplied.
	VerifyCode(ctx context.Context, input *VerifyCodeInput) (*AuthResult, error)
}

// --- Input DTOs ---

// VerifyCodeInput defines the data required to verify a code.
type VerifyCodeInput struct {
	Mobile string `json:"mobile" validate:"required"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
}

// AuthResult is returned after a successful verification.
type AuthResult struct {
	Token     string       `json:"token"`
	User      *entity.User `json:"user"`
	IsNewUser bool         `json:"isNewUser"`
}
