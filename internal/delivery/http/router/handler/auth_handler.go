package handler

import (
	"log/slog"
	"net/http"

	"shophub/internal/delivery/http/response"
	"shophub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for login-related handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

type requestCodeInput struct {
	Mobile string `json:"mobile" validate:"required"`
}

// RequestCode handles the request to send a verification code.
func (h *AuthHandler) RequestCode(c echo.Context) error {
	var input *requestCodeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification request")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.RequestCode(c.Request().Context(), input.Mobile); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"mobile": input.Mobile}, "Verification code sent")
}

// VerifyCode handles the code verification and login request.
func (h *AuthHandler) VerifyCode(c echo.Context) error {
	var input *usecase.VerifyCodeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.VerifyCode(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	status := http.StatusOK
	if output.IsNewUser {
		status = http.StatusCreated
	}

	return response.Success(c, status, output, "Login successful")
}
