package handler

import (
	"log/slog"
	"net/http"

	"shophub/internal/delivery/http/response"
	"shophub/internal/domain/entity"
	"shophub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler holds dependencies for payment-related handlers.
type PaymentHandler struct {
	uc     usecase.PaymentUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListMethods returns the payment method catalog.
func (h *PaymentHandler) ListMethods(c echo.Context) error {
	methods := h.uc.ListMethods(c.Request().Context())

	return response.Success(c, http.StatusOK, methods, "Payment methods retrieved successfully")
}

// ValidateCard checks card details without charging them.
func (h *PaymentHandler) ValidateCard(c echo.Context) error {
	var input *entity.CardDetails
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid card input")
	}

	result, err := h.uc.ValidateCard(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Card validated")
}

// RefundPayment refunds the full charge of a cancelled order.
func (h *PaymentHandler) RefundPayment(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	order, err := h.uc.RefundPayment(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Payment refunded")
}

// GetAuditLog returns the retained gateway call records.
func (h *PaymentHandler) GetAuditLog(c echo.Context) error {
	entries, err := h.uc.GetAuditLog(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entries, "Audit log retrieved successfully")
}

// GetAnalytics aggregates the audit log into per-gateway statistics.
func (h *PaymentHandler) GetAnalytics(c echo.Context) error {
	analytics, err := h.uc.GetAnalytics(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, analytics, "Analytics retrieved successfully")
}
