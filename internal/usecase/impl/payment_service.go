package impl

import (
	"context"
	"log/slog"
	"time"

	"shophub/config"
	deliverycontext "shophub/internal/delivery/context"
	"shophub/internal/domain/constants"
	"shophub/internal/domain/entity"
	domainerrors "shophub/internal/domain/errors"
	"shophub/internal/domain/repository"
	"shophub/internal/domain/service"
	"shophub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const defaultPaymentTimeout = 30 * time.Second

// Card amounts outside this band route away from the default processor:
// large charges go to the rail with the better fraud tooling, micro charges
// to the one with the lowest fixed fee.
var (
	largeCardAmount = decimal.NewFromInt(1000)
	smallCardAmount = decimal.NewFromInt(50)
)

// paymentService implements the PaymentUsecase interface. It owns gateway
// selection and the bookkeeping around every charge attempt.
type paymentService struct {
	gateways  map[string]service.PaymentGateway
	detector  service.CurrencyDetector
	audit     repository.AuditRepository
	users     repository.UserRepository
	orders    repository.OrderRepository
	publisher service.EventPublisher
	logger    *slog.Logger

	timeout time.Duration
	nowFunc func() time.Time
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(
	cfg *config.Config,
	gateways []service.PaymentGateway,
	detector service.CurrencyDetector,
	audit repository.AuditRepository,
	users repository.UserRepository,
	orders repository.OrderRepository,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.PaymentUsecase {
	byName := make(map[string]service.PaymentGateway, len(gateways))
	for _, gw := range gateways {
		byName[gw.Name()] = gw
	}

	timeout := defaultPaymentTimeout
	if cfg.Checkout != nil && cfg.Checkout.PaymentTimeout > 0 {
		timeout = cfg.Checkout.PaymentTimeout
	}

	return &paymentService{
		gateways:  byName,
		detector:  detector,
		audit:     audit,
		users:     users,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		timeout:   timeout,
		nowFunc:   time.Now,
	}
}

// ListMethods returns the payment method catalog.
func (srv *paymentService) ListMethods(_ context.Context) []entity.PaymentMethod {
	return entity.SupportedMethods()
}

// ValidateCard checks card details without charging them.
func (srv *paymentService) ValidateCard(_ context.Context, input *entity.CardDetails) (*usecase.CardValidationResult, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("card details are required")
	}

	cardType := entity.CardType(input.Number)
	result := &usecase.CardValidationResult{CardType: cardType}

	switch {
	case !entity.ValidCardNumber(input.Number):
		result.Reason = "invalid card number"
	case !entity.ValidCardExpiry(input.Expiry, srv.nowFunc()):
		result.Reason = "card is expired or the expiry is malformed"
	case !entity.ValidCVV(input.CVV, cardType):
		result.Reason = "invalid security code"
	default:
		result.Valid = true
	}

	return result, nil
}

// ProcessPayment routes a charge to a gateway and records the outcome.
// A declined charge comes back as a failed transaction, not an error.
func (srv *paymentService) ProcessPayment(ctx context.Context, userID uuid.UUID, input *usecase.PaymentInput) (*entity.Transaction, error) {
	user, err := srv.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated
		}

		return nil, errors.Wrap(err, "failed to resolve paying user")
	}

	if input.Method == entity.MethodCard && input.Card != nil {
		check, err := srv.ValidateCard(ctx, input.Card)
		if err != nil {
			return nil, err
		}
		if !check.Valid {
			return nil, domainerrors.ErrValidationFailed.WithDetails(check.Reason)
		}
	}

	currency := input.Currency
	if currency == "" && input.Country != "" {
		currency = srv.detector.Detect(input.Country)
	}

	tx, err := srv.charge(ctx, user, input, currency)
	if err != nil {
		return nil, err
	}

	srv.recordOutcome(ctx, userID, input, tx)

	return tx, nil
}

// charge selects the gateway and runs the attempt under the payment timeout.
func (srv *paymentService) charge(ctx context.Context, user *entity.User, input *usecase.PaymentInput, currency string) (*entity.Transaction, error) {
	if input.Method == entity.MethodCOD {
		return srv.codTransaction(input, currency), nil
	}

	gateway, err := srv.selectGateway(input.Method, input.Amount)
	if err != nil {
		return nil, err
	}

	srv.logger.Info("routing payment",
		slog.String("user_id", user.ID.String()),
		slog.String("method", string(input.Method)),
		slog.String("gateway", gateway.Name()),
		slog.String("amount", input.Amount.String()),
	)

	chargeCtx, cancel := context.WithTimeout(ctx, srv.timeout)
	defer cancel()

	req := entity.PaymentRequest{
		Amount:   input.Amount,
		Currency: currency,
		Method:   input.Method,
		Metadata: map[string]string{"customer_mobile": user.Mobile},
	}
	if user.Email != "" {
		req.Metadata["customer_email"] = user.Email
	}
	if input.OrderRef != "" {
		req.Metadata["order_ref"] = input.OrderRef
	}

	tx, err := gateway.ProcessPayment(chargeCtx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domainerrors.ErrGatewayUnavailable.WithDetails(gateway.Name() + " timed out")
		}

		return nil, err
	}

	return tx, nil
}

// selectGateway applies the routing policy for a method and amount.
func (srv *paymentService) selectGateway(method entity.PaymentMethodKind, amount decimal.Decimal) (service.PaymentGateway, error) {
	var name string
	switch method {
	case entity.MethodPayPal:
		name = "paypal"
	case entity.MethodRazorpay:
		name = "razorpay"
	case entity.MethodApplePay, entity.MethodGooglePay:
		name = "stripe"
	case entity.MethodCard:
		switch {
		case amount.GreaterThan(largeCardAmount):
			name = "stripe"
		case amount.LessThan(smallCardAmount):
			name = "square"
		default:
			name = "stripe"
		}
	default:
		return nil, domainerrors.ErrInvalidRequest.WithDetails("unsupported payment method: " + string(method))
	}

	gateway, ok := srv.gateways[name]
	if !ok {
		return nil, domainerrors.ErrGatewayUnavailable.WithDetails(name + " is not enabled")
	}
	if !gateway.IsSupported(method) {
		return nil, domainerrors.ErrGatewayUnavailable.WithDetails(
			name + " does not support method " + string(method))
	}

	return gateway, nil
}

// codTransaction books a cash-on-delivery order without a gateway call.
// The amount is collected by the courier, so there is no fee and no decline.
func (srv *paymentService) codTransaction(input *usecase.PaymentInput, currency string) *entity.Transaction {
	if currency == "" {
		currency = "USD"
	}

	return &entity.Transaction{
		ID:        "cod_" + uuid.NewString(),
		Success:   true,
		Amount:    input.Amount,
		Currency:  currency,
		Gateway:   "cod",
		Method:    entity.MethodCOD,
		Fee:       decimal.Zero,
		Timestamp: srv.nowFunc(),
	}
}

// recordOutcome writes the audit entry and, for successful charges, the
// user's payment history. Bookkeeping failures are logged, not returned:
// the charge already happened.
func (srv *paymentService) recordOutcome(ctx context.Context, userID uuid.UUID, input *usecase.PaymentInput, tx *entity.Transaction) {
	entry := entity.AuditEntry{
		TransactionID: tx.ID,
		OrderID:       input.OrderRef,
		UserID:        userID,
		Gateway:       tx.Gateway,
		Method:        string(tx.Method),
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Success:       tx.Success,
		ErrorCode:     tx.ErrorCode,
		Timestamp:     tx.Timestamp,
	}
	if err := srv.audit.Append(ctx, entry); err != nil {
		srv.logger.Error("failed to append audit entry",
			slog.String("transaction_id", tx.ID), slog.Any("error", err))
	}

	if !tx.Success {
		return
	}

	user, err := srv.users.FindByID(ctx, userID)
	if err != nil {
		srv.logger.Error("failed to load user for payment history",
			slog.String("user_id", userID.String()), slog.Any("error", err))

		return
	}

	user.RecordPayment(entity.PaymentRecord{
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		Gateway:       tx.Gateway,
		Timestamp:     tx.Timestamp,
		Status:        "completed",
	})
	user.UpdatedAt = srv.nowFunc()

	if err := srv.users.Update(ctx, user); err != nil {
		srv.logger.Error("failed to update payment history",
			slog.String("user_id", userID.String()), slog.Any("error", err))
	}
}

// RefundPayment refunds the full charge of a cancelled order.
func (srv *paymentService) RefundPayment(ctx context.Context, userID uuid.UUID, orderID string) (*entity.Order, error) {
	order, err := srv.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "find order")
	}
	if order.UserID != userID {
		return nil, domainerrors.ErrOrderNotFound
	}

	if order.Status != entity.OrderCancelled {
		return nil, domainerrors.ErrInvalidTransition.WithDetails("only cancelled orders can be refunded")
	}
	if !order.RefundedAmount.IsZero() {
		return nil, domainerrors.ErrConflict.WithDetails("order is already refunded")
	}

	order.RefundedAmount = order.Transaction.Amount
	if err := srv.orders.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "update order")
	}

	event := &service.OrderEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventType:  constants.EventPaymentRefunded,
		OrderID:    order.ID,
		UserID:     order.UserID.String(),
		Status:     string(order.Status),
		Total:      order.RefundedAmount.String(),
		Currency:   order.Transaction.Currency,
		OccurredAt: srv.nowFunc(),
	}
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.logger.Error("failed to publish refund event",
			slog.String("order_id", order.ID), slog.Any("error", err))
	}

	return order, nil
}

// GetAuditLog returns the retained gateway call records, oldest first.
func (srv *paymentService) GetAuditLog(ctx context.Context) ([]entity.AuditEntry, error) {
	return srv.audit.List(ctx)
}

// GetAnalytics aggregates the audit log into per-gateway statistics.
func (srv *paymentService) GetAnalytics(ctx context.Context) (*usecase.PaymentAnalytics, error) {
	log, err := srv.audit.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list audit log")
	}

	analytics := &usecase.PaymentAnalytics{TotalVolume: decimal.Zero}
	index := make(map[string]int)

	for _, entry := range log {
		i, ok := index[entry.Gateway]
		if !ok {
			i = len(analytics.ByGateway)
			index[entry.Gateway] = i
			analytics.ByGateway = append(analytics.ByGateway, usecase.GatewayStats{
				Gateway: entry.Gateway,
				Volume:  decimal.Zero,
			})
		}

		analytics.TotalAttempts++
		analytics.ByGateway[i].Attempts++
		if entry.Success {
			analytics.TotalSuccesses++
			analytics.ByGateway[i].Successes++
			analytics.TotalVolume = analytics.TotalVolume.Add(entry.Amount)
			analytics.ByGateway[i].Volume = analytics.ByGateway[i].Volume.Add(entry.Amount)
		}
	}

	if analytics.TotalAttempts > 0 {
		analytics.SuccessRate = float64(analytics.TotalSuccesses) / float64(analytics.TotalAttempts)
	}

	return analytics, nil
}
