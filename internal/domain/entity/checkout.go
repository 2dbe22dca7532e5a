package entity

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerrors "shophub/internal/domain/errors"
)

// CheckoutStep is a stage of the checkout flow.
type CheckoutStep string

const (
	StepAddressSelection CheckoutStep = "address_selection"
	StepPaymentSelection CheckoutStep = "payment_selection"
	StepReview           CheckoutStep = "review"
	StepPlaced           CheckoutStep = "placed"
	StepCancelled        CheckoutStep = "cancelled"
)

// CheckoutSession walks a user's cart through address selection, payment
// selection and review until the order is placed. All mutation goes through
// the session's lock, so concurrent requests on the same session serialize.
type CheckoutSession struct {
	mu sync.Mutex

	ID        string
	UserID    uuid.UUID
	Items     []OrderItem
	Step      CheckoutStep
	Address   *Address
	Method    PaymentMethodKind
	OrderID   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// placing guards against a second placement racing the in-flight one.
	placing bool
}

// NewCheckoutSession opens a session over a cart snapshot.
func NewCheckoutSession(id string, userID uuid.UUID, items []OrderItem, now time.Time) *CheckoutSession {
	return &CheckoutSession{
		ID:        id,
		UserID:    userID,
		Items:     items,
		Step:      StepAddressSelection,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Subtotal sums the item line totals.
func (s *CheckoutSession) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return subtotalOf(s.Items)
}

func subtotalOf(items []OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Subtotal())
	}

	return sum
}

// FinalTotal computes the charge amount: subtotal plus a flat shipping fee
// plus tax on the subtotal.
func (s *CheckoutSession) FinalTotal(shippingFee, taxRate decimal.Decimal) OrderTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	return totalsOf(s.Items, shippingFee, taxRate)
}

func totalsOf(items []OrderItem, shippingFee, taxRate decimal.Decimal) OrderTotals {
	subtotal := subtotalOf(items)
	tax := subtotal.Mul(taxRate).Round(2)

	return OrderTotals{
		Subtotal: subtotal,
		Shipping: shippingFee,
		Tax:      tax,
		Total:    subtotal.Add(shippingFee).Add(tax),
	}
}

// SelectAddress records the shipping address. Allowed only at the address
// step; changing it later goes back through Retreat.
func (s *CheckoutSession) SelectAddress(addr Address, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openForEdit(); err != nil {
		return err
	}
	if s.Step != StepAddressSelection {
		return domainerrors.ErrPreconditionNotMet.WithDetails("address is chosen at the address step")
	}

	copied := addr
	s.Address = &copied
	s.UpdatedAt = now

	return nil
}

// SelectPaymentMethod records the chosen payment method. Allowed only at the
// payment step.
func (s *CheckoutSession) SelectPaymentMethod(kind PaymentMethodKind, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openForEdit(); err != nil {
		return err
	}
	if s.Step != StepPaymentSelection {
		return domainerrors.ErrPreconditionNotMet.WithDetails("payment method is chosen at the payment step")
	}
	if _, ok := MethodByKind(kind); !ok {
		return domainerrors.ErrInvalidRequest.WithDetails("unsupported payment method: " + string(kind))
	}

	s.Method = kind
	s.UpdatedAt = now

	return nil
}

// Advance moves the session one step forward. Each step's prerequisites must
// be met before leaving it.
func (s *CheckoutSession) Advance(now time.Time) (CheckoutStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openForEdit(); err != nil {
		return s.Step, err
	}

	switch s.Step {
	case StepAddressSelection:
		if s.Address == nil {
			return s.Step, domainerrors.ErrPreconditionNotMet.WithDetails("select a shipping address first")
		}
		s.Step = StepPaymentSelection
	case StepPaymentSelection:
		if s.Method == "" {
			return s.Step, domainerrors.ErrPreconditionNotMet.WithDetails("select a payment method first")
		}
		s.Step = StepReview
	case StepReview:
		return s.Step, domainerrors.ErrPreconditionNotMet.WithDetails("place the order to leave review")
	default:
		return s.Step, domainerrors.ErrSessionClosed
	}

	s.UpdatedAt = now

	return s.Step, nil
}

// Retreat moves the session one step back. Selections already made are kept.
func (s *CheckoutSession) Retreat(now time.Time) (CheckoutStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openForEdit(); err != nil {
		return s.Step, err
	}

	switch s.Step {
	case StepPaymentSelection:
		s.Step = StepAddressSelection
	case StepReview:
		s.Step = StepPaymentSelection
	default:
		return s.Step, domainerrors.ErrPreconditionNotMet.WithDetails("already at the first step")
	}

	s.UpdatedAt = now

	return s.Step, nil
}

// Cancel abandons the session. Placed sessions cannot be cancelled; the order
// has its own cancellation path.
func (s *CheckoutSession) Cancel(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openForEdit(); err != nil {
		return err
	}

	s.Step = StepCancelled
	s.UpdatedAt = now

	return nil
}

// BeginPlacement claims the session for a placement attempt. It returns the
// existing order id when the session has already been placed, and
// ErrPaymentInFlight when another placement is running.
func (s *CheckoutSession) BeginPlacement() (orderID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.Step {
	case StepPlaced:
		return s.OrderID, nil
	case StepCancelled:
		return "", domainerrors.ErrSessionClosed
	case StepReview:
	default:
		return "", domainerrors.ErrPreconditionNotMet.WithDetails("review the order before placing it")
	}
	if s.placing {
		return "", domainerrors.ErrPaymentInFlight
	}
	if s.Address == nil || s.Method == "" {
		return "", domainerrors.ErrPreconditionNotMet.WithDetails("address and payment method are required")
	}

	s.placing = true

	return "", nil
}

// CompletePlacement finishes a successful placement and seals the session.
func (s *CheckoutSession) CompletePlacement(orderID string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.placing = false
	s.Step = StepPlaced
	s.OrderID = orderID
	s.UpdatedAt = now
}

// FailPlacement releases the placement claim after a declined or failed
// payment, leaving the session at review for another attempt.
func (s *CheckoutSession) FailPlacement(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.placing = false
	s.UpdatedAt = now
}

// Snapshot returns the fields needed to build an order without holding the
// session lock across gateway calls.
type CheckoutSnapshot struct {
	Items   []OrderItem
	Address Address
	Method  PaymentMethodKind
}

// PlacementSnapshot copies the session state claimed by BeginPlacement.
func (s *CheckoutSession) PlacementSnapshot() CheckoutSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]OrderItem, len(s.Items))
	copy(items, s.Items)

	return CheckoutSnapshot{
		Items:   items,
		Address: *s.Address,
		Method:  s.Method,
	}
}

// SessionView is a point-in-time read of the session taken under its lock.
type SessionView struct {
	Step    CheckoutStep
	Items   []OrderItem
	Address *Address
	Method  PaymentMethodKind
	OrderID string
}

// View copies the fields the API returns without racing mutations.
func (s *CheckoutSession) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]OrderItem, len(s.Items))
	copy(items, s.Items)

	var addr *Address
	if s.Address != nil {
		copied := *s.Address
		addr = &copied
	}

	return SessionView{
		Step:    s.Step,
		Items:   items,
		Address: addr,
		Method:  s.Method,
		OrderID: s.OrderID,
	}
}

// CurrentStep reads the step under the session lock.
func (s *CheckoutSession) CurrentStep() CheckoutStep {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.Step
}

func (s *CheckoutSession) openForEdit() error {
	switch s.Step {
	case StepPlaced, StepCancelled:
		return domainerrors.ErrSessionClosed
	}
	if s.placing {
		return domainerrors.ErrPaymentInFlight
	}

	return nil
}
