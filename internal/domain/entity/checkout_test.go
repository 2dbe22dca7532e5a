package entity

import (
	"testing"
	"time"

	domainerrors "shophub/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *CheckoutSession {
	return NewCheckoutSession("s1", uuid.New(), []OrderItem{
		{ProductID: "p1", Price: decimal.NewFromInt(100), Quantity: 1},
	}, time.Now())
}

func testAddress() Address {
	return Address{ID: uuid.New(), Country: "US"}
}

func TestCheckoutSession_StepOrder(t *testing.T) {
	s := testSession()
	now := time.Now()

	require.Equal(t, StepAddressSelection, s.CurrentStep())

	// Leaving the address step needs an address.
	_, err := s.Advance(now)
	assert.ErrorIs(t, err, domainerrors.ErrPreconditionNotMet)

	require.NoError(t, s.SelectAddress(testAddress(), now))
	step, err := s.Advance(now)
	require.NoError(t, err)
	assert.Equal(t, StepPaymentSelection, step)

	// Leaving the payment step needs a method.
	_, err = s.Advance(now)
	assert.ErrorIs(t, err, domainerrors.ErrPreconditionNotMet)

	require.NoError(t, s.SelectPaymentMethod(MethodCard, now))
	step, err = s.Advance(now)
	require.NoError(t, err)
	assert.Equal(t, StepReview, step)

	// Review is left through placement, not Advance.
	_, err = s.Advance(now)
	assert.ErrorIs(t, err, domainerrors.ErrPreconditionNotMet)
}

func TestCheckoutSession_RetreatBounds(t *testing.T) {
	s := testSession()
	now := time.Now()

	_, err := s.Retreat(now)
	assert.ErrorIs(t, err, domainerrors.ErrPreconditionNotMet)

	require.NoError(t, s.SelectAddress(testAddress(), now))
	_, err = s.Advance(now)
	require.NoError(t, err)

	step, err := s.Retreat(now)
	require.NoError(t, err)
	assert.Equal(t, StepAddressSelection, step)
}

func TestCheckoutSession_FinalTotal(t *testing.T) {
	s := testSession()

	totals := s.FinalTotal(decimal.NewFromFloat(5.99), decimal.NewFromFloat(0.08))

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(8)))
	assert.True(t, totals.Total.Equal(decimal.NewFromFloat(113.99)), "got %s", totals.Total)
}

func TestCheckoutSession_RejectsUnknownMethod(t *testing.T) {
	s := testSession()
	now := time.Now()

	require.NoError(t, s.SelectAddress(testAddress(), now))
	_, err := s.Advance(now)
	require.NoError(t, err)

	err = s.SelectPaymentMethod(PaymentMethodKind("barter"), now)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRequest)
}

func TestCheckoutSession_SelectionsBoundToTheirStep(t *testing.T) {
	s := testSession()
	now := time.Now()

	// A method cannot be chosen before the payment step is reached.
	err := s.SelectPaymentMethod(MethodCard, now)
	assert.ErrorIs(t, err, domainerrors.ErrPreconditionNotMet)

	require.NoError(t, s.SelectAddress(testAddress(), now))
	_, err = s.Advance(now)
	require.NoError(t, err)

	// The address step is behind us now.
	err = s.SelectAddress(testAddress(), now)
	assert.ErrorIs(t, err, domainerrors.ErrPreconditionNotMet)

	require.NoError(t, s.SelectPaymentMethod(MethodCard, now))
	_, err = s.Advance(now)
	require.NoError(t, err)
	require.Equal(t, StepReview, s.CurrentStep())

	// Neither selection is open at review; changing either goes back
	// through Retreat.
	err = s.SelectAddress(testAddress(), now)
	assert.ErrorIs(t, err, domainerrors.ErrPreconditionNotMet)
	err = s.SelectPaymentMethod(MethodPayPal, now)
	assert.ErrorIs(t, err, domainerrors.ErrPreconditionNotMet)

	step, err := s.Retreat(now)
	require.NoError(t, err)
	require.Equal(t, StepPaymentSelection, step)
	assert.NoError(t, s.SelectPaymentMethod(MethodPayPal, now))
}

func TestCheckoutSession_PlacementClaim(t *testing.T) {
	s := testSession()
	now := time.Now()

	require.NoError(t, s.SelectAddress(testAddress(), now))
	_, err := s.Advance(now)
	require.NoError(t, err)
	require.NoError(t, s.SelectPaymentMethod(MethodCard, now))
	_, err = s.Advance(now)
	require.NoError(t, err)

	orderID, err := s.BeginPlacement()
	require.NoError(t, err)
	assert.Empty(t, orderID)

	// A second claim while the first is in flight is refused.
	_, err = s.BeginPlacement()
	assert.ErrorIs(t, err, domainerrors.ErrPaymentInFlight)

	// So is any edit.
	err = s.SelectPaymentMethod(MethodPayPal, now)
	assert.ErrorIs(t, err, domainerrors.ErrPaymentInFlight)

	s.CompletePlacement("ORD123", now)
	assert.Equal(t, StepPlaced, s.CurrentStep())

	// After placement the claim returns the existing order.
	orderID, err = s.BeginPlacement()
	require.NoError(t, err)
	assert.Equal(t, "ORD123", orderID)
}

func TestCheckoutSession_FailedPlacementReopensReview(t *testing.T) {
	s := testSession()
	now := time.Now()

	require.NoError(t, s.SelectAddress(testAddress(), now))
	_, err := s.Advance(now)
	require.NoError(t, err)
	require.NoError(t, s.SelectPaymentMethod(MethodCard, now))
	_, err = s.Advance(now)
	require.NoError(t, err)

	_, err = s.BeginPlacement()
	require.NoError(t, err)
	s.FailPlacement(now)

	assert.Equal(t, StepReview, s.CurrentStep())

	// The claim is free again.
	_, err = s.BeginPlacement()
	require.NoError(t, err)
}

func TestCheckoutSession_PlacementRequiresReview(t *testing.T) {
	s := testSession()

	_, err := s.BeginPlacement()
	assert.ErrorIs(t, err, domainerrors.ErrPreconditionNotMet)
}

func TestCheckoutSession_ViewCopies(t *testing.T) {
	s := testSession()
	now := time.Now()

	require.NoError(t, s.SelectAddress(testAddress(), now))

	view := s.View()
	require.Equal(t, StepAddressSelection, view.Step)
	require.Len(t, view.Items, 1)
	require.NotNil(t, view.Address)

	// The view owns its data; mutating it leaves the session untouched.
	view.Items[0].Quantity = 99
	view.Address.Country = "FR"

	again := s.View()
	assert.Equal(t, 1, again.Items[0].Quantity)
	assert.Equal(t, "US", again.Address.Country)
}

func TestCheckoutSession_CancelClosesSession(t *testing.T) {
	s := testSession()
	now := time.Now()

	require.NoError(t, s.Cancel(now))
	assert.Equal(t, StepCancelled, s.CurrentStep())

	err := s.SelectAddress(testAddress(), now)
	assert.ErrorIs(t, err, domainerrors.ErrSessionClosed)

	_, err = s.BeginPlacement()
	assert.ErrorIs(t, err, domainerrors.ErrSessionClosed)
}
