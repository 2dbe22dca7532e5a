package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "shophub/internal/domain/errors"
	"shophub/internal/infra/auth"
	"shophub/internal/infra/kv"
	"shophub/internal/infra/otp"
	"shophub/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authFixtures holds all test dependencies for auth service tests.
type authFixtures struct {
	service  usecase.AuthUsecase
	impl     *authService
	notifier *recordingNotifier
}

func createTestAuthService(t *testing.T) authFixtures {
	t.Helper()

	cfg := testConfig()
	store := testStore()
	notifier := newRecordingNotifier()

	svc := NewAuthService(
		cfg,
		otp.NewMemoryStore(),
		kv.NewUserRepository(store),
		auth.NewBcryptHasher(cfg),
		notifier,
		stubTokenService{},
		testLogger(),
	)

	return authFixtures{
		service:  svc,
		impl:     svc.(*authService),
		notifier: notifier,
	}
}

func TestAuthService_RequestCode_SendsSixDigitCode(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, fx.service.RequestCode(ctx, "+15551230001"))

	code := fx.notifier.lastCode("+15551230001")
	require.Len(t, code, 6)
	assert.Regexp(t, `^[1-9]\d{5}$`, code)
}

func TestAuthService_VerifyCode_CreatesAccountWithName(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	mobile := "+15551230002"

	require.NoError(t, fx.service.RequestCode(ctx, mobile))

	result, err := fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{
		Mobile: mobile,
		Code:   fx.notifier.lastCode(mobile),
		Name:   "Ada",
	})

	require.NoError(t, err)
	assert.True(t, result.IsNewUser)
	assert.Equal(t, "Ada", result.User.Name)
	assert.Equal(t, mobile, result.User.Mobile)
	assert.Equal(t, "token-"+result.User.ID.String(), result.Token)
}

func TestAuthService_VerifyCode_UnknownUserWithoutName(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	mobile := "+15551230003"

	require.NoError(t, fx.service.RequestCode(ctx, mobile))

	_, err := fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{
		Mobile: mobile,
		Code:   fx.notifier.lastCode(mobile),
	})

	assert.ErrorIs(t, err, domainerrors.ErrUnknownUser)
}

func TestAuthService_VerifyCode_IsSingleUse(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	mobile := "+15551230004"

	require.NoError(t, fx.service.RequestCode(ctx, mobile))
	code := fx.notifier.lastCode(mobile)

	_, err := fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{Mobile: mobile, Code: code, Name: "Ada"})
	require.NoError(t, err)

	// The code was consumed; replaying it finds nothing.
	_, err = fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{Mobile: mobile, Code: code})
	assert.ErrorIs(t, err, domainerrors.ErrChallengeNotFound)
}

func TestAuthService_VerifyCode_WrongCodeAttempts(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	mobile := "+15551230005"

	require.NoError(t, fx.service.RequestCode(ctx, mobile))
	wrong := &usecase.VerifyCodeInput{Mobile: mobile, Code: "000000"}

	// Three wrong codes leave the challenge alive.
	for range 3 {
		_, err := fx.service.VerifyCode(ctx, wrong)
		assert.ErrorIs(t, err, domainerrors.ErrCodeMismatch)
	}

	// The fourth wrong code destroys it.
	_, err := fx.service.VerifyCode(ctx, wrong)
	assert.ErrorIs(t, err, domainerrors.ErrAttemptsExceeded)

	// Even the right code finds nothing after that.
	_, err = fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{
		Mobile: mobile,
		Code:   fx.notifier.lastCode(mobile),
	})
	assert.ErrorIs(t, err, domainerrors.ErrChallengeNotFound)
}

func TestAuthService_VerifyCode_CorrectCodeAfterBudgetSpent(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	mobile := "+15551230009"

	require.NoError(t, fx.service.RequestCode(ctx, mobile))
	wrong := &usecase.VerifyCodeInput{Mobile: mobile, Code: "000000"}

	for range 3 {
		_, err := fx.service.VerifyCode(ctx, wrong)
		assert.ErrorIs(t, err, domainerrors.ErrCodeMismatch)
	}

	// The budget is spent, so the right code on the fourth verify is
	// refused and the challenge destroyed.
	_, err := fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{
		Mobile: mobile,
		Code:   fx.notifier.lastCode(mobile),
	})
	assert.ErrorIs(t, err, domainerrors.ErrAttemptsExceeded)

	_, err = fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{
		Mobile: mobile,
		Code:   fx.notifier.lastCode(mobile),
	})
	assert.ErrorIs(t, err, domainerrors.ErrChallengeNotFound)
}

func TestAuthService_VerifyCode_Expired(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	mobile := "+15551230006"

	require.NoError(t, fx.service.RequestCode(ctx, mobile))

	// Move past the code TTL.
	fx.impl.nowFunc = func() time.Time {
		return time.Now().Add(6 * time.Minute)
	}

	_, err := fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{
		Mobile: mobile,
		Code:   fx.notifier.lastCode(mobile),
	})
	assert.ErrorIs(t, err, domainerrors.ErrChallengeExpired)

	// The expired challenge was destroyed on contact.
	_, err = fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{
		Mobile: mobile,
		Code:   fx.notifier.lastCode(mobile),
	})
	assert.ErrorIs(t, err, domainerrors.ErrChallengeNotFound)
}

func TestAuthService_RequestCode_DeliveryFailureDestroysChallenge(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	mobile := "+15551230007"

	fx.notifier.err = errors.New("carrier down")

	err := fx.service.RequestCode(ctx, mobile)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCodeDelivery)

	// No redeemable challenge may survive a failed delivery.
	_, err = fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{Mobile: mobile, Code: "123456"})
	assert.ErrorIs(t, err, domainerrors.ErrChallengeNotFound)
}

func TestAuthService_RequestCode_ReissueReplacesCode(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	mobile := "+15551230008"

	require.NoError(t, fx.service.RequestCode(ctx, mobile))
	first := fx.notifier.lastCode(mobile)

	fx.impl.genCode = func() string { return "654321" }
	require.NoError(t, fx.service.RequestCode(ctx, mobile))

	if first != "654321" {
		_, err := fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{Mobile: mobile, Code: first})
		assert.ErrorIs(t, err, domainerrors.ErrCodeMismatch)
	}

	result, err := fx.service.VerifyCode(ctx, &usecase.VerifyCodeInput{Mobile: mobile, Code: "654321", Name: "Ada"})
	require.NoError(t, err)
	assert.True(t, result.IsNewUser)
}
