// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"shophub/config"
	"shophub/internal/domain/entity"
	domainerrors "shophub/internal/domain/errors"
	"shophub/internal/domain/repository"
	"shophub/internal/domain/service"
	"shophub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultCodeTTL = 5 * time.Minute

// authService implements the AuthUsecase interface.
type authService struct {
	challenges repository.ChallengeRepository
	users      repository.UserRepository
	hasher     service.CodeHasher
	notifier   service.Notifier
	tokens     service.TokenService
	logger     *slog.Logger

	codeTTL time.Duration
	nowFunc func() time.Time
	genCode func() string
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	cfg *config.Config,
	challenges repository.ChallengeRepository,
	users repository.UserRepository,
	hasher service.CodeHasher,
	notifier service.Notifier,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	codeTTL := defaultCodeTTL
	if cfg.Auth != nil && cfg.Auth.CodeTTL > 0 {
		codeTTL = cfg.Auth.CodeTTL
	}

	return &authService{
		challenges: challenges,
		users:      users,
		hasher:     hasher,
		notifier:   notifier,
		tokens:     tokens,
		logger:     logger,
		codeTTL:    codeTTL,
		nowFunc:    time.Now,
		genCode:    randomCode,
	}
}

// randomCode draws a uniform six-digit code.
func randomCode() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}

// RequestCode issues a verification code and sends it to the mobile number.
// A live code for the same number is replaced.
func (srv *authService) RequestCode(ctx context.Context, mobile string) error {
	if mobile == "" {
		return domainerrors.ErrValidationFailed.WithDetails("mobile number is required")
	}

	code := srv.genCode()
	hash, err := srv.hasher.HashCode(code)
	if err != nil {
		return errors.Wrap(err, "hash verification code")
	}

	challenge := &entity.Challenge{
		Identifier: mobile,
		CodeHash:   hash,
		ExpiresAt:  srv.nowFunc().Add(srv.codeTTL),
	}
	if err := srv.challenges.Save(ctx, challenge); err != nil {
		return errors.Wrap(err, "save challenge")
	}

	if err := srv.notifier.SendCode(ctx, mobile, code); err != nil {
		// An undeliverable code must not stay redeemable.
		if delErr := srv.challenges.Delete(ctx, mobile); delErr != nil {
			srv.logger.Error("failed to clean up undelivered challenge",
				slog.String("mobile", mobile), slog.Any("error", delErr))
		}

		return domainerrors.ErrCodeDelivery.WrapMessage(err.Error())
	}

	srv.logger.Info("verification code issued", slog.String("mobile", mobile))

	return nil
}

// VerifyCode checks a submitted code and logs the user in on success.
func (srv *authService) VerifyCode(ctx context.Context, input *usecase.VerifyCodeInput) (*usecase.AuthResult, error) {
	challenge, err := srv.challenges.Find(ctx, input.Mobile)
	if err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			return nil, domainerrors.ErrChallengeNotFound
		}

		return nil, errors.Wrap(err, "find challenge")
	}

	if challenge.Expired(srv.nowFunc()) {
		if err := srv.challenges.Delete(ctx, input.Mobile); err != nil {
			return nil, errors.Wrap(err, "delete expired challenge")
		}

		return nil, domainerrors.ErrChallengeExpired
	}

	// Every verify consumes an attempt before the code is compared, so a
	// correct code arriving after the budget is spent is refused too.
	attempts, err := srv.challenges.IncrementAttempts(ctx, input.Mobile)
	if err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			return nil, domainerrors.ErrChallengeNotFound
		}

		return nil, errors.Wrap(err, "count attempt")
	}

	if attempts > entity.MaxChallengeAttempts {
		if delErr := srv.challenges.Delete(ctx, input.Mobile); delErr != nil {
			return nil, errors.Wrap(delErr, "delete exhausted challenge")
		}

		return nil, domainerrors.ErrAttemptsExceeded
	}

	if err := srv.hasher.CheckCode(input.Code, challenge.CodeHash); err != nil {
		return nil, domainerrors.ErrCodeMismatch
	}

	// A code is redeemable exactly once.
	if err := srv.challenges.Delete(ctx, input.Mobile); err != nil {
		return nil, errors.Wrap(err, "consume challenge")
	}

	user, isNew, err := srv.resolveUser(ctx, input)
	if err != nil {
		return nil, err
	}

	token, err := srv.tokens.GenerateToken(user.ID, user.Mobile)
	if err != nil {
		return nil, errors.Wrap(err, "generate token")
	}

	srv.logger.Info("user verified",
		slog.String("mobile", input.Mobile),
		slog.Bool("new_user", isNew),
	)

	return &usecase.AuthResult{Token: token, User: user, IsNewUser: isNew}, nil
}

// resolveUser finds the account for a verified mobile number, creating it
// when the caller supplied a name for signup.
func (srv *authService) resolveUser(ctx context.Context, input *usecase.VerifyCodeInput) (*entity.User, bool, error) {
	user, err := srv.users.FindByMobile(ctx, input.Mobile)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, false, errors.Wrap(err, "find user")
	}

	if input.Name == "" {
		return nil, false, domainerrors.ErrUnknownUser
	}

	now := srv.nowFunc()
	user = &entity.User{
		ID:        uuid.New(),
		Mobile:    input.Mobile,
		Name:      input.Name,
		Email:     input.Email,
		JoinedAt:  now,
		UpdatedAt: now,
	}
	if err := srv.users.Create(ctx, user); err != nil {
		return nil, false, errors.Wrap(err, "create user")
	}

	return user, true, nil
}
