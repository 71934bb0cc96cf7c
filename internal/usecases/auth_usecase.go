package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/domain/repositories"
	"trackify.backend/pkg/crypto"
	"trackify.backend/pkg/jwt"
	"trackify.backend/pkg/utils"
)

var (
	hashPassword        = crypto.HashPassword
	generateNumericCode = crypto.GenerateNumericCode
	generateResetToken  = crypto.GenerateResetToken
)

// NotificationGateway delivers verification emails through the active provider
type NotificationGateway interface {
	Send(ctx context.Context, cfg *entities.EmailConfig, msg entities.EmailMessage) error
}

// AuthConfig holds password-reset settings
type AuthConfig struct {
	CodeTTL        time.Duration
	VerifyLinkBase string
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo        repositories.UserRepository
	codeRepo        repositories.VerificationCodeRepository
	emailConfigRepo repositories.EmailConfigRepository
	gateway         NotificationGateway
	uow             repositories.UnitOfWork
	jwtService      *jwt.JWTService
	cfg             AuthConfig
	now             func() time.Time
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	codeRepo repositories.VerificationCodeRepository,
	emailConfigRepo repositories.EmailConfigRepository,
	gateway NotificationGateway,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
	cfg AuthConfig,
) *AuthUsecase {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = DefaultVerificationCodeTTL
	}
	return &AuthUsecase{
		userRepo:        userRepo,
		codeRepo:        codeRepo,
		emailConfigRepo: emailConfigRepo,
		gateway:         gateway,
		uow:             uow,
		jwtService:      jwtService,
		cfg:             cfg,
		now:             time.Now,
	}
}

// SetClock overrides the time source
func (u *AuthUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Signup registers a new active user and issues a session token
func (u *AuthUsecase) Signup(ctx context.Context, input *entities.SignupInput) (*entities.AuthResult, error) {
	user, err := u.createUser(ctx, input)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := u.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// CreateUser registers a user without issuing a session
func (u *AuthUsecase) CreateUser(ctx context.Context, input *entities.SignupInput) (*entities.User, error) {
	return u.createUser(ctx, input)
}

func (u *AuthUsecase) createUser(ctx context.Context, input *entities.SignupInput) (*entities.User, error) {
	if input == nil || blank(input.FirstName, input.LastName, input.Email, input.Password) {
		return nil, domainerrors.ErrInvalidInput
	}
	email := normalizeEmail(input.Email)

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.ErrAlreadyExists
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	user.Stamp(u.now(), nil)

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a session token
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResult, error) {
	if input == nil || blank(input.Email, input.Password) {
		return nil, domainerrors.ErrInvalidInput
	}

	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}

	token, expiresAt, err := u.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// RequestPasswordReset issues a forgot_password code and emails it to the user
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, email string) (*entities.PasswordResetTicket, error) {
	if blank(email) {
		return nil, domainerrors.ErrInvalidInput
	}
	email = normalizeEmail(email)

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	code, err := generateNumericCode()
	if err != nil {
		return nil, err
	}
	token, err := generateResetToken()
	if err != nil {
		return nil, err
	}

	now := u.now()
	record := &entities.VerificationCode{
		ID:           utils.GenerateUUIDv7(),
		UserID:       user.ID,
		Code:         code,
		Token:        token,
		Action:       entities.ActionForgotPassword,
		Duration:     int(u.cfg.CodeTTL / time.Minute),
		ExpiringDate: now.Add(u.cfg.CodeTTL),
	}
	if record.Duration == 0 {
		record.Duration = verificationDurationMinute
	}
	record.Stamp(now, &user.ID)

	if err := u.codeRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	cfg, err := u.emailConfigRepo.GetActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	tpl, err := u.emailConfigRepo.GetTemplate(ctx, entities.ActionForgotPassword)
	if err != nil {
		return nil, err
	}

	msg := entities.EmailMessage{
		To:         user.Email,
		Code:       code,
		Link:       u.verifyLink(token),
		TemplateID: tpl.TemplateID,
	}
	if err := u.gateway.Send(ctx, cfg, msg); err != nil {
		if errors.Is(err, domainerrors.ErrEmailConfigMissing) || errors.Is(err, domainerrors.ErrEmailDeliveryFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrEmailDeliveryFailed, err)
	}

	return &entities.PasswordResetTicket{Token: token, ExpiresAt: record.ExpiringDate}, nil
}

func (u *AuthUsecase) verifyLink(token string) string {
	q := url.Values{}
	q.Set("token", token)
	return u.cfg.VerifyLinkBase + "?" + q.Encode()
}

// VerifyCode consumes a forgot_password code belonging to the user with the given email
func (u *AuthUsecase) VerifyCode(ctx context.Context, input *entities.VerifyCodeInput) error {
	if input == nil || blank(input.Email, input.Token) {
		return domainerrors.ErrInvalidInput
	}

	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return err
	}

	record, err := u.codeRepo.FindByCode(ctx, input.Code, input.Token, entities.ActionForgotPassword)
	if err != nil {
		return err
	}
	if record.UserID != user.ID {
		return domainerrors.ErrNotFound
	}

	// consumption also sets is_expired, so a replay must be reported as used
	if record.IsUsed {
		return domainerrors.ErrCodeAlreadyUsed
	}
	if record.ExpiredAt(u.now()) {
		return domainerrors.ErrCodeExpired
	}

	return u.codeRepo.Consume(ctx, record.ID)
}

// ResetPassword sets a new password once the token's code has been verified
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	if input == nil || blank(input.Email, input.Token, input.NewPassword) {
		return domainerrors.ErrInvalidInput
	}

	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return err
	}

	record, err := u.codeRepo.FindByToken(ctx, input.Token, entities.ActionForgotPassword)
	if err != nil {
		return err
	}
	if record.UserID != user.ID {
		return domainerrors.ErrNotFound
	}
	if !record.IsUsed {
		return domainerrors.ErrCodeNotVerified
	}
	if record.RedeemedAt.Valid {
		return domainerrors.ErrCodeAlreadyUsed
	}

	now := u.now()
	if !now.Before(record.ExpiringDate) {
		return domainerrors.ErrCodeExpired
	}

	if crypto.CheckPassword(input.NewPassword, user.PasswordHash) {
		return domainerrors.ErrSamePassword
	}

	passwordHash, err := hashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.UpdatePassword(txCtx, user.ID, passwordHash); err != nil {
			return err
		}
		return u.codeRepo.Redeem(txCtx, record.ID, now)
	})
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
