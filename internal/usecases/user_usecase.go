package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/domain/repositories"
)

// UserUsecase handles account administration
type UserUsecase struct {
	userRepo repositories.UserRepository
	now      func() time.Time
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, now: time.Now}
}

// List returns every active account
func (u *UserUsecase) List(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.List(ctx)
}

// Get returns a single account
func (u *UserUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// Update changes the caller's own profile. Acting on another account is forbidden.
func (u *UserUsecase) Update(ctx context.Context, actorID, id uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error) {
	if actorID != id {
		return nil, domainerrors.ErrForbidden
	}
	if input == nil {
		return nil, domainerrors.ErrInvalidInput
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		if blank(*input.FirstName) {
			return nil, domainerrors.ErrInvalidInput
		}
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		if blank(*input.LastName) {
			return nil, domainerrors.ErrInvalidInput
		}
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		if blank(*input.Email) {
			return nil, domainerrors.ErrInvalidInput
		}
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			existing, err := u.userRepo.GetByEmail(ctx, email)
			if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
				return nil, err
			}
			if existing != nil {
				return nil, domainerrors.ErrAlreadyExists
			}
			user.Email = email
		}
	}
	if input.Password != nil {
		if blank(*input.Password) {
			return nil, domainerrors.ErrInvalidInput
		}
		passwordHash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}

	user.Touch(u.now(), &actorID)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete soft-deletes the caller's own account
func (u *UserUsecase) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID != id {
		return domainerrors.ErrForbidden
	}
	return u.userRepo.SoftDelete(ctx, id)
}
