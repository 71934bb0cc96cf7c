package usecases

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/domain/repositories"
	"trackify.backend/pkg/utils"
)

// ApplicationUsecase handles application record business logic.
// Every operation is scoped to the calling user.
type ApplicationUsecase struct {
	appRepo repositories.ApplicationRepository
	now     func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(appRepo repositories.ApplicationRepository) *ApplicationUsecase {
	return &ApplicationUsecase{appRepo: appRepo, now: time.Now}
}

// SetClock overrides the time source
func (u *ApplicationUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// List returns the caller's applications, newest application date first
func (u *ApplicationUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.Application, error) {
	apps, err := u.appRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].ApplicationDate.After(apps[j].ApplicationDate)
	})
	return apps, nil
}

// Get returns one of the caller's applications
func (u *ApplicationUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*entities.Application, error) {
	return u.appRepo.GetByID(ctx, userID, id)
}

// Create records a new application owned by userID
func (u *ApplicationUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateApplicationInput) (*entities.Application, error) {
	if input == nil || blank(input.CompanyName, input.Location) {
		return nil, domainerrors.ErrInvalidInput
	}

	now := u.now()
	status, err := parseStatus(input.Status, entities.StatusApplied)
	if err != nil {
		return nil, err
	}
	date, err := parseApplicationDate(input.ApplicationDate, now.UTC())
	if err != nil {
		return nil, err
	}

	app := &entities.Application{
		ID:              utils.GenerateUUIDv7(),
		UserID:          userID,
		CompanyName:     strings.TrimSpace(input.CompanyName),
		PositionTitle:   optionalText(input.PositionTitle),
		Location:        strings.TrimSpace(input.Location),
		ApplicationDate: date,
		Status:          status,
		CompanyWebsite:  optionalText(input.CompanyWebsite),
		Notes:           optionalText(input.Notes),
	}
	app.Stamp(now, &userID)

	if err := u.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Update applies the provided fields to one of the caller's applications
func (u *ApplicationUsecase) Update(ctx context.Context, userID, id uuid.UUID, input *entities.UpdateApplicationInput) (*entities.Application, error) {
	if input == nil {
		return nil, domainerrors.ErrInvalidInput
	}

	app, err := u.appRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		if blank(*input.CompanyName) {
			return nil, domainerrors.ErrInvalidInput
		}
		app.CompanyName = strings.TrimSpace(*input.CompanyName)
	}
	if input.Location != nil {
		if blank(*input.Location) {
			return nil, domainerrors.ErrInvalidInput
		}
		app.Location = strings.TrimSpace(*input.Location)
	}
	if input.Status != nil {
		status, err := parseStatus(input.Status, app.Status)
		if err != nil {
			return nil, err
		}
		app.Status = status
	}
	if input.ApplicationDate != nil {
		date, err := parseApplicationDate(*input.ApplicationDate, app.ApplicationDate)
		if err != nil {
			return nil, err
		}
		app.ApplicationDate = date
	}
	applyText(&app.PositionTitle, input.PositionTitle)
	applyText(&app.CompanyWebsite, input.CompanyWebsite)
	applyText(&app.Notes, input.Notes)

	app.Touch(u.now(), &userID)

	if err := u.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Delete removes one of the caller's applications
func (u *ApplicationUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return u.appRepo.Delete(ctx, userID, id)
}

func parseStatus(value *string, fallback entities.ApplicationStatus) (entities.ApplicationStatus, error) {
	if value == nil || *value == "" {
		return fallback, nil
	}
	status := entities.ApplicationStatus(*value)
	if !status.Valid() {
		return "", domainerrors.ErrInvalidInput
	}
	return status, nil
}

// applyText overwrites dst when a value was sent; an empty string clears it
func applyText(dst *null.String, value *string) {
	if value == nil {
		return
	}
	*dst = optionalText(*value)
}
