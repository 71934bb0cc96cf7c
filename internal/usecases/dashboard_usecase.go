package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"trackify.backend/internal/dashboard"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/domain/repositories"
	"trackify.backend/pkg/utils"
)

// DashboardItem is an application as shown on a dashboard card
type DashboardItem struct {
	*entities.Application
	Suggestion string `json:"suggestion,omitempty"`
}

// DashboardPage is one computed page of the dashboard list
type DashboardPage struct {
	Items      []DashboardItem      `json:"items"`
	Pagination utils.PaginationMeta `json:"pagination"`
}

// DashboardUsecase derives dashboard views over the caller's full list
type DashboardUsecase struct {
	appRepo repositories.ApplicationRepository
	now     func() time.Time
}

// NewDashboardUsecase creates a new dashboard usecase
func NewDashboardUsecase(appRepo repositories.ApplicationRepository) *DashboardUsecase {
	return &DashboardUsecase{appRepo: appRepo, now: time.Now}
}

// SetClock overrides the time source
func (u *DashboardUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// View filters, sorts and paginates the caller's applications
func (u *DashboardUsecase) View(ctx context.Context, userID uuid.UUID, params dashboard.ViewParams) (*DashboardPage, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrInvalidInput, err)
	}
	if params.Location == nil {
		params.Location = time.UTC
	}

	apps, err := u.appRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := dashboard.ComputeView(apps, params)
	now := u.now()
	items := make([]DashboardItem, 0, len(view.Paged))
	for _, app := range view.Paged {
		items = append(items, DashboardItem{Application: app, Suggestion: dashboard.Suggestion(app, now)})
	}

	return &DashboardPage{
		Items:      items,
		Pagination: utils.CalculateMeta(len(view.Visible), view.Page, params.PageSize),
	}, nil
}

// Analytics aggregates the caller's applications for the charts tab
func (u *DashboardUsecase) Analytics(ctx context.Context, userID uuid.UUID, loc *time.Location) (*dashboard.Summary, error) {
	if loc == nil {
		loc = time.UTC
	}
	apps, err := u.appRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := dashboard.Summarize(apps, loc)
	return &summary, nil
}
