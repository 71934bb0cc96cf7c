package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/infrastructure/models"
)

// ApplicationRepository implements application record operations
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create creates a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *entities.Application) error {
	m := r.toModel(app)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	app.Audit = toEntityAudit(m.Audit)
	return nil
}

// GetByID gets an application owned by userID
func (r *ApplicationRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Application, error) {
	var m models.Application
	err := GetDB(ctx, r.db).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByUser lists the applications of a user, latest application date first
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Application, error) {
	var appModels []models.Application
	err := GetDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("application_date DESC").
		Find(&appModels).Error
	if err != nil {
		return nil, err
	}

	apps := make([]*entities.Application, 0, len(appModels))
	for i := range appModels {
		apps = append(apps, r.toEntity(&appModels[i]))
	}
	return apps, nil
}

// Update overwrites the mutable fields of an application
func (r *ApplicationRepository) Update(ctx context.Context, app *entities.Application) error {
	updates := map[string]interface{}{
		"company_name":     app.CompanyName,
		"position_title":   app.PositionTitle.Ptr(),
		"location":         app.Location,
		"application_date": app.ApplicationDate,
		"status":           string(app.Status),
		"company_website":  app.CompanyWebsite.Ptr(),
		"notes":            app.Notes.Ptr(),
		"updated_at":       app.UpdatedAt,
		"updated_by":       app.UpdatedBy,
	}

	result := GetDB(ctx, r.db).
		Model(&models.Application{}).
		Where("id = ? AND user_id = ?", app.ID, app.UserID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an application owned by userID
func (r *ApplicationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Application{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) toModel(app *entities.Application) *models.Application {
	return &models.Application{
		ID:              app.ID,
		UserID:          app.UserID,
		CompanyName:     app.CompanyName,
		PositionTitle:   app.PositionTitle.Ptr(),
		Location:        app.Location,
		ApplicationDate: app.ApplicationDate,
		Status:          string(app.Status),
		CompanyWebsite:  app.CompanyWebsite.Ptr(),
		Notes:           app.Notes.Ptr(),
		Audit:           toModelAudit(app.Audit),
	}
}

func (r *ApplicationRepository) toEntity(m *models.Application) *entities.Application {
	return &entities.Application{
		ID:              m.ID,
		UserID:          m.UserID,
		CompanyName:     m.CompanyName,
		PositionTitle:   null.StringFromPtr(m.PositionTitle),
		Location:        m.Location,
		ApplicationDate: m.ApplicationDate,
		Status:          entities.ApplicationStatus(m.Status),
		CompanyWebsite:  null.StringFromPtr(m.CompanyWebsite),
		Notes:           null.StringFromPtr(m.Notes),
		Audit:           toEntityAudit(m.Audit),
	}
}
