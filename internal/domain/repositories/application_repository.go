package repositories

import (
	"context"

	"github.com/google/uuid"
	"trackify.backend/internal/domain/entities"
)

// ApplicationRepository defines application record operations.
// Every lookup is scoped to the owning user.
type ApplicationRepository interface {
	Create(ctx context.Context, app *entities.Application) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Application, error)
	Update(ctx context.Context, app *entities.Application) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
