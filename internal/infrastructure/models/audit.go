package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit is embedded by every table model
type Audit struct {
	CreatedAt time.Time
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt time.Time
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
}
