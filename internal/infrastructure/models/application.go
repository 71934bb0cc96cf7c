package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Application struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyName     string    `gorm:"type:varchar(255);not null"`
	PositionTitle   *string   `gorm:"type:varchar(255)"`
	Location        string    `gorm:"type:varchar(255);not null"`
	ApplicationDate time.Time `gorm:"not null"`
	Status          string    `gorm:"type:varchar(32);not null;default:'Applied'"`
	CompanyWebsite  *string   `gorm:"type:varchar(512)"`
	Notes           *string   `gorm:"type:text"`
	Audit
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Application) TableName() string {
	return "applications"
}
