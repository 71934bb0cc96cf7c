package models

import (
	"github.com/google/uuid"
)

type EmailConfig struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Provider   string    `gorm:"type:varchar(32);not null"`
	ServiceID  string    `gorm:"type:varchar(255)"`
	PublicKey  string    `gorm:"type:varchar(255)"`
	PrivateKey string    `gorm:"type:varchar(255)"`
	IsActive   bool      `gorm:"not null"`
	Audit
}

func (EmailConfig) TableName() string {
	return "email_configs"
}

type EmailTemplate struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Action     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	TemplateID string    `gorm:"type:varchar(255);not null"`
	Audit
}

func (EmailTemplate) TableName() string {
	return "email_templates"
}
