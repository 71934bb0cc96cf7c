package models

import (
	"time"

	"github.com/google/uuid"
)

type VerificationCode struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Code         int       `gorm:"not null"`
	Token        string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Action       string    `gorm:"type:varchar(50);not null"`
	Duration     int       `gorm:"not null"`
	ExpiringDate time.Time `gorm:"not null"`
	IsExpired    bool      `gorm:"not null;default:false"`
	IsUsed       bool      `gorm:"not null;default:false"`
	RedeemedAt   *time.Time
	Audit
}

func (VerificationCode) TableName() string {
	return "verification_codes"
}
