package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// VerificationAction names the flow a verification code belongs to
type VerificationAction string

const (
	ActionForgotPassword VerificationAction = "forgot_password"
)

// VerificationCode is a one-time code plus opaque token issued for an action
type VerificationCode struct {
	ID           uuid.UUID          `json:"id"`
	UserID       uuid.UUID          `json:"userId"`
	Code         int                `json:"-"`
	Token        string             `json:"-"`
	Action       VerificationAction `json:"action"`
	Duration     int                `json:"duration"`
	ExpiringDate time.Time          `json:"expiringDate"`
	IsExpired    bool               `json:"isExpired"`
	IsUsed       bool               `json:"isUsed"`
	RedeemedAt   null.Time          `json:"redeemedAt"`
	Audit
}

// ExpiredAt reports whether the code can no longer be verified at now
func (v *VerificationCode) ExpiredAt(now time.Time) bool {
	return v.IsExpired || !now.Before(v.ExpiringDate)
}
