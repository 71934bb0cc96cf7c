package entities

import (
	"time"
)

// AuthResult is returned after a successful signup or login
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// PasswordResetTicket is what the forgot-password step hands back to the client
type PasswordResetTicket struct {
	Token     string
	ExpiresAt time.Time
}

// VerifyCodeInput identifies the code a user typed in
type VerifyCodeInput struct {
	Email string
	Code  int
	Token string
}

// ResetPasswordInput carries a verified token and the new password
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}
