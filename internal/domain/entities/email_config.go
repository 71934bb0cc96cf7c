package entities

import (
	"github.com/google/uuid"
)

// EmailProvider selects how outbound mail is delivered
type EmailProvider string

const (
	EmailProviderEmailJS EmailProvider = "emailjs"
	EmailProviderSMTP    EmailProvider = "smtp"
)

// EmailConfig holds the credentials of the transactional email provider
type EmailConfig struct {
	ID         uuid.UUID     `json:"id"`
	Provider   EmailProvider `json:"provider"`
	ServiceID  string        `json:"serviceId"`
	PublicKey  string        `json:"publicKey"`
	PrivateKey string        `json:"-"`
	IsActive   bool          `json:"isActive"`
	Audit
}

// EmailTemplate maps a verification action to a provider template
type EmailTemplate struct {
	ID         uuid.UUID          `json:"id"`
	Action     VerificationAction `json:"action"`
	TemplateID string             `json:"templateId"`
	Audit
}

// EmailMessage is a rendered request to deliver a verification code
type EmailMessage struct {
	To         string
	Code       int
	Link       string
	TemplateID string
}
