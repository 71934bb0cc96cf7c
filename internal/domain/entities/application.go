package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ApplicationStatus is the stage an application has reached
type ApplicationStatus string

const (
	StatusApplied      ApplicationStatus = "Applied"
	StatusInterviewing ApplicationStatus = "Interviewing"
	StatusOffer        ApplicationStatus = "Offer"
	StatusRejected     ApplicationStatus = "Rejected"
	StatusNoResponse   ApplicationStatus = "No Response"
	StatusToBeApplied  ApplicationStatus = "To Be Applied"
)

// ApplicationStatuses lists every accepted status in display order
var ApplicationStatuses = []ApplicationStatus{
	StatusApplied,
	StatusInterviewing,
	StatusOffer,
	StatusRejected,
	StatusNoResponse,
	StatusToBeApplied,
}

// Valid reports whether s is one of the known statuses
func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Application represents one job or internship application owned by a user
type Application struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user"`
	CompanyName     string            `json:"companyName"`
	PositionTitle   null.String       `json:"positionTitle"`
	Location        string            `json:"location"`
	ApplicationDate time.Time         `json:"applicationDate"`
	Status          ApplicationStatus `json:"applicationStatus"`
	CompanyWebsite  null.String       `json:"companyWebsite"`
	Notes           null.String       `json:"notes"`
	Audit
}

// CreateApplicationInput represents input for a new application
type CreateApplicationInput struct {
	CompanyName     string  `json:"companyName" binding:"required"`
	PositionTitle   string  `json:"positionTitle"`
	Location        string  `json:"location" binding:"required"`
	ApplicationDate string  `json:"applicationDate"`
	Status          *string `json:"applicationStatus" binding:"omitempty,application_status"`
	CompanyWebsite  string  `json:"companyWebsite"`
	Notes           string  `json:"notes"`
}

// UpdateApplicationInput represents a partial update; nil fields are left untouched
type UpdateApplicationInput struct {
	CompanyName     *string `json:"companyName"`
	PositionTitle   *string `json:"positionTitle"`
	Location        *string `json:"location"`
	ApplicationDate *string `json:"applicationDate"`
	Status          *string `json:"applicationStatus" binding:"omitempty,application_status"`
	CompanyWebsite  *string `json:"companyWebsite"`
	Notes           *string `json:"notes"`
}
