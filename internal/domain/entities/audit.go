package entities

import (
	"time"

	"github.com/google/uuid"
)

// Audit holds the bookkeeping columns every persisted entity carries
type Audit struct {
	CreatedAt time.Time  `json:"createdAt"`
	CreatedBy *uuid.UUID `json:"createdBy,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
	UpdatedBy *uuid.UUID `json:"updatedBy,omitempty"`
}

// Stamp sets both timestamps for a new record created by actor
func (a *Audit) Stamp(now time.Time, actor *uuid.UUID) {
	a.CreatedAt = now
	a.UpdatedAt = now
	a.CreatedBy = actor
	a.UpdatedBy = actor
}

// Touch marks a record as modified by actor
func (a *Audit) Touch(now time.Time, actor *uuid.UUID) {
	a.UpdatedAt = now
	a.UpdatedBy = actor
}
