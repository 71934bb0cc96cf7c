package usecases

import "time"

// Password reset flow
const (
	DefaultVerificationCodeTTL = 10 * time.Minute
	verificationDurationMinute = 10
)

// Application record input
const (
	applicationDateLayout = "2006-01-02"
)
