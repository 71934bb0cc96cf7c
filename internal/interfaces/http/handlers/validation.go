package handlers

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"trackify.backend/internal/domain/entities"
)

const (
	msgInvalidBody   = "Invalid request body."
	msgMissingFields = "Required fields are missing or invalid."
	msgInvalidStatus = "Invalid application status."
)

// RegisterValidators adds the custom binding tags used by request bodies
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("application_status", func(fl validator.FieldLevel) bool {
		return entities.ApplicationStatus(fl.Field().String()).Valid()
	})
}

// bindingMessage turns a bind error into text that is safe to show a client
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgInvalidBody
	}
	for _, fe := range verrs {
		if fe.Tag() == "application_status" {
			return msgInvalidStatus
		}
	}
	return msgMissingFields
}
