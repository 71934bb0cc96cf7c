package dashboard

import (
	"fmt"
	"time"

	"trackify.backend/internal/domain/entities"
)

const (
	followUpAfterDays = 10
	reapplyAfterDays  = 90
)

// Suggestion returns the nudge shown on an application card, or "" when there is none
func Suggestion(app *entities.Application, now time.Time) string {
	days := int(now.Sub(app.ApplicationDate).Hours() / 24)

	switch app.Status {
	case entities.StatusNoResponse:
		if days >= followUpAfterDays {
			return fmt.Sprintf("You applied %d days ago with no response. Consider sending a follow-up email.", days)
		}
	case entities.StatusInterviewing:
		return "You mentioned waiting for a reply. Consider checking in with the recruiter."
	case entities.StatusToBeApplied:
		return "You marked this for future application. Make sure to apply soon!"
	case entities.StatusRejected:
		return "Improve your resume for your next interview."
	case entities.StatusApplied:
		if days >= reapplyAfterDays {
			return fmt.Sprintf("You applied %d days ago with no response. Consider applying again.", days)
		}
	}
	return ""
}
