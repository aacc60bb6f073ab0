package response

import (
	"errors"
	"net/http"

	"github.com/worklane-hq/worklane-backend-go/internal/domain/notification"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/session"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/team"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/user"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/worksheet"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Session domain errors
	case errors.Is(err, session.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in for today")
	case errors.Is(err, session.ErrNoActiveSession):
		BadRequest(w, "No active session found for today", nil)
	case errors.Is(err, session.ErrWorksheetNotSubmitted):
		Conflict(w, "Daily worksheet must be submitted before clocking out")
	case errors.Is(err, session.ErrForceClockOutForbidden):
		Forbidden(w, "Only a manager or admin can clock out without a submitted worksheet")
	case errors.Is(err, session.ErrAlreadyOnBreak):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, session.ErrNoOpenBreak):
		BadRequest(w, "No active break found", nil)
	case errors.Is(err, session.ErrBreakLimitReached):
		Conflict(w, "Maximum breaks for today reached")
	case errors.Is(err, session.ErrBreakDurationExceeded):
		Conflict(w, "Maximum total break duration for today reached")
	case errors.Is(err, session.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")
	case errors.Is(err, session.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance session")
	case errors.Is(err, session.ErrBreakSettingsNotFound):
		NotFound(w, "Break settings not found for this team")
	case errors.Is(err, session.ErrBreakSettingsExist):
		Conflict(w, "Break settings already exist for this team")

	// Worksheet domain errors
	case errors.Is(err, worksheet.ErrWorksheetNotFound):
		NotFound(w, "Worksheet not found")
	case errors.Is(err, worksheet.ErrWorksheetExists):
		Conflict(w, "A worksheet already exists for this day")
	case errors.Is(err, worksheet.ErrInvalidTransition):
		Conflict(w, "Worksheet is not in a state that allows this transition")
	case errors.Is(err, worksheet.ErrNotEditable):
		Conflict(w, "Only draft or rejected worksheets can be edited")
	case errors.Is(err, worksheet.ErrNotOwner):
		Forbidden(w, "Only the worksheet owner can do this")
	case errors.Is(err, worksheet.ErrNotTeamLeadOfOwner):
		Forbidden(w, "Only the owner's team lead can verify this worksheet")
	case errors.Is(err, worksheet.ErrApproverRoleRequired):
		Forbidden(w, "Only a manager or admin can approve worksheets")
	case errors.Is(err, worksheet.ErrReviewerRoleRequired):
		Forbidden(w, "Only a team lead, manager, or admin can do this")

	// Team domain errors
	case errors.Is(err, team.ErrTeamNotFound):
		NotFound(w, "Team not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this notification")

	// Role gate errors
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrTeamLeadAccessRequired),
		errors.Is(err, user.ErrReviewerAccessRequired):
		Forbidden(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
