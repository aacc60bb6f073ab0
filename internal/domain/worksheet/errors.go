package worksheet

import "errors"

// Worksheet domain errors
var (
	// State violations
	ErrInvalidTransition = errors.New("worksheet is not in a state that allows this transition")
	ErrNotEditable       = errors.New("only draft or rejected worksheets can be edited")
	ErrWorksheetExists   = errors.New("a worksheet already exists for this day")

	// Authorization violations, distinct from state violations
	ErrNotOwner             = errors.New("only the worksheet owner can do this")
	ErrNotTeamLeadOfOwner   = errors.New("only the owner's team lead can verify this worksheet")
	ErrApproverRoleRequired = errors.New("only a manager or admin can approve worksheets")
	ErrReviewerRoleRequired = errors.New("only a team lead, manager, or admin can reject worksheets")

	// General errors
	ErrWorksheetNotFound = errors.New("worksheet not found")
)
