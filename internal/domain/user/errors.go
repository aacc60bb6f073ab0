package user

import "errors"

// Role gate errors, kept distinct from state violations so clients can tell
// "you can't do this" from "this can't be done right now".
var (
	ErrAdminAccessRequired    = errors.New("admin access required")
	ErrManagerAccessRequired  = errors.New("manager or admin access required")
	ErrTeamLeadAccessRequired = errors.New("team lead access required")
	ErrReviewerAccessRequired = errors.New("team lead, manager, or admin access required")
)
