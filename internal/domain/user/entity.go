package user

type Role string

const (
	RoleAdmin    Role = "admin"     // Full access, may force-correct records
	RoleManager  Role = "manager"   // Approves verified worksheets
	RoleTeamLead Role = "team_lead" // Verifies submitted worksheets of own team
	RoleEmployee Role = "employee"  // Regular worker
)

// ValidRoles returns every role the identity provider may assert.
func ValidRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleTeamLead, RoleEmployee}
}

// IsReviewer reports whether the role sits above the worker in the
// approval chain (team lead, manager, or admin).
func (r Role) IsReviewer() bool {
	return r == RoleTeamLead || r == RoleManager || r == RoleAdmin
}

// CanVerify reports whether the role may verify submitted worksheets.
func (r Role) CanVerify() bool {
	return r == RoleTeamLead
}

// CanApprove reports whether the role may give final approval.
func (r Role) CanApprove() bool {
	return r == RoleManager || r == RoleAdmin
}

// CanViewAll reports whether the role may read records beyond its own.
func (r Role) CanViewAll() bool {
	return r.IsReviewer()
}

// CanForceClockOut reports whether the role may clock an employee out
// without a submitted worksheet.
func (r Role) CanForceClockOut() bool {
	return r == RoleManager || r == RoleAdmin
}
