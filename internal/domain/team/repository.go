package team

import (
	"context"
)

// TeamRepository resolves team membership. The worksheet pipeline uses it to
// answer one question reliably: which employees report to this team lead.
type TeamRepository interface {
	// GetByID returns one team; ErrTeamNotFound when missing.
	GetByID(ctx context.Context, id string) (Team, error)

	// GetByTeamLead returns the team led by the given employee, nil when
	// the employee leads no team.
	GetByTeamLead(ctx context.Context, teamLeadEmployeeID string) (*Team, error)

	// ListMemberIDs returns employee ids belonging to a team, excluding
	// the team lead.
	ListMemberIDs(ctx context.Context, teamID string) ([]string, error)

	// GetTeamLeadOf returns the employee id of the lead of the given
	// employee's team, nil when the employee has no team or the team has
	// no lead.
	GetTeamLeadOf(ctx context.Context, employeeID string) (*string, error)

	// IsTeamLeadOf reports whether the given lead's team contains the
	// employee.
	IsTeamLeadOf(ctx context.Context, teamLeadEmployeeID string, employeeID string) (bool, error)
}
