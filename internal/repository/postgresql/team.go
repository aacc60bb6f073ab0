package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/team"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/database"
)

type teamRepository struct {
	db *database.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *database.DB) team.TeamRepository {
	return &teamRepository{db: db}
}

// GetByID implements team.TeamRepository.
func (r *teamRepository) GetByID(ctx context.Context, id string) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, team_lead_id, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	var t team.Team
	err := q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.TeamLeadID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, fmt.Errorf("failed to get team: %w", err)
	}

	return t, nil
}

// GetByTeamLead implements team.TeamRepository.
func (r *teamRepository) GetByTeamLead(ctx context.Context, teamLeadEmployeeID string) (*team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, team_lead_id, created_at, updated_at
		FROM teams
		WHERE team_lead_id = $1
		LIMIT 1
	`

	var t team.Team
	err := q.QueryRow(ctx, query, teamLeadEmployeeID).Scan(&t.ID, &t.Name, &t.TeamLeadID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Employee leads no team
		}
		return nil, fmt.Errorf("failed to get team by lead: %w", err)
	}

	return &t, nil
}

// ListMemberIDs implements team.TeamRepository.
func (r *teamRepository) ListMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id
		FROM employees e
		JOIN teams t ON t.id = e.team_id
		WHERE e.team_id = $1
		  AND (t.team_lead_id IS NULL OR e.id <> t.team_lead_id)
	`

	rows, err := q.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team members: %w", err)
	}

	return ids, nil
}

// GetTeamLeadOf implements team.TeamRepository.
func (r *teamRepository) GetTeamLeadOf(ctx context.Context, employeeID string) (*string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.team_lead_id
		FROM employees e
		JOIN teams t ON t.id = e.team_id
		WHERE e.id = $1
	`

	var leadID *string
	err := q.QueryRow(ctx, query, employeeID).Scan(&leadID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Employee has no team
		}
		return nil, fmt.Errorf("failed to get team lead of employee: %w", err)
	}

	return leadID, nil
}

// IsTeamLeadOf implements team.TeamRepository.
func (r *teamRepository) IsTeamLeadOf(ctx context.Context, teamLeadEmployeeID string, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM employees e
			JOIN teams t ON t.id = e.team_id
			WHERE e.id = $2
			  AND t.team_lead_id = $1
		)
	`

	var isLead bool
	if err := q.QueryRow(ctx, query, teamLeadEmployeeID, employeeID).Scan(&isLead); err != nil {
		return false, fmt.Errorf("failed to check team lead relation: %w", err)
	}

	return isLead, nil
}
