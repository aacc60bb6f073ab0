package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/session"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/database"
)

type breakSettingsRepository struct {
	db *database.DB
}

// NewBreakSettingsRepository creates a new break settings repository
func NewBreakSettingsRepository(db *database.DB) session.BreakSettingsRepository {
	return &breakSettingsRepository{db: db}
}

// GetByTeam implements session.BreakSettingsRepository.
func (r *breakSettingsRepository) GetByTeam(ctx context.Context, teamID string) (*session.BreakSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, team_id, enforce_limits, max_breaks_per_day, max_break_duration_minutes,
			   lunch_break_duration, short_break_duration, created_at, updated_at
		FROM break_settings
		WHERE team_id = $1
		LIMIT 1
	`

	var bs session.BreakSettings
	err := q.QueryRow(ctx, query, teamID).Scan(
		&bs.ID, &bs.TeamID, &bs.EnforceLimits, &bs.MaxBreaksPerDay, &bs.MaxBreakDurationMinutes,
		&bs.LunchBreakDuration, &bs.ShortBreakDuration, &bs.CreatedAt, &bs.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Team has no break policy yet
		}
		return nil, fmt.Errorf("failed to get break settings: %w", err)
	}

	return &bs, nil
}

// Create implements session.BreakSettingsRepository. One policy per team,
// enforced by a unique index on team_id.
func (r *breakSettingsRepository) Create(ctx context.Context, settings session.BreakSettings) (session.BreakSettings, error) {
	q := GetQuerier(ctx, r.db)

	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}

	query := `
		INSERT INTO break_settings (
			id, team_id, enforce_limits, max_breaks_per_day, max_break_duration_minutes,
			lunch_break_duration, short_break_duration
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		settings.ID,
		settings.TeamID,
		settings.EnforceLimits,
		settings.MaxBreaksPerDay,
		settings.MaxBreakDurationMinutes,
		settings.LunchBreakDuration,
		settings.ShortBreakDuration,
	).Scan(&settings.CreatedAt, &settings.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return session.BreakSettings{}, session.ErrBreakSettingsExist
		}
		return session.BreakSettings{}, fmt.Errorf("failed to create break settings: %w", err)
	}

	return settings, nil
}

// Update implements session.BreakSettingsRepository.
func (r *breakSettingsRepository) Update(ctx context.Context, settings session.BreakSettings) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE break_settings
		SET enforce_limits = $2,
			max_breaks_per_day = $3,
			max_break_duration_minutes = $4,
			lunch_break_duration = $5,
			short_break_duration = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		settings.ID,
		settings.EnforceLimits,
		settings.MaxBreaksPerDay,
		settings.MaxBreakDurationMinutes,
		settings.LunchBreakDuration,
		settings.ShortBreakDuration,
	)
	if err != nil {
		return fmt.Errorf("failed to update break settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrBreakSettingsNotFound
	}

	return nil
}
