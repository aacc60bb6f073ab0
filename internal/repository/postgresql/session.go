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

type sessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) session.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = `
	s.id, s.employee_id, s.date, s.login_time, s.logout_time,
	s.total_work_hours, s.total_break_minutes, s.overtime_hours,
	s.screen_active_seconds, s.last_screen_active_update,
	s.worksheet_submitted, s.current_break_id, s.notes, s.status,
	s.created_at, s.updated_at
`

func scanSession(row pgx.Row) (session.Session, error) {
	var s session.Session
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Date, &s.LoginTime, &s.LogoutTime,
		&s.TotalWorkHours, &s.TotalBreakMinutes, &s.OvertimeHours,
		&s.ScreenActiveSeconds, &s.LastScreenActiveUpdate,
		&s.WorksheetSubmitted, &s.CurrentBreakID, &s.Notes, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements session.SessionRepository. The unique index on
// (employee_id, date) is the serialization point: the losing racer of two
// concurrent clock-ins gets a unique violation, surfaced as
// ErrAlreadyClockedIn.
func (r *sessionRepository) Create(ctx context.Context, s session.Session) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	query := `
		INSERT INTO sessions (
			id, employee_id, date, login_time,
			total_work_hours, total_break_minutes, overtime_hours,
			screen_active_seconds, worksheet_submitted, notes, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID,
		s.EmployeeID,
		s.Date,
		s.LoginTime,
		s.TotalWorkHours,
		s.TotalBreakMinutes,
		s.OvertimeHours,
		s.ScreenActiveSeconds,
		s.WorksheetSubmitted,
		s.Notes,
		string(s.Status),
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return session.Session{}, session.ErrAlreadyClockedIn
		}
		return session.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return s, nil
}

// GetByEmployeeAndDate implements session.SessionRepository.
func (r *sessionRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM sessions s
		WHERE s.employee_id = $1
		  AND s.date = $2
		LIMIT 1
	`, sessionColumns)

	s, err := scanSession(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No session for this day
		}
		return nil, fmt.Errorf("failed to get session by employee and date: %w", err)
	}

	if err := r.loadBreaks(ctx, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// GetOpenByEmployeeAndDate implements session.SessionRepository.
func (r *sessionRepository) GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM sessions s
		WHERE s.employee_id = $1
		  AND s.date = $2
		  AND s.status IN ('active', 'on_break')
		LIMIT 1
	`, sessionColumns)

	s, err := scanSession(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No open session for this day
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	if err := r.loadBreaks(ctx, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Update implements session.SessionRepository. Scalars and breaks are
// written inside one transaction so that a clock-out never persists with a
// half-updated break list.
func (r *sessionRepository) Update(ctx context.Context, s session.Session) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE sessions
			SET logout_time = $2,
				total_work_hours = $3,
				total_break_minutes = $4,
				overtime_hours = $5,
				worksheet_submitted = $6,
				current_break_id = $7,
				notes = $8,
				status = $9,
				updated_at = NOW()
			WHERE id = $1
		`

		tag, err := tx.Exec(ctx, query,
			s.ID,
			s.LogoutTime,
			s.TotalWorkHours,
			s.TotalBreakMinutes,
			s.OvertimeHours,
			s.WorksheetSubmitted,
			s.CurrentBreakID,
			s.Notes,
			string(s.Status),
		)
		if err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return session.ErrSessionNotFound
		}

		for _, b := range s.Breaks {
			breakQuery := `
				INSERT INTO session_breaks (id, session_id, break_type, start_time, end_time, duration_minutes, comment)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO UPDATE
				SET end_time = EXCLUDED.end_time,
					duration_minutes = EXCLUDED.duration_minutes,
					comment = EXCLUDED.comment
			`
			_, err := tx.Exec(ctx, breakQuery,
				b.BreakID,
				s.ID,
				string(b.BreakType),
				b.StartTime,
				b.EndTime,
				b.DurationMinutes,
				b.Comment,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert session break: %w", err)
			}
		}

		return nil
	})
}

// UpdateScreenActive implements session.SessionRepository.
func (r *sessionRepository) UpdateScreenActive(ctx context.Context, sessionID string, seconds int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sessions
		SET screen_active_seconds = $2,
			last_screen_active_update = NOW(),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, sessionID, seconds)
	if err != nil {
		return fmt.Errorf("failed to update screen active seconds: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrSessionNotFound
	}

	return nil
}

// SetWorksheetSubmitted implements session.SessionRepository.
func (r *sessionRepository) SetWorksheetSubmitted(ctx context.Context, employeeID string, date string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sessions
		SET worksheet_submitted = TRUE,
			updated_at = NOW()
		WHERE employee_id = $1
		  AND date = $2
	`

	// Zero rows is fine: a worksheet may be submitted on a day without an
	// attendance session.
	_, err := q.Exec(ctx, query, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to flag worksheet submitted: %w", err)
	}

	return nil
}

// List implements session.SessionRepository.
func (r *sessionRepository) List(ctx context.Context, filter session.HistoryFilter) ([]session.Session, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND s.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM sessions s %s`, baseWhere)

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit

	listQuery := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM sessions s
		LEFT JOIN employees e ON e.id = s.employee_id
		%s
		ORDER BY s.date DESC, s.login_time DESC
		LIMIT $%d OFFSET $%d
	`, sessionColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		var s session.Session
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Date, &s.LoginTime, &s.LogoutTime,
			&s.TotalWorkHours, &s.TotalBreakMinutes, &s.OvertimeHours,
			&s.ScreenActiveSeconds, &s.LastScreenActiveUpdate,
			&s.WorksheetSubmitted, &s.CurrentBreakID, &s.Notes, &s.Status,
			&s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	for i := range sessions {
		if err := r.loadBreaks(ctx, &sessions[i]); err != nil {
			return nil, 0, err
		}
	}

	return sessions, totalCount, nil
}

func (r *sessionRepository) loadBreaks(ctx context.Context, s *session.Session) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, break_type, start_time, end_time, duration_minutes, comment
		FROM session_breaks
		WHERE session_id = $1
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, s.ID)
	if err != nil {
		return fmt.Errorf("failed to load session breaks: %w", err)
	}
	defer rows.Close()

	var breaks []session.BreakRecord
	for rows.Next() {
		var b session.BreakRecord
		err := rows.Scan(&b.BreakID, &b.BreakType, &b.StartTime, &b.EndTime, &b.DurationMinutes, &b.Comment)
		if err != nil {
			return fmt.Errorf("failed to scan session break: %w", err)
		}
		breaks = append(breaks, b)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate session breaks: %w", err)
	}

	s.Breaks = breaks
	return nil
}
