package session

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/notification"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/session"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/team"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/user"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/clock"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/database"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/identity"
)

// standardWorkHours is the daily threshold above which time counts as
// overtime.
const standardWorkHours = 8.0

// screenActiveSlackSeconds absorbs client timer drift and report latency
// when judging whether a counter advance is plausible.
const screenActiveSlackSeconds = 120

type SessionServiceImpl struct {
	db *database.DB
	session.SessionRepository
	session.BreakSettingsRepository
	teamRepo team.TeamRepository
	notifier notification.Service
	clock    clock.Clock
	logger   *slog.Logger
}

func NewSessionService(
	db *database.DB,
	sessionRepo session.SessionRepository,
	breakSettingsRepo session.BreakSettingsRepository,
	teamRepo team.TeamRepository,
	notifier notification.Service,
	clk clock.Clock,
	logger *slog.Logger,
) session.SessionService {
	return &SessionServiceImpl{
		db:                      db,
		SessionRepository:       sessionRepo,
		BreakSettingsRepository: breakSettingsRepo,
		teamRepo:                teamRepo,
		notifier:                notifier,
		clock:                   clk,
		logger:                  logger,
	}
}

// round2 rounds to two decimal places, the precision of stored hour values.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClockIn implements session.SessionService.
func (s *SessionServiceImpl) ClockIn(ctx context.Context) (session.SessionResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return session.SessionResponse{}, err
	}

	now := s.clock.Now()
	newSession := session.Session{
		ID:         uuid.New().String(),
		EmployeeID: actor.EmployeeID,
		Date:       s.clock.Today(),
		LoginTime:  now,
		Status:     session.StatusActive,
	}

	// The store's unique index on (employee_id, date) decides races between
	// concurrent clock-ins; no pre-check can.
	created, err := s.SessionRepository.Create(ctx, newSession)
	if err != nil {
		return session.SessionResponse{}, err
	}

	return session.MapSessionToResponse(created), nil
}

// ClockOut implements session.SessionService.
func (s *SessionServiceImpl) ClockOut(ctx context.Context, req session.ClockOutRequest) (session.SessionResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return session.SessionResponse{}, err
	}

	open, err := s.SessionRepository.GetOpenByEmployeeAndDate(ctx, actor.EmployeeID, s.clock.Today())
	if err != nil {
		return session.SessionResponse{}, err
	}
	if open == nil {
		return session.SessionResponse{}, session.ErrNoActiveSession
	}

	if !open.WorksheetSubmitted {
		if !req.Force {
			return session.SessionResponse{}, session.ErrWorksheetNotSubmitted
		}
		if !actor.Role.CanForceClockOut() {
			return session.SessionResponse{}, session.ErrForceClockOutForbidden
		}
	}

	now := s.clock.Now()

	// A clock-out with a break still open closes the break at the same
	// instant.
	if ob := open.OpenBreak(); ob != nil {
		end := now
		ob.EndTime = &end
		ob.DurationMinutes = int(end.Sub(ob.StartTime).Minutes())
	}
	open.CurrentBreakID = nil

	totalBreakMinutes := 0
	for _, b := range open.Breaks {
		totalBreakMinutes += b.DurationMinutes
	}

	workHours := now.Sub(open.LoginTime).Hours() - float64(totalBreakMinutes)/60.0
	if workHours < 0 {
		workHours = 0
	}
	workHours = round2(workHours)

	overtime := workHours - standardWorkHours
	if overtime < 0 {
		overtime = 0
	}
	overtime = round2(overtime)

	open.LogoutTime = &now
	open.TotalBreakMinutes = totalBreakMinutes
	open.TotalWorkHours = workHours
	open.OvertimeHours = overtime
	open.Status = session.StatusCompleted
	if req.Notes != nil {
		open.Notes = req.Notes
	}

	if err := s.SessionRepository.Update(ctx, *open); err != nil {
		return session.SessionResponse{}, err
	}

	if overtime > 0 {
		s.notifyOvertime(ctx, *open, overtime)
	}

	return session.MapSessionToResponse(*open), nil
}

// notifyOvertime alerts the employee's team lead. Best effort: an employee
// without a lead, or a queue failure, never affects the clock-out.
func (s *SessionServiceImpl) notifyOvertime(ctx context.Context, sess session.Session, overtime float64) {
	if s.notifier == nil || s.teamRepo == nil {
		return
	}

	leadID, err := s.teamRepo.GetTeamLeadOf(ctx, sess.EmployeeID)
	if err != nil {
		s.logger.Warn("failed to resolve team lead for overtime alert", "session_id", sess.ID, "error", err)
		return
	}
	if leadID == nil {
		return
	}

	notifyErr := s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: *leadID,
		SenderID:    &sess.EmployeeID,
		Type:        notification.TypeOvertimeAlert,
		Title:       "Overtime recorded",
		Message:     fmt.Sprintf("An employee worked %.2f hours of overtime on %s", overtime, sess.Date),
		Data: map[string]interface{}{
			"session_id":     sess.ID,
			"employee_id":    sess.EmployeeID,
			"date":           sess.Date,
			"overtime_hours": overtime,
		},
	})
	if notifyErr != nil {
		s.logger.Warn("failed to queue overtime notification", "session_id", sess.ID, "error", notifyErr)
	}
}

// StartBreak implements session.SessionService.
func (s *SessionServiceImpl) StartBreak(ctx context.Context, req session.StartBreakRequest) (session.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return session.SessionResponse{}, err
	}

	actor, err := identity.FromContext(ctx)
	if err != nil {
		return session.SessionResponse{}, err
	}

	open, err := s.SessionRepository.GetOpenByEmployeeAndDate(ctx, actor.EmployeeID, s.clock.Today())
	if err != nil {
		return session.SessionResponse{}, err
	}
	if open == nil {
		return session.SessionResponse{}, session.ErrNoActiveSession
	}
	if open.OpenBreak() != nil {
		return session.SessionResponse{}, session.ErrAlreadyOnBreak
	}

	if actor.TeamID != "" {
		settings, err := s.BreakSettingsRepository.GetByTeam(ctx, actor.TeamID)
		if err != nil {
			return session.SessionResponse{}, err
		}
		if settings != nil && settings.EnforceLimits {
			if settings.MaxBreaksPerDay != nil && len(open.Breaks) >= *settings.MaxBreaksPerDay {
				return session.SessionResponse{}, session.ErrBreakLimitReached
			}
			if settings.MaxBreakDurationMinutes != nil && open.TotalBreakMinutes >= *settings.MaxBreakDurationMinutes {
				return session.SessionResponse{}, session.ErrBreakDurationExceeded
			}
		}
	}

	breakID := uuid.New().String()
	open.Breaks = append(open.Breaks, session.BreakRecord{
		BreakID:   breakID,
		BreakType: req.BreakType,
		StartTime: s.clock.Now(),
		Comment:   req.Comment,
	})
	open.CurrentBreakID = &breakID
	open.Status = session.StatusOnBreak

	if err := s.SessionRepository.Update(ctx, *open); err != nil {
		return session.SessionResponse{}, err
	}

	return session.MapSessionToResponse(*open), nil
}

// EndBreak implements session.SessionService.
func (s *SessionServiceImpl) EndBreak(ctx context.Context) (session.SessionResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return session.SessionResponse{}, err
	}

	open, err := s.SessionRepository.GetOpenByEmployeeAndDate(ctx, actor.EmployeeID, s.clock.Today())
	if err != nil {
		return session.SessionResponse{}, err
	}
	if open == nil {
		return session.SessionResponse{}, session.ErrNoActiveSession
	}

	ob := open.OpenBreak()
	if ob == nil {
		return session.SessionResponse{}, session.ErrNoOpenBreak
	}

	now := s.clock.Now()
	ob.EndTime = &now
	ob.DurationMinutes = int(now.Sub(ob.StartTime).Minutes())

	totalBreakMinutes := 0
	for _, b := range open.Breaks {
		totalBreakMinutes += b.DurationMinutes
	}

	// An overrun of the daily budget can only be seen once the break is
	// closed, so here it warns instead of failing.
	if actor.TeamID != "" {
		settings, err := s.BreakSettingsRepository.GetByTeam(ctx, actor.TeamID)
		if err != nil {
			return session.SessionResponse{}, err
		}
		if settings != nil && settings.EnforceLimits && settings.MaxBreakDurationMinutes != nil {
			if totalBreakMinutes > *settings.MaxBreakDurationMinutes {
				s.logger.Warn("total break duration exceeded team limit",
					"session_id", open.ID,
					"break_id", ob.BreakID,
					"total_break_minutes", totalBreakMinutes,
					"limit_minutes", *settings.MaxBreakDurationMinutes,
				)
			}
		}
	}

	open.TotalBreakMinutes = totalBreakMinutes
	open.CurrentBreakID = nil
	open.Status = session.StatusActive

	if err := s.SessionRepository.Update(ctx, *open); err != nil {
		return session.SessionResponse{}, err
	}

	return session.MapSessionToResponse(*open), nil
}

// GetCurrentSession implements session.SessionService.
func (s *SessionServiceImpl) GetCurrentSession(ctx context.Context) (session.CurrentSessionResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return session.CurrentSessionResponse{}, err
	}

	current, err := s.SessionRepository.GetByEmployeeAndDate(ctx, actor.EmployeeID, s.clock.Today())
	if err != nil {
		return session.CurrentSessionResponse{}, err
	}
	if current == nil {
		return session.CurrentSessionResponse{HasSession: false}, nil
	}

	resp := session.MapSessionToResponse(*current)
	return session.CurrentSessionResponse{HasSession: true, Session: &resp}, nil
}

// GetHistory implements session.SessionService.
func (s *SessionServiceImpl) GetHistory(ctx context.Context, filter session.HistoryFilter) (session.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return session.HistoryResponse{}, err
	}

	actor, err := identity.FromContext(ctx)
	if err != nil {
		return session.HistoryResponse{}, err
	}

	// Employees see only their own history regardless of the filter.
	if !actor.Role.CanViewAll() {
		filter.EmployeeID = &actor.EmployeeID
	}

	sessions, totalCount, err := s.SessionRepository.List(ctx, filter)
	if err != nil {
		return session.HistoryResponse{}, err
	}

	responses := make([]session.SessionResponse, len(sessions))
	for i, sess := range sessions {
		responses[i] = session.MapSessionToResponse(sess)
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(filter.Limit)))

	return session.HistoryResponse{
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Sessions:   responses,
	}, nil
}

// UpdateScreenActiveSeconds implements session.SessionService. The counter
// races client timers against session closure, so a missing open session is
// not an error. Decreases and implausible jumps are dropped: the stored
// value only ever moves forward at a believable rate.
func (s *SessionServiceImpl) UpdateScreenActiveSeconds(ctx context.Context, req session.UpdateScreenActiveRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	actor, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	open, err := s.SessionRepository.GetOpenByEmployeeAndDate(ctx, actor.EmployeeID, s.clock.Today())
	if err != nil {
		return err
	}
	if open == nil {
		return nil
	}

	if req.ScreenActiveSeconds < open.ScreenActiveSeconds {
		s.logger.Warn("dropping screen active decrease",
			"session_id", open.ID,
			"stored", open.ScreenActiveSeconds,
			"reported", req.ScreenActiveSeconds,
		)
		return nil
	}

	since := open.LoginTime
	if open.LastScreenActiveUpdate != nil {
		since = *open.LastScreenActiveUpdate
	}
	maxAdvance := int64(s.clock.Now().Sub(since).Seconds()) + screenActiveSlackSeconds
	if req.ScreenActiveSeconds-open.ScreenActiveSeconds > maxAdvance {
		s.logger.Warn("dropping implausible screen active jump",
			"session_id", open.ID,
			"stored", open.ScreenActiveSeconds,
			"reported", req.ScreenActiveSeconds,
			"max_advance_seconds", maxAdvance,
		)
		return nil
	}

	return s.SessionRepository.UpdateScreenActive(ctx, open.ID, req.ScreenActiveSeconds)
}

// GetBreakSettings implements session.SessionService.
func (s *SessionServiceImpl) GetBreakSettings(ctx context.Context, teamID string) (session.BreakSettingsResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return session.BreakSettingsResponse{}, err
	}

	if !actor.Role.CanViewAll() && teamID != actor.TeamID {
		return session.BreakSettingsResponse{}, session.ErrUnauthorized
	}

	settings, err := s.BreakSettingsRepository.GetByTeam(ctx, teamID)
	if err != nil {
		return session.BreakSettingsResponse{}, err
	}
	if settings == nil {
		return session.BreakSettingsResponse{}, session.ErrBreakSettingsNotFound
	}

	return session.MapBreakSettingsToResponse(*settings), nil
}

// CreateBreakSettings implements session.SessionService.
func (s *SessionServiceImpl) CreateBreakSettings(ctx context.Context, req session.CreateBreakSettingsRequest) (session.BreakSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return session.BreakSettingsResponse{}, err
	}

	actor, err := identity.FromContext(ctx)
	if err != nil {
		return session.BreakSettingsResponse{}, err
	}
	if !actor.Role.CanApprove() {
		return session.BreakSettingsResponse{}, user.ErrManagerAccessRequired
	}

	created, err := s.BreakSettingsRepository.Create(ctx, session.BreakSettings{
		TeamID:                  req.TeamID,
		EnforceLimits:           req.EnforceLimits,
		MaxBreaksPerDay:         req.MaxBreaksPerDay,
		MaxBreakDurationMinutes: req.MaxBreakDurationMinutes,
		LunchBreakDuration:      req.LunchBreakDuration,
		ShortBreakDuration:      req.ShortBreakDuration,
	})
	if err != nil {
		return session.BreakSettingsResponse{}, err
	}

	return session.MapBreakSettingsToResponse(created), nil
}

// UpdateBreakSettings implements session.SessionService.
func (s *SessionServiceImpl) UpdateBreakSettings(ctx context.Context, req session.UpdateBreakSettingsRequest) (session.BreakSettingsResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return session.BreakSettingsResponse{}, err
	}
	if !actor.Role.CanApprove() {
		return session.BreakSettingsResponse{}, user.ErrManagerAccessRequired
	}

	settings, err := s.BreakSettingsRepository.GetByTeam(ctx, req.TeamID)
	if err != nil {
		return session.BreakSettingsResponse{}, err
	}
	if settings == nil {
		return session.BreakSettingsResponse{}, session.ErrBreakSettingsNotFound
	}

	if req.EnforceLimits != nil {
		settings.EnforceLimits = *req.EnforceLimits
	}
	if req.MaxBreaksPerDay != nil {
		settings.MaxBreaksPerDay = req.MaxBreaksPerDay
	}
	if req.MaxBreakDurationMinutes != nil {
		settings.MaxBreakDurationMinutes = req.MaxBreakDurationMinutes
	}
	if req.LunchBreakDuration != nil {
		settings.LunchBreakDuration = *req.LunchBreakDuration
	}
	if req.ShortBreakDuration != nil {
		settings.ShortBreakDuration = *req.ShortBreakDuration
	}

	if err := s.BreakSettingsRepository.Update(ctx, *settings); err != nil {
		return session.BreakSettingsResponse{}, err
	}

	return session.MapBreakSettingsToResponse(*settings), nil
}
