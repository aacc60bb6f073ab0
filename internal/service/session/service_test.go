package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/notification"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/session"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/team"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/user"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/clock"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/identity"
)

// ========================================
// In-memory fakes
// ========================================

type fakeSessionRepo struct {
	sessions map[string]*session.Session // employeeID|date
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*session.Session)}
}

func key(employeeID, date string) string { return employeeID + "|" + date }

func (r *fakeSessionRepo) Create(ctx context.Context, s session.Session) (session.Session, error) {
	k := key(s.EmployeeID, s.Date)
	if _, exists := r.sessions[k]; exists {
		return session.Session{}, session.ErrAlreadyClockedIn
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	stored := s
	r.sessions[k] = &stored
	return s, nil
}

func (r *fakeSessionRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*session.Session, error) {
	s, ok := r.sessions[key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *s
	copied.Breaks = append([]session.BreakRecord(nil), s.Breaks...)
	return &copied, nil
}

func (r *fakeSessionRepo) GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*session.Session, error) {
	s, err := r.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil || s == nil {
		return s, err
	}
	if !s.Active() {
		return nil, nil
	}
	return s, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, s session.Session) error {
	k := key(s.EmployeeID, s.Date)
	if _, ok := r.sessions[k]; !ok {
		return session.ErrSessionNotFound
	}
	stored := s
	stored.Breaks = append([]session.BreakRecord(nil), s.Breaks...)
	r.sessions[k] = &stored
	return nil
}

func (r *fakeSessionRepo) UpdateScreenActive(ctx context.Context, sessionID string, seconds int64) error {
	for _, s := range r.sessions {
		if s.ID == sessionID {
			s.ScreenActiveSeconds = seconds
			now := time.Now().UTC()
			s.LastScreenActiveUpdate = &now
			return nil
		}
	}
	return session.ErrSessionNotFound
}

func (r *fakeSessionRepo) SetWorksheetSubmitted(ctx context.Context, employeeID string, date string) error {
	if s, ok := r.sessions[key(employeeID, date)]; ok {
		s.WorksheetSubmitted = true
	}
	return nil
}

func (r *fakeSessionRepo) List(ctx context.Context, filter session.HistoryFilter) ([]session.Session, int64, error) {
	var out []session.Session
	for _, s := range r.sessions {
		if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeBreakSettingsRepo struct {
	byTeam map[string]*session.BreakSettings
}

func newFakeBreakSettingsRepo() *fakeBreakSettingsRepo {
	return &fakeBreakSettingsRepo{byTeam: make(map[string]*session.BreakSettings)}
}

func (r *fakeBreakSettingsRepo) GetByTeam(ctx context.Context, teamID string) (*session.BreakSettings, error) {
	s, ok := r.byTeam[teamID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeBreakSettingsRepo) Create(ctx context.Context, settings session.BreakSettings) (session.BreakSettings, error) {
	if _, exists := r.byTeam[settings.TeamID]; exists {
		return session.BreakSettings{}, session.ErrBreakSettingsExist
	}
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	stored := settings
	r.byTeam[settings.TeamID] = &stored
	return settings, nil
}

func (r *fakeBreakSettingsRepo) Update(ctx context.Context, settings session.BreakSettings) error {
	if _, ok := r.byTeam[settings.TeamID]; !ok {
		return session.ErrBreakSettingsNotFound
	}
	stored := settings
	r.byTeam[settings.TeamID] = &stored
	return nil
}

// fakeTeamRepo maps employees to a single team lead.
type fakeTeamRepo struct {
	leadOf map[string]string // employeeID -> lead employeeID
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id string) (team.Team, error) {
	return team.Team{}, team.ErrTeamNotFound
}

func (r *fakeTeamRepo) GetByTeamLead(ctx context.Context, teamLeadEmployeeID string) (*team.Team, error) {
	return nil, nil
}

func (r *fakeTeamRepo) ListMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	return nil, nil
}

func (r *fakeTeamRepo) GetTeamLeadOf(ctx context.Context, employeeID string) (*string, error) {
	lead, ok := r.leadOf[employeeID]
	if !ok {
		return nil, nil
	}
	return &lead, nil
}

func (r *fakeTeamRepo) IsTeamLeadOf(ctx context.Context, teamLeadEmployeeID string, employeeID string) (bool, error) {
	return r.leadOf[employeeID] == teamLeadEmployeeID, nil
}

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (n *fakeNotifier) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	n.queued = append(n.queued, req)
	return nil
}

func (n *fakeNotifier) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	n.queued = append(n.queued, reqs...)
	return nil
}

func (n *fakeNotifier) GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}

func (n *fakeNotifier) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	return 0, nil
}

func (n *fakeNotifier) MarkAsRead(ctx context.Context, recipientID string, req notification.MarkAsReadRequest) error {
	return nil
}

func (n *fakeNotifier) MarkAllAsRead(ctx context.Context, recipientID string) error { return nil }

func (n *fakeNotifier) Delete(ctx context.Context, recipientID string, notificationID string) error {
	return nil
}

func (n *fakeNotifier) Stop() {}

// ========================================
// Test setup
// ========================================

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

type testEnv struct {
	svc         session.SessionService
	sessionRepo *fakeSessionRepo
	settings    *fakeBreakSettingsRepo
	notifier    *fakeNotifier
	clock       *clock.Fixed
}

func newTestEnv(t *testing.T, start time.Time) *testEnv {
	t.Helper()

	sessionRepo := newFakeSessionRepo()
	settings := newFakeBreakSettingsRepo()
	notifier := &fakeNotifier{}
	teamRepo := &fakeTeamRepo{leadOf: map[string]string{"emp-1": "lead-1"}}
	clk := clock.NewFixed(start, kolkata(t))

	svc := NewSessionService(nil, sessionRepo, settings, teamRepo, notifier, clk, slog.Default())

	return &testEnv{
		svc:         svc,
		sessionRepo: sessionRepo,
		settings:    settings,
		notifier:    notifier,
		clock:       clk,
	}
}

func employeeCtx(employeeID string) context.Context {
	return identity.WithActor(context.Background(), identity.Actor{
		UserID:     "user-" + employeeID,
		EmployeeID: employeeID,
		Role:       user.RoleEmployee,
	})
}

func managerCtx(employeeID string) context.Context {
	return identity.WithActor(context.Background(), identity.Actor{
		UserID:     "user-" + employeeID,
		EmployeeID: employeeID,
		Role:       user.RoleManager,
	})
}

// 09:00 IST on an ordinary workday.
var workdayMorning = time.Date(2024, 3, 12, 3, 30, 0, 0, time.UTC)

// ========================================
// Clock in / clock out
// ========================================

func TestSessionService_ClockIn_Success(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	resp, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "2024-03-12", resp.Date)
	assert.Equal(t, string(session.StatusActive), resp.Status)
	assert.Nil(t, resp.LogoutTime)
}

func TestSessionService_ClockIn_AlreadyClockedIn(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	_, err = env.svc.ClockIn(ctx)
	assert.ErrorIs(t, err, session.ErrAlreadyClockedIn)
}

func TestSessionService_ClockOut_NoActiveSession(t *testing.T) {
	env := newTestEnv(t, workdayMorning)

	_, err := env.svc.ClockOut(employeeCtx("emp-1"), session.ClockOutRequest{})
	assert.ErrorIs(t, err, session.ErrNoActiveSession)
}

func TestSessionService_ClockOut_WorksheetNotSubmitted(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	env.clock.Advance(8 * time.Hour)

	_, err = env.svc.ClockOut(ctx, session.ClockOutRequest{})
	assert.ErrorIs(t, err, session.ErrWorksheetNotSubmitted)
}

func TestSessionService_ClockOut_ForceRoleGate(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	env.clock.Advance(8 * time.Hour)

	_, err = env.svc.ClockOut(ctx, session.ClockOutRequest{Force: true})
	assert.ErrorIs(t, err, session.ErrForceClockOutForbidden)

	// A manager can force through the gate on their own session.
	mgrCtx := managerCtx("mgr-1")
	_, err = env.svc.ClockIn(mgrCtx)
	require.NoError(t, err)

	resp, err := env.svc.ClockOut(mgrCtx, session.ClockOutRequest{Force: true})
	require.NoError(t, err)
	assert.Equal(t, string(session.StatusCompleted), resp.Status)
}

func TestSessionService_ClockOut_ComputesTotals(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	// Work 4h, take a 15 minute break, then work until 8h after login.
	env.clock.Advance(4 * time.Hour)
	_, err = env.svc.StartBreak(ctx, session.StartBreakRequest{BreakType: session.BreakShort})
	require.NoError(t, err)

	env.clock.Advance(15 * time.Minute)
	_, err = env.svc.EndBreak(ctx)
	require.NoError(t, err)

	env.clock.Advance(3*time.Hour + 45*time.Minute)

	require.NoError(t, env.sessionRepo.SetWorksheetSubmitted(ctx, "emp-1", "2024-03-12"))

	resp, err := env.svc.ClockOut(ctx, session.ClockOutRequest{})
	require.NoError(t, err)

	assert.Equal(t, string(session.StatusCompleted), resp.Status)
	assert.Equal(t, 15, resp.TotalBreakMinutes)
	assert.InDelta(t, 7.75, resp.TotalWorkHours, 0.001)
	assert.Zero(t, resp.OvertimeHours)
	assert.Empty(t, env.notifier.queued)
}

func TestSessionService_ClockOut_ClosesOpenBreak(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	env.clock.Advance(6 * time.Hour)
	_, err = env.svc.StartBreak(ctx, session.StartBreakRequest{BreakType: session.BreakLunch})
	require.NoError(t, err)

	env.clock.Advance(30 * time.Minute)
	require.NoError(t, env.sessionRepo.SetWorksheetSubmitted(ctx, "emp-1", "2024-03-12"))

	resp, err := env.svc.ClockOut(ctx, session.ClockOutRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Breaks, 1)
	assert.NotNil(t, resp.Breaks[0].EndTime)
	assert.Equal(t, 30, resp.TotalBreakMinutes)
	assert.InDelta(t, 6.0, resp.TotalWorkHours, 0.001)
}

func TestSessionService_ClockOut_OvertimeAlert(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	env.clock.Advance(10 * time.Hour)
	require.NoError(t, env.sessionRepo.SetWorksheetSubmitted(ctx, "emp-1", "2024-03-12"))

	resp, err := env.svc.ClockOut(ctx, session.ClockOutRequest{})
	require.NoError(t, err)

	assert.InDelta(t, 10.0, resp.TotalWorkHours, 0.001)
	assert.InDelta(t, 2.0, resp.OvertimeHours, 0.001)

	// The alert goes to the employee's team lead.
	require.Len(t, env.notifier.queued, 1)
	assert.Equal(t, notification.TypeOvertimeAlert, env.notifier.queued[0].Type)
	assert.Equal(t, "lead-1", env.notifier.queued[0].RecipientID)
}

func TestSessionService_ClockOut_OvertimeWithoutLead(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-2")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	env.clock.Advance(9 * time.Hour)
	require.NoError(t, env.sessionRepo.SetWorksheetSubmitted(ctx, "emp-2", "2024-03-12"))

	_, err = env.svc.ClockOut(ctx, session.ClockOutRequest{})
	require.NoError(t, err)

	assert.Empty(t, env.notifier.queued)
}

// ========================================
// Breaks
// ========================================

func TestSessionService_StartBreak_AlreadyOnBreak(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	_, err = env.svc.StartBreak(ctx, session.StartBreakRequest{BreakType: session.BreakShort})
	require.NoError(t, err)

	_, err = env.svc.StartBreak(ctx, session.StartBreakRequest{BreakType: session.BreakTea})
	assert.ErrorIs(t, err, session.ErrAlreadyOnBreak)
}

func TestSessionService_EndBreak_NoOpenBreak(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	_, err = env.svc.EndBreak(ctx)
	assert.ErrorIs(t, err, session.ErrNoOpenBreak)
}

func TestSessionService_StartBreak_CommentRequired(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	_, err = env.svc.StartBreak(ctx, session.StartBreakRequest{BreakType: session.BreakMeeting})
	assert.Error(t, err)

	comment := "standup ran long"
	resp, err := env.svc.StartBreak(ctx, session.StartBreakRequest{BreakType: session.BreakMeeting, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, string(session.StatusOnBreak), resp.Status)
}

func TestSessionService_StartBreak_MaxBreaksReached(t *testing.T) {
	env := newTestEnv(t, workdayMorning)

	maxBreaks := 1
	_, err := env.settings.Create(context.Background(), session.BreakSettings{
		TeamID:          "team-1",
		EnforceLimits:   true,
		MaxBreaksPerDay: &maxBreaks,
	})
	require.NoError(t, err)

	ctx := identity.WithActor(context.Background(), identity.Actor{
		UserID:     "user-emp-1",
		EmployeeID: "emp-1",
		Role:       user.RoleEmployee,
		TeamID:     "team-1",
	})

	_, err = env.svc.ClockIn(ctx)
	require.NoError(t, err)

	_, err = env.svc.StartBreak(ctx, session.StartBreakRequest{BreakType: session.BreakShort})
	require.NoError(t, err)

	env.clock.Advance(10 * time.Minute)
	_, err = env.svc.EndBreak(ctx)
	require.NoError(t, err)

	_, err = env.svc.StartBreak(ctx, session.StartBreakRequest{BreakType: session.BreakTea})
	assert.ErrorIs(t, err, session.ErrBreakLimitReached)
}

func TestSessionService_StartBreak_MaxDurationReached(t *testing.T) {
	env := newTestEnv(t, workdayMorning)

	maxDuration := 30
	_, err := env.settings.Create(context.Background(), session.BreakSettings{
		TeamID:                  "team-1",
		EnforceLimits:           true,
		MaxBreakDurationMinutes: &maxDuration,
	})
	require.NoError(t, err)

	ctx := identity.WithActor(context.Background(), identity.Actor{
		UserID:     "user-emp-1",
		EmployeeID: "emp-1",
		Role:       user.RoleEmployee,
		TeamID:     "team-1",
	})

	_, err = env.svc.ClockIn(ctx)
	require.NoError(t, err)

	_, err = env.svc.StartBreak(ctx, session.StartBreakRequest{BreakType: session.BreakShort})
	require.NoError(t, err)

	env.clock.Advance(30 * time.Minute)
	_, err = env.svc.EndBreak(ctx)
	require.NoError(t, err)

	// The daily break budget is spent, so another break cannot start.
	_, err = env.svc.StartBreak(ctx, session.StartBreakRequest{BreakType: session.BreakTea})
	assert.ErrorIs(t, err, session.ErrBreakDurationExceeded)
}

// ========================================
// Current session and history
// ========================================

func TestSessionService_GetCurrentSession_NoSession(t *testing.T) {
	env := newTestEnv(t, workdayMorning)

	resp, err := env.svc.GetCurrentSession(employeeCtx("emp-1"))
	require.NoError(t, err)
	assert.False(t, resp.HasSession)
	assert.Nil(t, resp.Session)
}

func TestSessionService_GetHistory_EmployeeScoped(t *testing.T) {
	env := newTestEnv(t, workdayMorning)

	_, err := env.svc.ClockIn(employeeCtx("emp-1"))
	require.NoError(t, err)
	_, err = env.svc.ClockIn(employeeCtx("emp-2"))
	require.NoError(t, err)

	other := "emp-2"
	resp, err := env.svc.GetHistory(employeeCtx("emp-1"), session.HistoryFilter{EmployeeID: &other})
	require.NoError(t, err)

	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, "emp-1", resp.Sessions[0].EmployeeID)
}

// ========================================
// Screen active estimator
// ========================================

func TestSessionService_UpdateScreenActive_NoSession(t *testing.T) {
	env := newTestEnv(t, workdayMorning)

	err := env.svc.UpdateScreenActiveSeconds(employeeCtx("emp-1"), session.UpdateScreenActiveRequest{ScreenActiveSeconds: 60})
	assert.NoError(t, err)
}

func TestSessionService_UpdateScreenActive_Success(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	env.clock.Advance(10 * time.Minute)
	require.NoError(t, env.svc.UpdateScreenActiveSeconds(ctx, session.UpdateScreenActiveRequest{ScreenActiveSeconds: 540}))

	stored, err := env.sessionRepo.GetByEmployeeAndDate(ctx, "emp-1", "2024-03-12")
	require.NoError(t, err)
	assert.Equal(t, int64(540), stored.ScreenActiveSeconds)
}

func TestSessionService_UpdateScreenActive_Decrease(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	env.clock.Advance(10 * time.Minute)
	require.NoError(t, env.svc.UpdateScreenActiveSeconds(ctx, session.UpdateScreenActiveRequest{ScreenActiveSeconds: 500}))
	require.NoError(t, env.svc.UpdateScreenActiveSeconds(ctx, session.UpdateScreenActiveRequest{ScreenActiveSeconds: 100}))

	stored, err := env.sessionRepo.GetByEmployeeAndDate(ctx, "emp-1", "2024-03-12")
	require.NoError(t, err)
	assert.Equal(t, int64(500), stored.ScreenActiveSeconds)
}

func TestSessionService_UpdateScreenActive_ImplausibleJump(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	_, err := env.svc.ClockIn(ctx)
	require.NoError(t, err)

	// Ten minutes in, a counter claiming hours of activity is noise.
	env.clock.Advance(10 * time.Minute)
	require.NoError(t, env.svc.UpdateScreenActiveSeconds(ctx, session.UpdateScreenActiveRequest{ScreenActiveSeconds: 50000}))

	stored, err := env.sessionRepo.GetByEmployeeAndDate(ctx, "emp-1", "2024-03-12")
	require.NoError(t, err)
	assert.Zero(t, stored.ScreenActiveSeconds)
}

func TestSessionService_UpdateScreenActive_Negative(t *testing.T) {
	env := newTestEnv(t, workdayMorning)
	ctx := employeeCtx("emp-1")

	err := env.svc.UpdateScreenActiveSeconds(ctx, session.UpdateScreenActiveRequest{ScreenActiveSeconds: -1})
	assert.Error(t, err)
}

// ========================================
// Break settings
// ========================================

func TestSessionService_CreateBreakSettings_RoleGate(t *testing.T) {
	env := newTestEnv(t, workdayMorning)

	req := session.CreateBreakSettingsRequest{TeamID: "team-1"}

	_, err := env.svc.CreateBreakSettings(employeeCtx("emp-1"), req)
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	created, err := env.svc.CreateBreakSettings(managerCtx("mgr-1"), req)
	require.NoError(t, err)
	assert.Equal(t, 60, created.LunchBreakDuration)
	assert.Equal(t, 15, created.ShortBreakDuration)

	_, err = env.svc.CreateBreakSettings(managerCtx("mgr-1"), session.CreateBreakSettingsRequest{TeamID: "team-1"})
	assert.ErrorIs(t, err, session.ErrBreakSettingsExist)
}

func TestSessionService_GetBreakSettings_TeamScoped(t *testing.T) {
	env := newTestEnv(t, workdayMorning)

	_, err := env.svc.CreateBreakSettings(managerCtx("mgr-1"), session.CreateBreakSettingsRequest{TeamID: "team-1"})
	require.NoError(t, err)

	// An employee on another team cannot read team-1's policy.
	outsider := identity.WithActor(context.Background(), identity.Actor{
		UserID:     "user-emp-9",
		EmployeeID: "emp-9",
		Role:       user.RoleEmployee,
		TeamID:     "team-2",
	})
	_, err = env.svc.GetBreakSettings(outsider, "team-1")
	assert.ErrorIs(t, err, session.ErrUnauthorized)

	member := identity.WithActor(context.Background(), identity.Actor{
		UserID:     "user-emp-1",
		EmployeeID: "emp-1",
		Role:       user.RoleEmployee,
		TeamID:     "team-1",
	})
	resp, err := env.svc.GetBreakSettings(member, "team-1")
	require.NoError(t, err)
	assert.Equal(t, "team-1", resp.TeamID)
}
