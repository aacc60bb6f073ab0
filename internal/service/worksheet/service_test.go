package worksheet

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/notification"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/session"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/team"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/user"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/worksheet"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/clock"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/identity"
)

// ========================================
// In-memory fakes
// ========================================

type fakeWorksheetRepo struct {
	worksheets map[string]*worksheet.Worksheet
}

func newFakeWorksheetRepo() *fakeWorksheetRepo {
	return &fakeWorksheetRepo{worksheets: make(map[string]*worksheet.Worksheet)}
}

func (r *fakeWorksheetRepo) Create(ctx context.Context, w worksheet.Worksheet) (worksheet.Worksheet, error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	stored := w
	r.worksheets[w.ID] = &stored
	return w, nil
}

func (r *fakeWorksheetRepo) GetByID(ctx context.Context, id string) (worksheet.Worksheet, error) {
	w, ok := r.worksheets[id]
	if !ok {
		return worksheet.Worksheet{}, worksheet.ErrWorksheetNotFound
	}
	return *w, nil
}

func (r *fakeWorksheetRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*worksheet.Worksheet, error) {
	for _, w := range r.worksheets {
		if w.EmployeeID == employeeID && w.Date == date {
			copied := *w
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeWorksheetRepo) Update(ctx context.Context, w worksheet.Worksheet) error {
	if _, ok := r.worksheets[w.ID]; !ok {
		return worksheet.ErrWorksheetNotFound
	}
	stored := w
	r.worksheets[w.ID] = &stored
	return nil
}

func (r *fakeWorksheetRepo) List(ctx context.Context, filter worksheet.WorksheetFilter) ([]worksheet.Worksheet, int64, error) {
	var out []worksheet.Worksheet
	for _, w := range r.worksheets {
		if filter.EmployeeID != nil && w.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(w.Status) != *filter.Status {
			continue
		}
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeWorksheetRepo) ListByStatus(ctx context.Context, status worksheet.Status) ([]worksheet.Worksheet, error) {
	var out []worksheet.Worksheet
	for _, w := range r.worksheets {
		if w.Status == status {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWorksheetRepo) ListByStatusForEmployees(ctx context.Context, status worksheet.Status, employeeIDs []string) ([]worksheet.Worksheet, error) {
	members := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		members[id] = true
	}
	var out []worksheet.Worksheet
	for _, w := range r.worksheets {
		if w.Status == status && members[w.EmployeeID] {
			out = append(out, *w)
		}
	}
	return out, nil
}

// fakeTeamRepo models a single team: lead-1 leading emp-1 and emp-2.
type fakeTeamRepo struct {
	teams map[string]*team.Team // teamID
}

func newFakeTeamRepo() *fakeTeamRepo {
	lead := "lead-1"
	return &fakeTeamRepo{teams: map[string]*team.Team{
		"team-1": {ID: "team-1", Name: "Platform", TeamLeadID: &lead},
	}}
}

var teamMembers = map[string][]string{
	"team-1": {"emp-1", "emp-2"},
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id string) (team.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return team.Team{}, team.ErrTeamNotFound
	}
	return *t, nil
}

func (r *fakeTeamRepo) GetByTeamLead(ctx context.Context, teamLeadEmployeeID string) (*team.Team, error) {
	for _, t := range r.teams {
		if t.TeamLeadID != nil && *t.TeamLeadID == teamLeadEmployeeID {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeTeamRepo) ListMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	return teamMembers[teamID], nil
}

func (r *fakeTeamRepo) GetTeamLeadOf(ctx context.Context, employeeID string) (*string, error) {
	for teamID, members := range teamMembers {
		for _, m := range members {
			if m == employeeID {
				return r.teams[teamID].TeamLeadID, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeTeamRepo) IsTeamLeadOf(ctx context.Context, teamLeadEmployeeID string, employeeID string) (bool, error) {
	t, err := r.GetByTeamLead(ctx, teamLeadEmployeeID)
	if err != nil || t == nil {
		return false, err
	}
	for _, m := range teamMembers[t.ID] {
		if m == employeeID {
			return true, nil
		}
	}
	return false, nil
}

// fakeSessionRepo only records worksheet-submitted flags; nothing else in
// the pipeline touches sessions.
type fakeSessionRepo struct {
	submittedFlags []string // employeeID|date
}

func (r *fakeSessionRepo) Create(ctx context.Context, s session.Session) (session.Session, error) {
	return s, nil
}

func (r *fakeSessionRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*session.Session, error) {
	return nil, nil
}

func (r *fakeSessionRepo) GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*session.Session, error) {
	return nil, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, s session.Session) error { return nil }

func (r *fakeSessionRepo) UpdateScreenActive(ctx context.Context, sessionID string, seconds int64) error {
	return nil
}

func (r *fakeSessionRepo) SetWorksheetSubmitted(ctx context.Context, employeeID string, date string) error {
	r.submittedFlags = append(r.submittedFlags, employeeID+"|"+date)
	return nil
}

func (r *fakeSessionRepo) List(ctx context.Context, filter session.HistoryFilter) ([]session.Session, int64, error) {
	return nil, 0, nil
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

type testEnv struct {
	svc         worksheet.WorksheetService
	repo        *fakeWorksheetRepo
	sessionRepo *fakeSessionRepo
	notifier    *fakeNotifier
	clock       *clock.Fixed
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := newFakeWorksheetRepo()
	sessionRepo := &fakeSessionRepo{}
	notifier := &fakeNotifier{}
	clk := clock.NewFixed(time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC), time.UTC)

	svc := NewWorksheetService(nil, repo, newFakeTeamRepo(), sessionRepo, notifier, clk, slog.Default())

	return &testEnv{svc: svc, repo: repo, sessionRepo: sessionRepo, notifier: notifier, clock: clk}
}

func actorCtx(employeeID string, role user.Role) context.Context {
	return identity.WithActor(context.Background(), identity.Actor{
		UserID:     "user-" + employeeID,
		EmployeeID: employeeID,
		Role:       role,
	})
}

var (
	ownerCtx   = actorCtx("emp-1", user.RoleEmployee)
	leadCtx    = actorCtx("lead-1", user.RoleTeamLead)
	managerCtx = actorCtx("mgr-1", user.RoleManager)
)

func createReq(date string) worksheet.CreateWorksheetRequest {
	return worksheet.CreateWorksheetRequest{
		Date:   date,
		FormID: "form-daily",
		FormResponses: []worksheet.FormResponse{
			{FieldID: "f1", FieldLabel: "Hours on project", Value: "6.5"},
			{FieldID: "f2", FieldLabel: "Summary", Value: "feature work"},
		},
	}
}

func (env *testEnv) createSubmitted(t *testing.T, date string) worksheet.WorksheetResponse {
	t.Helper()
	created, err := env.svc.Create(ownerCtx, createReq(date))
	require.NoError(t, err)
	submitted, err := env.svc.Submit(ownerCtx, created.ID)
	require.NoError(t, err)
	return submitted
}

func (env *testEnv) createVerified(t *testing.T, date string) worksheet.WorksheetResponse {
	t.Helper()
	submitted := env.createSubmitted(t, date)
	verified, err := env.svc.Verify(leadCtx, submitted.ID)
	require.NoError(t, err)
	return verified
}

// ========================================
// Create / Update
// ========================================

func TestWorksheetService_Create_Success(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Create(ownerCtx, createReq("2024-03-12"))
	require.NoError(t, err)

	assert.Equal(t, string(worksheet.StatusDraft), resp.Status)
	assert.InDelta(t, 6.5, resp.TotalHours, 0.001)
	assert.Equal(t, "emp-1", resp.EmployeeID)
}

func TestWorksheetService_Create_DuplicateDay(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(ownerCtx, createReq("2024-03-12"))
	require.NoError(t, err)

	_, err = env.svc.Create(ownerCtx, createReq("2024-03-12"))
	assert.ErrorIs(t, err, worksheet.ErrWorksheetExists)
}

func TestWorksheetService_Update_OwnerAndEditableOnly(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.svc.Create(ownerCtx, createReq("2024-03-12"))
	require.NoError(t, err)

	otherCtx := actorCtx("emp-2", user.RoleEmployee)
	_, err = env.svc.Update(otherCtx, worksheet.UpdateWorksheetRequest{ID: created.ID})
	assert.ErrorIs(t, err, worksheet.ErrNotOwner)

	updated, err := env.svc.Update(ownerCtx, worksheet.UpdateWorksheetRequest{
		ID: created.ID,
		FormResponses: []worksheet.FormResponse{
			{FieldID: "f1", FieldLabel: "Hours on project", Value: "8"},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 8.0, updated.TotalHours, 0.001)

	_, err = env.svc.Submit(ownerCtx, created.ID)
	require.NoError(t, err)

	_, err = env.svc.Update(ownerCtx, worksheet.UpdateWorksheetRequest{ID: created.ID})
	assert.ErrorIs(t, err, worksheet.ErrNotEditable)
}

// ========================================
// Pipeline transitions
// ========================================

func TestWorksheetService_Pipeline_FullApproval(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.svc.Create(ownerCtx, createReq("2024-03-12"))
	require.NoError(t, err)

	submitted, err := env.svc.Submit(ownerCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(worksheet.StatusSubmitted), submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	verified, err := env.svc.Verify(leadCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(worksheet.StatusTLVerified), verified.Status)
	require.NotNil(t, verified.TLVerifiedBy)
	assert.Equal(t, "lead-1", *verified.TLVerifiedBy)

	approved, err := env.svc.Approve(managerCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(worksheet.StatusManagerApproved), approved.Status)
	require.NotNil(t, approved.ManagerApprovedBy)
	assert.Equal(t, "mgr-1", *approved.ManagerApprovedBy)

	// Submission flagged the attendance session and each hop notified.
	assert.Contains(t, env.sessionRepo.submittedFlags, "emp-1|2024-03-12")
	require.Len(t, env.notifier.queued, 3)
	assert.Equal(t, notification.TypeWorksheetSubmitted, env.notifier.queued[0].Type)
	assert.Equal(t, "lead-1", env.notifier.queued[0].RecipientID)
	assert.Equal(t, notification.TypeWorksheetVerified, env.notifier.queued[1].Type)
	assert.Equal(t, "emp-1", env.notifier.queued[1].RecipientID)
	assert.Equal(t, notification.TypeWorksheetApproved, env.notifier.queued[2].Type)
}

func TestWorksheetService_Submit_InvalidTransition(t *testing.T) {
	env := newTestEnv(t)

	submitted := env.createSubmitted(t, "2024-03-12")

	_, err := env.svc.Submit(ownerCtx, submitted.ID)
	assert.ErrorIs(t, err, worksheet.ErrInvalidTransition)
}

func TestWorksheetService_Verify_NotTeamLeadOfOwner(t *testing.T) {
	env := newTestEnv(t)

	submitted := env.createSubmitted(t, "2024-03-12")

	// A team lead from a different team is not the owner's lead.
	otherLead := actorCtx("lead-9", user.RoleTeamLead)
	_, err := env.svc.Verify(otherLead, submitted.ID)
	assert.ErrorIs(t, err, worksheet.ErrNotTeamLeadOfOwner)

	_, err = env.svc.Verify(actorCtx("emp-2", user.RoleEmployee), submitted.ID)
	assert.ErrorIs(t, err, worksheet.ErrNotTeamLeadOfOwner)
}

func TestWorksheetService_Approve_Gates(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.svc.Create(ownerCtx, createReq("2024-03-12"))
	require.NoError(t, err)

	_, err = env.svc.Approve(managerCtx, created.ID)
	assert.ErrorIs(t, err, worksheet.ErrInvalidTransition)

	_, err = env.svc.Approve(leadCtx, created.ID)
	assert.ErrorIs(t, err, worksheet.ErrApproverRoleRequired)
}

// ========================================
// Rejection and resubmission
// ========================================

func TestWorksheetService_Reject_ReasonRequired(t *testing.T) {
	env := newTestEnv(t)

	submitted := env.createSubmitted(t, "2024-03-12")

	_, err := env.svc.Reject(leadCtx, worksheet.RejectWorksheetRequest{ID: submitted.ID})
	assert.Error(t, err)
}

func TestWorksheetService_Reject_FromReviewStates(t *testing.T) {
	env := newTestEnv(t)

	submitted := env.createSubmitted(t, "2024-03-12")

	rejected, err := env.svc.Reject(leadCtx, worksheet.RejectWorksheetRequest{ID: submitted.ID, Reason: "missing task breakdown"})
	require.NoError(t, err)
	assert.Equal(t, string(worksheet.StatusRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "missing task breakdown", *rejected.RejectionReason)

	// Managers can also reject after verification.
	verified := env.createVerified(t, "2024-03-13")
	rejected, err = env.svc.Reject(managerCtx, worksheet.RejectWorksheetRequest{ID: verified.ID, Reason: "hours look wrong"})
	require.NoError(t, err)
	assert.Equal(t, string(worksheet.StatusRejected), rejected.Status)
}

func TestWorksheetService_Reject_AfterApproval(t *testing.T) {
	env := newTestEnv(t)

	verified := env.createVerified(t, "2024-03-12")
	_, err := env.svc.Approve(managerCtx, verified.ID)
	require.NoError(t, err)

	_, err = env.svc.Reject(managerCtx, worksheet.RejectWorksheetRequest{ID: verified.ID, Reason: "too late"})
	assert.ErrorIs(t, err, worksheet.ErrInvalidTransition)
}

func TestWorksheetService_Submit_ResubmissionClearsStamps(t *testing.T) {
	env := newTestEnv(t)

	verified := env.createVerified(t, "2024-03-12")
	_, err := env.svc.Reject(managerCtx, worksheet.RejectWorksheetRequest{ID: verified.ID, Reason: "redo day totals"})
	require.NoError(t, err)

	env.clock.Advance(time.Hour)
	resubmitted, err := env.svc.Submit(ownerCtx, verified.ID)
	require.NoError(t, err)

	assert.Equal(t, string(worksheet.StatusSubmitted), resubmitted.Status)
	assert.Nil(t, resubmitted.TLVerifiedBy)
	assert.Nil(t, resubmitted.TLVerifiedAt)
	assert.Nil(t, resubmitted.RejectedBy)
	assert.Nil(t, resubmitted.RejectionReason)
}

// ========================================
// Bulk approval
// ========================================

func TestWorksheetService_BulkApprove_SkipsNonVerified(t *testing.T) {
	env := newTestEnv(t)

	verified := env.createVerified(t, "2024-03-12")
	draft, err := env.svc.Create(ownerCtx, createReq("2024-03-13"))
	require.NoError(t, err)

	resp, err := env.svc.BulkApprove(managerCtx, worksheet.BulkApproveRequest{
		WorksheetIDs: []string{verified.ID, draft.ID, "no-such-id"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.ApprovedCount)
	assert.Equal(t, []string{verified.ID}, resp.ApprovedIDs)

	stored, err := env.repo.GetByID(context.Background(), verified.ID)
	require.NoError(t, err)
	assert.Equal(t, worksheet.StatusManagerApproved, stored.Status)

	stored, err = env.repo.GetByID(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, worksheet.StatusDraft, stored.Status)
}

func TestWorksheetService_BulkApprove_RoleGate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.BulkApprove(leadCtx, worksheet.BulkApproveRequest{WorksheetIDs: []string{"ws-1"}})
	assert.ErrorIs(t, err, worksheet.ErrApproverRoleRequired)
}

// ========================================
// Reads and queues
// ========================================

func TestWorksheetService_GetByID_OwnerScoped(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.svc.Create(ownerCtx, createReq("2024-03-12"))
	require.NoError(t, err)

	_, err = env.svc.GetByID(actorCtx("emp-2", user.RoleEmployee), created.ID)
	assert.ErrorIs(t, err, worksheet.ErrNotOwner)

	resp, err := env.svc.GetByID(leadCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
}

func TestWorksheetService_List_EmployeeScoped(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(ownerCtx, createReq("2024-03-12"))
	require.NoError(t, err)
	_, err = env.svc.Create(actorCtx("emp-2", user.RoleEmployee), createReq("2024-03-12"))
	require.NoError(t, err)

	other := "emp-2"
	resp, err := env.svc.List(ownerCtx, worksheet.WorksheetFilter{EmployeeID: &other})
	require.NoError(t, err)

	require.Len(t, resp.Worksheets, 1)
	assert.Equal(t, "emp-1", resp.Worksheets[0].EmployeeID)
}

func TestWorksheetService_PendingVerification_TeamScoped(t *testing.T) {
	env := newTestEnv(t)

	submitted := env.createSubmitted(t, "2024-03-12")

	// A second team's submission must not appear in lead-1's queue.
	outsider := actorCtx("emp-9", user.RoleEmployee)
	created, err := env.svc.Create(outsider, createReq("2024-03-12"))
	require.NoError(t, err)
	_, err = env.svc.Submit(outsider, created.ID)
	require.NoError(t, err)

	pending, err := env.svc.PendingVerification(leadCtx)
	require.NoError(t, err)

	require.Len(t, pending, 1)
	assert.Equal(t, submitted.ID, pending[0].ID)
}

func TestWorksheetService_PendingVerification_NoTeam(t *testing.T) {
	env := newTestEnv(t)

	pending, err := env.svc.PendingVerification(actorCtx("lead-9", user.RoleTeamLead))
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestWorksheetService_PendingApproval_Success(t *testing.T) {
	env := newTestEnv(t)

	verified := env.createVerified(t, "2024-03-12")

	pending, err := env.svc.PendingApproval(managerCtx)
	require.NoError(t, err)

	require.Len(t, pending, 1)
	assert.Equal(t, verified.ID, pending[0].ID)

	_, err = env.svc.PendingApproval(leadCtx)
	assert.ErrorIs(t, err, worksheet.ErrApproverRoleRequired)
}
