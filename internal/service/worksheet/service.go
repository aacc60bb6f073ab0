package worksheet

import (
	"context"
	"log/slog"
	"math"

	"github.com/worklane-hq/worklane-backend-go/internal/domain/notification"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/session"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/team"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/worksheet"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/clock"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/database"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/identity"
)

type WorksheetServiceImpl struct {
	db *database.DB
	worksheet.WorksheetRepository
	team.TeamRepository
	sessionRepo session.SessionRepository
	notifier    notification.Service
	clock       clock.Clock
	logger      *slog.Logger
}

func NewWorksheetService(
	db *database.DB,
	worksheetRepo worksheet.WorksheetRepository,
	teamRepo team.TeamRepository,
	sessionRepo session.SessionRepository,
	notifier notification.Service,
	clk clock.Clock,
	logger *slog.Logger,
) worksheet.WorksheetService {
	return &WorksheetServiceImpl{
		db:                  db,
		WorksheetRepository: worksheetRepo,
		TeamRepository:      teamRepo,
		sessionRepo:         sessionRepo,
		notifier:            notifier,
		clock:               clk,
		logger:              logger,
	}
}

// Create implements worksheet.WorksheetService.
func (w *WorksheetServiceImpl) Create(ctx context.Context, req worksheet.CreateWorksheetRequest) (worksheet.WorksheetResponse, error) {
	if err := req.Validate(); err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	actor, err := identity.FromContext(ctx)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	existing, err := w.WorksheetRepository.GetByEmployeeAndDate(ctx, actor.EmployeeID, req.Date)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}
	if existing != nil {
		return worksheet.WorksheetResponse{}, worksheet.ErrWorksheetExists
	}

	created, err := w.WorksheetRepository.Create(ctx, worksheet.Worksheet{
		EmployeeID:    actor.EmployeeID,
		Date:          req.Date,
		FormID:        req.FormID,
		FormResponses: req.FormResponses,
		TotalHours:    worksheet.ComputeTotalHours(req.FormResponses),
		Notes:         req.Notes,
		Status:        worksheet.StatusDraft,
	})
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	return worksheet.MapWorksheetToResponse(created), nil
}

// Update implements worksheet.WorksheetService.
func (w *WorksheetServiceImpl) Update(ctx context.Context, req worksheet.UpdateWorksheetRequest) (worksheet.WorksheetResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	ws, err := w.WorksheetRepository.GetByID(ctx, req.ID)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	if ws.EmployeeID != actor.EmployeeID {
		return worksheet.WorksheetResponse{}, worksheet.ErrNotOwner
	}
	if !ws.Editable() {
		return worksheet.WorksheetResponse{}, worksheet.ErrNotEditable
	}

	if req.FormResponses != nil {
		ws.FormResponses = req.FormResponses
		ws.TotalHours = worksheet.ComputeTotalHours(req.FormResponses)
	}
	if req.Notes != nil {
		ws.Notes = req.Notes
	}

	if err := w.WorksheetRepository.Update(ctx, ws); err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	return worksheet.MapWorksheetToResponse(ws), nil
}

// Submit implements worksheet.WorksheetService.
func (w *WorksheetServiceImpl) Submit(ctx context.Context, id string) (worksheet.WorksheetResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	ws, err := w.WorksheetRepository.GetByID(ctx, id)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	if ws.EmployeeID != actor.EmployeeID {
		return worksheet.WorksheetResponse{}, worksheet.ErrNotOwner
	}
	if ws.Status != worksheet.StatusDraft && ws.Status != worksheet.StatusRejected {
		return worksheet.WorksheetResponse{}, worksheet.ErrInvalidTransition
	}

	now := w.clock.Now()
	ws.Status = worksheet.StatusSubmitted
	ws.SubmittedAt = &now

	// Resubmission starts the review over: stale verification stamps and
	// the rejection record must not survive into the new round.
	ws.TLVerifiedBy = nil
	ws.TLVerifiedAt = nil
	ws.RejectedBy = nil
	ws.RejectedAt = nil
	ws.RejectionReason = nil

	if err := w.WorksheetRepository.Update(ctx, ws); err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	// Unblocks the same-day clock-out. A missing session is fine: the
	// worksheet may be submitted before any clock-in, or on a day off.
	if err := w.sessionRepo.SetWorksheetSubmitted(ctx, ws.EmployeeID, ws.Date); err != nil {
		w.logger.Warn("failed to flag worksheet submitted on session", "worksheet_id", ws.ID, "error", err)
	}

	w.notifyTeamLead(ctx, ws, notification.TypeWorksheetSubmitted,
		"Worksheet submitted",
		"A worksheet for "+ws.Date+" is waiting for your verification")

	return worksheet.MapWorksheetToResponse(ws), nil
}

// Verify implements worksheet.WorksheetService.
func (w *WorksheetServiceImpl) Verify(ctx context.Context, id string) (worksheet.WorksheetResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}
	if !actor.Role.CanVerify() {
		return worksheet.WorksheetResponse{}, worksheet.ErrNotTeamLeadOfOwner
	}

	ws, err := w.WorksheetRepository.GetByID(ctx, id)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	isLead, err := w.TeamRepository.IsTeamLeadOf(ctx, actor.EmployeeID, ws.EmployeeID)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}
	if !isLead {
		return worksheet.WorksheetResponse{}, worksheet.ErrNotTeamLeadOfOwner
	}

	if ws.Status != worksheet.StatusSubmitted {
		return worksheet.WorksheetResponse{}, worksheet.ErrInvalidTransition
	}

	now := w.clock.Now()
	ws.Status = worksheet.StatusTLVerified
	ws.TLVerifiedBy = &actor.EmployeeID
	ws.TLVerifiedAt = &now

	if err := w.WorksheetRepository.Update(ctx, ws); err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	w.notifyOwner(ctx, ws, actor.EmployeeID, notification.TypeWorksheetVerified,
		"Worksheet verified",
		"Your worksheet for "+ws.Date+" was verified by your team lead")

	return worksheet.MapWorksheetToResponse(ws), nil
}

// Approve implements worksheet.WorksheetService.
func (w *WorksheetServiceImpl) Approve(ctx context.Context, id string) (worksheet.WorksheetResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}
	if !actor.Role.CanApprove() {
		return worksheet.WorksheetResponse{}, worksheet.ErrApproverRoleRequired
	}

	ws, err := w.WorksheetRepository.GetByID(ctx, id)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	if ws.Status != worksheet.StatusTLVerified {
		return worksheet.WorksheetResponse{}, worksheet.ErrInvalidTransition
	}

	now := w.clock.Now()
	ws.Status = worksheet.StatusManagerApproved
	ws.ManagerApprovedBy = &actor.EmployeeID
	ws.ManagerApprovedAt = &now

	if err := w.WorksheetRepository.Update(ctx, ws); err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	w.notifyOwner(ctx, ws, actor.EmployeeID, notification.TypeWorksheetApproved,
		"Worksheet approved",
		"Your worksheet for "+ws.Date+" was approved")

	return worksheet.MapWorksheetToResponse(ws), nil
}

// Reject implements worksheet.WorksheetService.
func (w *WorksheetServiceImpl) Reject(ctx context.Context, req worksheet.RejectWorksheetRequest) (worksheet.WorksheetResponse, error) {
	if err := req.Validate(); err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	actor, err := identity.FromContext(ctx)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}
	if !actor.Role.IsReviewer() {
		return worksheet.WorksheetResponse{}, worksheet.ErrReviewerRoleRequired
	}

	ws, err := w.WorksheetRepository.GetByID(ctx, req.ID)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	// Team leads may only reject within their own team; managers and
	// admins reject anywhere.
	if !actor.Role.CanApprove() {
		isLead, err := w.TeamRepository.IsTeamLeadOf(ctx, actor.EmployeeID, ws.EmployeeID)
		if err != nil {
			return worksheet.WorksheetResponse{}, err
		}
		if !isLead {
			return worksheet.WorksheetResponse{}, worksheet.ErrNotTeamLeadOfOwner
		}
	}

	if !ws.Rejectable() {
		return worksheet.WorksheetResponse{}, worksheet.ErrInvalidTransition
	}

	now := w.clock.Now()
	ws.Status = worksheet.StatusRejected
	ws.RejectedBy = &actor.EmployeeID
	ws.RejectedAt = &now
	ws.RejectionReason = &req.Reason

	if err := w.WorksheetRepository.Update(ctx, ws); err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	w.notifyOwner(ctx, ws, actor.EmployeeID, notification.TypeWorksheetRejected,
		"Worksheet rejected",
		"Your worksheet for "+ws.Date+" was rejected: "+req.Reason)

	return worksheet.MapWorksheetToResponse(ws), nil
}

// BulkApprove implements worksheet.WorksheetService. Worksheets not in
// tl_verified are skipped, not failed: the manager's queue may have moved
// between listing and approving.
func (w *WorksheetServiceImpl) BulkApprove(ctx context.Context, req worksheet.BulkApproveRequest) (worksheet.BulkApproveResponse, error) {
	if err := req.Validate(); err != nil {
		return worksheet.BulkApproveResponse{}, err
	}

	actor, err := identity.FromContext(ctx)
	if err != nil {
		return worksheet.BulkApproveResponse{}, err
	}
	if !actor.Role.CanApprove() {
		return worksheet.BulkApproveResponse{}, worksheet.ErrApproverRoleRequired
	}

	now := w.clock.Now()
	approved := make([]string, 0, len(req.WorksheetIDs))

	for _, id := range req.WorksheetIDs {
		ws, err := w.WorksheetRepository.GetByID(ctx, id)
		if err != nil {
			continue
		}
		if ws.Status != worksheet.StatusTLVerified {
			continue
		}

		ws.Status = worksheet.StatusManagerApproved
		ws.ManagerApprovedBy = &actor.EmployeeID
		ws.ManagerApprovedAt = &now

		if err := w.WorksheetRepository.Update(ctx, ws); err != nil {
			w.logger.Warn("failed to approve worksheet in bulk", "worksheet_id", id, "error", err)
			continue
		}

		approved = append(approved, id)
		w.notifyOwner(ctx, ws, actor.EmployeeID, notification.TypeWorksheetApproved,
			"Worksheet approved",
			"Your worksheet for "+ws.Date+" was approved")
	}

	return worksheet.BulkApproveResponse{
		ApprovedCount: len(approved),
		ApprovedIDs:   approved,
	}, nil
}

// GetByID implements worksheet.WorksheetService.
func (w *WorksheetServiceImpl) GetByID(ctx context.Context, id string) (worksheet.WorksheetResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	ws, err := w.WorksheetRepository.GetByID(ctx, id)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	if !actor.Role.IsReviewer() && ws.EmployeeID != actor.EmployeeID {
		return worksheet.WorksheetResponse{}, worksheet.ErrNotOwner
	}

	return worksheet.MapWorksheetToResponse(ws), nil
}

// List implements worksheet.WorksheetService.
func (w *WorksheetServiceImpl) List(ctx context.Context, filter worksheet.WorksheetFilter) (worksheet.ListWorksheetsResponse, error) {
	if err := filter.Validate(); err != nil {
		return worksheet.ListWorksheetsResponse{}, err
	}

	actor, err := identity.FromContext(ctx)
	if err != nil {
		return worksheet.ListWorksheetsResponse{}, err
	}

	if !actor.Role.IsReviewer() {
		filter.EmployeeID = &actor.EmployeeID
	}

	worksheets, totalCount, err := w.WorksheetRepository.List(ctx, filter)
	if err != nil {
		return worksheet.ListWorksheetsResponse{}, err
	}

	responses := make([]worksheet.WorksheetResponse, len(worksheets))
	for i, ws := range worksheets {
		responses[i] = worksheet.MapWorksheetToResponse(ws)
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(filter.Limit)))

	return worksheet.ListWorksheetsResponse{
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Worksheets: responses,
	}, nil
}

// PendingVerification implements worksheet.WorksheetService.
func (w *WorksheetServiceImpl) PendingVerification(ctx context.Context) ([]worksheet.WorksheetResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanVerify() {
		return nil, worksheet.ErrReviewerRoleRequired
	}

	ledTeam, err := w.TeamRepository.GetByTeamLead(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	if ledTeam == nil {
		return []worksheet.WorksheetResponse{}, nil
	}

	memberIDs, err := w.TeamRepository.ListMemberIDs(ctx, ledTeam.ID)
	if err != nil {
		return nil, err
	}

	worksheets, err := w.WorksheetRepository.ListByStatusForEmployees(ctx, worksheet.StatusSubmitted, memberIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]worksheet.WorksheetResponse, len(worksheets))
	for i, ws := range worksheets {
		responses[i] = worksheet.MapWorksheetToResponse(ws)
	}
	return responses, nil
}

// PendingApproval implements worksheet.WorksheetService.
func (w *WorksheetServiceImpl) PendingApproval(ctx context.Context) ([]worksheet.WorksheetResponse, error) {
	actor, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanApprove() {
		return nil, worksheet.ErrApproverRoleRequired
	}

	worksheets, err := w.WorksheetRepository.ListByStatus(ctx, worksheet.StatusTLVerified)
	if err != nil {
		return nil, err
	}

	responses := make([]worksheet.WorksheetResponse, len(worksheets))
	for i, ws := range worksheets {
		responses[i] = worksheet.MapWorksheetToResponse(ws)
	}
	return responses, nil
}

// notifyOwner queues a status notification to the worksheet's owner.
// Notification failures never fail the pipeline operation.
func (w *WorksheetServiceImpl) notifyOwner(ctx context.Context, ws worksheet.Worksheet, senderID string, typ notification.NotificationType, title, message string) {
	if w.notifier == nil {
		return
	}
	err := w.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: ws.EmployeeID,
		SenderID:    &senderID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"worksheet_id": ws.ID,
			"date":         ws.Date,
			"status":       string(ws.Status),
		},
	})
	if err != nil {
		w.logger.Warn("failed to queue worksheet notification", "worksheet_id", ws.ID, "error", err)
	}
}

// notifyTeamLead queues a notification to the owner's team lead, if any.
func (w *WorksheetServiceImpl) notifyTeamLead(ctx context.Context, ws worksheet.Worksheet, typ notification.NotificationType, title, message string) {
	if w.notifier == nil {
		return
	}

	leadID, err := w.TeamRepository.GetTeamLeadOf(ctx, ws.EmployeeID)
	if err != nil {
		w.logger.Warn("failed to resolve team lead", "worksheet_id", ws.ID, "error", err)
		return
	}
	if leadID == nil {
		return
	}

	err = w.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: *leadID,
		SenderID:    &ws.EmployeeID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"worksheet_id": ws.ID,
			"date":         ws.Date,
			"status":       string(ws.Status),
		},
	})
	if err != nil {
		w.logger.Warn("failed to queue worksheet notification", "worksheet_id", ws.ID, "error", err)
	}
}
