package worksheet

import (
	"context"
)

// WorksheetService defines the worksheet approval pipeline operations. The
// acting user's identity and role come from the request context.
type WorksheetService interface {
	// Create opens a draft worksheet for the owner.
	Create(ctx context.Context, req CreateWorksheetRequest) (WorksheetResponse, error)

	// Update edits content of a draft or rejected worksheet; editing a
	// rejected worksheet keeps it rejected until resubmission.
	Update(ctx context.Context, req UpdateWorksheetRequest) (WorksheetResponse, error)

	// Submit moves a draft or rejected worksheet into review. Resubmission
	// clears the rejection record and any stale verification stamps, and
	// flags worksheet_submitted on the day's attendance session.
	Submit(ctx context.Context, id string) (WorksheetResponse, error)

	// Verify moves a submitted worksheet to tl_verified; team lead of the
	// owner only.
	Verify(ctx context.Context, id string) (WorksheetResponse, error)

	// Approve moves a tl_verified worksheet to manager_approved; manager
	// or admin only.
	Approve(ctx context.Context, id string) (WorksheetResponse, error)

	// Reject sends a submitted or tl_verified worksheet back to its owner
	// with a mandatory reason.
	Reject(ctx context.Context, req RejectWorksheetRequest) (WorksheetResponse, error)

	// BulkApprove approves every listed worksheet currently in tl_verified,
	// silently skipping the rest, and reports what was approved.
	BulkApprove(ctx context.Context, req BulkApproveRequest) (BulkApproveResponse, error)

	// GetByID returns one worksheet; employees see only their own.
	GetByID(ctx context.Context, id string) (WorksheetResponse, error)

	// List retrieves worksheets; employees are scoped to their own.
	List(ctx context.Context, filter WorksheetFilter) (ListWorksheetsResponse, error)

	// PendingVerification lists submitted worksheets of the team lead's
	// team members.
	PendingVerification(ctx context.Context) ([]WorksheetResponse, error)

	// PendingApproval lists tl_verified worksheets; manager or admin only.
	PendingApproval(ctx context.Context) ([]WorksheetResponse, error)
}
