package worksheet

import (
	"time"

	"github.com/worklane-hq/worklane-backend-go/internal/pkg/validator"
)

// ========================================
// WORKSHEET DTOs
// ========================================

type CreateWorksheetRequest struct {
	Date          string         `json:"date"` // YYYY-MM-DD
	FormID        string         `json:"form_id"`
	FormResponses []FormResponse `json:"form_responses"`
	Notes         *string        `json:"notes,omitempty"`
}

func (r *CreateWorksheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.FormID) {
		errs = append(errs, validator.ValidationError{
			Field:   "form_id",
			Message: "form_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateWorksheetRequest edits content; only draft or rejected worksheets
// accept it. Editing a rejected worksheet clears the rejection fields.
type UpdateWorksheetRequest struct {
	ID            string         `json:"-"`
	FormResponses []FormResponse `json:"form_responses,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}

type RejectWorksheetRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectWorksheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkApproveRequest struct {
	WorksheetIDs []string `json:"worksheet_ids"`
}

func (r *BulkApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.WorksheetIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "worksheet_ids",
			Message: "worksheet_ids must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BulkApproveResponse reports only worksheets actually transitioned; ids in
// other states are skipped by design, not failed.
type BulkApproveResponse struct {
	ApprovedCount int      `json:"approved_count"`
	ApprovedIDs   []string `json:"approved_ids"`
}

type WorksheetResponse struct {
	ID                string         `json:"id"`
	EmployeeID        string         `json:"employee_id"`
	EmployeeName      *string        `json:"employee_name,omitempty"`
	Date              string         `json:"date"`
	FormID            string         `json:"form_id"`
	FormResponses     []FormResponse `json:"form_responses"`
	TotalHours        float64        `json:"total_hours"`
	Notes             *string        `json:"notes,omitempty"`
	Status            string         `json:"status"`
	SubmittedAt       *string        `json:"submitted_at,omitempty"`
	TLVerifiedBy      *string        `json:"tl_verified_by,omitempty"`
	TLVerifiedAt      *string        `json:"tl_verified_at,omitempty"`
	ManagerApprovedBy *string        `json:"manager_approved_by,omitempty"`
	ManagerApprovedAt *string        `json:"manager_approved_at,omitempty"`
	RejectedBy        *string        `json:"rejected_by,omitempty"`
	RejectedAt        *string        `json:"rejected_at,omitempty"`
	RejectionReason   *string        `json:"rejection_reason,omitempty"`
	CreatedAt         string         `json:"created_at"`
	UpdatedAt         string         `json:"updated_at"`
}

type WorksheetFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *WorksheetFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && *f.Status != "" {
		if !validator.IsInSlice(*f.Status, ValidStatuses()) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: draft, submitted, tl_verified, manager_approved, rejected",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListWorksheetsResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Worksheets []WorksheetResponse `json:"worksheets"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02 15:04:05")
	return &s
}

// MapWorksheetToResponse converts a Worksheet entity to its API shape.
func MapWorksheetToResponse(w Worksheet) WorksheetResponse {
	responses := w.FormResponses
	if responses == nil {
		responses = []FormResponse{}
	}

	return WorksheetResponse{
		ID:                w.ID,
		EmployeeID:        w.EmployeeID,
		EmployeeName:      w.EmployeeName,
		Date:              w.Date,
		FormID:            w.FormID,
		FormResponses:     responses,
		TotalHours:        w.TotalHours,
		Notes:             w.Notes,
		Status:            string(w.Status),
		SubmittedAt:       timePtrToString(w.SubmittedAt),
		TLVerifiedBy:      w.TLVerifiedBy,
		TLVerifiedAt:      timePtrToString(w.TLVerifiedAt),
		ManagerApprovedBy: w.ManagerApprovedBy,
		ManagerApprovedAt: timePtrToString(w.ManagerApprovedAt),
		RejectedBy:        w.RejectedBy,
		RejectedAt:        timePtrToString(w.RejectedAt),
		RejectionReason:   w.RejectionReason,
		CreatedAt:         w.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		UpdatedAt:         w.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}
