package worksheet

import (
	"strings"
	"time"

	"github.com/worklane-hq/worklane-backend-go/internal/pkg/validator"
)

// Status walks a linear review chain with one recovery branch:
// draft -> submitted -> tl_verified -> manager_approved, with rejection
// possible from submitted/tl_verified and resubmission from rejected.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusSubmitted       Status = "submitted"
	StatusTLVerified      Status = "tl_verified"
	StatusManagerApproved Status = "manager_approved"
	StatusRejected        Status = "rejected"
)

func ValidStatuses() []string {
	return []string{
		string(StatusDraft),
		string(StatusSubmitted),
		string(StatusTLVerified),
		string(StatusManagerApproved),
		string(StatusRejected),
	}
}

// FormResponse is one answered field of the day's report form. Values are
// free-form; the form definition lives with the external form collaborator.
type FormResponse struct {
	FieldID    string `json:"field_id"`
	FieldLabel string `json:"field_label"`
	Value      string `json:"value"`
}

// Worksheet is a worker's structured report of one day's activity, subject
// to team lead verification and manager approval. Once manager_approved it
// is append-only history.
type Worksheet struct {
	ID                string
	EmployeeID        string
	Date              string // YYYY-MM-DD, organizational timezone
	FormID            string
	FormResponses     []FormResponse
	TotalHours        float64 // advisory, heuristic; never authoritative
	Notes             *string
	Status            Status
	SubmittedAt       *time.Time
	TLVerifiedBy      *string
	TLVerifiedAt      *time.Time
	ManagerApprovedBy *string
	ManagerApprovedAt *time.Time
	RejectedBy        *string
	RejectedAt        *time.Time
	RejectionReason   *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO / Join
	EmployeeName *string
}

// Editable reports whether the owner may still change content.
func (w *Worksheet) Editable() bool {
	return w.Status == StatusDraft || w.Status == StatusRejected
}

// Rejectable reports whether a reviewer may reject from the current state.
func (w *Worksheet) Rejectable() bool {
	return w.Status == StatusSubmitted || w.Status == StatusTLVerified
}

// ComputeTotalHours takes the numeric value of the first response whose
// field label mentions hours or time. The result is advisory only;
// attendance sessions remain the authoritative source of worked hours.
func ComputeTotalHours(responses []FormResponse) float64 {
	for _, r := range responses {
		label := strings.ToLower(r.FieldLabel)
		if !strings.Contains(label, "hour") && !strings.Contains(label, "time") {
			continue
		}
		if v, ok := validator.ParseFloat(r.Value); ok {
			return v
		}
	}
	return 0
}
