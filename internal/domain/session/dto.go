package session

import (
	"strings"
	"time"

	"github.com/worklane-hq/worklane-backend-go/internal/pkg/validator"
)

// ========================================
// SESSION DTOs
// ========================================

type ClockOutRequest struct {
	// Force skips the worksheet-submission gate; manager/admin only.
	Force bool    `json:"force"`
	Notes *string `json:"notes,omitempty"`
}

type StartBreakRequest struct {
	BreakType BreakType `json:"break_type"`
	Comment   *string   `json:"comment,omitempty"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BreakType == "" {
		r.BreakType = BreakShort
	}
	if !validator.IsInSlice(string(r.BreakType), ValidBreakTypes()) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_type",
			Message: "break_type must be one of: " + strings.Join(ValidBreakTypes(), ", "),
		})
	}

	if r.BreakType.RequiresComment() && (r.Comment == nil || validator.IsEmpty(*r.Comment)) {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment is required for meeting and other breaks",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateScreenActiveRequest carries the client-side estimator's counter.
// The value is the only client-reported number the engine stores; the
// service additionally rejects decreases and implausible jumps.
type UpdateScreenActiveRequest struct {
	ScreenActiveSeconds int64 `json:"screen_active_seconds"`
}

func (r *UpdateScreenActiveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ScreenActiveSeconds < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "screen_active_seconds",
			Message: "screen_active_seconds must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakRecordResponse struct {
	BreakID         string  `json:"break_id"`
	BreakType       string  `json:"break_type"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Comment         *string `json:"comment,omitempty"`
}

type SessionResponse struct {
	ID                  string                `json:"id"`
	EmployeeID          string                `json:"employee_id"`
	EmployeeName        *string               `json:"employee_name,omitempty"`
	Date                string                `json:"date"`
	LoginTime           string                `json:"login_time"`
	LogoutTime          *string               `json:"logout_time,omitempty"`
	Breaks              []BreakRecordResponse `json:"breaks"`
	TotalWorkHours      float64               `json:"total_work_hours"`
	TotalBreakMinutes   int                   `json:"total_break_minutes"`
	OvertimeHours       float64               `json:"overtime_hours"`
	ScreenActiveSeconds int64                 `json:"screen_active_seconds"`
	WorksheetSubmitted  bool                  `json:"worksheet_submitted"`
	CurrentBreakID      *string               `json:"current_break_id,omitempty"`
	Notes               *string               `json:"notes,omitempty"`
	Status              string                `json:"status"`
	CreatedAt           string                `json:"created_at"`
	UpdatedAt           string                `json:"updated_at"`
}

// CurrentSessionResponse is the "no session" safe result of
// GetCurrentSession: absence is data, not an error.
type CurrentSessionResponse struct {
	HasSession bool             `json:"has_session"`
	Session    *SessionResponse `json:"session,omitempty"`
}

type HistoryFilter struct {
	// EmployeeID is honored only for reviewer roles; employees always get
	// their own history regardless of this filter.
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *HistoryFilter) Validate() error {
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
		validStatuses := []string{
			string(StatusActive),
			string(StatusOnBreak),
			string(StatusCompleted),
			string(StatusIncomplete),
		}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: active, on_break, completed, incomplete",
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

type HistoryResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Sessions   []SessionResponse `json:"sessions"`
}

// ========================================
// BREAK SETTINGS DTOs
// ========================================

type CreateBreakSettingsRequest struct {
	TeamID                  string `json:"team_id"`
	EnforceLimits           bool   `json:"enforce_limits"`
	MaxBreaksPerDay         *int   `json:"max_breaks_per_day,omitempty"`
	MaxBreakDurationMinutes *int   `json:"max_break_duration_minutes,omitempty"`
	LunchBreakDuration      int    `json:"lunch_break_duration"`
	ShortBreakDuration      int    `json:"short_break_duration"`
}

func (r *CreateBreakSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TeamID) {
		errs = append(errs, validator.ValidationError{
			Field:   "team_id",
			Message: "team_id is required",
		})
	}
	if r.MaxBreaksPerDay != nil && *r.MaxBreaksPerDay < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_breaks_per_day",
			Message: "max_breaks_per_day must be at least 1",
		})
	}
	if r.MaxBreakDurationMinutes != nil && *r.MaxBreakDurationMinutes < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_break_duration_minutes",
			Message: "max_break_duration_minutes must be at least 1",
		})
	}
	if r.LunchBreakDuration == 0 {
		r.LunchBreakDuration = 60 // Default lunch break
	}
	if r.ShortBreakDuration == 0 {
		r.ShortBreakDuration = 15 // Default short break
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateBreakSettingsRequest struct {
	TeamID                  string `json:"-"`
	EnforceLimits           *bool  `json:"enforce_limits,omitempty"`
	MaxBreaksPerDay         *int   `json:"max_breaks_per_day,omitempty"`
	MaxBreakDurationMinutes *int   `json:"max_break_duration_minutes,omitempty"`
	LunchBreakDuration      *int   `json:"lunch_break_duration,omitempty"`
	ShortBreakDuration      *int   `json:"short_break_duration,omitempty"`
}

type BreakSettingsResponse struct {
	ID                      string `json:"id"`
	TeamID                  string `json:"team_id"`
	EnforceLimits           bool   `json:"enforce_limits"`
	MaxBreaksPerDay         *int   `json:"max_breaks_per_day,omitempty"`
	MaxBreakDurationMinutes *int   `json:"max_break_duration_minutes,omitempty"`
	LunchBreakDuration      int    `json:"lunch_break_duration"`
	ShortBreakDuration      int    `json:"short_break_duration"`
	CreatedAt               string `json:"created_at"`
	UpdatedAt               string `json:"updated_at"`
}

// timeToString formats an instant the way all responses do.
func timeToString(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := timeToString(*t)
	return &s
}

// MapSessionToResponse converts a Session entity to its API shape.
func MapSessionToResponse(s Session) SessionResponse {
	breaks := make([]BreakRecordResponse, 0, len(s.Breaks))
	for _, b := range s.Breaks {
		breaks = append(breaks, BreakRecordResponse{
			BreakID:         b.BreakID,
			BreakType:       string(b.BreakType),
			StartTime:       timeToString(b.StartTime),
			EndTime:         timePtrToString(b.EndTime),
			DurationMinutes: b.DurationMinutes,
			Comment:         b.Comment,
		})
	}

	return SessionResponse{
		ID:                  s.ID,
		EmployeeID:          s.EmployeeID,
		EmployeeName:        s.EmployeeName,
		Date:                s.Date,
		LoginTime:           timeToString(s.LoginTime),
		LogoutTime:          timePtrToString(s.LogoutTime),
		Breaks:              breaks,
		TotalWorkHours:      s.TotalWorkHours,
		TotalBreakMinutes:   s.TotalBreakMinutes,
		OvertimeHours:       s.OvertimeHours,
		ScreenActiveSeconds: s.ScreenActiveSeconds,
		WorksheetSubmitted:  s.WorksheetSubmitted,
		CurrentBreakID:      s.CurrentBreakID,
		Notes:               s.Notes,
		Status:              string(s.Status),
		CreatedAt:           timeToString(s.CreatedAt),
		UpdatedAt:           timeToString(s.UpdatedAt),
	}
}

// MapBreakSettingsToResponse converts BreakSettings to its API shape.
func MapBreakSettingsToResponse(bs BreakSettings) BreakSettingsResponse {
	return BreakSettingsResponse{
		ID:                      bs.ID,
		TeamID:                  bs.TeamID,
		EnforceLimits:           bs.EnforceLimits,
		MaxBreaksPerDay:         bs.MaxBreaksPerDay,
		MaxBreakDurationMinutes: bs.MaxBreakDurationMinutes,
		LunchBreakDuration:      bs.LunchBreakDuration,
		ShortBreakDuration:      bs.ShortBreakDuration,
		CreatedAt:               timeToString(bs.CreatedAt),
		UpdatedAt:               timeToString(bs.UpdatedAt),
	}
}
