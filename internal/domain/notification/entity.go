package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeWorksheetSubmitted NotificationType = "worksheet_submitted"
	TypeWorksheetVerified  NotificationType = "worksheet_verified"
	TypeWorksheetApproved  NotificationType = "worksheet_approved"
	TypeWorksheetRejected  NotificationType = "worksheet_rejected"
	TypeOvertimeAlert      NotificationType = "overtime_alert"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeWorksheetSubmitted,
		TypeWorksheetVerified,
		TypeWorksheetApproved,
		TypeWorksheetRejected,
		TypeOvertimeAlert,
	}
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
