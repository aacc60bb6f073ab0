package worksheet

import (
	"context"
)

// WorksheetRepository defines data access for worksheets.
type WorksheetRepository interface {
	// Create inserts a new worksheet in draft.
	Create(ctx context.Context, w Worksheet) (Worksheet, error)

	// GetByID returns one worksheet; ErrWorksheetNotFound when missing.
	GetByID(ctx context.Context, id string) (Worksheet, error)

	// GetByEmployeeAndDate returns the employee's worksheet for a day,
	// nil if none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*Worksheet, error)

	// Update persists all mutable fields of the worksheet.
	Update(ctx context.Context, w Worksheet) error

	// List retrieves worksheets with filters and pagination, newest first.
	List(ctx context.Context, filter WorksheetFilter) ([]Worksheet, int64, error)

	// ListByStatus retrieves all worksheets in one status, newest first.
	ListByStatus(ctx context.Context, status Status) ([]Worksheet, error)

	// ListByStatusForEmployees retrieves worksheets in one status whose
	// owners belong to the given employee set, newest first. Used to build
	// reviewer queues.
	ListByStatusForEmployees(ctx context.Context, status Status, employeeIDs []string) ([]Worksheet, error)
}
