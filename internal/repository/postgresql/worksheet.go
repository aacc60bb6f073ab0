package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/worksheet"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/database"
)

type worksheetRepository struct {
	db *database.DB
}

// NewWorksheetRepository creates a new worksheet repository
func NewWorksheetRepository(db *database.DB) worksheet.WorksheetRepository {
	return &worksheetRepository{db: db}
}

const worksheetColumns = `
	w.id, w.employee_id, w.date, w.form_id, w.form_responses, w.total_hours,
	w.notes, w.status, w.submitted_at,
	w.tl_verified_by, w.tl_verified_at,
	w.manager_approved_by, w.manager_approved_at,
	w.rejected_by, w.rejected_at, w.rejection_reason,
	w.created_at, w.updated_at
`

func scanWorksheet(row pgx.Row) (worksheet.Worksheet, error) {
	var w worksheet.Worksheet
	var responsesJSON []byte

	err := row.Scan(
		&w.ID, &w.EmployeeID, &w.Date, &w.FormID, &responsesJSON, &w.TotalHours,
		&w.Notes, &w.Status, &w.SubmittedAt,
		&w.TLVerifiedBy, &w.TLVerifiedAt,
		&w.ManagerApprovedBy, &w.ManagerApprovedAt,
		&w.RejectedBy, &w.RejectedAt, &w.RejectionReason,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return worksheet.Worksheet{}, err
	}

	if len(responsesJSON) > 0 {
		if err := json.Unmarshal(responsesJSON, &w.FormResponses); err != nil {
			return worksheet.Worksheet{}, fmt.Errorf("failed to unmarshal form responses: %w", err)
		}
	}

	return w, nil
}

// Create implements worksheet.WorksheetRepository.
func (r *worksheetRepository) Create(ctx context.Context, w worksheet.Worksheet) (worksheet.Worksheet, error) {
	q := GetQuerier(ctx, r.db)

	if w.ID == "" {
		w.ID = uuid.New().String()
	}

	responsesJSON, err := json.Marshal(w.FormResponses)
	if err != nil {
		return worksheet.Worksheet{}, fmt.Errorf("failed to marshal form responses: %w", err)
	}

	query := `
		INSERT INTO worksheets (
			id, employee_id, date, form_id, form_responses, total_hours, notes, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		w.ID,
		w.EmployeeID,
		w.Date,
		w.FormID,
		responsesJSON,
		w.TotalHours,
		w.Notes,
		string(w.Status),
	).Scan(&w.CreatedAt, &w.UpdatedAt)

	if err != nil {
		return worksheet.Worksheet{}, fmt.Errorf("failed to create worksheet: %w", err)
	}

	return w, nil
}

// GetByID implements worksheet.WorksheetRepository.
func (r *worksheetRepository) GetByID(ctx context.Context, id string) (worksheet.Worksheet, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM worksheets w
		WHERE w.id = $1
		LIMIT 1
	`, worksheetColumns)

	w, err := scanWorksheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return worksheet.Worksheet{}, worksheet.ErrWorksheetNotFound
		}
		return worksheet.Worksheet{}, fmt.Errorf("failed to get worksheet: %w", err)
	}

	return w, nil
}

// GetByEmployeeAndDate implements worksheet.WorksheetRepository.
func (r *worksheetRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*worksheet.Worksheet, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM worksheets w
		WHERE w.employee_id = $1
		  AND w.date = $2
		LIMIT 1
	`, worksheetColumns)

	w, err := scanWorksheet(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No worksheet for this day
		}
		return nil, fmt.Errorf("failed to get worksheet by employee and date: %w", err)
	}

	return &w, nil
}

// Update implements worksheet.WorksheetRepository.
func (r *worksheetRepository) Update(ctx context.Context, w worksheet.Worksheet) error {
	q := GetQuerier(ctx, r.db)

	responsesJSON, err := json.Marshal(w.FormResponses)
	if err != nil {
		return fmt.Errorf("failed to marshal form responses: %w", err)
	}

	query := `
		UPDATE worksheets
		SET form_responses = $2,
			total_hours = $3,
			notes = $4,
			status = $5,
			submitted_at = $6,
			tl_verified_by = $7,
			tl_verified_at = $8,
			manager_approved_by = $9,
			manager_approved_at = $10,
			rejected_by = $11,
			rejected_at = $12,
			rejection_reason = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		w.ID,
		responsesJSON,
		w.TotalHours,
		w.Notes,
		string(w.Status),
		w.SubmittedAt,
		w.TLVerifiedBy,
		w.TLVerifiedAt,
		w.ManagerApprovedBy,
		w.ManagerApprovedAt,
		w.RejectedBy,
		w.RejectedAt,
		w.RejectionReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update worksheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksheet.ErrWorksheetNotFound
	}

	return nil
}

// List implements worksheet.WorksheetRepository.
func (r *worksheetRepository) List(ctx context.Context, filter worksheet.WorksheetFilter) ([]worksheet.Worksheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND w.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND w.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND w.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND w.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM worksheets w %s`, baseWhere)

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count worksheets: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit

	listQuery := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM worksheets w
		LEFT JOIN employees e ON e.id = w.employee_id
		%s
		ORDER BY w.date DESC, w.created_at DESC
		LIMIT $%d OFFSET $%d
	`, worksheetColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list worksheets: %w", err)
	}
	defer rows.Close()

	worksheets, err := collectWorksheetsWithNames(rows)
	if err != nil {
		return nil, 0, err
	}

	return worksheets, totalCount, nil
}

// ListByStatus implements worksheet.WorksheetRepository.
func (r *worksheetRepository) ListByStatus(ctx context.Context, status worksheet.Status) ([]worksheet.Worksheet, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM worksheets w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE w.status = $1
		ORDER BY w.date DESC, w.created_at DESC
	`, worksheetColumns)

	rows, err := q.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list worksheets by status: %w", err)
	}
	defer rows.Close()

	return collectWorksheetsWithNames(rows)
}

// ListByStatusForEmployees implements worksheet.WorksheetRepository.
func (r *worksheetRepository) ListByStatusForEmployees(ctx context.Context, status worksheet.Status, employeeIDs []string) ([]worksheet.Worksheet, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM worksheets w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE w.status = $1
		  AND w.employee_id = ANY($2)
		ORDER BY w.date DESC, w.created_at DESC
	`, worksheetColumns)

	rows, err := q.Query(ctx, query, string(status), employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list worksheets by status: %w", err)
	}
	defer rows.Close()

	return collectWorksheetsWithNames(rows)
}

func collectWorksheetsWithNames(rows pgx.Rows) ([]worksheet.Worksheet, error) {
	var worksheets []worksheet.Worksheet
	for rows.Next() {
		var w worksheet.Worksheet
		var responsesJSON []byte

		err := rows.Scan(
			&w.ID, &w.EmployeeID, &w.Date, &w.FormID, &responsesJSON, &w.TotalHours,
			&w.Notes, &w.Status, &w.SubmittedAt,
			&w.TLVerifiedBy, &w.TLVerifiedAt,
			&w.ManagerApprovedBy, &w.ManagerApprovedAt,
			&w.RejectedBy, &w.RejectedAt, &w.RejectionReason,
			&w.CreatedAt, &w.UpdatedAt,
			&w.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worksheet: %w", err)
		}

		if len(responsesJSON) > 0 {
			if err := json.Unmarshal(responsesJSON, &w.FormResponses); err != nil {
				return nil, fmt.Errorf("failed to unmarshal form responses: %w", err)
			}
		}

		worksheets = append(worksheets, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate worksheets: %w", err)
	}

	return worksheets, nil
}
