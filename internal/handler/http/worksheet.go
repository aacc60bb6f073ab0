package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/worksheet"
	"github.com/worklane-hq/worklane-backend-go/internal/handler/http/response"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/identity"
)

type WorksheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	BulkApprove(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	PendingVerification(w http.ResponseWriter, r *http.Request)
	PendingApproval(w http.ResponseWriter, r *http.Request)
}

type worksheetHandlerImpl struct {
	worksheetService worksheet.WorksheetService
}

func NewWorksheetHandler(worksheetService worksheet.WorksheetService) WorksheetHandler {
	return &worksheetHandlerImpl{
		worksheetService: worksheetService,
	}
}

// Create implements WorksheetHandler.
func (h *worksheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worksheet.CreateWorksheetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.worksheetService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worksheet created", result)
}

// Update implements WorksheetHandler.
func (h *worksheetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worksheet.UpdateWorksheetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "worksheetID")

	result, err := h.worksheetService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worksheet updated", result)
}

// Submit implements WorksheetHandler.
func (h *worksheetHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.worksheetService.Submit(r.Context(), chi.URLParam(r, "worksheetID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worksheet submitted", result)
}

// Verify implements WorksheetHandler.
func (h *worksheetHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	result, err := h.worksheetService.Verify(r.Context(), chi.URLParam(r, "worksheetID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worksheet verified", result)
}

// Approve implements WorksheetHandler.
func (h *worksheetHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.worksheetService.Approve(r.Context(), chi.URLParam(r, "worksheetID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worksheet approved", result)
}

// Reject implements WorksheetHandler.
func (h *worksheetHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req worksheet.RejectWorksheetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "worksheetID")

	result, err := h.worksheetService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worksheet rejected", result)
}

// BulkApprove implements WorksheetHandler.
func (h *worksheetHandlerImpl) BulkApprove(w http.ResponseWriter, r *http.Request) {
	var req worksheet.BulkApproveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.worksheetService.BulkApprove(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worksheets approved", result)
}

// Get implements WorksheetHandler.
func (h *worksheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.worksheetService.GetByID(r.Context(), chi.URLParam(r, "worksheetID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseWorksheetFilter(r *http.Request) worksheet.WorksheetFilter {
	filter := worksheet.WorksheetFilter{}

	query := r.URL.Query()
	if v := query.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := query.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := query.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := query.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			filter.Page = page
		}
	}
	if v := query.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			filter.Limit = limit
		}
	}

	return filter
}

// List implements WorksheetHandler.
func (h *worksheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.worksheetService.List(r.Context(), parseWorksheetFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Worksheets, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// GetMy implements WorksheetHandler. Same as List but always scoped to the
// caller, whatever their role.
func (h *worksheetHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	actor, err := identity.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	filter := parseWorksheetFilter(r)
	filter.EmployeeID = &actor.EmployeeID

	result, err := h.worksheetService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Worksheets, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// PendingVerification implements WorksheetHandler.
func (h *worksheetHandlerImpl) PendingVerification(w http.ResponseWriter, r *http.Request) {
	result, err := h.worksheetService.PendingVerification(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PendingApproval implements WorksheetHandler.
func (h *worksheetHandlerImpl) PendingApproval(w http.ResponseWriter, r *http.Request) {
	result, err := h.worksheetService.PendingApproval(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
