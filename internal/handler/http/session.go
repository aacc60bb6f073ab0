package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/session"
	"github.com/worklane-hq/worklane-backend-go/internal/handler/http/response"
)

type SessionHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	GetCurrent(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	UpdateScreenActive(w http.ResponseWriter, r *http.Request)
	GetBreakSettings(w http.ResponseWriter, r *http.Request)
	CreateBreakSettings(w http.ResponseWriter, r *http.Request)
	UpdateBreakSettings(w http.ResponseWriter, r *http.Request)
}

type sessionHandlerImpl struct {
	sessionService session.SessionService
}

func NewSessionHandler(sessionService session.SessionService) SessionHandler {
	return &sessionHandlerImpl{
		sessionService: sessionService,
	}
}

// ClockIn implements SessionHandler.
func (h *sessionHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.ClockIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", result)
}

// ClockOut implements SessionHandler.
func (h *sessionHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req session.ClockOutRequest

	// Body is optional: a plain clock-out carries no fields.
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.sessionService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", result)
}

// StartBreak implements SessionHandler.
func (h *sessionHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	var req session.StartBreakRequest

	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.sessionService.StartBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

// EndBreak implements SessionHandler.
func (h *sessionHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.EndBreak(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// GetCurrent implements SessionHandler.
func (h *sessionHandlerImpl) GetCurrent(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.GetCurrentSession(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetHistory implements SessionHandler.
func (h *sessionHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	filter := session.HistoryFilter{}

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

	result, err := h.sessionService.GetHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Sessions, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// UpdateScreenActive implements SessionHandler.
func (h *sessionHandlerImpl) UpdateScreenActive(w http.ResponseWriter, r *http.Request) {
	var req session.UpdateScreenActiveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.sessionService.UpdateScreenActiveSeconds(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Screen active time updated", nil)
}

// GetBreakSettings implements SessionHandler.
func (h *sessionHandlerImpl) GetBreakSettings(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	result, err := h.sessionService.GetBreakSettings(r.Context(), teamID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateBreakSettings implements SessionHandler.
func (h *sessionHandlerImpl) CreateBreakSettings(w http.ResponseWriter, r *http.Request) {
	var req session.CreateBreakSettingsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.sessionService.CreateBreakSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Break settings created", result)
}

// UpdateBreakSettings implements SessionHandler.
func (h *sessionHandlerImpl) UpdateBreakSettings(w http.ResponseWriter, r *http.Request) {
	var req session.UpdateBreakSettingsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TeamID = chi.URLParam(r, "teamID")

	result, err := h.sessionService.UpdateBreakSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break settings updated", result)
}
