package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/facility-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/facility-attendance-go/internal/handler/http/response"
)

type SessionHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	EmployeeHistory(w http.ResponseWriter, r *http.Request)
}

type sessionHandlerImpl struct {
	sessionService attendance.SessionService
}

func NewSessionHandler(sessionService attendance.SessionService) SessionHandler {
	return &sessionHandlerImpl{
		sessionService: sessionService,
	}
}

// employeeOrSelf falls back to the caller's own employee id when none is given.
func employeeOrSelf(caller user.Identity, employeeID string) string {
	if id := strings.TrimSpace(employeeID); id != "" {
		return id
	}
	if caller.EmployeeID != nil {
		return *caller.EmployeeID
	}
	return ""
}

// decodeSession reads the JSON body and resolves the caller; it writes the
// error response itself and reports whether the handler may continue.
func decodeSession(w http.ResponseWriter, r *http.Request, req interface{}) (user.Identity, bool) {
	caller, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return user.Identity{}, false
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		slog.Error("Failed to decode session request", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return user.Identity{}, false
	}
	return caller, true
}

// CheckIn implements SessionHandler.
func (h *sessionHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	caller, ok := decodeSession(w, r, &req)
	if !ok {
		return
	}
	req.EmployeeID = employeeOrSelf(caller, req.EmployeeID)
	if req.StoreCode == "" {
		req.StoreCode = attendance.StoreCodeInput(requestStoreCode(r))
	}

	result, err := h.sessionService.CheckIn(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// StartBreak implements SessionHandler.
func (h *sessionHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	var req attendance.StartBreakRequest
	caller, ok := decodeSession(w, r, &req)
	if !ok {
		return
	}
	req.EmployeeID = employeeOrSelf(caller, req.EmployeeID)

	result, err := h.sessionService.StartBreak(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

// EndBreak implements SessionHandler.
func (h *sessionHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	var req attendance.EndBreakRequest
	caller, ok := decodeSession(w, r, &req)
	if !ok {
		return
	}
	req.EmployeeID = employeeOrSelf(caller, req.EmployeeID)

	result, err := h.sessionService.EndBreak(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// CheckOut implements SessionHandler.
func (h *sessionHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	caller, ok := decodeSession(w, r, &req)
	if !ok {
		return
	}
	req.EmployeeID = employeeOrSelf(caller, req.EmployeeID)

	result, err := h.sessionService.CheckOut(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// Status implements SessionHandler.
func (h *sessionHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := employeeOrSelf(caller, r.URL.Query().Get("employee_id"))
	result, err := h.sessionService.GetTodayStatus(r.Context(), caller, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeHistory implements SessionHandler.
func (h *sessionHandlerImpl) EmployeeHistory(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.HistoryFilter{
		EmployeeID: employeeOrSelf(caller, r.URL.Query().Get("employee_id")),
		StartDate:  optionalQuery(r, "start_date"),
		EndDate:    optionalQuery(r, "end_date"),
		Page:       intQuery(r, "page", 0),
		Limit:      intQuery(r, "limit", 0),
	}

	result, err := h.sessionService.GetEmployeeHistory(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Pagination.CurrentPage,
		Limit:      result.Pagination.RecordsPerPage,
		TotalItems: result.Pagination.TotalRecords,
		TotalPages: result.Pagination.TotalPages,
	})
}
