package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

// TerminalHandler serves the shared clock-in terminal. Its routes are public;
// the employee PIN gates each clock action.
type TerminalHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	Clock(w http.ResponseWriter, r *http.Request)
}

type terminalHandlerImpl struct {
	employeeService employee.EmployeeService
	clockService    clock.ClockService
}

func NewTerminalHandler(employeeService employee.EmployeeService, clockService clock.ClockService) TerminalHandler {
	return &terminalHandlerImpl{
		employeeService: employeeService,
		clockService:    clockService,
	}
}

// ListEmployees implements TerminalHandler
func (h *terminalHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	results, err := h.employeeService.ListTerminalEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Clock implements TerminalHandler
func (h *terminalHandlerImpl) Clock(w http.ResponseWriter, r *http.Request) {
	var req clock.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Clock decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.clockService.Clock(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, result)
}
