package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
	"github.com/go-chi/jwtauth/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportSubscriber hands out subscriptions to the live hours report.
type ReportSubscriber interface {
	Subscribe() (chan sse.Event, func())
}

type ReportHandler interface {
	GetHoursReport(w http.ResponseWriter, r *http.Request)
	ExportHoursReport(w http.ResponseWriter, r *http.Request)
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	jwtService    jwt.Service
	subscriber    ReportSubscriber
	keepalive     time.Duration
}

func NewReportHandler(reportService report.ReportService, jwtService jwt.Service, subscriber ReportSubscriber) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		jwtService:    jwtService,
		subscriber:    subscriber,
		keepalive:     30 * time.Second,
	}
}

// GetHoursReport implements ReportHandler
func (h *reportHandlerImpl) GetHoursReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetHoursReport(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportHoursReport implements ReportHandler. The workbook is buffered so a
// failure can still be reported as JSON.
func (h *reportHandlerImpl) ExportHoursReport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.reportService.ExportHoursReport(r.Context(), &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("hours-report-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("ExportHoursReport write error", "error", err)
	}
}

// GetSSEToken implements ReportHandler
func (h *reportHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	sseToken, expiresIn, err := h.jwtService.GenerateSSEToken(token.Subject())
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, report.SSETokenResponse{
		Token:     sseToken,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes the full rendered report on every change of the roster or clock log
func (h *reportHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	if _, err := h.jwtService.ValidateSSEToken(tokenStr); err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.subscriber.Subscribe()
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Stream encode error", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
