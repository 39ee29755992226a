package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/memory"
	authService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/auth"
	clockService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/clock"
	employeeService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/employee"
	reportService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/report"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	handlerTestSecret   = "test-secret-key-for-jwt"
	handlerTestPassword = "s3cret"
)

type testServer struct {
	router     *chi.Mux
	jwtService jwt.Service
	employees  employee.EmployeeRepository
	events     clock.EventRepository
	feed       *reportService.LiveFeed
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(handlerTestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	events := memory.NewEventRepository(store)
	jwtService := jwt.NewJWTService(handlerTestSecret, time.Hour)
	feed := reportService.NewLiveFeed(memory.NewSnapshotSource(store), sse.NewHub(), employees, events, time.UTC)

	empSvc := employeeService.NewEmployeeService(employees)
	router := NewRouter(
		RouterOptions{},
		jwtService,
		NewAuthHandler(authService.NewAuthService(jwtService, string(hash))),
		NewEmployeeHandler(empSvc),
		NewTerminalHandler(empSvc, clockService.NewClockService(employees, events, time.UTC)),
		NewReportHandler(reportService.NewReportService(employees, events, time.UTC), jwtService, feed),
	)

	return &testServer{
		router:     router,
		jwtService: jwtService,
		employees:  employees,
		events:     events,
		feed:       feed,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := s.jwtService.GenerateAccessToken("admin", true)
	require.NoError(t, err)
	return token
}

func (s *testServer) addEmployee(t *testing.T, name, pin string) employee.Employee {
	t.Helper()
	emp, err := s.employees.Create(context.Background(), employee.Employee{Name: name, PIN: pin})
	require.NoError(t, err)
	return emp
}

// decode unmarshals the envelope and, when data is non-nil, its data field.
func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) response.Response {
	t.Helper()
	var envelope struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return envelope.Response
}

func TestTerminal_ListEmployeesHidesPIN(t *testing.T) {
	s := newTestServer(t)
	s.addEmployee(t, "Ana", "1234")

	rec := s.do(t, http.MethodGet, "/api/v1/terminal/employees", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "1234")

	var list []employee.TerminalEmployeeResponse
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.True(t, list[0].HasPIN)
}

func TestTerminal_Clock(t *testing.T) {
	s := newTestServer(t)
	ana := s.addEmployee(t, "Ana", "1234")

	t.Run("correct pin", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/terminal/clock", "", clock.ClockRequest{EmployeeID: ana.ID, PIN: "1234", Type: "IN"})
		require.Equal(t, http.StatusCreated, rec.Code)

		var event clock.ClockEventResponse
		resp := decode(t, rec, &event)
		assert.True(t, resp.Success)
		assert.Equal(t, "IN", event.Type)
		assert.Equal(t, "Ana", event.EmployeeName)
	})

	t.Run("wrong pin", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/terminal/clock", "", clock.ClockRequest{EmployeeID: ana.ID, PIN: "9999", Type: "OUT"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_PIN", decode(t, rec, nil).Error.Code)
	})

	t.Run("unknown employee", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/terminal/clock", "", clock.ClockRequest{EmployeeID: "nobody", PIN: "1234", Type: "OUT"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid type", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/terminal/clock", "", clock.ClockRequest{EmployeeID: ana.ID, PIN: "1234", Type: "LUNCH"})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decode(t, rec, nil).Error.Details, "type")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/terminal/clock", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	logged, err := s.events.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, logged, 1)
}

func TestAuth_LoginAndLogout(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"password": handlerTestPassword})
	require.Equal(t, http.StatusCreated, rec.Code)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &tokens)
	require.NotEmpty(t, tokens.AccessToken)

	rec = s.do(t, http.MethodGet, "/api/v1/employees", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/logout", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/employees", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_RequireAdminToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/reports/hours", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	nonAdmin, _, err := s.jwtService.GenerateAccessToken("someone", false)
	require.NoError(t, err)
	rec = s.do(t, http.MethodGet, "/api/v1/reports/hours", nonAdmin, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	sseToken, _, err := s.jwtService.GenerateSSEToken("admin")
	require.NoError(t, err)
	rec = s.do(t, http.MethodGet, "/api/v1/reports/hours", sseToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEmployees_AdminRoster(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	rec := s.do(t, http.MethodPost, "/api/v1/employees", token, employee.CreateEmployeeRequest{Name: "Ana", PIN: "1234"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created employee.EmployeeResponse
	decode(t, rec, &created)

	rec = s.do(t, http.MethodPost, "/api/v1/employees", token, employee.CreateEmployeeRequest{Name: "Bad", PIN: "12ab"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/employees", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []employee.EmployeeResponse
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "1234", list[0].PIN)

	rec = s.do(t, http.MethodDelete, "/api/v1/employees/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/employees/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReports_HoursAndExport(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)
	ana := s.addEmployee(t, "Ana", "1234")

	ctx := context.Background()
	for _, typ := range []clock.EventType{clock.EventTypeIn, clock.EventTypeOut} {
		_, err := s.events.Append(ctx, clock.ClockEvent{EmployeeID: ana.ID, EmployeeName: ana.Name, Type: typ})
		require.NoError(t, err)
	}

	rec := s.do(t, http.MethodGet, "/api/v1/reports/hours", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rep struct {
		Timezone  string `json:"timezone"`
		Employees []struct {
			Name   string            `json:"name"`
			Total  string            `json:"total"`
			Shifts []json.RawMessage `json:"shifts"`
			Events []json.RawMessage `json:"events"`
		} `json:"employees"`
	}
	decode(t, rec, &rep)
	assert.Equal(t, "UTC", rep.Timezone)
	require.Len(t, rep.Employees, 1)
	assert.Equal(t, "Ana", rep.Employees[0].Name)
	assert.Len(t, rep.Employees[0].Shifts, 1)
	assert.Len(t, rep.Employees[0].Events, 2)

	rec = s.do(t, http.MethodGet, "/api/v1/reports/hours/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "hours-report-")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Summary", "Shifts"}, f.GetSheetList())
}

func TestReports_Stream(t *testing.T) {
	s := newTestServer(t)
	s.addEmployee(t, "Ana", "1234")
	require.NoError(t, s.feed.Refresh(context.Background()))

	server := httptest.NewServer(s.router)
	defer server.Close()

	t.Run("rejects missing and invalid tokens", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/v1/reports/hours/stream")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, err = http.Get(server.URL + "/api/v1/reports/hours/stream?token=" + s.adminToken(t))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("streams the latest report", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/reports/sse-token", s.adminToken(t), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var tok struct {
			Token string `json:"token"`
		}
		decode(t, rec, &tok)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/reports/hours/stream?token="+tok.Token, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

		var eventName, data string
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if name, ok := strings.CutPrefix(line, "event: "); ok {
				eventName = name
			}
			if payload, ok := strings.CutPrefix(line, "data: "); ok && eventName == reportService.LiveEvent {
				data = payload
				break
			}
		}
		require.NotEmpty(t, data, "no report event received")
		assert.Contains(t, data, `"name":"Ana"`)
	})
}
