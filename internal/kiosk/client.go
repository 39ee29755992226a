package kiosk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrInvalidPIN is returned when the server rejects the PIN.
	ErrInvalidPIN = errors.New("incorrect PIN")
	// ErrEmployeeNotFound is returned when the selected employee was removed meanwhile.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// APIError is any other non-2xx reply of the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d %s: %s", e.Status, e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type ClockResult struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employee_name"`
	Type         string `json:"type"`
	Timestamp    string `json:"timestamp"`
	Message      string `json:"message"`
}

// Client talks to the terminal endpoints of the timeclock API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListEmployees returns the terminal roster. PINs are never part of it.
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	if err := c.do(ctx, http.MethodGet, "/api/v1/terminal/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// Clock submits one clock action for the employee.
func (c *Client) Clock(ctx context.Context, employeeID, pin, eventType string) (ClockResult, error) {
	var result ClockResult
	body := map[string]string{
		"employee_id": employeeID,
		"pin":         pin,
		"type":        eventType,
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/terminal/clock", body, &result); err != nil {
		return ClockResult{}, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code, apiErr.Message = env.Error.Code, env.Error.Message
		}
		switch {
		case apiErr.Code == "INVALID_PIN":
			return ErrInvalidPIN
		case resp.StatusCode == http.StatusNotFound:
			return ErrEmployeeNotFound
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
