package report

type ShiftResponse struct {
	Date          string  `json:"date"`
	ClockIn       string  `json:"clock_in"`
	ClockOut      string  `json:"clock_out"`
	DurationHours float64 `json:"duration_hours"`
	Hours         string  `json:"hours"`
}

type EventResponse struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employee_name"`
	Type         string `json:"type"`
	Timestamp    string `json:"timestamp"`
}

type EmployeeReportResponse struct {
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	TotalHours float64         `json:"total_hours"`
	Total      string          `json:"total"`
	Shifts     []ShiftResponse `json:"shifts"`
	// Events are listed newest first for the audit view
	Events []EventResponse `json:"events"`
}

type HoursReportResponse struct {
	GeneratedAt string                   `json:"generated_at"`
	Timezone    string                   `json:"timezone"`
	Employees   []EmployeeReportResponse `json:"employees"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
