/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal record model from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  All dates cross the boundary as "YYYY-MM-DD" strings, parsed into
  engine.Date in the handlers. Fractional day figures are returned as
  numbers already rounded by the engine.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	JobTitle              string   `json:"job_title,omitempty"`
	NationalID            string   `json:"national_id,omitempty"`
	Status                string   `json:"status"`
	HireDate              string   `json:"hire_date"`
	EndDate               string   `json:"end_date,omitempty"`
	CustomAnnualLeaveDays *int     `json:"custom_annual_leave_days,omitempty"`
	InitialAnnualBalance  *float64 `json:"initial_annual_balance,omitempty"`
	BalanceSetDate        string   `json:"balance_set_date,omitempty"`
}

// EmployeeRequest is the body for creating or updating an employee.
type EmployeeRequest struct {
	Name                  string   `json:"name"`
	JobTitle              string   `json:"job_title"`
	NationalID            string   `json:"national_id"`
	Status                string   `json:"status"`
	HireDate              string   `json:"hire_date"`
	EndDate               string   `json:"end_date"`
	CustomAnnualLeaveDays *int     `json:"custom_annual_leave_days"`
	InitialAnnualBalance  *float64 `json:"initial_annual_balance"`
	BalanceSetDate        string   `json:"balance_set_date"`
}

// =============================================================================
// LEAVES AND DEPARTURES
// =============================================================================

type LeaveDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Category   string `json:"category"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
	DaysTaken  int    `json:"days_taken"`
}

// LeaveRequest creates or replaces a leave. DaysTaken is derived
// server-side from the span calculator, never accepted from the client.
type LeaveRequest struct {
	EmployeeID string `json:"employee_id"`
	Category   string `json:"category"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
}

type DepartureDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Hours      int    `json:"hours"`
	Status     string `json:"status"`
}

type DepartureRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Hours      int    `json:"hours"`
	Status     string `json:"status"`
}

// =============================================================================
// CALENDAR
// =============================================================================

type HolidayDTO struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

type HolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type HolidayWorkDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Type       string `json:"type"`
}

// HolidayWorkRequest records a worked rest day. The type tag is assigned
// server-side by classifying the date against the current calendar.
type HolidayWorkRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

type PolicyDTO struct {
	WeekendDays []int `json:"weekend_days"`
}

// =============================================================================
// ADJUSTMENTS
// =============================================================================

type AdjustmentDTO struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	Category       string  `json:"category"`
	AdjustmentDays float64 `json:"adjustment_days"`
	Reason         string  `json:"reason"`
	Date           string  `json:"date"`
}

type AdjustmentRequest struct {
	EmployeeID     string  `json:"employee_id"`
	Category       string  `json:"category"`
	AdjustmentDays float64 `json:"adjustment_days"`
	Reason         string  `json:"reason"`
	Date           string  `json:"date"`
}

// =============================================================================
// BALANCES AND REPORTS
// =============================================================================

// BalanceReportDTO is the full component breakdown for one employee.
type BalanceReportDTO struct {
	EmployeeID             string  `json:"employee_id"`
	AsOf                   string  `json:"as_of"`
	AccruedAnnual          float64 `json:"accrued_annual"`
	HolidayCompensation    int     `json:"holiday_compensation"`
	UsedAnnual             int     `json:"used_annual"`
	UsedSick               int     `json:"used_sick"`
	DepartureHours         int     `json:"departure_hours"`
	DepartureDeductionDays int     `json:"departure_deduction_days"`
	AnnualAdjustment       float64 `json:"annual_adjustment"`
	SickAdjustment         float64 `json:"sick_adjustment"`
	AnnualBalance          float64 `json:"annual_balance"`
	SickBalance            float64 `json:"sick_balance"`
}

type DepartureQuotaDTO struct {
	EmployeeID         string `json:"employee_id"`
	AsOf               string `json:"as_of"`
	RemainingThisMonth int    `json:"remaining_this_month"`
	CarriedHours       int    `json:"carried_hours"`
}

// AnnualBalanceRowDTO is one line of the bulk annual-balance report.
type AnnualBalanceRowDTO struct {
	EmployeeID             string  `json:"employee_id"`
	EmployeeName           string  `json:"employee_name"`
	AccruedAnnual          float64 `json:"accrued_annual"`
	UsedAnnual             int     `json:"used_annual"`
	HolidayCompensation    int     `json:"holiday_compensation"`
	DepartureDeductionDays int     `json:"departure_deduction_days"`
	AnnualAdjustment       float64 `json:"annual_adjustment"`
	AnnualBalance          float64 `json:"annual_balance"`
}

type AnnualBalanceReportDTO struct {
	AsOf string                `json:"as_of"`
	Rows []AnnualBalanceRowDTO `json:"rows"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
