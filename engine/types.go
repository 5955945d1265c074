/*
types.go - Record types read by the engine

PURPOSE:
  Defines the immutable value records the engine computes over. Every record
  is created once by a user action and deleted explicitly; edits replace the
  whole record. The engine only reads them.

KEY INVARIANTS:
  - LeaveRecord.DaysTaken is snapshotted at creation time via SpanLength.
    It is never recomputed on read, so later calendar changes do not
    retroactively change historical usage.
  - HolidayWorkCompensation.Type records which rule classified the worked
    date at creation time; (employee, date) pairs are unique.
  - If Employee.InitialAnnualBalance is set, BalanceSetDate must be set too,
    and accrual before that date is represented only by the imported value.

SEE ALSO:
  - balance.go: how these records combine into a BalanceReport
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// CATEGORIES AND STATUSES
// =============================================================================

// Category is the leave category. A closed two-variant tag: open strings
// here would let typos create unaggregated adjustment buckets.
type Category string

const (
	CategoryAnnual Category = "annual"
	CategorySick   Category = "sick"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryAnnual || c == CategorySick
}

// Status is the approval state of a leave or departure record. Only
// approved records participate in balance math.
type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
)

// WorkedDayType records which rule classified a worked rest day at the time
// the compensation was granted.
type WorkedDayType string

const (
	WorkedWeekend WorkedDayType = "weekend"
	WorkedHoliday WorkedDayType = "holiday"
)

// EmploymentStatus is descriptive only. Balance math never reads it; a
// suspended employee keeps accruing until an end date is set.
type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "active"
	EmploymentSuspended  EmploymentStatus = "suspended"
	EmploymentTerminated EmploymentStatus = "terminated"
)

// Valid reports whether s is a known employment status.
func (s EmploymentStatus) Valid() bool {
	return s == EmploymentActive || s == EmploymentSuspended || s == EmploymentTerminated
}

// =============================================================================
// EMPLOYEE
// =============================================================================

// Employee is the subject of every balance query. Descriptive fields
// (name, job title, identity numbers) are opaque to the engine.
type Employee struct {
	ID         string
	Name       string
	JobTitle   string
	NationalID string
	Status     EmploymentStatus
	HireDate   Date
	EndDate    *Date // termination date, open-ended employment when nil

	// CustomAnnualLeaveDays overrides the service-based entitlement table
	// for the employee's entire history.
	CustomAnnualLeaveDays *int

	// InitialAnnualBalance is an imported opening balance. When set,
	// BalanceSetDate must be set and accrual is computed from that date
	// instead of the hire date.
	InitialAnnualBalance *decimal.Decimal
	BalanceSetDate       *Date
}

// =============================================================================
// LEAVE, DEPARTURE, HOLIDAY RECORDS
// =============================================================================

// LeaveRecord is a full-day leave span, inclusive of both endpoints.
// DaysTaken is the chargeable-day count snapshotted at creation.
type LeaveRecord struct {
	ID         string
	EmployeeID string
	Category   Category
	StartDate  Date
	EndDate    Date
	Status     Status
	DaysTaken  int
}

// DepartureRecord is a short same-day absence of 1-4 hours.
type DepartureRecord struct {
	ID         string
	EmployeeID string
	Date       Date
	Hours      int
	Status     Status
}

// Departure hours convert to a full deducted day per DeductionHours.
const (
	MinDepartureHours = 1
	MaxDepartureHours = 4
	DeductionHours    = 8
)

// Holiday is an exact calendar date recognized as an official holiday.
type Holiday struct {
	ID   string
	Date Date
	Name string
}

// HolidayWorkCompensation credits one leave day for working on a weekend
// or holiday date. One record per (employee, date).
type HolidayWorkCompensation struct {
	ID         string
	EmployeeID string
	Date       Date
	Type       WorkedDayType
}

// BalanceAdjustment is a manual signed correction. Date is used only for
// as-of filtering in historical reports, not for accrual timing.
type BalanceAdjustment struct {
	ID             string
	EmployeeID     string
	Category       Category
	AdjustmentDays decimal.Decimal
	Reason         string
	Date           Date
}

// CompanyPolicy carries the calendar rules shared by the span calculator
// and the holiday-work classifier.
type CompanyPolicy struct {
	WeekendDays WeekendSet
}

// =============================================================================
// BALANCE REPORT - The engine's only output
// =============================================================================

// BalanceReport is the point-in-time balance for one employee. Annual
// figures carry two-decimal rounding applied once, at this boundary;
// intermediate accrual sums are never rounded.
type BalanceReport struct {
	EmployeeID string
	AsOf       Date

	AccruedAnnual          decimal.Decimal
	HolidayCompensation    int
	UsedAnnual             int
	UsedSick               int
	DepartureHours         int
	DepartureDeductionDays int
	AnnualAdjustment       decimal.Decimal
	SickAdjustment         decimal.Decimal

	AnnualBalance decimal.Decimal
	SickBalance   decimal.Decimal
}

// DepartureQuota is the informational monthly view: how many departure
// hours remain in the reference month before the next deduction, and how
// many lifetime hours are carried toward it. It does not feed back into
// DepartureDeductionDays.
type DepartureQuota struct {
	EmployeeID string
	AsOf       Date

	// RemainingThisMonth is DeductionHours minus hours used in asOf's
	// calendar month. Can go negative when a month exceeds the quota.
	RemainingThisMonth int

	// CarriedHours is the lifetime approved hour total modulo
	// DeductionHours: hours not yet converted into a deducted day.
	CarriedHours int
}
