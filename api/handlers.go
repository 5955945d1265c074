/*
handlers.go - HTTP handler implementations

PURPOSE:
  Connects the REST surface to the record store and the calculation
  engine. Handlers follow one pattern:
  1. Parse and validate input
  2. Load records from the store
  3. Call the engine
  4. Serialize the response

SNAPSHOT-AT-CREATION RULES (enforced here, not in the engine):
  - Leave creation and edits derive days_taken through the span calculator
    against the current holiday calendar and weekend policy. Later calendar
    changes do not retroactively change stored records.
  - Holiday-work creation classifies the worked date (holiday first, then
    weekend) and stores the tag; ordinary workdays are rejected.

REFERENCE DATES:
  The engine never consults the clock. Handlers resolve the reference
  date: an explicit ?as_of=YYYY-MM-DD selects the historical report path,
  otherwise today's date feeds the live path.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 409: Duplicate holiday-work compensation
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sanad/leave-engine/engine"
	"github.com/sanad/leave-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store

	// now supplies "today" for live balance queries. Overridable in tests.
	now func() time.Time
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store, now: time.Now}
}

func (h *Handler) today() engine.Date {
	return engine.DateOf(h.now())
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = employeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, employeeDTO(emp))
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := employeeFromRequest(uuid.NewString(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee", err)
		return
	}

	if err := h.Store.CreateEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, employeeDTO(emp))
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := employeeFromRequest(chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee", err)
		return
	}

	err = h.Store.UpdateEmployee(r.Context(), emp)
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, employeeDTO(emp))
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.Store.DeleteEmployee)
}

func employeeFromRequest(id string, req EmployeeRequest) (engine.Employee, error) {
	if req.Name == "" {
		return engine.Employee{}, fmt.Errorf("name is required")
	}
	hire, err := engine.ParseDate(req.HireDate)
	if err != nil {
		return engine.Employee{}, fmt.Errorf("hire_date: %w", err)
	}

	status := engine.EmploymentStatus(req.Status)
	if status == "" {
		status = engine.EmploymentActive
	}
	if !status.Valid() {
		return engine.Employee{}, fmt.Errorf("unknown employment status %q", req.Status)
	}

	emp := engine.Employee{
		ID:                    id,
		Name:                  req.Name,
		JobTitle:              req.JobTitle,
		NationalID:            req.NationalID,
		Status:                status,
		HireDate:              hire,
		CustomAnnualLeaveDays: req.CustomAnnualLeaveDays,
	}

	if req.EndDate != "" {
		end, err := engine.ParseDate(req.EndDate)
		if err != nil {
			return engine.Employee{}, fmt.Errorf("end_date: %w", err)
		}
		emp.EndDate = &end
	}

	// An imported opening balance only makes sense with its cutover date.
	if (req.InitialAnnualBalance == nil) != (req.BalanceSetDate == "") {
		return engine.Employee{}, fmt.Errorf("initial_annual_balance and balance_set_date must be set together")
	}
	if req.InitialAnnualBalance != nil {
		setDate, err := engine.ParseDate(req.BalanceSetDate)
		if err != nil {
			return engine.Employee{}, fmt.Errorf("balance_set_date: %w", err)
		}
		initial := decimal.NewFromFloat(*req.InitialAnnualBalance)
		emp.InitialAnnualBalance = &initial
		emp.BalanceSetDate = &setDate
	}
	return emp, nil
}

func employeeDTO(e engine.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:                    e.ID,
		Name:                  e.Name,
		JobTitle:              e.JobTitle,
		NationalID:            e.NationalID,
		Status:                string(e.Status),
		HireDate:              e.HireDate.String(),
		CustomAnnualLeaveDays: e.CustomAnnualLeaveDays,
	}
	if e.EndDate != nil {
		dto.EndDate = e.EndDate.String()
	}
	if e.InitialAnnualBalance != nil {
		f := e.InitialAnnualBalance.InexactFloat64()
		dto.InitialAnnualBalance = &f
	}
	if e.BalanceSetDate != nil {
		dto.BalanceSetDate = e.BalanceSetDate.String()
	}
	return dto
}

// =============================================================================
// BALANCE HANDLERS
// =============================================================================

// GetBalance returns the balance report for one employee. With ?as_of= it
// runs the historical report path; without, the live path at today's date.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	in, err := h.Store.LoadBalanceInput(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	var report engine.BalanceReport
	if asOfParam := r.URL.Query().Get("as_of"); asOfParam != "" {
		asOf, err := engine.ParseDate(asOfParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
			return
		}
		report = engine.BalancesAsOf(in, asOf)
	} else {
		report = engine.Balances(in, h.today())
	}

	writeJSON(w, http.StatusOK, balanceReportDTO(report))
}

// GetDepartureQuota returns the informational monthly departure view.
func (h *Handler) GetDepartureQuota(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	departures, err := h.Store.ListDepartures(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load departures", err)
		return
	}

	asOf := h.today()
	if asOfParam := r.URL.Query().Get("as_of"); asOfParam != "" {
		if asOf, err = engine.ParseDate(asOfParam); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
			return
		}
	}

	quota := engine.MonthlyDepartureQuota(id, departures, asOf)
	writeJSON(w, http.StatusOK, DepartureQuotaDTO{
		EmployeeID:         quota.EmployeeID,
		AsOf:               quota.AsOf.String(),
		RemainingThisMonth: quota.RemainingThisMonth,
		CarriedHours:       quota.CarriedHours,
	})
}

// GetAnnualBalanceReport returns the bulk as-of balance summary for every
// employee.
func (h *Handler) GetAnnualBalanceReport(w http.ResponseWriter, r *http.Request) {
	asOf := h.today()
	if asOfParam := r.URL.Query().Get("as_of"); asOfParam != "" {
		parsed, err := engine.ParseDate(asOfParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
			return
		}
		asOf = parsed
	}

	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	rows := make([]AnnualBalanceRowDTO, 0, len(employees))
	for _, emp := range employees {
		in, err := h.Store.LoadBalanceInput(r.Context(), emp.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load records", err)
			return
		}
		report := engine.BalancesAsOf(in, asOf)
		rows = append(rows, AnnualBalanceRowDTO{
			EmployeeID:             emp.ID,
			EmployeeName:           emp.Name,
			AccruedAnnual:          report.AccruedAnnual.InexactFloat64(),
			UsedAnnual:             report.UsedAnnual,
			HolidayCompensation:    report.HolidayCompensation,
			DepartureDeductionDays: report.DepartureDeductionDays,
			AnnualAdjustment:       report.AnnualAdjustment.InexactFloat64(),
			AnnualBalance:          report.AnnualBalance.InexactFloat64(),
		})
	}

	writeJSON(w, http.StatusOK, AnnualBalanceReportDTO{AsOf: asOf.String(), Rows: rows})
}

func balanceReportDTO(r engine.BalanceReport) BalanceReportDTO {
	return BalanceReportDTO{
		EmployeeID:             r.EmployeeID,
		AsOf:                   r.AsOf.String(),
		AccruedAnnual:          r.AccruedAnnual.InexactFloat64(),
		HolidayCompensation:    r.HolidayCompensation,
		UsedAnnual:             r.UsedAnnual,
		UsedSick:               r.UsedSick,
		DepartureHours:         r.DepartureHours,
		DepartureDeductionDays: r.DepartureDeductionDays,
		AnnualAdjustment:       r.AnnualAdjustment.InexactFloat64(),
		SickAdjustment:         r.SickAdjustment.InexactFloat64(),
		AnnualBalance:          r.AnnualBalance.InexactFloat64(),
		SickBalance:            r.SickBalance.InexactFloat64(),
	}
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.Store.ListLeaves(r.Context(), r.URL.Query().Get("employee_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leaves", err)
		return
	}

	dtos := make([]LeaveDTO, len(leaves))
	for i, l := range leaves {
		dtos[i] = leaveDTO(l)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	h.saveLeave(w, r, uuid.NewString(), h.Store.CreateLeave)
}

// ReplaceLeave edits a leave by swapping the whole record, re-deriving
// days_taken against the current calendar.
func (h *Handler) ReplaceLeave(w http.ResponseWriter, r *http.Request) {
	h.saveLeave(w, r, chi.URLParam(r, "id"), h.Store.ReplaceLeave)
}

func (h *Handler) saveLeave(w http.ResponseWriter, r *http.Request, id string, save func(ctx context.Context, l engine.LeaveRecord) error) {
	var req LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	leave, err := h.buildLeave(r, id, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid leave", err)
		return
	}

	err = save(r.Context(), leave)
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Leave not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save leave", err)
		return
	}

	code := http.StatusOK
	if r.Method == http.MethodPost {
		code = http.StatusCreated
	}
	writeJSON(w, code, leaveDTO(leave))
}

func (h *Handler) buildLeave(r *http.Request, id string, req LeaveRequest) (engine.LeaveRecord, error) {
	category := engine.Category(req.Category)
	if !category.Valid() {
		return engine.LeaveRecord{}, fmt.Errorf("unknown category %q", req.Category)
	}

	start, err := engine.ParseDate(req.StartDate)
	if err != nil {
		return engine.LeaveRecord{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := engine.ParseDate(req.EndDate)
	if err != nil {
		return engine.LeaveRecord{}, fmt.Errorf("end_date: %w", err)
	}
	if start.After(end) {
		return engine.LeaveRecord{}, fmt.Errorf("start_date after end_date")
	}

	if _, err := h.Store.GetEmployee(r.Context(), req.EmployeeID); err != nil {
		return engine.LeaveRecord{}, fmt.Errorf("employee %s: %w", req.EmployeeID, err)
	}

	status := engine.Status(req.Status)
	if status == "" {
		// Requests are pre-approved by policy in this system.
		status = engine.StatusApproved
	}
	if status != engine.StatusApproved && status != engine.StatusPending {
		return engine.LeaveRecord{}, fmt.Errorf("unknown status %q", req.Status)
	}

	holidays, weekend, err := h.Store.LoadCalendar(r.Context())
	if err != nil {
		return engine.LeaveRecord{}, err
	}

	return engine.LeaveRecord{
		ID:         id,
		EmployeeID: req.EmployeeID,
		Category:   category,
		StartDate:  start,
		EndDate:    end,
		Status:     status,
		DaysTaken:  engine.SpanLength(start, end, holidays, weekend, category),
	}, nil
}

func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.Store.DeleteLeave)
}

func leaveDTO(l engine.LeaveRecord) LeaveDTO {
	return LeaveDTO{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		Category:   string(l.Category),
		StartDate:  l.StartDate.String(),
		EndDate:    l.EndDate.String(),
		Status:     string(l.Status),
		DaysTaken:  l.DaysTaken,
	}
}

// =============================================================================
// DEPARTURE HANDLERS
// =============================================================================

func (h *Handler) ListDepartures(w http.ResponseWriter, r *http.Request) {
	departures, err := h.Store.ListDepartures(r.Context(), r.URL.Query().Get("employee_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list departures", err)
		return
	}

	dtos := make([]DepartureDTO, len(departures))
	for i, d := range departures {
		dtos[i] = departureDTO(d)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateDeparture(w http.ResponseWriter, r *http.Request) {
	h.saveDeparture(w, r, uuid.NewString(), h.Store.CreateDeparture)
}

func (h *Handler) ReplaceDeparture(w http.ResponseWriter, r *http.Request) {
	h.saveDeparture(w, r, chi.URLParam(r, "id"), h.Store.ReplaceDeparture)
}

func (h *Handler) saveDeparture(w http.ResponseWriter, r *http.Request, id string, save func(ctx context.Context, d engine.DepartureRecord) error) {
	var req DepartureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Hours < engine.MinDepartureHours || req.Hours > engine.MaxDepartureHours {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Departure hours must be between %d and %d", engine.MinDepartureHours, engine.MaxDepartureHours), nil)
		return
	}

	day, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	if _, err := h.Store.GetEmployee(r.Context(), req.EmployeeID); err != nil {
		writeError(w, http.StatusBadRequest, "Unknown employee", err)
		return
	}

	status := engine.Status(req.Status)
	if status == "" {
		status = engine.StatusApproved
	}

	departure := engine.DepartureRecord{
		ID:         id,
		EmployeeID: req.EmployeeID,
		Date:       day,
		Hours:      req.Hours,
		Status:     status,
	}

	err = save(r.Context(), departure)
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Departure not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save departure", err)
		return
	}

	code := http.StatusOK
	if r.Method == http.MethodPost {
		code = http.StatusCreated
	}
	writeJSON(w, code, departureDTO(departure))
}

func (h *Handler) DeleteDeparture(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.Store.DeleteDeparture)
}

func departureDTO(d engine.DepartureRecord) DepartureDTO {
	return DepartureDTO{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		Date:       d.Date.String(),
		Hours:      d.Hours,
		Status:     string(d.Status),
	}
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{ID: hol.ID, Date: hol.Date.String(), Name: hol.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	day, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	holiday := engine.Holiday{ID: uuid.NewString(), Date: day, Name: req.Name}
	if err := h.Store.CreateHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, HolidayDTO{ID: holiday.ID, Date: holiday.Date.String(), Name: holiday.Name})
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.Store.DeleteHoliday)
}

// =============================================================================
// HOLIDAY WORK HANDLERS
// =============================================================================

func (h *Handler) ListHolidayWork(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListHolidayWork(r.Context(), r.URL.Query().Get("employee_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holiday work", err)
		return
	}

	dtos := make([]HolidayWorkDTO, len(records))
	for i, hw := range records {
		dtos[i] = HolidayWorkDTO{ID: hw.ID, EmployeeID: hw.EmployeeID, Date: hw.Date.String(), Type: string(hw.Type)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHolidayWork classifies the worked date against the current
// calendar and weekend policy, then records the compensation. The stored
// type tag is a snapshot: later policy changes do not reclassify it.
func (h *Handler) CreateHolidayWork(w http.ResponseWriter, r *http.Request) {
	var req HolidayWorkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	day, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	if _, err := h.Store.GetEmployee(r.Context(), req.EmployeeID); err != nil {
		writeError(w, http.StatusBadRequest, "Unknown employee", err)
		return
	}

	holidays, weekend, err := h.Store.LoadCalendar(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load calendar", err)
		return
	}

	dayType, compensable := engine.ClassifyWorkedDay(day, holidays, weekend)
	if !compensable {
		writeError(w, http.StatusBadRequest, "Date is an ordinary workday, not eligible for compensation", nil)
		return
	}

	hw := engine.HolidayWorkCompensation{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Date:       day,
		Type:       dayType,
	}

	err = h.Store.CreateHolidayWork(r.Context(), hw)
	if errors.Is(err, sqlite.ErrDuplicateHolidayWork) {
		writeError(w, http.StatusConflict, "Compensation already recorded for this employee and date", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create holiday work", err)
		return
	}
	writeJSON(w, http.StatusCreated, HolidayWorkDTO{ID: hw.ID, EmployeeID: hw.EmployeeID, Date: hw.Date.String(), Type: string(hw.Type)})
}

func (h *Handler) DeleteHolidayWork(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.Store.DeleteHolidayWork)
}

// =============================================================================
// ADJUSTMENT HANDLERS
// =============================================================================

func (h *Handler) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments, err := h.Store.ListAdjustments(r.Context(), r.URL.Query().Get("employee_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list adjustments", err)
		return
	}

	dtos := make([]AdjustmentDTO, len(adjustments))
	for i, a := range adjustments {
		dtos[i] = AdjustmentDTO{
			ID:             a.ID,
			EmployeeID:     a.EmployeeID,
			Category:       string(a.Category),
			AdjustmentDays: a.AdjustmentDays.InexactFloat64(),
			Reason:         a.Reason,
			Date:           a.Date.String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	var req AdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	category := engine.Category(req.Category)
	if !category.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown category %q", req.Category), nil)
		return
	}
	if req.AdjustmentDays == 0 {
		writeError(w, http.StatusBadRequest, "adjustment_days must be non-zero", nil)
		return
	}

	day, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	if _, err := h.Store.GetEmployee(r.Context(), req.EmployeeID); err != nil {
		writeError(w, http.StatusBadRequest, "Unknown employee", err)
		return
	}

	adj := engine.BalanceAdjustment{
		ID:             uuid.NewString(),
		EmployeeID:     req.EmployeeID,
		Category:       category,
		AdjustmentDays: decimal.NewFromFloat(req.AdjustmentDays),
		Reason:         req.Reason,
		Date:           day,
	}
	if err := h.Store.CreateAdjustment(r.Context(), adj); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create adjustment", err)
		return
	}
	writeJSON(w, http.StatusCreated, AdjustmentDTO{
		ID:             adj.ID,
		EmployeeID:     adj.EmployeeID,
		Category:       string(adj.Category),
		AdjustmentDays: adj.AdjustmentDays.InexactFloat64(),
		Reason:         adj.Reason,
		Date:           adj.Date.String(),
	})
}

func (h *Handler) DeleteAdjustment(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.Store.DeleteAdjustment)
}

// =============================================================================
// POLICY HANDLERS
// =============================================================================

func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.Store.GetPolicy(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get policy", err)
		return
	}
	writeJSON(w, http.StatusOK, PolicyDTO{WeekendDays: policy.WeekendDays.Indices()})
}

func (h *Handler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req PolicyDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	for _, d := range req.WeekendDays {
		if d < 0 || d > 6 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid weekday index %d", d), nil)
			return
		}
	}

	policy := engine.CompanyPolicy{WeekendDays: engine.NewWeekendSet(req.WeekendDays...)}
	if err := h.Store.SetPolicy(r.Context(), policy); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update policy", err)
		return
	}
	writeJSON(w, http.StatusOK, PolicyDTO{WeekendDays: policy.WeekendDays.Indices()})
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id string) error) {
	err := del(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Record not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete record", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
