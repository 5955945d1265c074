package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanad/leave-engine/engine"
	"github.com/sanad/leave-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// fixedNow pins "today" so live balance queries are reproducible.
var fixedNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store)
	h.now = func() time.Time { return fixedNow }

	srv := httptest.NewServer(NewRouter(h, RouterOptions{
		AllowedOrigins: []string{"*"},
	}))
	t.Cleanup(srv.Close)
	return srv, store
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createEmployee(t *testing.T, srv *httptest.Server, req EmployeeRequest) EmployeeDTO {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[EmployeeDTO](t, resp)
}

// =============================================================================
// EMPLOYEE ENDPOINTS
// =============================================================================

func TestEmployeeLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	// GIVEN a created employee
	emp := createEmployee(t, srv, EmployeeRequest{
		Name:       "Lina Haddad",
		JobTitle:   "Accountant",
		NationalID: "1990123456",
		HireDate:   "2022-03-01",
	})
	require.NotEmpty(t, emp.ID)
	assert.Equal(t, "2022-03-01", emp.HireDate)
	assert.Equal(t, "active", emp.Status)

	// WHEN updating the job title and marking the employee terminated
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/employees/"+emp.ID, EmployeeRequest{
		Name:       "Lina Haddad",
		JobTitle:   "Senior Accountant",
		NationalID: "1990123456",
		Status:     "terminated",
		HireDate:   "2022-03-01",
		EndDate:    "2025-12-31",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[EmployeeDTO](t, resp)
	assert.Equal(t, "Senior Accountant", updated.JobTitle)
	assert.Equal(t, "terminated", updated.Status)
	assert.Equal(t, "2025-12-31", updated.EndDate)

	// THEN the employee is listed and deletable
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/employees", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]EmployeeDTO](t, resp)
	require.Len(t, list, 1)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/employees/"+emp.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+emp.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateEmployeeValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		req  EmployeeRequest
	}{
		{"missing name", EmployeeRequest{HireDate: "2024-01-01"}},
		{"bad hire date", EmployeeRequest{Name: "X", HireDate: "01/02/2024"}},
		{"opening balance without cutover date", EmployeeRequest{
			Name: "X", HireDate: "2024-01-01", InitialAnnualBalance: floatPtr(10),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", tc.req)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}
}

// =============================================================================
// LEAVE ENDPOINTS
// =============================================================================

func TestCreateLeaveDerivesDaysTaken(t *testing.T) {
	srv, _ := newTestServer(t)

	emp := createEmployee(t, srv, EmployeeRequest{Name: "Omar", HireDate: "2020-01-01"})

	// GIVEN a holiday on Sunday 2024-03-10, default Fri/Sat weekend
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/holidays", HolidayRequest{
		Date: "2024-03-10", Name: "National Day",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// WHEN requesting annual leave Thursday 2024-03-07 through Tuesday 2024-03-12
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/leaves", LeaveRequest{
		EmployeeID: emp.ID,
		Category:   "annual",
		StartDate:  "2024-03-07",
		EndDate:    "2024-03-12",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	leave := decode[LeaveDTO](t, resp)

	// THEN weekend and holiday days are excluded: Thu, Mon, Tue
	assert.Equal(t, 3, leave.DaysTaken)
	assert.Equal(t, "approved", leave.Status)

	// AND the same span as sick leave counts every calendar day
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/leaves", LeaveRequest{
		EmployeeID: emp.ID,
		Category:   "sick",
		StartDate:  "2024-03-07",
		EndDate:    "2024-03-12",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sick := decode[LeaveDTO](t, resp)
	assert.Equal(t, 6, sick.DaysTaken)
}

func TestCreateLeaveValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	emp := createEmployee(t, srv, EmployeeRequest{Name: "Omar", HireDate: "2020-01-01"})

	// Unknown category
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/leaves", LeaveRequest{
		EmployeeID: emp.ID, Category: "maternity", StartDate: "2024-03-07", EndDate: "2024-03-08",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Inverted span
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/leaves", LeaveRequest{
		EmployeeID: emp.ID, Category: "annual", StartDate: "2024-03-08", EndDate: "2024-03-07",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown employee
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/leaves", LeaveRequest{
		EmployeeID: "ghost", Category: "annual", StartDate: "2024-03-07", EndDate: "2024-03-08",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestReplaceLeaveRecomputesSpan(t *testing.T) {
	srv, _ := newTestServer(t)

	emp := createEmployee(t, srv, EmployeeRequest{Name: "Omar", HireDate: "2020-01-01"})

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/leaves", LeaveRequest{
		EmployeeID: emp.ID, Category: "annual", StartDate: "2024-03-11", EndDate: "2024-03-11",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	leave := decode[LeaveDTO](t, resp)
	require.Equal(t, 1, leave.DaysTaken)

	// Extending through the Fri/Sat weekend picks up only workdays
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/leaves/"+leave.ID, LeaveRequest{
		EmployeeID: emp.ID, Category: "annual", StartDate: "2024-03-11", EndDate: "2024-03-17",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	replaced := decode[LeaveDTO](t, resp)
	assert.Equal(t, leave.ID, replaced.ID)
	assert.Equal(t, 5, replaced.DaysTaken)
}

// =============================================================================
// DEPARTURE ENDPOINTS
// =============================================================================

func TestDepartureHoursValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	emp := createEmployee(t, srv, EmployeeRequest{Name: "Omar", HireDate: "2020-01-01"})

	for _, hours := range []int{0, 5, -1} {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/departures", DepartureRequest{
			EmployeeID: emp.ID, Date: "2025-06-01", Hours: hours,
		})
		assert.Equalf(t, http.StatusBadRequest, resp.StatusCode, "hours=%d", hours)
		resp.Body.Close()
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/departures", DepartureRequest{
		EmployeeID: emp.ID, Date: "2025-06-01", Hours: 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	dep := decode[DepartureDTO](t, resp)
	assert.Equal(t, 3, dep.Hours)
	assert.Equal(t, "approved", dep.Status)
}

func TestDepartureQuotaEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	emp := createEmployee(t, srv, EmployeeRequest{Name: "Omar", HireDate: "2020-01-01"})

	// 3h in May, 2h in June. fixedNow is 2025-06-15.
	for _, d := range []DepartureRequest{
		{EmployeeID: emp.ID, Date: "2025-05-20", Hours: 3},
		{EmployeeID: emp.ID, Date: "2025-06-02", Hours: 2},
	} {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/departures", d)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+emp.ID+"/departure-quota", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	quota := decode[DepartureQuotaDTO](t, resp)
	assert.Equal(t, "2025-06-15", quota.AsOf)
	assert.Equal(t, 6, quota.RemainingThisMonth)
	assert.Equal(t, 5, quota.CarriedHours)
}

// =============================================================================
// HOLIDAY WORK ENDPOINTS
// =============================================================================

func TestCreateHolidayWorkClassification(t *testing.T) {
	srv, _ := newTestServer(t)

	emp := createEmployee(t, srv, EmployeeRequest{Name: "Omar", HireDate: "2020-01-01"})

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/holidays", HolidayRequest{
		Date: "2024-03-10", Name: "National Day",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Holiday Sunday is tagged holiday
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/holiday-work", HolidayWorkRequest{
		EmployeeID: emp.ID, Date: "2024-03-10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	hw := decode[HolidayWorkDTO](t, resp)
	assert.Equal(t, "holiday", hw.Type)

	// Ordinary Friday is tagged weekend
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/holiday-work", HolidayWorkRequest{
		EmployeeID: emp.ID, Date: "2024-03-08",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	hw = decode[HolidayWorkDTO](t, resp)
	assert.Equal(t, "weekend", hw.Type)

	// Ordinary workday is rejected
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/holiday-work", HolidayWorkRequest{
		EmployeeID: emp.ID, Date: "2024-03-11",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Same employee and date again is a conflict
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/holiday-work", HolidayWorkRequest{
		EmployeeID: emp.ID, Date: "2024-03-10",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

// =============================================================================
// POLICY ENDPOINTS
// =============================================================================

func TestPolicyRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	// Default policy is Friday/Saturday
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/policy", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	policy := decode[PolicyDTO](t, resp)
	assert.Equal(t, []int{5, 6}, policy.WeekendDays)

	// Switch to Saturday/Sunday
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/policy", PolicyDTO{WeekendDays: []int{6, 0}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/policy", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	policy = decode[PolicyDTO](t, resp)
	assert.Equal(t, []int{0, 6}, policy.WeekendDays)

	// Out-of-range weekday index is rejected
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/policy", PolicyDTO{WeekendDays: []int{7}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// =============================================================================
// BALANCE AND REPORT ENDPOINTS
// =============================================================================

func TestGetBalanceLiveAndAsOf(t *testing.T) {
	srv, _ := newTestServer(t)

	emp := createEmployee(t, srv, EmployeeRequest{Name: "Omar", HireDate: "2024-06-15"})

	// Live path uses the pinned clock: exactly 12 months of service
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+emp.ID+"/balance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	live := decode[BalanceReportDTO](t, resp)
	assert.Equal(t, "2025-06-15", live.AsOf)
	assert.InDelta(t, 14.0, live.AccruedAnnual, 0.05)
	assert.InDelta(t, 14.0, live.SickBalance, 0.001)

	// Historical path accrues only through the requested date
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+emp.ID+"/balance?as_of=2024-12-15", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	asOf := decode[BalanceReportDTO](t, resp)
	assert.Equal(t, "2024-12-15", asOf.AsOf)
	assert.Less(t, asOf.AccruedAnnual, live.AccruedAnnual)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+emp.ID+"/balance?as_of=nonsense", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/employees/ghost/balance", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAsOfExcludesLaterRecords(t *testing.T) {
	srv, _ := newTestServer(t)

	emp := createEmployee(t, srv, EmployeeRequest{Name: "Omar", HireDate: "2020-01-01"})

	// Leave taken in May 2025: Sunday through Tuesday, no holidays
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/leaves", LeaveRequest{
		EmployeeID: emp.ID, Category: "annual", StartDate: "2025-05-11", EndDate: "2025-05-13",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	before := decode[BalanceReportDTO](t, doJSON(t, http.MethodGet,
		srv.URL+"/api/employees/"+emp.ID+"/balance?as_of=2025-04-30", nil))
	after := decode[BalanceReportDTO](t, doJSON(t, http.MethodGet,
		srv.URL+"/api/employees/"+emp.ID+"/balance?as_of=2025-05-31", nil))

	assert.Equal(t, 0, before.UsedAnnual)
	assert.Equal(t, 3, after.UsedAnnual)
}

func TestAnnualBalanceReport(t *testing.T) {
	srv, _ := newTestServer(t)

	a := createEmployee(t, srv, EmployeeRequest{Name: "Alia", HireDate: "2019-01-01"})
	b := createEmployee(t, srv, EmployeeRequest{Name: "Basel", HireDate: "2024-01-01"})

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/reports/annual-balances?as_of=2025-01-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[AnnualBalanceReportDTO](t, resp)

	require.Equal(t, "2025-01-01", report.AsOf)
	require.Len(t, report.Rows, 2)

	rows := map[string]AnnualBalanceRowDTO{}
	for _, row := range report.Rows {
		rows[row.EmployeeID] = row
	}

	// Alia crossed 5 years of service in 2024 and accrues at the senior rate.
	sixYears := engine.AccruedAnnual(
		engine.Employee{ID: a.ID, HireDate: engine.MustDate("2019-01-01")},
		engine.MustDate("2025-01-01"),
	)
	assert.InDelta(t, sixYears.Round(2).InexactFloat64(), rows[a.ID].AccruedAnnual, 0.001)
	assert.InDelta(t, 14.0, rows[b.ID].AccruedAnnual, 0.05)
	assert.Equal(t, "Alia", rows[a.ID].EmployeeName)
}

func floatPtr(f float64) *float64 { return &f }
