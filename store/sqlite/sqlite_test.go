package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanad/leave-engine/engine"
	"github.com/sanad/leave-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testEmployee(id string) engine.Employee {
	return engine.Employee{
		ID:       id,
		Name:     "Test Employee " + id,
		JobTitle: "Accountant",
		HireDate: engine.NewDate(2021, time.March, 1),
	}
}

// =============================================================================
// EMPLOYEE ROUND TRIPS
// =============================================================================

func TestEmployee_RoundTripWithOptionalFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	end := engine.NewDate(2026, time.June, 30)
	custom := 25
	initial := decimal.NewFromFloat(10.5)
	setDate := engine.NewDate(2024, time.June, 1)

	emp := engine.Employee{
		ID:                    "e1",
		Name:                  "Imported Employee",
		NationalID:            "1985001122",
		Status:                engine.EmploymentTerminated,
		HireDate:              engine.NewDate(2019, time.January, 15),
		EndDate:               &end,
		CustomAnnualLeaveDays: &custom,
		InitialAnnualBalance:  &initial,
		BalanceSetDate:        &setDate,
	}
	require.NoError(t, store.CreateEmployee(ctx, emp))

	got, err := store.GetEmployee(ctx, "e1")
	require.NoError(t, err)

	assert.Equal(t, emp.Name, got.Name)
	assert.Equal(t, emp.NationalID, got.NationalID)
	assert.Equal(t, engine.EmploymentTerminated, got.Status)
	assert.True(t, got.HireDate.Equal(emp.HireDate))
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(end))
	require.NotNil(t, got.CustomAnnualLeaveDays)
	assert.Equal(t, 25, *got.CustomAnnualLeaveDays)
	require.NotNil(t, got.InitialAnnualBalance)
	assert.True(t, got.InitialAnnualBalance.Equal(initial))
	require.NotNil(t, got.BalanceSetDate)
	assert.True(t, got.BalanceSetDate.Equal(setDate))
}

func TestEmployee_OptionalFieldsStayNil(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateEmployee(ctx, testEmployee("e1")))

	got, err := store.GetEmployee(ctx, "e1")
	require.NoError(t, err)
	assert.Nil(t, got.EndDate)
	assert.Nil(t, got.CustomAnnualLeaveDays)
	assert.Nil(t, got.InitialAnnualBalance)
	assert.Nil(t, got.BalanceSetDate)
}

func TestEmployee_GetMissingReturnsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetEmployee(context.Background(), "ghost")
	assert.ErrorIs(t, err, sqlite.ErrNotFound)
}

// =============================================================================
// HOLIDAY WORK UNIQUENESS
// =============================================================================

func TestHolidayWork_NoDoubleCompensationForSameDay(t *testing.T) {
	// GIVEN: A compensation record for e1 on 2024-03-08
	// WHEN: Recording the same (employee, date) again
	// THEN: The store rejects it; a different employee on the same date
	//       is still fine.

	store := newTestStore(t)
	ctx := context.Background()

	first := engine.HolidayWorkCompensation{
		ID: "hw1", EmployeeID: "e1",
		Date: engine.NewDate(2024, time.March, 8), Type: engine.WorkedWeekend,
	}
	require.NoError(t, store.CreateHolidayWork(ctx, first))

	dup := first
	dup.ID = "hw2"
	err := store.CreateHolidayWork(ctx, dup)
	assert.ErrorIs(t, err, sqlite.ErrDuplicateHolidayWork)

	other := first
	other.ID = "hw3"
	other.EmployeeID = "e2"
	assert.NoError(t, store.CreateHolidayWork(ctx, other))
}

// =============================================================================
// LEAVE REPLACEMENT
// =============================================================================

func TestLeave_ReplaceSwapsWholeRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	leave := engine.LeaveRecord{
		ID: "l1", EmployeeID: "e1", Category: engine.CategoryAnnual,
		StartDate: engine.NewDate(2024, time.April, 7),
		EndDate:   engine.NewDate(2024, time.April, 9),
		Status:    engine.StatusApproved, DaysTaken: 3,
	}
	require.NoError(t, store.CreateLeave(ctx, leave))

	leave.EndDate = engine.NewDate(2024, time.April, 11)
	leave.DaysTaken = 5
	require.NoError(t, store.ReplaceLeave(ctx, leave))

	got, err := store.GetLeave(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.DaysTaken)
	assert.True(t, got.EndDate.Equal(engine.NewDate(2024, time.April, 11)))

	assert.ErrorIs(t, store.ReplaceLeave(ctx, engine.LeaveRecord{ID: "ghost"}), sqlite.ErrNotFound)
}

// =============================================================================
// POLICY AND CALENDAR
// =============================================================================

func TestPolicy_DefaultsToFridaySaturday(t *testing.T) {
	store := newTestStore(t)

	policy, err := store.GetPolicy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, policy.WeekendDays.Indices())
}

func TestPolicy_UpdateWeekendDays(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetPolicy(ctx, engine.CompanyPolicy{
		WeekendDays: engine.NewWeekendSet(0, 6),
	}))

	policy, err := store.GetPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 6}, policy.WeekendDays.Indices())
}

func TestLoadCalendar(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateHoliday(ctx, engine.Holiday{
		ID: "h1", Date: engine.NewDate(2024, time.March, 10), Name: "National Day",
	}))

	holidays, weekend, err := store.LoadCalendar(ctx)
	require.NoError(t, err)
	assert.True(t, holidays.Contains(engine.NewDate(2024, time.March, 10)))
	assert.True(t, weekend.Contains(time.Friday))
}

// =============================================================================
// SNAPSHOT LOADING
// =============================================================================

func TestLoadBalanceInput_ScopesToEmployee(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateEmployee(ctx, testEmployee("e1")))
	require.NoError(t, store.CreateEmployee(ctx, testEmployee("e2")))

	require.NoError(t, store.CreateLeave(ctx, engine.LeaveRecord{
		ID: "l1", EmployeeID: "e1", Category: engine.CategoryAnnual,
		StartDate: engine.NewDate(2024, time.April, 7),
		EndDate:   engine.NewDate(2024, time.April, 9),
		Status:    engine.StatusApproved, DaysTaken: 3,
	}))
	require.NoError(t, store.CreateLeave(ctx, engine.LeaveRecord{
		ID: "l2", EmployeeID: "e2", Category: engine.CategoryAnnual,
		StartDate: engine.NewDate(2024, time.April, 7),
		EndDate:   engine.NewDate(2024, time.April, 9),
		Status:    engine.StatusApproved, DaysTaken: 3,
	}))
	require.NoError(t, store.CreateDeparture(ctx, engine.DepartureRecord{
		ID: "d1", EmployeeID: "e1", Date: engine.NewDate(2024, time.May, 6),
		Hours: 3, Status: engine.StatusApproved,
	}))
	require.NoError(t, store.CreateAdjustment(ctx, engine.BalanceAdjustment{
		ID: "a1", EmployeeID: "e1", Category: engine.CategorySick,
		AdjustmentDays: decimal.NewFromInt(2), Reason: "carryover",
		Date: engine.NewDate(2024, time.January, 1),
	}))

	in, err := store.LoadBalanceInput(ctx, "e1")
	require.NoError(t, err)

	assert.Equal(t, "e1", in.Employee.ID)
	assert.Len(t, in.Leaves, 1)
	assert.Len(t, in.Departures, 1)
	assert.Len(t, in.Adjustments, 1)

	// The snapshot feeds the engine directly.
	report := engine.Balances(in, engine.NewDate(2024, time.June, 1))
	assert.Equal(t, 3, report.UsedAnnual)
	assert.Equal(t, 3, report.DepartureHours)
}
