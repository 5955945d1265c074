/*
Package sqlite provides the SQLite-backed record store.

PURPOSE:
  Persists the value records the engine reads: employees, leaves,
  departures, holidays, holiday-work compensation, balance adjustments and
  the company policy. All balance math stays in the engine package; this
  package only loads and saves.

LIFECYCLE SEMANTICS:
  Records are created once and deleted explicitly. Leave and departure
  edits replace the whole row (the API layer re-derives daysTaken before
  calling ReplaceLeave). Nothing here recomputes snapshotted fields.

KEY TABLES:
  employees:            Employee records with optional override fields
  leaves:               Leave spans with snapshotted days_taken
  departures:           Short same-day absences (1-4 hours)
  holidays:             Exact-date official holidays
  holiday_work:         Compensation records; UNIQUE(employee_id, date)
                        enforces no double compensation for the same day
  balance_adjustments:  Signed manual corrections
  company_policy:       Single row holding the weekend-day set

SNAPSHOT LOADING:
  LoadBalanceInput reads every collection for one employee inside a single
  read transaction, so a balance query sees a consistent snapshot.

WAL MODE:
  SQLite is opened with WAL for better concurrency: multiple readers
  don't block, single writer at a time.

USAGE:
  store, err := sqlite.New("./data/leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - engine/types.go: the record types stored here
  - api/handlers.go: the only caller
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/sanad/leave-engine/engine"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateHolidayWork is returned when a compensation record for
	// the same (employee, date) pair already exists.
	ErrDuplicateHolidayWork = errors.New("holiday work already recorded for this employee and date")
)

// =============================================================================
// STORE
// =============================================================================

// Store persists all record types using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; also keeps ":memory:" databases on a single
	// connection instead of one empty database per pooled connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		job_title TEXT,
		national_id TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		hire_date TEXT NOT NULL,
		end_date TEXT,
		custom_annual_leave_days INTEGER,
		initial_annual_balance TEXT,
		balance_set_date TEXT
	);

	CREATE TABLE IF NOT EXISTS leaves (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		category TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL,
		days_taken INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_leaves_employee ON leaves(employee_id);
	CREATE INDEX IF NOT EXISTS idx_leaves_start ON leaves(start_date);

	CREATE TABLE IF NOT EXISTS departures (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		hours INTEGER NOT NULL,
		status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_departures_employee ON departures(employee_id);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_holidays_date ON holidays(date);

	CREATE TABLE IF NOT EXISTS holiday_work (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		type TEXT NOT NULL
	);
	-- No double compensation for the same day.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holiday_work_employee_date
		ON holiday_work(employee_id, date);

	CREATE TABLE IF NOT EXISTS balance_adjustments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		category TEXT NOT NULL,
		adjustment_days TEXT NOT NULL,
		reason TEXT,
		date TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_adjustments_employee ON balance_adjustments(employee_id);

	CREATE TABLE IF NOT EXISTS company_policy (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		weekend_days TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Seed the default Friday/Saturday weekend if no policy row exists.
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO company_policy (id, weekend_days) VALUES (1, ?)`,
		encodeWeekend(engine.DefaultWeekend()),
	)
	return err
}

// querier lets the same scan helpers run against *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) CreateEmployee(ctx context.Context, e engine.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees
			(id, name, job_title, national_id, status, hire_date, end_date,
			 custom_annual_leave_days, initial_annual_balance, balance_set_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.JobTitle, e.NationalID, string(e.Status), e.HireDate.String(),
		nullDate(e.EndDate), nullInt(e.CustomAnnualLeaveDays),
		nullDecimal(e.InitialAnnualBalance), nullDate(e.BalanceSetDate),
	)
	if err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e engine.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE employees SET
			name = ?, job_title = ?, national_id = ?, status = ?, hire_date = ?,
			end_date = ?, custom_annual_leave_days = ?, initial_annual_balance = ?,
			balance_set_date = ?
		WHERE id = ?`,
		e.Name, e.JobTitle, e.NationalID, string(e.Status), e.HireDate.String(),
		nullDate(e.EndDate), nullInt(e.CustomAnnualLeaveDays),
		nullDecimal(e.InitialAnnualBalance), nullDate(e.BalanceSetDate),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return requireRow(res)
}

func (s *Store) GetEmployee(ctx context.Context, id string) (engine.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getEmployee(ctx, s.db, id)
}

func (s *Store) getEmployee(ctx context.Context, q querier, id string) (engine.Employee, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, name, job_title, national_id, status, hire_date, end_date,
		       custom_annual_leave_days, initial_annual_balance, balance_set_date
		FROM employees WHERE id = ?`, id)

	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Store) ListEmployees(ctx context.Context) ([]engine.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, job_title, national_id, status, hire_date, end_date,
		       custom_annual_leave_days, initial_annual_balance, balance_set_date
		FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []engine.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "employees", id)
}

func scanEmployee(r rowScanner) (engine.Employee, error) {
	var (
		e          engine.Employee
		status     string
		hire       string
		end        sql.NullString
		customDays sql.NullInt64
		initial    sql.NullString
		setDate    sql.NullString
	)
	if err := r.Scan(&e.ID, &e.Name, &e.JobTitle, &e.NationalID, &status, &hire,
		&end, &customDays, &initial, &setDate); err != nil {
		return engine.Employee{}, err
	}
	e.Status = engine.EmploymentStatus(status)

	var err error
	if e.HireDate, err = engine.ParseDate(hire); err != nil {
		return engine.Employee{}, err
	}
	if end.Valid {
		d, err := engine.ParseDate(end.String)
		if err != nil {
			return engine.Employee{}, err
		}
		e.EndDate = &d
	}
	if customDays.Valid {
		n := int(customDays.Int64)
		e.CustomAnnualLeaveDays = &n
	}
	if initial.Valid {
		dec, err := decimal.NewFromString(initial.String)
		if err != nil {
			return engine.Employee{}, fmt.Errorf("bad initial balance: %w", err)
		}
		e.InitialAnnualBalance = &dec
	}
	if setDate.Valid {
		d, err := engine.ParseDate(setDate.String)
		if err != nil {
			return engine.Employee{}, err
		}
		e.BalanceSetDate = &d
	}
	return e, nil
}

// =============================================================================
// LEAVES
// =============================================================================

func (s *Store) CreateLeave(ctx context.Context, l engine.LeaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaves (id, employee_id, category, start_date, end_date, status, days_taken)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.EmployeeID, string(l.Category), l.StartDate.String(), l.EndDate.String(),
		string(l.Status), l.DaysTaken,
	)
	if err != nil {
		return fmt.Errorf("create leave: %w", err)
	}
	return nil
}

// ReplaceLeave swaps the whole record: edits never mutate fields in place.
func (s *Store) ReplaceLeave(ctx context.Context, l engine.LeaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE leaves SET
			employee_id = ?, category = ?, start_date = ?, end_date = ?, status = ?, days_taken = ?
		WHERE id = ?`,
		l.EmployeeID, string(l.Category), l.StartDate.String(), l.EndDate.String(),
		string(l.Status), l.DaysTaken, l.ID,
	)
	if err != nil {
		return fmt.Errorf("replace leave: %w", err)
	}
	return requireRow(res)
}

func (s *Store) GetLeave(ctx context.Context, id string) (engine.LeaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, category, start_date, end_date, status, days_taken
		FROM leaves WHERE id = ?`, id)
	l, err := scanLeave(row)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.LeaveRecord{}, ErrNotFound
	}
	return l, err
}

// ListLeaves returns all leaves, or one employee's when employeeID is
// non-empty.
func (s *Store) ListLeaves(ctx context.Context, employeeID string) ([]engine.LeaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLeaves(ctx, s.db, employeeID)
}

func (s *Store) listLeaves(ctx context.Context, q querier, employeeID string) ([]engine.LeaveRecord, error) {
	query := `SELECT id, employee_id, category, start_date, end_date, status, days_taken FROM leaves`
	var args []any
	if employeeID != "" {
		query += ` WHERE employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY start_date`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	defer rows.Close()

	var out []engine.LeaveRecord
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) DeleteLeave(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "leaves", id)
}

func scanLeave(r rowScanner) (engine.LeaveRecord, error) {
	var (
		l                engine.LeaveRecord
		category, status string
		start, end       string
	)
	if err := r.Scan(&l.ID, &l.EmployeeID, &category, &start, &end, &status, &l.DaysTaken); err != nil {
		return engine.LeaveRecord{}, err
	}
	l.Category = engine.Category(category)
	l.Status = engine.Status(status)

	var err error
	if l.StartDate, err = engine.ParseDate(start); err != nil {
		return engine.LeaveRecord{}, err
	}
	if l.EndDate, err = engine.ParseDate(end); err != nil {
		return engine.LeaveRecord{}, err
	}
	return l, nil
}

// =============================================================================
// DEPARTURES
// =============================================================================

func (s *Store) CreateDeparture(ctx context.Context, d engine.DepartureRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO departures (id, employee_id, date, hours, status)
		VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.EmployeeID, d.Date.String(), d.Hours, string(d.Status),
	)
	if err != nil {
		return fmt.Errorf("create departure: %w", err)
	}
	return nil
}

func (s *Store) ReplaceDeparture(ctx context.Context, d engine.DepartureRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE departures SET employee_id = ?, date = ?, hours = ?, status = ?
		WHERE id = ?`,
		d.EmployeeID, d.Date.String(), d.Hours, string(d.Status), d.ID,
	)
	if err != nil {
		return fmt.Errorf("replace departure: %w", err)
	}
	return requireRow(res)
}

func (s *Store) ListDepartures(ctx context.Context, employeeID string) ([]engine.DepartureRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listDepartures(ctx, s.db, employeeID)
}

func (s *Store) listDepartures(ctx context.Context, q querier, employeeID string) ([]engine.DepartureRecord, error) {
	query := `SELECT id, employee_id, date, hours, status FROM departures`
	var args []any
	if employeeID != "" {
		query += ` WHERE employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY date`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list departures: %w", err)
	}
	defer rows.Close()

	var out []engine.DepartureRecord
	for rows.Next() {
		var (
			d       engine.DepartureRecord
			dateStr string
			status  string
		)
		if err := rows.Scan(&d.ID, &d.EmployeeID, &dateStr, &d.Hours, &status); err != nil {
			return nil, err
		}
		if d.Date, err = engine.ParseDate(dateStr); err != nil {
			return nil, err
		}
		d.Status = engine.Status(status)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) DeleteDeparture(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "departures", id)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (s *Store) CreateHoliday(ctx context.Context, h engine.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO holidays (id, date, name) VALUES (?, ?, ?)`,
		h.ID, h.Date.String(), h.Name,
	)
	if err != nil {
		return fmt.Errorf("create holiday: %w", err)
	}
	return nil
}

func (s *Store) ListHolidays(ctx context.Context) ([]engine.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listHolidays(ctx, s.db)
}

func (s *Store) listHolidays(ctx context.Context, q querier) ([]engine.Holiday, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, date, name FROM holidays ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	defer rows.Close()

	var out []engine.Holiday
	for rows.Next() {
		var (
			h       engine.Holiday
			dateStr string
		)
		if err := rows.Scan(&h.ID, &dateStr, &h.Name); err != nil {
			return nil, err
		}
		if h.Date, err = engine.ParseDate(dateStr); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "holidays", id)
}

// =============================================================================
// HOLIDAY WORK COMPENSATION
// =============================================================================

func (s *Store) CreateHolidayWork(ctx context.Context, hw engine.HolidayWorkCompensation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Pre-check keeps the error friendly; the unique index is the backstop.
	var existing int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM holiday_work WHERE employee_id = ? AND date = ?`,
		hw.EmployeeID, hw.Date.String(),
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("check holiday work: %w", err)
	}
	if existing > 0 {
		return ErrDuplicateHolidayWork
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO holiday_work (id, employee_id, date, type) VALUES (?, ?, ?, ?)`,
		hw.ID, hw.EmployeeID, hw.Date.String(), string(hw.Type),
	)
	if err != nil {
		return fmt.Errorf("create holiday work: %w", err)
	}
	return nil
}

func (s *Store) ListHolidayWork(ctx context.Context, employeeID string) ([]engine.HolidayWorkCompensation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listHolidayWork(ctx, s.db, employeeID)
}

func (s *Store) listHolidayWork(ctx context.Context, q querier, employeeID string) ([]engine.HolidayWorkCompensation, error) {
	query := `SELECT id, employee_id, date, type FROM holiday_work`
	var args []any
	if employeeID != "" {
		query += ` WHERE employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY date`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list holiday work: %w", err)
	}
	defer rows.Close()

	var out []engine.HolidayWorkCompensation
	for rows.Next() {
		var (
			hw      engine.HolidayWorkCompensation
			dateStr string
			typ     string
		)
		if err := rows.Scan(&hw.ID, &hw.EmployeeID, &dateStr, &typ); err != nil {
			return nil, err
		}
		if hw.Date, err = engine.ParseDate(dateStr); err != nil {
			return nil, err
		}
		hw.Type = engine.WorkedDayType(typ)
		out = append(out, hw)
	}
	return out, rows.Err()
}

func (s *Store) DeleteHolidayWork(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "holiday_work", id)
}

// =============================================================================
// BALANCE ADJUSTMENTS
// =============================================================================

func (s *Store) CreateAdjustment(ctx context.Context, a engine.BalanceAdjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO balance_adjustments (id, employee_id, category, adjustment_days, reason, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.EmployeeID, string(a.Category), a.AdjustmentDays.String(), a.Reason, a.Date.String(),
	)
	if err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	return nil
}

func (s *Store) ListAdjustments(ctx context.Context, employeeID string) ([]engine.BalanceAdjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listAdjustments(ctx, s.db, employeeID)
}

func (s *Store) listAdjustments(ctx context.Context, q querier, employeeID string) ([]engine.BalanceAdjustment, error) {
	query := `SELECT id, employee_id, category, adjustment_days, reason, date FROM balance_adjustments`
	var args []any
	if employeeID != "" {
		query += ` WHERE employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY date`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var out []engine.BalanceAdjustment
	for rows.Next() {
		var (
			a        engine.BalanceAdjustment
			category string
			daysStr  string
			dateStr  string
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &category, &daysStr, &a.Reason, &dateStr); err != nil {
			return nil, err
		}
		a.Category = engine.Category(category)
		if a.AdjustmentDays, err = decimal.NewFromString(daysStr); err != nil {
			return nil, fmt.Errorf("bad adjustment days: %w", err)
		}
		if a.Date, err = engine.ParseDate(dateStr); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) DeleteAdjustment(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "balance_adjustments", id)
}

// =============================================================================
// COMPANY POLICY
// =============================================================================

func (s *Store) GetPolicy(ctx context.Context) (engine.CompanyPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPolicy(ctx, s.db)
}

func (s *Store) getPolicy(ctx context.Context, q querier) (engine.CompanyPolicy, error) {
	var encoded string
	err := q.QueryRowContext(ctx, `SELECT weekend_days FROM company_policy WHERE id = 1`).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.CompanyPolicy{WeekendDays: engine.DefaultWeekend()}, nil
	}
	if err != nil {
		return engine.CompanyPolicy{}, fmt.Errorf("get policy: %w", err)
	}
	return engine.CompanyPolicy{WeekendDays: decodeWeekend(encoded)}, nil
}

func (s *Store) SetPolicy(ctx context.Context, p engine.CompanyPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO company_policy (id, weekend_days) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET weekend_days = excluded.weekend_days`,
		encodeWeekend(p.WeekendDays),
	)
	if err != nil {
		return fmt.Errorf("set policy: %w", err)
	}
	return nil
}

// =============================================================================
// SNAPSHOT LOADING
// =============================================================================

// LoadBalanceInput reads one employee's full record snapshot inside a
// single read transaction, so the engine sees a consistent view.
func (s *Store) LoadBalanceInput(ctx context.Context, employeeID string) (engine.BalanceInput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return engine.BalanceInput{}, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	emp, err := s.getEmployee(ctx, tx, employeeID)
	if err != nil {
		return engine.BalanceInput{}, err
	}
	leaves, err := s.listLeaves(ctx, tx, employeeID)
	if err != nil {
		return engine.BalanceInput{}, err
	}
	departures, err := s.listDepartures(ctx, tx, employeeID)
	if err != nil {
		return engine.BalanceInput{}, err
	}
	holidayWork, err := s.listHolidayWork(ctx, tx, employeeID)
	if err != nil {
		return engine.BalanceInput{}, err
	}
	adjustments, err := s.listAdjustments(ctx, tx, employeeID)
	if err != nil {
		return engine.BalanceInput{}, err
	}

	return engine.BalanceInput{
		Employee:    emp,
		Leaves:      leaves,
		Departures:  departures,
		HolidayWork: holidayWork,
		Adjustments: adjustments,
	}, nil
}

// LoadCalendar reads the holiday calendar and weekend policy together, for
// span calculation and worked-day classification.
func (s *Store) LoadCalendar(ctx context.Context) (engine.HolidaySet, engine.WeekendSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	holidays, err := s.listHolidays(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	policy, err := s.getPolicy(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewHolidaySet(holidays), policy.WeekendDays, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullDate(d *engine.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// encodeWeekend stores the weekday set as comma-separated indices, e.g. "5,6".
func encodeWeekend(ws engine.WeekendSet) string {
	idx := ws.Indices()
	parts := make([]string, len(idx))
	for i, d := range idx {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func decodeWeekend(encoded string) engine.WeekendSet {
	if encoded == "" {
		return engine.NewWeekendSet()
	}
	var days []int
	for _, part := range strings.Split(encoded, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			days = append(days, n)
		}
	}
	return engine.NewWeekendSet(days...)
}
