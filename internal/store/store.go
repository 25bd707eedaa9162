// Package store provides the SQLite-backed ledger behind the engine.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stash-cli/stash/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the SQLite database holding expenses, vaults, contributions,
// budgets, the transfer snapshot and the profile.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveExpense inserts an expense with its allocation breakdown.
func (s *Store) SaveExpense(e model.Expense) error {
	includesTax := 0
	if e.IncludesTax {
		includesTax = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO expenses
		(id, amount_cents, category, description, date, includes_tax,
		 emergency_cents, investment_cents, fun_cents, safe_invest_cents,
		 high_risk_cents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.AmountCents, e.Category, e.Description,
		e.Date.UTC().Format(time.RFC3339), includesTax,
		e.Breakdown.EmergencyCents, e.Breakdown.InvestmentCents,
		e.Breakdown.FunCents, e.Breakdown.SafeInvestmentCents,
		e.Breakdown.HighRiskInvestmentCents,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListExpensesSince returns expenses dated on or after the cutoff, oldest
// first. A zero cutoff returns everything.
func (s *Store) ListExpensesSince(cutoff time.Time) ([]model.Expense, error) {
	rows, err := s.db.Query(`SELECT
		id, amount_cents, category, description, date, includes_tax,
		emergency_cents, investment_cents, fun_cents, safe_invest_cents,
		high_risk_cents
		FROM expenses WHERE date >= ? ORDER BY date`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var desc sql.NullString
		var dateStr string
		var includesTax int
		err := rows.Scan(
			&e.ID, &e.AmountCents, &e.Category, &desc, &dateStr, &includesTax,
			&e.Breakdown.EmergencyCents, &e.Breakdown.InvestmentCents,
			&e.Breakdown.FunCents, &e.Breakdown.SafeInvestmentCents,
			&e.Breakdown.HighRiskInvestmentCents,
		)
		if err != nil {
			return nil, err
		}
		e.Description = desc.String
		e.IncludesTax = includesTax != 0
		e.Date, _ = time.Parse(time.RFC3339, dateStr)
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// ListExpenses returns every logged expense, oldest first.
func (s *Store) ListExpenses() ([]model.Expense, error) {
	return s.ListExpensesSince(time.Time{})
}

// DeleteExpense removes one expense by id.
func (s *Store) DeleteExpense(id string) error {
	_, err := s.db.Exec("DELETE FROM expenses WHERE id = ?", id)
	return err
}

// ExpenseCount returns the number of logged expenses.
func (s *Store) ExpenseCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM expenses").Scan(&count)
	return count, err
}

// SaveIncome inserts a logged income event.
func (s *Store) SaveIncome(in model.Income) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO incomes
		(id, amount_cents, skim_cents, date, note) VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.AmountCents, in.SkimCents,
		in.Date.UTC().Format(time.RFC3339), in.Note)
	return err
}

// ListIncomesSince returns income events dated on or after the cutoff,
// oldest first.
func (s *Store) ListIncomesSince(cutoff time.Time) ([]model.Income, error) {
	rows, err := s.db.Query(`SELECT id, amount_cents, skim_cents, date, note
		FROM incomes WHERE date >= ? ORDER BY date`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var incomes []model.Income
	for rows.Next() {
		var in model.Income
		var note sql.NullString
		var dateStr string
		if err := rows.Scan(&in.ID, &in.AmountCents, &in.SkimCents, &dateStr, &note); err != nil {
			return nil, err
		}
		in.Note = note.String
		in.Date, _ = time.Parse(time.RFC3339, dateStr)
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

// SaveVault inserts or replaces a vault.
func (s *Store) SaveVault(v model.SmartVault) error {
	archived := 0
	if v.Archived {
		archived = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO vaults
		(id, name, target_cents, balance_cents, priority, vault_type,
		 alloc_mode, manual_pct, target_date, start_date, end_date,
		 monthly_need_cents, auto_schedule, auto_deposit_cents, archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, v.TargetCents, v.BalanceCents, int(v.Priority),
		int(v.Type), int(v.Mode), v.ManualAllocationPct,
		formatDate(v.TargetDate), formatDate(v.StartDate), formatDate(v.EndDate),
		v.MonthlyNeedCents, v.AutoDepositSchedule, v.AutoDepositCents,
		archived, v.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetVault loads one vault by id.
func (s *Store) GetVault(id string) (model.SmartVault, error) {
	row := s.db.QueryRow(vaultSelect+" WHERE id = ?", id)
	return scanVault(row)
}

// ListVaults returns vaults ordered by id. Archived vaults are included
// only when requested.
func (s *Store) ListVaults(includeArchived bool) ([]model.SmartVault, error) {
	query := vaultSelect
	if !includeArchived {
		query += " WHERE archived = 0"
	}
	rows, err := s.db.Query(query + " ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var vaults []model.SmartVault
	for rows.Next() {
		v, err := scanVault(rows)
		if err != nil {
			return nil, err
		}
		vaults = append(vaults, v)
	}
	return vaults, rows.Err()
}

// ArchiveVault marks a vault archived. Contributions keep referencing it.
func (s *Store) ArchiveVault(id string) error {
	_, err := s.db.Exec("UPDATE vaults SET archived = 1 WHERE id = ?", id)
	return err
}

// ApplyContributions inserts contributions and bumps each vault's balance
// in one transaction, so a crash never leaves the ledger half applied.
func (s *Store) ApplyContributions(contribs []model.VaultContribution) error {
	if len(contribs) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range contribs {
		reconciled := 0
		if c.Reconciled {
			reconciled = 1
		}
		_, err := tx.Exec(`INSERT INTO contributions
			(id, vault_id, amount_cents, date, source, reconciled)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.VaultID, c.AmountCents,
			c.Date.UTC().Format(time.RFC3339), int(c.Source), reconciled)
		if err != nil {
			return err
		}
		_, err = tx.Exec("UPDATE vaults SET balance_cents = balance_cents + ? WHERE id = ?",
			c.AmountCents, c.VaultID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListContributions returns a vault's ledger entries, oldest first.
func (s *Store) ListContributions(vaultID string) ([]model.VaultContribution, error) {
	rows, err := s.db.Query(`SELECT id, vault_id, amount_cents, date, source, reconciled
		FROM contributions WHERE vault_id = ? ORDER BY date`, vaultID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var contribs []model.VaultContribution
	for rows.Next() {
		var c model.VaultContribution
		var dateStr string
		var source, reconciled int
		if err := rows.Scan(&c.ID, &c.VaultID, &c.AmountCents, &dateStr, &source, &reconciled); err != nil {
			return nil, err
		}
		c.Date, _ = time.Parse(time.RFC3339, dateStr)
		c.Source = model.ContributionSource(source)
		c.Reconciled = reconciled != 0
		contribs = append(contribs, c)
	}
	return contribs, rows.Err()
}

// ReconcileContribution marks one ledger entry as confirmed moved.
func (s *Store) ReconcileContribution(id string) error {
	_, err := s.db.Exec("UPDATE contributions SET reconciled = 1 WHERE id = ?", id)
	return err
}

// SaveBudget inserts or replaces a category budget. The category is the
// natural key, so re-setting a limit replaces the old row.
func (s *Store) SaveBudget(b model.CategoryBudget) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM budgets WHERE category = ?", b.Category); err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT INTO budgets (id, category, limit_cents, created_at)
		VALUES (?, ?, ?, ?)`,
		b.ID, b.Category, b.LimitCents, b.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}
	return tx.Commit()
}

// ListBudgets returns all category budgets ordered by category.
func (s *Store) ListBudgets() ([]model.CategoryBudget, error) {
	rows, err := s.db.Query("SELECT id, category, limit_cents, created_at FROM budgets ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.CategoryBudget
	for rows.Next() {
		var b model.CategoryBudget
		var createdStr string
		if err := rows.Scan(&b.ID, &b.Category, &b.LimitCents, &createdStr); err != nil {
			return nil, err
		}
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// DeleteBudget removes the budget for a category.
func (s *Store) DeleteBudget(category model.ExpenseCategory) error {
	_, err := s.db.Exec("DELETE FROM budgets WHERE category = ?", category)
	return err
}

// TransferSnapshot loads the persisted accumulator. A missing row reads as
// the zero snapshot.
func (s *Store) TransferSnapshot() (model.SmartTransferSnapshot, error) {
	var snap model.SmartTransferSnapshot
	err := s.db.QueryRow(`SELECT
		pending_emergency_cents, pending_investment_cents, pending_count,
		awaiting_emergency_cents, awaiting_investment_cents, awaiting_count,
		last_expense_ms, confirmation_started_ms
		FROM transfer_snapshot WHERE id = 1`).Scan(
		&snap.PendingEmergencyCents, &snap.PendingInvestmentCents, &snap.PendingExpenseCount,
		&snap.AwaitingEmergencyCents, &snap.AwaitingInvestmentCents, &snap.AwaitingExpenseCount,
		&snap.LastExpenseEpochMillis, &snap.ConfirmationStartedEpochMillis,
	)
	if err == sql.ErrNoRows {
		return model.SmartTransferSnapshot{}, nil
	}
	return snap, err
}

// UpdateTransferSnapshot reads the accumulator, applies fn and writes the
// result back inside a single immediate transaction. The write lock is taken
// before the read, so concurrent processes logging expenses at the same time
// serialize instead of overwriting each other's contributions.
func (s *Store) UpdateTransferSnapshot(apply func(model.SmartTransferSnapshot) model.SmartTransferSnapshot) (model.SmartTransferSnapshot, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return model.SmartTransferSnapshot{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var snap model.SmartTransferSnapshot
	err = tx.QueryRow(`SELECT
		pending_emergency_cents, pending_investment_cents, pending_count,
		awaiting_emergency_cents, awaiting_investment_cents, awaiting_count,
		last_expense_ms, confirmation_started_ms
		FROM transfer_snapshot WHERE id = 1`).Scan(
		&snap.PendingEmergencyCents, &snap.PendingInvestmentCents, &snap.PendingExpenseCount,
		&snap.AwaitingEmergencyCents, &snap.AwaitingInvestmentCents, &snap.AwaitingExpenseCount,
		&snap.LastExpenseEpochMillis, &snap.ConfirmationStartedEpochMillis,
	)
	if err != nil && err != sql.ErrNoRows {
		return model.SmartTransferSnapshot{}, err
	}

	snap = apply(snap)

	if _, err := tx.Exec(`INSERT OR REPLACE INTO transfer_snapshot
		(id, pending_emergency_cents, pending_investment_cents, pending_count,
		 awaiting_emergency_cents, awaiting_investment_cents, awaiting_count,
		 last_expense_ms, confirmation_started_ms)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.PendingEmergencyCents, snap.PendingInvestmentCents, snap.PendingExpenseCount,
		snap.AwaitingEmergencyCents, snap.AwaitingInvestmentCents, snap.AwaitingExpenseCount,
		snap.LastExpenseEpochMillis, snap.ConfirmationStartedEpochMillis,
	); err != nil {
		return model.SmartTransferSnapshot{}, err
	}
	return snap, tx.Commit()
}

// Profile loads the stored profile. The second return is false when setup
// has never run.
func (s *Store) Profile() (model.Profile, bool, error) {
	var p model.Profile
	var risk string
	var hasDebts, employed, student int
	err := s.db.QueryRow(`SELECT
		age, risk, monthly_income_cents, has_debts, debt_cents, country_code,
		employed, student, save_rate, saving_tax_rate,
		emergency_balance_cents, monthly_expenses_cents
		FROM profile WHERE id = 1`).Scan(
		&p.Age, &risk, &p.MonthlyIncomeCents, &hasDebts, &p.DebtCents,
		&p.CountryCode, &employed, &student, &p.SaveRate, &p.SavingTaxRate,
		&p.EmergencyBalanceCents, &p.MonthlyExpensesCents,
	)
	if err == sql.ErrNoRows {
		return model.Profile{}, false, nil
	}
	if err != nil {
		return model.Profile{}, false, err
	}
	p.Risk = model.ParseRiskLevel(risk)
	p.HasDebts = hasDebts != 0
	p.Employed = employed != 0
	p.Student = student != 0
	return p, true, nil
}

// SaveProfile replaces the single profile row.
func (s *Store) SaveProfile(p model.Profile) error {
	boolInt := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO profile
		(id, age, risk, monthly_income_cents, has_debts, debt_cents,
		 country_code, employed, student, save_rate, saving_tax_rate,
		 emergency_balance_cents, monthly_expenses_cents)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Age, p.Risk.String(), p.MonthlyIncomeCents, boolInt(p.HasDebts),
		p.DebtCents, p.CountryCode, boolInt(p.Employed), boolInt(p.Student),
		p.SaveRate, p.SavingTaxRate, p.EmergencyBalanceCents, p.MonthlyExpensesCents,
	)
	return err
}

const vaultSelect = `SELECT
	id, name, target_cents, balance_cents, priority, vault_type,
	alloc_mode, manual_pct, target_date, start_date, end_date,
	monthly_need_cents, auto_schedule, auto_deposit_cents, archived, created_at
	FROM vaults`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVault(row rowScanner) (model.SmartVault, error) {
	var v model.SmartVault
	var priority, vaultType, mode, archived int
	var targetDate, startDate, endDate, schedule sql.NullString
	var createdStr string
	err := row.Scan(
		&v.ID, &v.Name, &v.TargetCents, &v.BalanceCents, &priority, &vaultType,
		&mode, &v.ManualAllocationPct, &targetDate, &startDate, &endDate,
		&v.MonthlyNeedCents, &schedule, &v.AutoDepositCents, &archived, &createdStr,
	)
	if err != nil {
		return model.SmartVault{}, err
	}
	v.Priority = model.VaultPriority(priority)
	v.Type = model.VaultType(vaultType)
	v.Mode = model.VaultAllocationMode(mode)
	v.AutoDepositSchedule = schedule.String
	v.Archived = archived != 0
	v.TargetDate = parseDate(targetDate)
	v.StartDate = parseDate(startDate)
	v.EndDate = parseDate(endDate)
	v.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return v, nil
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
