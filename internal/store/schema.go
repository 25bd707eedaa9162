package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS expenses (
    id                   TEXT PRIMARY KEY,
    amount_cents         INTEGER NOT NULL,
    category             TEXT NOT NULL,
    description          TEXT,
    date                 TEXT NOT NULL,
    includes_tax         INTEGER NOT NULL DEFAULT 0,
    emergency_cents      INTEGER NOT NULL,
    investment_cents     INTEGER NOT NULL,
    fun_cents            INTEGER NOT NULL,
    safe_invest_cents    INTEGER NOT NULL,
    high_risk_cents      INTEGER NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS incomes (
    id                   TEXT PRIMARY KEY,
    amount_cents         INTEGER NOT NULL,
    skim_cents           INTEGER NOT NULL,
    date                 TEXT NOT NULL,
    note                 TEXT
);

CREATE TABLE IF NOT EXISTS vaults (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    target_cents         INTEGER NOT NULL DEFAULT 0,
    balance_cents        INTEGER NOT NULL DEFAULT 0,
    priority             INTEGER NOT NULL DEFAULT 0,
    vault_type           INTEGER NOT NULL DEFAULT 0,
    alloc_mode           INTEGER NOT NULL DEFAULT 0,
    manual_pct           REAL NOT NULL DEFAULT 0,
    target_date          TEXT,
    start_date           TEXT,
    end_date             TEXT,
    monthly_need_cents   INTEGER NOT NULL DEFAULT 0,
    auto_schedule        TEXT,
    auto_deposit_cents   INTEGER NOT NULL DEFAULT 0,
    archived             INTEGER NOT NULL DEFAULT 0,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS contributions (
    id                   TEXT PRIMARY KEY,
    vault_id             TEXT NOT NULL REFERENCES vaults(id),
    amount_cents         INTEGER NOT NULL,
    date                 TEXT NOT NULL,
    source               INTEGER NOT NULL DEFAULT 0,
    reconciled           INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS budgets (
    id                   TEXT PRIMARY KEY,
    category             TEXT NOT NULL UNIQUE,
    limit_cents          INTEGER NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transfer_snapshot (
    id                        INTEGER PRIMARY KEY CHECK (id = 1),
    pending_emergency_cents   INTEGER NOT NULL DEFAULT 0,
    pending_investment_cents  INTEGER NOT NULL DEFAULT 0,
    pending_count             INTEGER NOT NULL DEFAULT 0,
    awaiting_emergency_cents  INTEGER NOT NULL DEFAULT 0,
    awaiting_investment_cents INTEGER NOT NULL DEFAULT 0,
    awaiting_count            INTEGER NOT NULL DEFAULT 0,
    last_expense_ms           INTEGER NOT NULL DEFAULT 0,
    confirmation_started_ms   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS profile (
    id                      INTEGER PRIMARY KEY CHECK (id = 1),
    age                     INTEGER NOT NULL DEFAULT 0,
    risk                    TEXT NOT NULL DEFAULT 'balanced',
    monthly_income_cents    INTEGER NOT NULL DEFAULT 0,
    has_debts               INTEGER NOT NULL DEFAULT 0,
    debt_cents              INTEGER NOT NULL DEFAULT 0,
    country_code            TEXT NOT NULL DEFAULT 'US',
    employed                INTEGER NOT NULL DEFAULT 0,
    student                 INTEGER NOT NULL DEFAULT 0,
    save_rate               REAL NOT NULL DEFAULT 0,
    saving_tax_rate         REAL NOT NULL DEFAULT 0,
    emergency_balance_cents INTEGER NOT NULL DEFAULT 0,
    monthly_expenses_cents  INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category);
CREATE INDEX IF NOT EXISTS idx_contributions_vault ON contributions(vault_id);
CREATE INDEX IF NOT EXISTS idx_contributions_date ON contributions(date);
`
