package model

import "time"

// VaultPriority orders vaults for dynamic allocation. Higher values win a
// larger weight.
type VaultPriority int

// Vault priorities, lowest to highest.
const (
	PriorityLow VaultPriority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// Weight returns the base dynamic-allocation weight for the priority.
func (p VaultPriority) Weight() float64 {
	switch p {
	case PriorityCritical:
		return 5
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

func (p VaultPriority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

// VaultType classifies the savings horizon of a vault.
type VaultType int

// Vault types.
const (
	VaultShortTerm VaultType = iota
	VaultLongTerm
	VaultPassiveInvestment
)

func (t VaultType) String() string {
	switch t {
	case VaultLongTerm:
		return "long-term"
	case VaultPassiveInvestment:
		return "passive-investment"
	default:
		return "short-term"
	}
}

// VaultAllocationMode selects how a vault claims its share of a pool.
type VaultAllocationMode int

// Allocation modes.
const (
	// AllocationDynamicAuto competes for the pool by priority, urgency
	// and remaining progress.
	AllocationDynamicAuto VaultAllocationMode = iota
	// AllocationManual takes a fixed percentage of the pool.
	AllocationManual
)

func (m VaultAllocationMode) String() string {
	if m == AllocationManual {
		return "manual"
	}
	return "dynamic"
}

// SmartVault is a named savings destination. Vaults are archived, never
// deleted, while contributions still reference them.
type SmartVault struct {
	ID                 string
	Name               string
	TargetCents        int64
	BalanceCents       int64
	Priority           VaultPriority
	Type               VaultType
	Mode               VaultAllocationMode
	ManualAllocationPct float64 // only meaningful when Mode == AllocationManual
	TargetDate         *time.Time
	StartDate          *time.Time
	EndDate            *time.Time
	MonthlyNeedCents   int64
	// AutoDepositSchedule is a standard cron expression; empty disables.
	AutoDepositSchedule  string
	AutoDepositCents     int64
	Archived             bool
	CreatedAt            time.Time
}

// FullyFunded reports whether the vault has reached its target.
func (v SmartVault) FullyFunded() bool {
	return v.TargetCents > 0 && v.BalanceCents >= v.TargetCents
}

// Progress returns balance/target in [0,1]. A zero target reads as 0.
func (v SmartVault) Progress() float64 {
	if v.TargetCents <= 0 {
		return 0
	}
	p := float64(v.BalanceCents) / float64(v.TargetCents)
	if p > 1 {
		return 1
	}
	return p
}

// RemainingCents returns the unfunded portion of the target, never negative.
func (v SmartVault) RemainingCents() int64 {
	r := v.TargetCents - v.BalanceCents
	if r < 0 {
		return 0
	}
	return r
}

// ContributionSource records where a vault contribution came from.
type ContributionSource int

// Contribution sources.
const (
	SourceIncome ContributionSource = iota
	SourceSavingTax
	SourceAutoDeposit
	SourceManual
	SourceTransfer
)

func (s ContributionSource) String() string {
	switch s {
	case SourceIncome:
		return "income"
	case SourceSavingTax:
		return "saving-tax"
	case SourceAutoDeposit:
		return "auto-deposit"
	case SourceTransfer:
		return "transfer"
	default:
		return "manual"
	}
}

// VaultContribution is an append-only ledger entry against a vault.
// Reconciled stays false until the user confirms the money actually moved.
type VaultContribution struct {
	ID          string
	VaultID     string
	AmountCents int64
	Date        time.Time
	Source      ContributionSource
	Reconciled  bool
}
