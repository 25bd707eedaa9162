package model

// TransferStatus is the display state of the smart transfer aggregator.
type TransferStatus int

// Transfer statuses. AwaitingConfirmation is reached only by explicit user
// action; the other three derive from the pending bucket and timestamps.
const (
	TransferStandby TransferStatus = iota
	TransferAccumulating
	TransferReady
	TransferAwaitingConfirmation
)

func (s TransferStatus) String() string {
	switch s {
	case TransferAccumulating:
		return "accumulating"
	case TransferReady:
		return "ready"
	case TransferAwaitingConfirmation:
		return "awaiting-confirmation"
	default:
		return "standby"
	}
}

// SmartTransferSnapshot is the persisted accumulator behind the transfer
// recommendation. Integer cents are the unit of truth; dollar values are
// derived only at the read boundary.
type SmartTransferSnapshot struct {
	PendingEmergencyCents  int64
	PendingInvestmentCents int64
	PendingExpenseCount    int

	AwaitingEmergencyCents  int64
	AwaitingInvestmentCents int64
	AwaitingExpenseCount    int

	LastExpenseEpochMillis         int64
	ConfirmationStartedEpochMillis int64
}

// PendingTotalCents returns the sum of both pending buckets.
func (s SmartTransferSnapshot) PendingTotalCents() int64 {
	return s.PendingEmergencyCents + s.PendingInvestmentCents
}

// AwaitingTotalCents returns the sum of both awaiting-confirmation buckets.
func (s SmartTransferSnapshot) AwaitingTotalCents() int64 {
	return s.AwaitingEmergencyCents + s.AwaitingInvestmentCents
}

// SmartTransferRecommendation is the read-only projection handed to the UI.
type SmartTransferRecommendation struct {
	Status             TransferStatus
	EmergencyCents     int64
	InvestmentCents    int64
	TotalCents         int64
	ActiveExpenseCount int
	// EmergencyAmount and friends are the derived dollar values.
	EmergencyAmount  float64
	InvestmentAmount float64
	TotalAmount      float64
}
