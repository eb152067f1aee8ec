package domain

// Withdrawal is the audit record of funds leaving a vault through an
// owner withdrawal.
type Withdrawal struct {
	ID        string
	VaultID   string
	Receiver  string
	Asset     string
	Amount    uint64
	Timestamp int64
}
