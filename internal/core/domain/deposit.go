package domain

// NativeAsset is the reserved asset identifier of the native currency in
// deposit and withdrawal records.
const NativeAsset = "native"

// Deposit is the audit record of funds entering a vault.
type Deposit struct {
	ID        string
	VaultID   string
	Depositor string
	Asset     string
	Amount    uint64
	Timestamp int64
}
