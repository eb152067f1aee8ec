package domain

import "context"

// WithdrawalRepository is the abstraction for any kind of database intended
// to persist Withdrawals.
type WithdrawalRepository interface {
	// AddWithdrawal adds the given withdrawal record to the repository.
	AddWithdrawal(ctx context.Context, withdrawal Withdrawal) error
	// ListWithdrawalsForVault returns the withdrawals related to the
	// given vault.
	ListWithdrawalsForVault(
		ctx context.Context, vaultID string, page Page,
	) ([]Withdrawal, error)
	// ListAllWithdrawals returns the withdrawals of all vaults.
	ListAllWithdrawals(ctx context.Context, page Page) ([]Withdrawal, error)
}
