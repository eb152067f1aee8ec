package domain

import "context"

// DepositRepository is the abstraction for any kind of database intended to
// persist Deposits.
type DepositRepository interface {
	// AddDeposit adds the given deposit record to the repository.
	AddDeposit(ctx context.Context, deposit Deposit) error
	// ListDepositsForVault returns the deposits related to the given vault.
	ListDepositsForVault(
		ctx context.Context, vaultID string, page Page,
	) ([]Deposit, error)
	// ListAllDeposits returns the deposits of all vaults.
	ListAllDeposits(ctx context.Context, page Page) ([]Deposit, error)
}
