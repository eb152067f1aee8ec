package domain

import "context"

// VaultRepository is the abstraction for any kind of database intended to
// persist Vaults.
type VaultRepository interface {
	// AddVault adds a new vault to the repository.
	AddVault(ctx context.Context, vault *Vault) error
	// GetVault returns the vault with the given id, ErrVaultNotFound if
	// it does not exist.
	GetVault(ctx context.Context, id string) (*Vault, error)
	// GetAllVaults returns all vaults.
	GetAllVaults(ctx context.Context) ([]Vault, error)
	// UpdateVault updates the state of a vault. The closure lets the
	// caller commit multiple changes in a transactional way: if it
	// returns an error nothing is persisted, and no other operation
	// observes a partially applied state.
	UpdateVault(
		ctx context.Context,
		id string, updateFn func(v *Vault) (*Vault, error),
	) error
}
