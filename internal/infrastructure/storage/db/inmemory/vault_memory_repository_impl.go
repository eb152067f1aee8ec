package inmemory

import (
	"context"
	"sync"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
)

// VaultRepositoryImpl represents an in-memory storage of vaults.
type VaultRepositoryImpl struct {
	vaults map[string]domain.Vault

	lock *sync.RWMutex
}

// NewVaultRepositoryImpl returns a new empty VaultRepositoryImpl.
func NewVaultRepositoryImpl() *VaultRepositoryImpl {
	return &VaultRepositoryImpl{
		vaults: map[string]domain.Vault{},
		lock:   &sync.RWMutex{},
	}
}

func (r *VaultRepositoryImpl) AddVault(
	_ context.Context, vault *domain.Vault,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.vaults[vault.ID] = *copyVault(vault)
	return nil
}

func (r *VaultRepositoryImpl) GetVault(
	_ context.Context, id string,
) (*domain.Vault, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	vault, ok := r.vaults[id]
	if !ok {
		return nil, domain.ErrVaultNotFound
	}
	return copyVault(&vault), nil
}

func (r *VaultRepositoryImpl) GetAllVaults(
	_ context.Context,
) ([]domain.Vault, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	vaults := make([]domain.Vault, 0, len(r.vaults))
	for _, v := range r.vaults {
		vaults = append(vaults, *copyVault(&v))
	}
	return vaults, nil
}

// UpdateVault hands a copy of the stored vault to the closure while holding
// the write lock. The copy replaces the stored state only when the closure
// succeeds, so a failed operation leaves no partial state behind and
// concurrent operations on the same vault are fully serialized.
func (r *VaultRepositoryImpl) UpdateVault(
	_ context.Context,
	id string, updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	current, ok := r.vaults[id]
	if !ok {
		return domain.ErrVaultNotFound
	}

	updated, err := updateFn(copyVault(&current))
	if err != nil {
		return err
	}

	r.vaults[id] = *copyVault(updated)
	return nil
}

func copyVault(v *domain.Vault) *domain.Vault {
	tokenBalances := make(map[string]uint64, len(v.TokenBalances))
	for asset, amount := range v.TokenBalances {
		tokenBalances[asset] = amount
	}

	var tokensInEscrow []string
	if v.TokensInEscrow != nil {
		tokensInEscrow = make([]string, len(v.TokensInEscrow))
		copy(tokensInEscrow, v.TokensInEscrow)
	}

	beneficiaries := make(map[string]struct{}, len(v.Beneficiaries))
	for b := range v.Beneficiaries {
		beneficiaries[b] = struct{}{}
	}

	vault := *v
	vault.TokenBalances = tokenBalances
	vault.TokensInEscrow = tokensInEscrow
	vault.Beneficiaries = beneficiaries
	return &vault
}
