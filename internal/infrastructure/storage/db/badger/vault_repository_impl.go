package dbbadger

import (
	"context"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
)

type vaultRepositoryImpl struct {
	store *badgerhold.Store

	// Serializes read-modify-write cycles on vaults so no operation
	// ever observes a partially applied update.
	lock *sync.Mutex
}

// NewVaultRepositoryImpl initializes a badger implementation of the
// domain.VaultRepository.
func NewVaultRepositoryImpl(store *badgerhold.Store) domain.VaultRepository {
	return &vaultRepositoryImpl{store: store, lock: &sync.Mutex{}}
}

func (r *vaultRepositoryImpl) AddVault(
	_ context.Context, vault *domain.Vault,
) error {
	return r.store.Insert(vault.ID, *vault)
}

func (r *vaultRepositoryImpl) GetVault(
	_ context.Context, id string,
) (*domain.Vault, error) {
	var vault domain.Vault
	if err := r.store.Get(id, &vault); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrVaultNotFound
		}
		return nil, err
	}
	return &vault, nil
}

func (r *vaultRepositoryImpl) GetAllVaults(
	_ context.Context,
) ([]domain.Vault, error) {
	var vaults []domain.Vault
	if err := r.store.Find(&vaults, nil); err != nil {
		return nil, err
	}
	return vaults, nil
}

// UpdateVault loads the vault, hands it to the closure and persists the
// result within a single badger transaction. If the closure fails nothing
// is written.
func (r *vaultRepositoryImpl) UpdateVault(
	_ context.Context,
	id string, updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var vault domain.Vault
		if err := r.store.TxGet(tx, id, &vault); err != nil {
			if err == badgerhold.ErrNotFound {
				return domain.ErrVaultNotFound
			}
			return err
		}

		updated, err := updateFn(&vault)
		if err != nil {
			return err
		}

		return r.store.TxUpdate(tx, id, *updated)
	})
}
