package inmemory

import (
	"github.com/heirvault/heirvault-daemon/internal/core/domain"
	"github.com/heirvault/heirvault-daemon/internal/core/ports"
)

// RepoManager holds all the in-memory repositories in a single place. It
// is used by tests and as a throwaway backend for local development.
type RepoManager struct {
	vaultRepository      domain.VaultRepository
	depositRepository    domain.DepositRepository
	withdrawalRepository domain.WithdrawalRepository
	settlementRepository domain.SettlementRepository
}

// NewRepoManager returns a RepoManager with all repositories empty.
func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		vaultRepository:      NewVaultRepositoryImpl(),
		depositRepository:    NewDepositRepositoryImpl(),
		withdrawalRepository: NewWithdrawalRepositoryImpl(),
		settlementRepository: NewSettlementRepositoryImpl(),
	}
}

func (d *RepoManager) VaultRepository() domain.VaultRepository {
	return d.vaultRepository
}

func (d *RepoManager) DepositRepository() domain.DepositRepository {
	return d.depositRepository
}

func (d *RepoManager) WithdrawalRepository() domain.WithdrawalRepository {
	return d.withdrawalRepository
}

func (d *RepoManager) SettlementRepository() domain.SettlementRepository {
	return d.settlementRepository
}

func (d *RepoManager) Close() {}
