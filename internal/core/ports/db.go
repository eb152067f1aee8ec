package ports

import (
	"github.com/heirvault/heirvault-daemon/internal/core/domain"
)

// RepoManager gives access to all the repositories of the daemon from a
// single place.
type RepoManager interface {
	VaultRepository() domain.VaultRepository
	DepositRepository() domain.DepositRepository
	WithdrawalRepository() domain.WithdrawalRepository
	SettlementRepository() domain.SettlementRepository

	Close()
}
