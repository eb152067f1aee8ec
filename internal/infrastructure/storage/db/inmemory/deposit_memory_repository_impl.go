package inmemory

import (
	"context"
	"sync"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
)

// DepositRepositoryImpl represents an in-memory storage of deposit records.
type DepositRepositoryImpl struct {
	deposits []domain.Deposit

	lock *sync.RWMutex
}

// NewDepositRepositoryImpl returns a new empty DepositRepositoryImpl.
func NewDepositRepositoryImpl() *DepositRepositoryImpl {
	return &DepositRepositoryImpl{
		deposits: make([]domain.Deposit, 0),
		lock:     &sync.RWMutex{},
	}
}

func (r *DepositRepositoryImpl) AddDeposit(
	_ context.Context, deposit domain.Deposit,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.deposits = append(r.deposits, deposit)
	return nil
}

func (r *DepositRepositoryImpl) ListDepositsForVault(
	_ context.Context, vaultID string, page domain.Page,
) ([]domain.Deposit, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	deposits := make([]domain.Deposit, 0)
	for _, d := range r.deposits {
		if d.VaultID == vaultID {
			deposits = append(deposits, d)
		}
	}
	return paginateDeposits(deposits, page), nil
}

func (r *DepositRepositoryImpl) ListAllDeposits(
	_ context.Context, page domain.Page,
) ([]domain.Deposit, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	deposits := make([]domain.Deposit, len(r.deposits))
	copy(deposits, r.deposits)
	return paginateDeposits(deposits, page), nil
}

func paginateDeposits(
	deposits []domain.Deposit, page domain.Page,
) []domain.Deposit {
	from, to := pageBounds(page, len(deposits))
	return deposits[from:to]
}

// pageBounds clamps the page window to the list length.
func pageBounds(page domain.Page, length int) (int, int) {
	from := (page.Number - 1) * page.Size
	if from < 0 || from > length {
		from = length
	}
	to := from + page.Size
	if to > length {
		to = length
	}
	return from, to
}
