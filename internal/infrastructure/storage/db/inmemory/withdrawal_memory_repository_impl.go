package inmemory

import (
	"context"
	"sync"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
)

// WithdrawalRepositoryImpl represents an in-memory storage of withdrawal
// records.
type WithdrawalRepositoryImpl struct {
	withdrawals []domain.Withdrawal

	lock *sync.RWMutex
}

// NewWithdrawalRepositoryImpl returns a new empty WithdrawalRepositoryImpl.
func NewWithdrawalRepositoryImpl() *WithdrawalRepositoryImpl {
	return &WithdrawalRepositoryImpl{
		withdrawals: make([]domain.Withdrawal, 0),
		lock:        &sync.RWMutex{},
	}
}

func (r *WithdrawalRepositoryImpl) AddWithdrawal(
	_ context.Context, withdrawal domain.Withdrawal,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.withdrawals = append(r.withdrawals, withdrawal)
	return nil
}

func (r *WithdrawalRepositoryImpl) ListWithdrawalsForVault(
	_ context.Context, vaultID string, page domain.Page,
) ([]domain.Withdrawal, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	withdrawals := make([]domain.Withdrawal, 0)
	for _, w := range r.withdrawals {
		if w.VaultID == vaultID {
			withdrawals = append(withdrawals, w)
		}
	}
	from, to := pageBounds(page, len(withdrawals))
	return withdrawals[from:to], nil
}

func (r *WithdrawalRepositoryImpl) ListAllWithdrawals(
	_ context.Context, page domain.Page,
) ([]domain.Withdrawal, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	withdrawals := make([]domain.Withdrawal, len(r.withdrawals))
	copy(withdrawals, r.withdrawals)
	from, to := pageBounds(page, len(withdrawals))
	return withdrawals[from:to], nil
}
