package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
)

type withdrawalRepositoryImpl struct {
	store *badgerhold.Store
}

// NewWithdrawalRepositoryImpl initializes a badger implementation of the
// domain.WithdrawalRepository.
func NewWithdrawalRepositoryImpl(
	store *badgerhold.Store,
) domain.WithdrawalRepository {
	return withdrawalRepositoryImpl{store}
}

func (r withdrawalRepositoryImpl) AddWithdrawal(
	_ context.Context, withdrawal domain.Withdrawal,
) error {
	if err := r.store.Insert(withdrawal.ID, withdrawal); err != nil {
		if err != badgerhold.ErrKeyExists {
			return err
		}
	}
	return nil
}

func (r withdrawalRepositoryImpl) ListWithdrawalsForVault(
	_ context.Context, vaultID string, page domain.Page,
) ([]domain.Withdrawal, error) {
	query := badgerhold.Where("VaultID").Eq(vaultID).SortBy("Timestamp")
	return r.findWithdrawals(paginated(query, page))
}

func (r withdrawalRepositoryImpl) ListAllWithdrawals(
	_ context.Context, page domain.Page,
) ([]domain.Withdrawal, error) {
	query := badgerhold.Where("Timestamp").Ge(int64(0)).SortBy("Timestamp")
	return r.findWithdrawals(paginated(query, page))
}

func (r withdrawalRepositoryImpl) findWithdrawals(
	query *badgerhold.Query,
) ([]domain.Withdrawal, error) {
	var withdrawals []domain.Withdrawal
	if err := r.store.Find(&withdrawals, query); err != nil {
		return nil, err
	}
	return withdrawals, nil
}
