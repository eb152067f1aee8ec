package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
)

type depositRepositoryImpl struct {
	store *badgerhold.Store
}

// NewDepositRepositoryImpl initializes a badger implementation of the
// domain.DepositRepository.
func NewDepositRepositoryImpl(store *badgerhold.Store) domain.DepositRepository {
	return depositRepositoryImpl{store}
}

func (r depositRepositoryImpl) AddDeposit(
	_ context.Context, deposit domain.Deposit,
) error {
	if err := r.store.Insert(deposit.ID, deposit); err != nil {
		if err != badgerhold.ErrKeyExists {
			return err
		}
	}
	return nil
}

func (r depositRepositoryImpl) ListDepositsForVault(
	_ context.Context, vaultID string, page domain.Page,
) ([]domain.Deposit, error) {
	query := badgerhold.Where("VaultID").Eq(vaultID).SortBy("Timestamp")
	return r.findDeposits(paginated(query, page))
}

func (r depositRepositoryImpl) ListAllDeposits(
	_ context.Context, page domain.Page,
) ([]domain.Deposit, error) {
	query := badgerhold.Where("Timestamp").Ge(int64(0)).SortBy("Timestamp")
	return r.findDeposits(paginated(query, page))
}

func (r depositRepositoryImpl) findDeposits(
	query *badgerhold.Query,
) ([]domain.Deposit, error) {
	var deposits []domain.Deposit
	if err := r.store.Find(&deposits, query); err != nil {
		return nil, err
	}
	return deposits, nil
}

func paginated(query *badgerhold.Query, page domain.Page) *badgerhold.Query {
	from := page.Number*page.Size - page.Size
	return query.Skip(from).Limit(page.Size)
}
