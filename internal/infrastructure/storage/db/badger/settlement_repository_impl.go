package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
)

type settlementRepositoryImpl struct {
	store *badgerhold.Store
}

// NewSettlementRepositoryImpl initializes a badger implementation of the
// domain.SettlementRepository.
func NewSettlementRepositoryImpl(
	store *badgerhold.Store,
) domain.SettlementRepository {
	return settlementRepositoryImpl{store}
}

func (r settlementRepositoryImpl) AddSettlement(
	_ context.Context, settlement domain.Settlement,
) error {
	if err := r.store.Insert(settlement.ID, settlement); err != nil {
		if err != badgerhold.ErrKeyExists {
			return err
		}
	}
	return nil
}

func (r settlementRepositoryImpl) ListSettlementsForVault(
	_ context.Context, vaultID string, page domain.Page,
) ([]domain.Settlement, error) {
	query := badgerhold.Where("VaultID").Eq(vaultID).SortBy("Timestamp")

	var settlements []domain.Settlement
	if err := r.store.Find(&settlements, paginated(query, page)); err != nil {
		return nil, err
	}
	return settlements, nil
}
