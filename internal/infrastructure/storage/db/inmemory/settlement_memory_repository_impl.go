package inmemory

import (
	"context"
	"sync"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
)

// SettlementRepositoryImpl represents an in-memory storage of settlement
// records.
type SettlementRepositoryImpl struct {
	settlements []domain.Settlement

	lock *sync.RWMutex
}

// NewSettlementRepositoryImpl returns a new empty SettlementRepositoryImpl.
func NewSettlementRepositoryImpl() *SettlementRepositoryImpl {
	return &SettlementRepositoryImpl{
		settlements: make([]domain.Settlement, 0),
		lock:        &sync.RWMutex{},
	}
}

func (r *SettlementRepositoryImpl) AddSettlement(
	_ context.Context, settlement domain.Settlement,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.settlements = append(r.settlements, settlement)
	return nil
}

func (r *SettlementRepositoryImpl) ListSettlementsForVault(
	_ context.Context, vaultID string, page domain.Page,
) ([]domain.Settlement, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	settlements := make([]domain.Settlement, 0)
	for _, s := range r.settlements {
		if s.VaultID == vaultID {
			settlements = append(settlements, s)
		}
	}
	from, to := pageBounds(page, len(settlements))
	return settlements[from:to], nil
}
