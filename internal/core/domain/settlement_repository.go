package domain

import "context"

// SettlementRepository is the abstraction for any kind of database intended
// to persist Settlements.
type SettlementRepository interface {
	// AddSettlement adds the given settlement record to the repository.
	AddSettlement(ctx context.Context, settlement Settlement) error
	// ListSettlementsForVault returns the settlements related to the
	// given vault.
	ListSettlementsForVault(
		ctx context.Context, vaultID string, page Page,
	) ([]Settlement, error)
}
