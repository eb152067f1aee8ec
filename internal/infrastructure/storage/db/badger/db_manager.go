package dbbadger

import (
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/timshannon/badgerhold/v4"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
	"github.com/heirvault/heirvault-daemon/internal/core/ports"
)

// repoManager holds all the badgerhold stores in a single data structure.
// Vaults live in their own store, the append-only audit records (deposits,
// withdrawals, settlements) share another one.
type repoManager struct {
	vaultStore   *badgerhold.Store
	historyStore *badgerhold.Store

	vaultRepository      domain.VaultRepository
	depositRepository    domain.DepositRepository
	withdrawalRepository domain.WithdrawalRepository
	settlementRepository domain.SettlementRepository
}

// NewRepoManager opens (or creates if missing) the badger stores under the
// given data dir and returns a RepoManager backed by them.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	vaultDb, err := createDb(filepath.Join(baseDbDir, "vaults"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening vaults db: %w", err)
	}

	historyDb, err := createDb(filepath.Join(baseDbDir, "history"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	return &repoManager{
		vaultStore:           vaultDb,
		historyStore:         historyDb,
		vaultRepository:      NewVaultRepositoryImpl(vaultDb),
		depositRepository:    NewDepositRepositoryImpl(historyDb),
		withdrawalRepository: NewWithdrawalRepositoryImpl(historyDb),
		settlementRepository: NewSettlementRepositoryImpl(historyDb),
	}, nil
}

func (r *repoManager) VaultRepository() domain.VaultRepository {
	return r.vaultRepository
}

func (r *repoManager) DepositRepository() domain.DepositRepository {
	return r.depositRepository
}

func (r *repoManager) WithdrawalRepository() domain.WithdrawalRepository {
	return r.withdrawalRepository
}

func (r *repoManager) SettlementRepository() domain.SettlementRepository {
	return r.settlementRepository
}

func (r *repoManager) Close() {
	r.vaultStore.Close()
	r.historyStore.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	opts.Compression = options.ZSTD

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
