package inmemory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
	"github.com/heirvault/heirvault-daemon/internal/infrastructure/storage/db/inmemory"
)

func TestInMemoryVaultRepository(t *testing.T) {
	t.Parallel()

	repoManager := inmemory.NewRepoManager()
	repo := repoManager.VaultRepository()
	ctx := context.Background()

	vault, err := domain.NewVault(
		"0b4f0df9-70bd-467e-a3c9-db6da1e4bd4f",
		"owner0000000000000000000000000000000001",
		86400,
		1700000000,
	)
	require.NoError(t, err)
	require.NoError(t, repo.AddVault(ctx, vault))

	got, err := repo.GetVault(ctx, vault.ID)
	require.NoError(t, err)
	require.Equal(t, vault.Owner, got.Owner)

	// The repository hands out copies: mutating a result must not leak
	// into the stored state.
	got.NativeBalance = 9999
	got.TokenBalances["sneaky"] = 1
	fresh, err := repo.GetVault(ctx, vault.ID)
	require.NoError(t, err)
	require.Zero(t, fresh.NativeBalance)
	require.Empty(t, fresh.TokenBalances)

	_, err = repo.GetVault(ctx, "unknown")
	require.EqualError(t, err, domain.ErrVaultNotFound.Error())

	err = repo.UpdateVault(
		ctx, vault.ID, func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.DepositNative(v.Owner, 42, 1700000100); err != nil {
				return nil, err
			}
			return v, nil
		},
	)
	require.NoError(t, err)

	expectedErr := errors.New("abort")
	err = repo.UpdateVault(
		ctx, vault.ID, func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.DepositNative(v.Owner, 1000, 1700000200); err != nil {
				return nil, err
			}
			return nil, expectedErr
		},
	)
	require.EqualError(t, err, expectedErr.Error())

	got, err = repo.GetVault(ctx, vault.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(42), got.NativeBalance)
	require.Equal(t, int64(1700000100), got.LastHeartbeat)

	vaults, err := repo.GetAllVaults(ctx)
	require.NoError(t, err)
	require.Len(t, vaults, 1)
}

func TestInMemoryHistoryPaging(t *testing.T) {
	t.Parallel()

	repoManager := inmemory.NewRepoManager()
	repo := repoManager.DepositRepository()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.AddDeposit(ctx, domain.Deposit{
			ID:      string(rune('a' + i)),
			VaultID: "vault-1",
			Asset:   domain.NativeAsset,
			Amount:  uint64(i + 1),
		}))
	}

	page1, err := repo.ListDepositsForVault(ctx, "vault-1", domain.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, page1, 10)

	page3, err := repo.ListDepositsForVault(ctx, "vault-1", domain.NewPage(3, 10))
	require.NoError(t, err)
	require.Len(t, page3, 5)

	page4, err := repo.ListDepositsForVault(ctx, "vault-1", domain.NewPage(4, 10))
	require.NoError(t, err)
	require.Empty(t, page4)
}
