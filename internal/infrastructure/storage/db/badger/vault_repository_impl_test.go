package dbbadger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
	dbbadger "github.com/heirvault/heirvault-daemon/internal/infrastructure/storage/db/badger"
)

func TestVaultRepository(t *testing.T) {
	repoManager, err := dbbadger.NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	repo := repoManager.VaultRepository()
	ctx := context.Background()

	vault, err := domain.NewVault(
		"41e9c119-4d28-4b9b-b57c-bd499d197c34",
		"owner0000000000000000000000000000000001",
		86400,
		1700000000,
	)
	require.NoError(t, err)
	require.NoError(t, repo.AddVault(ctx, vault))

	t.Run("get_vault", func(t *testing.T) {
		got, err := repo.GetVault(ctx, vault.ID)
		require.NoError(t, err)
		require.Equal(t, vault.Owner, got.Owner)
		require.Equal(t, vault.TimeLock, got.TimeLock)
		require.Equal(t, vault.LastHeartbeat, got.LastHeartbeat)
	})

	t.Run("get_unknown_vault", func(t *testing.T) {
		got, err := repo.GetVault(ctx, "unknown")
		require.Nil(t, got)
		require.EqualError(t, err, domain.ErrVaultNotFound.Error())
	})

	t.Run("update_vault", func(t *testing.T) {
		err := repo.UpdateVault(
			ctx, vault.ID, func(v *domain.Vault) (*domain.Vault, error) {
				if err := v.DepositNative(v.Owner, 1000, 1700000100); err != nil {
					return nil, err
				}
				return v, nil
			},
		)
		require.NoError(t, err)

		got, err := repo.GetVault(ctx, vault.ID)
		require.NoError(t, err)
		require.Equal(t, uint64(1000), got.NativeBalance)
		require.Equal(t, int64(1700000100), got.LastHeartbeat)
	})

	t.Run("failed_update_leaves_no_partial_state", func(t *testing.T) {
		expectedErr := errors.New("something went wrong")
		err := repo.UpdateVault(
			ctx, vault.ID, func(v *domain.Vault) (*domain.Vault, error) {
				if err := v.DepositNative(v.Owner, 5000, 1700000200); err != nil {
					return nil, err
				}
				return nil, expectedErr
			},
		)
		require.EqualError(t, err, expectedErr.Error())

		got, err := repo.GetVault(ctx, vault.ID)
		require.NoError(t, err)
		require.Equal(t, uint64(1000), got.NativeBalance)
		require.Equal(t, int64(1700000100), got.LastHeartbeat)
	})

	t.Run("get_all_vaults", func(t *testing.T) {
		vaults, err := repo.GetAllVaults(ctx)
		require.NoError(t, err)
		require.Len(t, vaults, 1)
	})
}

func TestHistoryRepositories(t *testing.T) {
	repoManager, err := dbbadger.NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	ctx := context.Background()
	vaultID := "41e9c119-4d28-4b9b-b57c-bd499d197c34"
	page := domain.NewPage(1, 10)

	deposits := []domain.Deposit{
		{
			ID: "d1", VaultID: vaultID, Depositor: "alice",
			Asset: domain.NativeAsset, Amount: 100, Timestamp: 1,
		},
		{
			ID: "d2", VaultID: vaultID, Depositor: "bob",
			Asset: "token-a", Amount: 50, Timestamp: 2,
		},
		{
			ID: "d3", VaultID: "other-vault", Depositor: "carol",
			Asset: "token-a", Amount: 10, Timestamp: 3,
		},
	}
	for _, d := range deposits {
		require.NoError(t, repoManager.DepositRepository().AddDeposit(ctx, d))
	}

	got, err := repoManager.DepositRepository().ListDepositsForVault(
		ctx, vaultID, page,
	)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "d1", got[0].ID)
	require.Equal(t, "d2", got[1].ID)

	all, err := repoManager.DepositRepository().ListAllDeposits(ctx, page)
	require.NoError(t, err)
	require.Len(t, all, 3)

	withdrawal := domain.Withdrawal{
		ID: "w1", VaultID: vaultID, Receiver: "owner",
		Asset: domain.NativeAsset, Amount: 20, Timestamp: 4,
	}
	require.NoError(
		t, repoManager.WithdrawalRepository().AddWithdrawal(ctx, withdrawal),
	)
	withdrawals, err := repoManager.WithdrawalRepository().ListWithdrawalsForVault(
		ctx, vaultID, page,
	)
	require.NoError(t, err)
	require.Len(t, withdrawals, 1)

	settlement := domain.Settlement{
		ID: "s1", VaultID: vaultID, Beneficiary: "heir",
		NativeAmount: 40,
		TokenAmounts: []domain.TokenAmount{{Asset: "token-a", Amount: 25}},
		Timestamp:    5,
	}
	require.NoError(
		t, repoManager.SettlementRepository().AddSettlement(ctx, settlement),
	)
	settlements, err := repoManager.SettlementRepository().ListSettlementsForVault(
		ctx, vaultID, page,
	)
	require.NoError(t, err)
	require.Len(t, settlements, 1)
	require.Equal(t, settlement.TokenAmounts, settlements[0].TokenAmounts)
}
