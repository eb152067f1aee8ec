package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
)

const (
	vaultID     = "4663ac52-f066-4a52-9568-86300bb46917"
	owner       = "owner0000000000000000000000000000000001"
	stranger    = "stranger00000000000000000000000000000001"
	beneficiary = "beneficiary0000000000000000000000000001"
	tokenA      = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	tokenB      = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

const (
	oneDay  = int64(86400)
	oneYear = uint64(365 * 86400)
)

func newTestVault(t *testing.T, now int64) *domain.Vault {
	t.Helper()

	v, err := domain.NewVault(vaultID, owner, oneYear, now)
	require.NoError(t, err)
	require.NotNil(t, v)
	return v
}

func TestNewVault(t *testing.T) {
	t.Parallel()

	now := int64(1700000000)
	v := newTestVault(t, now)

	require.Equal(t, owner, v.Owner)
	require.Equal(t, oneYear, v.TimeLock)
	require.Equal(t, now, v.LastHeartbeat)
	require.Zero(t, v.NativeBalance)
	require.Zero(t, v.TotalBeneficiaries())
	require.Empty(t, v.TokensInEscrow)
	require.False(t, v.IsUnlocked(now))
}

func TestFailingNewVault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		owner         string
		timeLock      uint64
		expectedError error
	}{
		{
			name:          "missing_owner",
			owner:         "",
			timeLock:      oneYear,
			expectedError: domain.ErrMissingOwner,
		},
		{
			name:          "zero_timelock",
			owner:         owner,
			timeLock:      0,
			expectedError: domain.ErrInvalidTimeLock,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := domain.NewVault(vaultID, tt.owner, tt.timeLock, 0)
			require.Nil(t, v)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestLivenessClock(t *testing.T) {
	t.Parallel()

	now := int64(1700000000)
	v := newTestVault(t, now)

	require.False(t, v.IsUnlocked(now))
	require.False(t, v.IsUnlocked(now+int64(oneYear)-1))
	require.True(t, v.IsUnlocked(now+int64(oneYear)))
	require.Equal(t, oneYear, v.SecondsUntilUnlock(now))
	require.Zero(t, v.SecondsUntilUnlock(now+int64(oneYear)+oneDay))

	// Any successful owner-originated call re-locks an unlocked vault.
	unlockedAt := now + int64(oneYear) + oneDay
	require.NoError(t, v.DepositNative(owner, 1, unlockedAt))
	require.False(t, v.IsUnlocked(unlockedAt))
	require.Equal(t, unlockedAt, v.LastHeartbeat)
}

func TestHeartbeatIsOwnerOnly(t *testing.T) {
	t.Parallel()

	now := int64(1700000000)
	v := newTestVault(t, now)

	require.NoError(t, v.DepositNative(stranger, 100, now+oneDay))
	require.Equal(t, now, v.LastHeartbeat)

	require.NoError(t, v.DepositNative(owner, 100, now+oneDay))
	require.Equal(t, now+oneDay, v.LastHeartbeat)

	// The clock never moves backwards.
	require.NoError(t, v.DepositNative(owner, 100, now))
	require.Equal(t, now+oneDay, v.LastHeartbeat)
}

func TestRecordHeartbeat(t *testing.T) {
	t.Parallel()

	now := int64(1700000000)
	v := newTestVault(t, now)

	err := v.RecordHeartbeat(stranger, now+oneDay)
	require.EqualError(t, err, domain.ErrNotOwner.Error())
	require.Equal(t, now, v.LastHeartbeat)

	require.NoError(t, v.RecordHeartbeat(owner, now+oneDay))
	require.Equal(t, now+oneDay, v.LastHeartbeat)
}

func TestNativeBalanceConservation(t *testing.T) {
	t.Parallel()

	now := int64(1700000000)
	v := newTestVault(t, now)

	var deposited, withdrawn uint64
	for _, amount := range []uint64{100, 250, 1, 49} {
		require.NoError(t, v.DepositNative(owner, amount, now))
		deposited += amount
	}
	for _, amount := range []uint64{30, 70} {
		require.NoError(t, v.WithdrawNative(owner, amount, now))
		withdrawn += amount
	}

	require.Equal(t, deposited-withdrawn, v.NativeBalance)

	err := v.WithdrawNative(owner, v.NativeBalance+1, now)
	require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
	require.Equal(t, deposited-withdrawn, v.NativeBalance)
}

func TestFailingDepositsAndWithdrawals(t *testing.T) {
	t.Parallel()

	now := int64(1700000000)

	tests := []struct {
		name          string
		op            func(v *domain.Vault) error
		expectedError error
	}{
		{
			name: "zero_native_deposit",
			op: func(v *domain.Vault) error {
				return v.DepositNative(owner, 0, now)
			},
			expectedError: domain.ErrInvalidAmount,
		},
		{
			name: "zero_token_deposit",
			op: func(v *domain.Vault) error {
				return v.CreditToken(owner, tokenA, 0, now)
			},
			expectedError: domain.ErrInvalidAmount,
		},
		{
			name: "token_deposit_without_asset",
			op: func(v *domain.Vault) error {
				return v.CreditToken(owner, "", 10, now)
			},
			expectedError: domain.ErrInvalidAsset,
		},
		{
			name: "native_withdrawal_by_non_owner",
			op: func(v *domain.Vault) error {
				return v.WithdrawNative(stranger, 1, now)
			},
			expectedError: domain.ErrNotOwner,
		},
		{
			name: "token_withdrawal_by_non_owner",
			op: func(v *domain.Vault) error {
				return v.WithdrawToken(stranger, tokenA, 1, now)
			},
			expectedError: domain.ErrNotOwner,
		},
		{
			name: "token_withdrawal_exceeding_balance",
			op: func(v *domain.Vault) error {
				if err := v.CreditToken(owner, tokenA, 10, now); err != nil {
					return err
				}
				return v.WithdrawToken(owner, tokenA, 11, now)
			},
			expectedError: domain.ErrInsufficientTokenBalance,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := newTestVault(t, now)
			require.EqualError(t, tt.op(v), tt.expectedError.Error())
		})
	}
}

func TestTokenEscrowRegistry(t *testing.T) {
	t.Parallel()

	now := int64(1700000000)
	v := newTestVault(t, now)

	require.NoError(t, v.CreditToken(owner, tokenA, 10, now))
	require.NoError(t, v.CreditToken(owner, tokenB, 20, now))
	require.NoError(t, v.CreditToken(owner, tokenA, 5, now))

	// Insertion order, no duplicates.
	require.Equal(t, []string{tokenA, tokenB}, v.TokensInEscrow)
	require.Equal(t, uint64(15), v.GetTokenBalance(tokenA))

	// Draining a token to zero drops it from the registry...
	require.NoError(t, v.WithdrawToken(owner, tokenA, 15, now))
	require.Equal(t, []string{tokenB}, v.TokensInEscrow)
	require.Zero(t, v.GetTokenBalance(tokenA))

	// ... and a re-deposit registers it at the back.
	require.NoError(t, v.CreditToken(owner, tokenA, 3, now))
	require.Equal(t, []string{tokenB, tokenA}, v.TokensInEscrow)
}

func TestBeneficiaryRegistry(t *testing.T) {
	t.Parallel()

	now := int64(1700000000)
	v := newTestVault(t, now)

	require.NoError(t, v.AddBeneficiary(owner, beneficiary, now))
	require.True(t, v.IsBeneficiary(beneficiary))
	require.Equal(t, 1, v.TotalBeneficiaries())

	err := v.AddBeneficiary(owner, beneficiary, now)
	require.EqualError(t, err, domain.ErrBeneficiaryAlreadyRegistered.Error())
	require.Equal(t, 1, v.TotalBeneficiaries())

	err = v.AddBeneficiary(stranger, stranger, now)
	require.EqualError(t, err, domain.ErrNotOwner.Error())

	require.NoError(t, v.RemoveBeneficiary(owner, beneficiary, now))
	require.False(t, v.IsBeneficiary(beneficiary))
	require.Zero(t, v.TotalBeneficiaries())

	err = v.RemoveBeneficiary(owner, beneficiary, now)
	require.EqualError(t, err, domain.ErrBeneficiaryNotFound.Error())
}

func TestResign(t *testing.T) {
	t.Parallel()

	now := int64(1700000000)
	v := newTestVault(t, now)

	require.NoError(t, v.AddBeneficiary(owner, beneficiary, now))

	err := v.Resign(stranger)
	require.EqualError(t, err, domain.ErrNotBeneficiary.Error())

	// Resigning never refreshes the heartbeat, so it cannot extend the
	// owner's grace period.
	heartbeat := v.LastHeartbeat
	require.NoError(t, v.Resign(beneficiary))
	require.False(t, v.IsBeneficiary(beneficiary))
	require.Equal(t, heartbeat, v.LastHeartbeat)
}
