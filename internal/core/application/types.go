package application

import (
	"sort"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
)

// BalanceInfo pairs an asset with the amount of it held by a vault.
type BalanceInfo struct {
	Asset  string `json:"asset"`
	Amount uint64 `json:"amount"`
}

// VaultInfo is the portable view of a vault returned by the service layer.
type VaultInfo struct {
	ID                 string        `json:"id"`
	Owner              string        `json:"owner"`
	TimeLock           uint64        `json:"timelock"`
	LastHeartbeat      int64         `json:"last_heartbeat"`
	Unlocked           bool          `json:"unlocked"`
	SecondsUntilUnlock uint64        `json:"seconds_until_unlock"`
	NativeBalance      uint64        `json:"native_balance"`
	TokenBalances      []BalanceInfo `json:"token_balances"`
	Beneficiaries      []string      `json:"beneficiaries"`
	TotalBeneficiaries int           `json:"total_beneficiaries"`
}

// SettlementInfo is the portable view of a completed settlement.
type SettlementInfo struct {
	VaultID      string        `json:"vault_id"`
	Beneficiary  string        `json:"beneficiary"`
	NativeAmount uint64        `json:"native_amount"`
	TokenAmounts []BalanceInfo `json:"token_amounts"`
	Timestamp    int64         `json:"timestamp"`
}

// DepositInfo ...
type DepositInfo struct {
	VaultID   string `json:"vault_id"`
	Depositor string `json:"depositor"`
	Asset     string `json:"asset"`
	Amount    uint64 `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// WithdrawalInfo ...
type WithdrawalInfo struct {
	VaultID   string `json:"vault_id"`
	Receiver  string `json:"receiver"`
	Asset     string `json:"asset"`
	Amount    uint64 `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

func vaultInfoFromDomain(v *domain.Vault, now int64) *VaultInfo {
	balances := make([]BalanceInfo, 0, len(v.TokensInEscrow))
	for _, asset := range v.TokensInEscrow {
		balances = append(balances, BalanceInfo{
			Asset:  asset,
			Amount: v.GetTokenBalance(asset),
		})
	}

	beneficiaries := make([]string, 0, len(v.Beneficiaries))
	for b := range v.Beneficiaries {
		beneficiaries = append(beneficiaries, b)
	}
	sort.Strings(beneficiaries)

	return &VaultInfo{
		ID:                 v.ID,
		Owner:              v.Owner,
		TimeLock:           v.TimeLock,
		LastHeartbeat:      v.LastHeartbeat,
		Unlocked:           v.IsUnlocked(now),
		SecondsUntilUnlock: v.SecondsUntilUnlock(now),
		NativeBalance:      v.NativeBalance,
		TokenBalances:      balances,
		Beneficiaries:      beneficiaries,
		TotalBeneficiaries: v.TotalBeneficiaries(),
	}
}

func settlementInfoFromDomain(s *domain.Settlement) *SettlementInfo {
	amounts := make([]BalanceInfo, 0, len(s.TokenAmounts))
	for _, ta := range s.TokenAmounts {
		amounts = append(amounts, BalanceInfo{Asset: ta.Asset, Amount: ta.Amount})
	}
	return &SettlementInfo{
		VaultID:      s.VaultID,
		Beneficiary:  s.Beneficiary,
		NativeAmount: s.NativeAmount,
		TokenAmounts: amounts,
		Timestamp:    s.Timestamp,
	}
}
