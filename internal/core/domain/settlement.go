package domain

// TokenAmount pairs a token asset with an amount.
type TokenAmount struct {
	Asset  string
	Amount uint64
}

// Payout is the outcome of a settlement: what a single beneficiary is owed
// out of the vault at the moment it settles.
type Payout struct {
	Beneficiary  string
	NativeAmount uint64
	TokenAmounts []TokenAmount
}

// Settlement is the persisted audit record of a completed settlement.
type Settlement struct {
	ID           string
	VaultID      string
	Beneficiary  string
	NativeAmount uint64
	TokenAmounts []TokenAmount
	Timestamp    int64
}

// Settle pays the calling beneficiary its pro-rata share of everything the
// vault currently holds and removes it from the registry, so a second call
// by the same account fails with ErrNotBeneficiary.
//
// Shares use integer division against the balance and the beneficiary
// count at the moment of the call; the remainder stays in the vault and
// accrues to whoever settles last. This is part of the observable
// contract and must not be smoothed out with rational arithmetic.
func (v *Vault) Settle(actor string, now int64) (*Payout, error) {
	if !v.IsBeneficiary(actor) {
		return nil, ErrNotBeneficiary
	}
	if !v.IsUnlocked(now) {
		return nil, ErrVaultLocked
	}

	total := uint64(v.TotalBeneficiaries())

	payout := &Payout{Beneficiary: actor}

	payout.NativeAmount = v.NativeBalance / total
	v.NativeBalance -= payout.NativeAmount

	for _, asset := range v.TokensInEscrow {
		balance := v.TokenBalances[asset]
		share := balance / total
		// Residual dust from earlier roundings goes to the last
		// settler rather than being stranded.
		if balance > share {
			v.TokenBalances[asset] = balance - share
		} else {
			v.TokenBalances[asset] = 0
		}
		payout.TokenAmounts = append(payout.TokenAmounts, TokenAmount{
			Asset:  asset,
			Amount: share,
		})
	}

	delete(v.Beneficiaries, actor)

	// Once the last beneficiary has settled the escrow registry is reset,
	// so a later deposit cycle starts clean.
	if v.TotalBeneficiaries() == 0 {
		v.TokensInEscrow = nil
		v.TokenBalances = map[string]uint64{}
	}

	v.refreshHeartbeat(actor, now)
	return payout, nil
}
