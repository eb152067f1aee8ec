package domain

// Vault defines the entity data structure of a dead-man's-switch vault: a
// single owner deposits native units and fungible tokens, and a set of
// beneficiaries becomes entitled to the content in equal shares once the
// owner stops heartbeating for longer than the timelock.
type Vault struct {
	// Unique identifier of the vault.
	ID string
	// Account that created the vault. Fixed for the whole lifetime.
	Owner string
	// Seconds of owner silence after which the vault unlocks.
	TimeLock uint64
	// Unix timestamp of the last successful owner-originated operation.
	LastHeartbeat int64
	// Native units currently held, mutated in lockstep with every
	// credit and debit.
	NativeBalance uint64
	// Amount held per token asset.
	TokenBalances map[string]uint64
	// Token assets currently in escrow, in first-deposit order. A token
	// is listed here iff it has a TokenBalances entry.
	TokensInEscrow []string
	// Accounts entitled to settle once the vault unlocks.
	Beneficiaries map[string]struct{}
}

// NewVault returns a new locked vault owned by the given account. The
// heartbeat starts at construction time.
func NewVault(id, owner string, timeLock uint64, now int64) (*Vault, error) {
	if len(owner) <= 0 {
		return nil, ErrMissingOwner
	}
	if timeLock <= 0 {
		return nil, ErrInvalidTimeLock
	}

	return &Vault{
		ID:            id,
		Owner:         owner,
		TimeLock:      timeLock,
		LastHeartbeat: now,
		TokenBalances: map[string]uint64{},
		Beneficiaries: map[string]struct{}{},
	}, nil
}

// IsOwner returns whether the given account owns the vault.
func (v *Vault) IsOwner(account string) bool {
	return account == v.Owner
}

// IsUnlocked returns whether the timelock has elapsed since the last
// heartbeat. This is a computed predicate, not a sticky flag: the owner
// re-locks the vault by performing any heartbeat-refreshing operation.
func (v *Vault) IsUnlocked(now int64) bool {
	return now >= v.LastHeartbeat+int64(v.TimeLock)
}

// SecondsUntilUnlock returns how long the vault stays locked, 0 if it is
// already unlocked.
func (v *Vault) SecondsUntilUnlock(now int64) uint64 {
	if v.IsUnlocked(now) {
		return 0
	}
	return uint64(v.LastHeartbeat + int64(v.TimeLock) - now)
}

// DepositNative credits native units to the vault. Anyone can deposit;
// the attached value is treated as already received, so the credit is
// unconditional.
func (v *Vault) DepositNative(actor string, amount uint64, now int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	v.NativeBalance += amount
	v.refreshHeartbeat(actor, now)
	return nil
}

// CreditToken credits an amount of a token asset to the vault ledger and
// registers the asset as in escrow if it is not yet. The actual pull of
// funds from the depositor happens at the application layer before the
// credit is committed.
func (v *Vault) CreditToken(actor, asset string, amount uint64, now int64) error {
	if len(asset) <= 0 {
		return ErrInvalidAsset
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if _, ok := v.TokenBalances[asset]; !ok {
		v.TokensInEscrow = append(v.TokensInEscrow, asset)
	}
	v.TokenBalances[asset] += amount
	v.refreshHeartbeat(actor, now)
	return nil
}

// WithdrawNative debits native units. Owner only.
func (v *Vault) WithdrawNative(actor string, amount uint64, now int64) error {
	if !v.IsOwner(actor) {
		return ErrNotOwner
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > v.NativeBalance {
		return ErrInsufficientBalance
	}

	v.NativeBalance -= amount
	v.refreshHeartbeat(actor, now)
	return nil
}

// WithdrawToken debits an amount of a token asset. Owner only. A token
// drained to zero is dropped from the escrow registry; a later deposit
// registers it again at the back of the iteration order.
func (v *Vault) WithdrawToken(actor, asset string, amount uint64, now int64) error {
	if !v.IsOwner(actor) {
		return ErrNotOwner
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > v.TokenBalances[asset] {
		return ErrInsufficientTokenBalance
	}

	v.TokenBalances[asset] -= amount
	if v.TokenBalances[asset] == 0 {
		v.unregisterToken(asset)
	}
	v.refreshHeartbeat(actor, now)
	return nil
}

// RecordHeartbeat is the owner's explicit check-in: it refreshes the
// liveness clock without touching anything else. Owner only.
func (v *Vault) RecordHeartbeat(actor string, now int64) error {
	if !v.IsOwner(actor) {
		return ErrNotOwner
	}

	v.refreshHeartbeat(actor, now)
	return nil
}

// AddBeneficiary registers an account as beneficiary. Owner only.
// Re-adding a registered beneficiary is rejected so that the beneficiary
// count always equals the registry cardinality.
func (v *Vault) AddBeneficiary(actor, beneficiary string, now int64) error {
	if !v.IsOwner(actor) {
		return ErrNotOwner
	}
	if _, ok := v.Beneficiaries[beneficiary]; ok {
		return ErrBeneficiaryAlreadyRegistered
	}

	v.Beneficiaries[beneficiary] = struct{}{}
	v.refreshHeartbeat(actor, now)
	return nil
}

// RemoveBeneficiary deregisters an account. Owner only.
func (v *Vault) RemoveBeneficiary(actor, beneficiary string, now int64) error {
	if !v.IsOwner(actor) {
		return ErrNotOwner
	}
	if _, ok := v.Beneficiaries[beneficiary]; !ok {
		return ErrBeneficiaryNotFound
	}

	delete(v.Beneficiaries, beneficiary)
	v.refreshHeartbeat(actor, now)
	return nil
}

// Resign removes the calling beneficiary from the registry. It must not
// refresh the heartbeat: a beneficiary stepping down cannot extend the
// owner's grace period.
func (v *Vault) Resign(actor string) error {
	if !v.IsBeneficiary(actor) {
		return ErrNotBeneficiary
	}

	delete(v.Beneficiaries, actor)
	return nil
}

// IsBeneficiary returns whether the given account is registered.
func (v *Vault) IsBeneficiary(account string) bool {
	_, ok := v.Beneficiaries[account]
	return ok
}

// TotalBeneficiaries returns the number of registered beneficiaries.
func (v *Vault) TotalBeneficiaries() int {
	return len(v.Beneficiaries)
}

// GetTokenBalance returns the held amount of the given asset.
func (v *Vault) GetTokenBalance(asset string) uint64 {
	return v.TokenBalances[asset]
}

// refreshHeartbeat moves the liveness clock forward as a side effect of a
// successful owner-originated operation. Calls by anyone else never touch
// the clock. The heartbeat is monotonically non-decreasing.
func (v *Vault) refreshHeartbeat(actor string, now int64) {
	if !v.IsOwner(actor) {
		return
	}
	if now > v.LastHeartbeat {
		v.LastHeartbeat = now
	}
}

func (v *Vault) unregisterToken(asset string) {
	delete(v.TokenBalances, asset)
	for i, a := range v.TokensInEscrow {
		if a == asset {
			v.TokensInEscrow = append(v.TokensInEscrow[:i], v.TokensInEscrow[i+1:]...)
			return
		}
	}
}
