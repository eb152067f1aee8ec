package domain

import "errors"

var (
	// ErrVaultNotFound is returned when looking up a vault that was never created.
	ErrVaultNotFound = errors.New("vault not found")
	// ErrNotOwner is returned when an owner-only operation is attempted by anyone else.
	ErrNotOwner = errors.New("operation is restricted to the vault owner")
	// ErrNotBeneficiary is returned when the caller is not a registered beneficiary.
	ErrNotBeneficiary = errors.New("caller is not a registered beneficiary")
	// ErrVaultLocked is returned when settling before the timelock has elapsed.
	ErrVaultLocked = errors.New("vault is still locked by the owner's heartbeat")
	// ErrInsufficientBalance ...
	ErrInsufficientBalance = errors.New("insufficient native balance")
	// ErrInsufficientTokenBalance ...
	ErrInsufficientTokenBalance = errors.New("insufficient token balance")
	// ErrBeneficiaryAlreadyRegistered is returned when re-adding a registered beneficiary.
	ErrBeneficiaryAlreadyRegistered = errors.New("beneficiary is already registered")
	// ErrBeneficiaryNotFound ...
	ErrBeneficiaryNotFound = errors.New("beneficiary is not registered")
	// ErrInvalidAmount is returned for zero-amount deposits and withdrawals.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInvalidAsset ...
	ErrInvalidAsset = errors.New("asset must not be empty")
	// ErrInvalidTimeLock ...
	ErrInvalidTimeLock = errors.New("timelock must be greater than zero")
	// ErrMissingOwner ...
	ErrMissingOwner = errors.New("owner must not be empty")
)
