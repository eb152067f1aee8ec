package ports

import "context"

// AssetMover abstracts the external transfer/transferFrom capability that
// moves fungible-token value between accounts. It is assumed reliable and
// atomic: when a call returns nil the value has moved, when it returns an
// error nothing has moved.
type AssetMover interface {
	// TransferIn pulls an amount of an asset from the given account
	// into the vault's custody account.
	TransferIn(ctx context.Context, asset, from string, amount uint64) error
	// TransferOut pays an amount of an asset (or of native units, with
	// asset set to domain.NativeAsset) out of custody to the given
	// account.
	TransferOut(ctx context.Context, asset, to string, amount uint64) error
}
