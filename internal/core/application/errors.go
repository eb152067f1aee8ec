package application

import "errors"

var (
	// ErrTransferFailed is returned when the external asset-transfer
	// capability reports a failure. The operation it belongs to is
	// aborted entirely.
	ErrTransferFailed = errors.New("external asset transfer failed")
)
