package stellar

import "fmt"

// UnsupportedNetworkError is returned when a network is not supported
type UnsupportedNetworkError struct {
	Network string
}

func (e *UnsupportedNetworkError) Error() string {
	return fmt.Sprintf("unsupported network: %s", e.Network)
}

// BalanceQueryFailedError is returned when a ledger balance lookup fails for any reason
// other than the account not existing yet
type BalanceQueryFailedError struct {
	Address string
	Err     error
}

func (e *BalanceQueryFailedError) Error() string {
	return fmt.Sprintf("balance query failed for %s: %v", e.Address, e.Err)
}

func (e *BalanceQueryFailedError) Unwrap() error {
	return e.Err
}

// SourceAccountLoadFailedError is returned when the source account's sequence number
// cannot be loaded; transaction assembly cannot proceed without it
type SourceAccountLoadFailedError struct {
	Address string
	Err     error
}

func (e *SourceAccountLoadFailedError) Error() string {
	return fmt.Sprintf("failed to load source account %s: %v", e.Address, e.Err)
}

func (e *SourceAccountLoadFailedError) Unwrap() error {
	return e.Err
}

// BroadcastFailedError is returned when the submission endpoint rejects a transaction.
// RemoteBody carries the raw problem document returned by the endpoint.
type BroadcastFailedError struct {
	RemoteBody string
	Err        error
}

func (e *BroadcastFailedError) Error() string {
	if e.RemoteBody != "" {
		return fmt.Sprintf("transaction broadcast failed: %v: %s", e.Err, e.RemoteBody)
	}
	return fmt.Sprintf("transaction broadcast failed: %v", e.Err)
}

func (e *BroadcastFailedError) Unwrap() error {
	return e.Err
}
