package chains

import (
	"context"
	"fmt"

	"github.com/sigweihq/mpcbridge/pkg/types"
)

// Design inspired by renproject/multichain with MPC-specific extensions
// https://github.com/renproject/multichain

// ChainAdapter provides blockchain-specific operations for MPC-backed transfers
type ChainAdapter interface {
	// Network returns the network name (e.g., "stellar", "stellar-testnet")
	Network() string

	// AddressDeriver returns the remote derivation client for this chain
	AddressDeriver() AddressDeriver

	// Ledger returns the ledger query client for this chain
	Ledger() Ledger

	// TransactionBuilder returns the unsigned-transaction builder for this chain
	TransactionBuilder() TransactionBuilder

	// SignatureFinalizer returns the signature splicer for this chain
	SignatureFinalizer() SignatureFinalizer

	// Broadcaster returns the submission client for this chain
	Broadcaster() Broadcaster

	// EstimateFee returns the per-operation fee in the chain's smallest unit
	EstimateFee() int64

	// NetworkInfo returns metadata about the network the adapter is bound to
	NetworkInfo() types.NetworkInfo
}

// AddressDeriver resolves an external identity and derivation path to a chain-native
// address through a remote key-derivation capability
type AddressDeriver interface {
	// DeriveAddressAndPublicKey derives the public key for (identity, path) and encodes
	// it as a chain-native address
	DeriveAddressAndPublicKey(ctx context.Context, identity, path string) (*types.DerivedKey, error)
}

// Ledger answers read-only queries against the chain's remote ledger
type Ledger interface {
	// GetBalance returns the native-asset balance for an address in the chain's
	// smallest unit. An address unknown to the ledger is a zero balance, not an error.
	GetBalance(ctx context.Context, address string) (*types.Balance, error)
}

// TransactionBuilder assembles unsigned transactions and their canonical hashes
type TransactionBuilder interface {
	// PrepareTransactionForSigning builds an unsigned transfer and returns it together
	// with the hashes an external signer must sign
	PrepareTransactionForSigning(ctx context.Context, req *types.TransferRequest) (*types.PreparedTransaction, error)
}

// SignatureFinalizer splices externally produced signatures into a prepared transaction
type SignatureFinalizer interface {
	// FinalizeTransactionSigning attaches the signatures to the transaction and returns
	// the serialized signed envelope. Each signature may arrive in any of the supported
	// wire shapes; see the mpckey package for the canonical form.
	FinalizeTransactionSigning(ctx context.Context, prepared *types.PreparedTransaction, signatures []any) (string, error)
}

// Broadcaster submits serialized signed transactions to the chain
type Broadcaster interface {
	// BroadcastTx submits the envelope and returns the remote-assigned transaction hash
	BroadcastTx(ctx context.Context, envelope string) (*types.BroadcastResult, error)
}

// Stage identifies where in the transfer pipeline a failure occurred.
type Stage string

const (
	StageDerive     Stage = "derive address"
	StageLoadSource Stage = "load source account"
	StageBuild      Stage = "build transaction"
	StageSplice     Stage = "splice signature"
	StageBroadcast  Stage = "broadcast transaction"
)

// StageError tags an error with the pipeline stage it occurred at. Every failure is
// terminal for the current transaction attempt; nothing in the pipeline retries.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
