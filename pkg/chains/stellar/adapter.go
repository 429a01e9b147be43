// Package stellar provides the Stellar chain adapter: it encodes MPC-derived Ed25519
// keys as Stellar accounts, builds unsigned payment transactions against Horizon and
// splices externally produced signatures into submittable envelopes.
package stellar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stellar/go/clients/horizonclient"

	"github.com/sigweihq/mpcbridge/pkg/chains"
	"github.com/sigweihq/mpcbridge/pkg/constants"
	"github.com/sigweihq/mpcbridge/pkg/mpckey"
	"github.com/sigweihq/mpcbridge/pkg/types"
)

// Config holds the construction parameters for a Stellar adapter.
type Config struct {
	// Required: the network selector (constants.NetworkStellar or
	// constants.NetworkStellarTestnet).
	Network string

	// Optional: overrides the network's default Horizon endpoint.
	HorizonURL string

	// Deriver is the remote key-derivation capability. Exactly one of Deriver or
	// Contract must be set.
	Deriver mpckey.KeyDeriver

	// Contract is an injected derivation-contract collaborator; the matching calling
	// convention is selected once at construction (see mpckey.SelectKeyDeriver).
	Contract any

	// ContractID names the signer contract a Contract collaborator is called against.
	ContractID string

	// Optional: defaults to slog.Default().
	Logger *slog.Logger
}

func (c Config) validate() error {
	if _, ok := constants.NetworkToPassphrase[c.Network]; !ok {
		return &UnsupportedNetworkError{Network: c.Network}
	}
	if c.Deriver == nil && c.Contract == nil {
		return errors.New("a key deriver or a contract collaborator is required")
	}
	if c.Deriver != nil && c.Contract != nil {
		return errors.New("key deriver and contract collaborator are mutually exclusive")
	}
	return nil
}

// Adapter provides Stellar operations for MPC-backed transfers. It is immutable after
// construction and safe to share across concurrent requests; it holds no session state
// between calls.
type Adapter struct {
	network    string
	passphrase string
	horizonURL string

	derivation  *DerivationClient
	accounts    *AccountClient
	builder     *TxBuilder
	splicer     *SignatureSplicer
	broadcaster *BroadcastClient
}

var _ chains.ChainAdapter = (*Adapter)(nil)

// New creates a Stellar adapter from cfg.
func New(cfg Config) (*Adapter, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("failed to validate adapter config: %w", err)
	}

	deriver := cfg.Deriver
	if deriver == nil {
		var err error
		deriver, err = mpckey.SelectKeyDeriver(cfg.Contract, cfg.ContractID)
		if err != nil {
			return nil, err
		}
	}

	horizonURL := cfg.HorizonURL
	if horizonURL == "" {
		horizonURL = constants.NetworkToHorizonURL[cfg.Network]
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	horizon := &horizonclient.Client{
		HorizonURL: horizonURL,
		HTTP:       &http.Client{Timeout: constants.HorizonTimeout},
	}

	accounts := &AccountClient{horizon: horizon, logger: logger}

	return &Adapter{
		network:     cfg.Network,
		passphrase:  constants.NetworkToPassphrase[cfg.Network],
		horizonURL:  horizonURL,
		derivation:  &DerivationClient{deriver: deriver, logger: logger},
		accounts:    accounts,
		builder:     &TxBuilder{accounts: accounts, passphrase: constants.NetworkToPassphrase[cfg.Network], logger: logger},
		splicer:     &SignatureSplicer{logger: logger},
		broadcaster: &BroadcastClient{horizon: horizon, logger: logger},
	}, nil
}

// Network implements chains.ChainAdapter
func (a *Adapter) Network() string {
	return a.network
}

// AddressDeriver implements chains.ChainAdapter
func (a *Adapter) AddressDeriver() chains.AddressDeriver {
	return a.derivation
}

// Ledger implements chains.ChainAdapter
func (a *Adapter) Ledger() chains.Ledger {
	return a.accounts
}

// TransactionBuilder implements chains.ChainAdapter
func (a *Adapter) TransactionBuilder() chains.TransactionBuilder {
	return a.builder
}

// SignatureFinalizer implements chains.ChainAdapter
func (a *Adapter) SignatureFinalizer() chains.SignatureFinalizer {
	return a.splicer
}

// Broadcaster implements chains.ChainAdapter
func (a *Adapter) Broadcaster() chains.Broadcaster {
	return a.broadcaster
}

// EstimateFee implements chains.ChainAdapter. Stellar fees are a flat per-operation
// minimum; there is no estimation call.
func (a *Adapter) EstimateFee() int64 {
	return constants.StellarBaseFee
}

// NetworkInfo implements chains.ChainAdapter
func (a *Adapter) NetworkInfo() types.NetworkInfo {
	return types.NetworkInfo{
		Network:    a.network,
		Passphrase: a.passphrase,
		HorizonURL: a.horizonURL,
		Decimals:   constants.StellarNativeDecimals,
	}
}

// DeriveAddressAndPublicKey derives the Stellar account for (identity, path).
func (a *Adapter) DeriveAddressAndPublicKey(ctx context.Context, identity, path string) (*types.DerivedKey, error) {
	return a.derivation.DeriveAddressAndPublicKey(ctx, identity, path)
}

// GetBalance returns the native balance of address in stroops.
func (a *Adapter) GetBalance(ctx context.Context, address string) (*types.Balance, error) {
	return a.accounts.GetBalance(ctx, address)
}

// PrepareTransactionForSigning builds an unsigned payment and the hash to sign.
func (a *Adapter) PrepareTransactionForSigning(ctx context.Context, req *types.TransferRequest) (*types.PreparedTransaction, error) {
	return a.builder.PrepareTransactionForSigning(ctx, req)
}

// FinalizeTransactionSigning splices the signatures in and serializes the envelope.
func (a *Adapter) FinalizeTransactionSigning(ctx context.Context, prepared *types.PreparedTransaction, signatures []any) (string, error) {
	return a.splicer.FinalizeTransactionSigning(ctx, prepared, signatures)
}

// BroadcastTx submits a signed envelope and returns the transaction hash.
func (a *Adapter) BroadcastTx(ctx context.Context, envelope string) (*types.BroadcastResult, error) {
	return a.broadcaster.BroadcastTx(ctx, envelope)
}
