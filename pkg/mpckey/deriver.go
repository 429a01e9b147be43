package mpckey

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// KeyDeriver is the capability chain adapters need from the remote derivation service:
// given a derivation path and a predecessor identity, return the raw Ed25519 public key.
type KeyDeriver interface {
	// DeriveKey returns exactly 32 raw public key bytes for (path, identity)
	DeriveKey(ctx context.Context, path, identity string) ([]byte, error)
}

// ViewFunctionCaller is the direct key-value-call contract convention
type ViewFunctionCaller interface {
	// ViewFunction issues a read-only call against a contract method
	ViewFunction(ctx context.Context, contractID, method string, args []byte) ([]byte, error)
}

// AccountOpener is the wrapped-account contract convention
type AccountOpener interface {
	// Account returns a handle bound to a single contract account
	Account(contractID string) AccountHandle
}

// AccountHandle is a single-account view obtained from an AccountOpener
type AccountHandle interface {
	ViewFunction(ctx context.Context, method string, args []byte) ([]byte, error)
}

// derivedPublicKeyMethod is the derivation view method on the signer contract.
const derivedPublicKeyMethod = "derived_public_key"

// derivationArgs is the view-call argument payload. The domain id is always sent:
// omitting it makes the remote service derive a secp256k1 key.
type derivationArgs struct {
	Path        string `json:"path"`
	Predecessor string `json:"predecessor_id"`
	DomainID    Domain `json:"domain_id"`
}

// SelectKeyDeriver wraps an injected collaborator in the matching KeyDeriver
// implementation. Selection happens once, at construction, never per call; a
// collaborator matching none of the supported conventions is rejected immediately.
func SelectKeyDeriver(collaborator any, contractID string) (KeyDeriver, error) {
	switch c := collaborator.(type) {
	case KeyDeriver:
		return c, nil
	case ViewFunctionCaller:
		return &ViewCallDeriver{Caller: c, ContractID: contractID}, nil
	case AccountOpener:
		return &AccountDeriver{Opener: c, ContractID: contractID}, nil
	default:
		return nil, &UnsupportedContractInterfaceError{Collaborator: fmt.Sprintf("%T", collaborator)}
	}
}

// ViewCallDeriver derives keys through a direct view-function-call collaborator
type ViewCallDeriver struct {
	Caller     ViewFunctionCaller
	ContractID string
}

var _ KeyDeriver = (*ViewCallDeriver)(nil)

// DeriveKey implements KeyDeriver
func (d *ViewCallDeriver) DeriveKey(ctx context.Context, path, identity string) ([]byte, error) {
	args, err := marshalDerivationArgs(path, identity)
	if err != nil {
		return nil, err
	}

	raw, err := d.Caller.ViewFunction(ctx, d.ContractID, derivedPublicKeyMethod, args)
	if err != nil {
		return nil, &DerivationFailedError{Err: err}
	}

	return parseDerivationResult(raw)
}

// AccountDeriver derives keys through a wrapped-account collaborator
type AccountDeriver struct {
	Opener     AccountOpener
	ContractID string
}

var _ KeyDeriver = (*AccountDeriver)(nil)

// DeriveKey implements KeyDeriver
func (d *AccountDeriver) DeriveKey(ctx context.Context, path, identity string) ([]byte, error) {
	args, err := marshalDerivationArgs(path, identity)
	if err != nil {
		return nil, err
	}

	raw, err := d.Opener.Account(d.ContractID).ViewFunction(ctx, derivedPublicKeyMethod, args)
	if err != nil {
		return nil, &DerivationFailedError{Err: err}
	}

	return parseDerivationResult(raw)
}

func marshalDerivationArgs(path, identity string) ([]byte, error) {
	args, err := json.Marshal(derivationArgs{
		Path:        path,
		Predecessor: identity,
		DomainID:    DomainEd25519,
	})
	if err != nil {
		return nil, &DerivationFailedError{Err: fmt.Errorf("marshal derivation args: %w", err)}
	}
	return args, nil
}

// parseDerivationResult decodes a view-call result into raw key bytes. The result is
// expected to be a JSON-encoded string of the form "ed25519:<base58>".
func parseDerivationResult(raw []byte) ([]byte, error) {
	var tagged string
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return nil, &UnexpectedFormatError{Detail: "derivation result is not a JSON string"}
	}
	return ParseTaggedKey(tagged)
}

// SignRequest is the payload handed to the remote signing capability for one hash.
type SignRequest struct {
	Path     string `json:"path"`
	DomainID Domain `json:"domain_id"`

	// Payload is the hex-encoded transaction hash. The hash bytes produced by a chain
	// adapter are encoded as-is, never re-hashed.
	Payload string `json:"payload"`
}

// NewSignRequest builds the signing request for a transaction hash produced by a chain
// adapter's PrepareTransactionForSigning.
func NewSignRequest(path string, hash []byte) SignRequest {
	return SignRequest{
		Path:     path,
		DomainID: DomainEd25519,
		Payload:  hexutil.Encode(hash),
	}
}
