// Package mpckey binds a remote multi-party-computation signing service to chain
// adapters: it derives raw Ed25519 public keys from an external identity and normalizes
// the signatures the service produces.
package mpckey

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Domain identifies the cryptographic domain requested from the remote service.
type Domain int

const (
	// DomainSecp256k1 is the remote service's default domain. This library never
	// requests it; the constant exists so the zero value is not silently Ed25519.
	DomainSecp256k1 Domain = 0

	// DomainEd25519 must be requested explicitly on every derivation and signing call.
	// The remote service falls back to secp256k1 otherwise.
	DomainEd25519 Domain = 1
)

const (
	// RawPublicKeySize is the exact size of a raw Ed25519 public key.
	RawPublicKeySize = 32

	// SignatureSize is the exact size of a raw Ed25519 signature.
	SignatureSize = 64
)

// ed25519KeyPrefix tags Ed25519 keys in derivation responses.
const ed25519KeyPrefix = "ed25519:"

// ParseTaggedKey parses a derivation response of the form "ed25519:<base58-key>" into
// raw public key bytes. A response without the tag, with malformed base58 or with a
// decoded length other than 32 bytes is rejected; keys are never truncated or padded.
func ParseTaggedKey(s string) ([]byte, error) {
	if !strings.HasPrefix(s, ed25519KeyPrefix) {
		return nil, &UnexpectedFormatError{Detail: fmt.Sprintf("missing %q prefix in %q", ed25519KeyPrefix, s)}
	}

	raw, err := base58.Decode(strings.TrimPrefix(s, ed25519KeyPrefix))
	if err != nil {
		return nil, &UnexpectedFormatError{Detail: "public key is not valid base58"}
	}

	if len(raw) != RawPublicKeySize {
		return nil, &InvalidKeyLengthError{Length: len(raw)}
	}

	return raw, nil
}
