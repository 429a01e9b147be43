package stellar

import (
	"github.com/stellar/go/strkey"

	"github.com/sigweihq/mpcbridge/pkg/mpckey"
)

// EncodeAddress converts a raw 32-byte Ed25519 public key into a Stellar account
// address (the "G..." strkey form). Deterministic and pure; the only failure mode is a
// key that is not exactly 32 bytes.
func EncodeAddress(rawKey []byte) (string, error) {
	if len(rawKey) != mpckey.RawPublicKeySize {
		return "", &mpckey.InvalidKeyLengthError{Length: len(rawKey)}
	}
	return strkey.Encode(strkey.VersionByteAccountID, rawKey)
}

// DecodeAddress is the inverse of EncodeAddress. The signature splicer uses it to
// recover the source account's public key for hint derivation.
func DecodeAddress(address string) ([]byte, error) {
	return strkey.Decode(strkey.VersionByteAccountID, address)
}
