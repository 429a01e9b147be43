package mpckey

import "fmt"

// UnexpectedFormatError is returned when a derivation response is not in the expected shape
type UnexpectedFormatError struct {
	Detail string
}

func (e *UnexpectedFormatError) Error() string {
	return fmt.Sprintf("unexpected derivation response format: %s", e.Detail)
}

// InvalidKeyLengthError is returned when a decoded public key is not exactly 32 bytes
type InvalidKeyLengthError struct {
	Length int
}

func (e *InvalidKeyLengthError) Error() string {
	return fmt.Sprintf("invalid public key length: expected %d bytes, got %d", RawPublicKeySize, e.Length)
}

// DerivationFailedError wraps a transport or remote error during key derivation
type DerivationFailedError struct {
	Err error
}

func (e *DerivationFailedError) Error() string {
	return fmt.Sprintf("key derivation failed: %v", e.Err)
}

func (e *DerivationFailedError) Unwrap() error {
	return e.Err
}

// UnsupportedContractInterfaceError is returned when an injected collaborator matches
// none of the supported contract calling conventions
type UnsupportedContractInterfaceError struct {
	Collaborator string
}

func (e *UnsupportedContractInterfaceError) Error() string {
	return fmt.Sprintf("unsupported contract interface %s: expected a key deriver, a view-function caller or an account opener", e.Collaborator)
}

// UnrecognizedSignatureFormatError is returned when a signature blob matches none of the
// supported wire shapes
type UnrecognizedSignatureFormatError struct {
	Detail string
}

func (e *UnrecognizedSignatureFormatError) Error() string {
	return fmt.Sprintf("unrecognized signature format: %s", e.Detail)
}

// InvalidSignatureLengthError is returned when a normalized signature is not exactly 64 bytes
type InvalidSignatureLengthError struct {
	Length int
}

func (e *InvalidSignatureLengthError) Error() string {
	return fmt.Sprintf("invalid signature length: expected %d bytes, got %d", SignatureSize, e.Length)
}
