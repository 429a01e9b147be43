package mpckey

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// SignatureEnvelope is the object-wrapped compatibility shape: older remote signers
// return the signature inside a small JSON object instead of as a flat byte array.
type SignatureEnvelope struct {
	Scheme    string `json:"scheme,omitempty"`
	Signature []byte `json:"signature"`
}

// NormalizeSignature flattens an externally produced signature blob into exactly 64 raw
// Ed25519 signature bytes.
//
// The flat byte form is the canonical contract. Two compatibility shapes are also
// accepted: a JSON object carrying a "signature" field, and a base64-encoded
// remote-execution outcome whose success value wraps the signature envelope. Anything
// else is rejected rather than guessed at.
func NormalizeSignature(blob any) ([]byte, error) {
	switch b := blob.(type) {
	case []byte:
		return checkSignatureLength(b)
	case SignatureEnvelope:
		return checkSignatureLength(b.Signature)
	case *SignatureEnvelope:
		return checkSignatureLength(b.Signature)
	case map[string]interface{}:
		return normalizeSignatureObject(b)
	case string:
		return normalizeExecutionOutcome(b)
	default:
		return nil, &UnrecognizedSignatureFormatError{Detail: fmt.Sprintf("unsupported type %T", blob)}
	}
}

func checkSignatureLength(sig []byte) ([]byte, error) {
	if len(sig) != SignatureSize {
		return nil, &InvalidSignatureLengthError{Length: len(sig)}
	}
	return sig, nil
}

// normalizeSignatureObject handles a JSON-decoded object carrying a "signature" field,
// either as an integer array or as a base64 string.
func normalizeSignatureObject(obj map[string]interface{}) ([]byte, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, &UnrecognizedSignatureFormatError{Detail: "signature object is not marshalable"}
	}

	var env struct {
		Signature flexibleBytes `json:"signature"`
	}
	if err := json.Unmarshal(data, &env); err != nil || len(env.Signature) == 0 {
		return nil, &UnrecognizedSignatureFormatError{Detail: "object has no usable signature field"}
	}

	return checkSignatureLength(env.Signature)
}

// executionOutcome is the nested remote-execution compatibility shape: the signing call
// returns its outcome base64-encoded, with the signature envelope base64-encoded again
// inside the success value.
type executionOutcome struct {
	SuccessValue string `json:"SuccessValue"`
}

func normalizeExecutionOutcome(s string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &UnrecognizedSignatureFormatError{Detail: "string form is not base64"}
	}

	var outcome executionOutcome
	if err := json.Unmarshal(decoded, &outcome); err != nil {
		return nil, &UnrecognizedSignatureFormatError{Detail: "decoded string is not an execution outcome"}
	}
	if outcome.SuccessValue == "" {
		return nil, &UnrecognizedSignatureFormatError{Detail: "execution outcome has no success value"}
	}

	inner, err := base64.StdEncoding.DecodeString(outcome.SuccessValue)
	if err != nil {
		return nil, &UnrecognizedSignatureFormatError{Detail: "success value is not base64"}
	}

	var env struct {
		Signature flexibleBytes `json:"signature"`
	}
	if err := json.Unmarshal(inner, &env); err != nil || len(env.Signature) == 0 {
		return nil, &UnrecognizedSignatureFormatError{Detail: "success value carries no signature field"}
	}

	return checkSignatureLength(env.Signature)
}

// flexibleBytes decodes JSON byte payloads that appear either as a base64 string or as
// an integer array, both of which occur in remote execution results.
type flexibleBytes []byte

func (f *flexibleBytes) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return err
		}
		*f = raw
		return nil
	}

	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	raw := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("byte value out of range: %d", v)
		}
		raw[i] = byte(v)
	}
	*f = raw
	return nil
}
