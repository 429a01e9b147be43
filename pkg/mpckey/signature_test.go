package mpckey

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignature() []byte {
	sig := make([]byte, SignatureSize)
	for i := range sig {
		sig[i] = byte(i)
	}
	return sig
}

// wrapInExecutionOutcome builds the nested compatibility shape: base64 of an execution
// outcome whose success value is base64 of the signature envelope.
func wrapInExecutionOutcome(t *testing.T, sig []byte) string {
	t.Helper()

	ints := make([]int, len(sig))
	for i, b := range sig {
		ints[i] = int(b)
	}
	inner, err := json.Marshal(map[string]any{"scheme": "ed25519", "signature": ints})
	require.NoError(t, err)

	outer, err := json.Marshal(executionOutcome{
		SuccessValue: base64.StdEncoding.EncodeToString(inner),
	})
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(outer)
}

func TestNormalizeSignatureFlatBytes(t *testing.T) {
	sig := testSignature()

	normalized, err := NormalizeSignature(sig)
	require.NoError(t, err)
	assert.Equal(t, sig, normalized)
}

func TestNormalizeSignatureEnvelope(t *testing.T) {
	sig := testSignature()

	normalized, err := NormalizeSignature(SignatureEnvelope{Scheme: "ed25519", Signature: sig})
	require.NoError(t, err)
	assert.Equal(t, sig, normalized)

	normalized, err = NormalizeSignature(&SignatureEnvelope{Signature: sig})
	require.NoError(t, err)
	assert.Equal(t, sig, normalized)
}

func TestNormalizeSignatureObjectIntArray(t *testing.T) {
	sig := testSignature()

	// A JSON-decoded signature object carries the bytes as []interface{} numbers
	var obj map[string]interface{}
	data, err := json.Marshal(SignatureEnvelope{Signature: sig})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &obj))

	normalized, err := NormalizeSignature(obj)
	require.NoError(t, err)
	assert.Equal(t, sig, normalized)
}

func TestNormalizeSignatureExecutionOutcome(t *testing.T) {
	sig := testSignature()

	normalized, err := NormalizeSignature(wrapInExecutionOutcome(t, sig))
	require.NoError(t, err)
	assert.Equal(t, sig, normalized)
}

func TestNormalizeSignatureShapesAgree(t *testing.T) {
	sig := testSignature()

	var obj map[string]interface{}
	data, err := json.Marshal(SignatureEnvelope{Signature: sig})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &obj))

	fromFlat, err := NormalizeSignature(sig)
	require.NoError(t, err)
	fromObject, err := NormalizeSignature(obj)
	require.NoError(t, err)
	fromOutcome, err := NormalizeSignature(wrapInExecutionOutcome(t, sig))
	require.NoError(t, err)

	assert.True(t, bytes.Equal(fromFlat, fromObject))
	assert.True(t, bytes.Equal(fromFlat, fromOutcome))
}

func TestNormalizeSignatureWrongLength(t *testing.T) {
	for _, size := range []int{0, 1, 63, 65, 128} {
		_, err := NormalizeSignature(make([]byte, size))
		require.Error(t, err, "size %d should be rejected", size)

		var lengthErr *InvalidSignatureLengthError
		require.ErrorAs(t, err, &lengthErr)
		assert.Equal(t, size, lengthErr.Length)
	}
}

func TestNormalizeSignatureWrongLengthInEnvelope(t *testing.T) {
	_, err := NormalizeSignature(SignatureEnvelope{Signature: make([]byte, 63)})
	require.Error(t, err)

	var lengthErr *InvalidSignatureLengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, 63, lengthErr.Length)

	_, err = NormalizeSignature(wrapInExecutionOutcome(t, make([]byte, 65)))
	require.Error(t, err)
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, 65, lengthErr.Length)
}

func TestNormalizeSignatureUnrecognizedShapes(t *testing.T) {
	cases := map[string]any{
		"unsupported type":     42,
		"nil":                  nil,
		"object without field": map[string]interface{}{"sig": "nope"},
		"not base64":           "!!! definitely not base64 !!!",
		"base64 of junk":       base64.StdEncoding.EncodeToString([]byte("junk")),
		"empty success value":  encodeOutcome(t, ""),
	}

	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeSignature(blob)
			require.Error(t, err)

			var formatErr *UnrecognizedSignatureFormatError
			assert.ErrorAs(t, err, &formatErr)
		})
	}
}

func encodeOutcome(t *testing.T, successValue string) string {
	t.Helper()
	outer, err := json.Marshal(executionOutcome{SuccessValue: successValue})
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(outer)
}
