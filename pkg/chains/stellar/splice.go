package stellar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	"github.com/sigweihq/mpcbridge/pkg/chains"
	"github.com/sigweihq/mpcbridge/pkg/mpckey"
	"github.com/sigweihq/mpcbridge/pkg/types"
)

// SignatureSplicer injects externally produced signatures into an unsigned transaction
// envelope.
type SignatureSplicer struct {
	logger *slog.Logger
}

var _ chains.SignatureFinalizer = (*SignatureSplicer)(nil)

// FinalizeTransactionSigning implements chains.SignatureFinalizer. Each blob is
// normalized to 64 raw signature bytes and attached with a hint derived from the
// transaction's declared source account public key, then the envelope is serialized to
// base64 XDR. This system expects exactly one signer per transaction, but additional
// signatures are attached in order if present.
func (s *SignatureSplicer) FinalizeTransactionSigning(_ context.Context, prepared *types.PreparedTransaction, signatures []any) (string, error) {
	tx, ok := prepared.Tx.(*txnbuild.Transaction)
	if !ok {
		return "", &chains.StageError{
			Stage: chains.StageSplice,
			Err:   fmt.Errorf("prepared transaction is not a stellar transaction (got %T)", prepared.Tx),
		}
	}

	// The hint is bound to the transaction's own declared source account, never
	// recovered from the signature. A signature produced for any other account will be
	// rejected by the network instead of being silently misattributed.
	hint, err := signatureHint(tx.SourceAccount().AccountID)
	if err != nil {
		return "", &chains.StageError{Stage: chains.StageSplice, Err: err}
	}

	for _, blob := range signatures {
		rawSig, err := mpckey.NormalizeSignature(blob)
		if err != nil {
			return "", &chains.StageError{Stage: chains.StageSplice, Err: err}
		}

		tx, err = tx.AddSignatureDecorated(xdr.DecoratedSignature{
			Hint:      hint,
			Signature: xdr.Signature(rawSig),
		})
		if err != nil {
			return "", &chains.StageError{Stage: chains.StageSplice, Err: fmt.Errorf("attach signature: %w", err)}
		}
	}

	envelope, err := tx.Base64()
	if err != nil {
		return "", &chains.StageError{Stage: chains.StageSplice, Err: fmt.Errorf("serialize envelope: %w", err)}
	}

	s.logger.Debug("spliced signatures into stellar transaction",
		"source", tx.SourceAccount().AccountID, "signatures", len(signatures))

	return envelope, nil
}

// signatureHint derives the 4-byte signature hint from an account address: the last
// four bytes of the underlying Ed25519 public key.
func signatureHint(address string) (xdr.SignatureHint, error) {
	var hint xdr.SignatureHint

	publicKey, err := DecodeAddress(address)
	if err != nil {
		return hint, fmt.Errorf("decode source address: %w", err)
	}

	copy(hint[:], publicKey[len(publicKey)-4:])
	return hint, nil
}
