package stellar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stellar/go/txnbuild"

	"github.com/sigweihq/mpcbridge/pkg/chains"
	"github.com/sigweihq/mpcbridge/pkg/constants"
	"github.com/sigweihq/mpcbridge/pkg/types"
)

// TxBuilder assembles unsigned native-asset payment transactions and their canonical
// network-bound hashes.
type TxBuilder struct {
	accounts   *AccountClient
	passphrase string
	logger     *slog.Logger
}

var _ chains.TransactionBuilder = (*TxBuilder)(nil)

// PrepareTransactionForSigning implements chains.TransactionBuilder. The returned hash
// is computed once, after the transaction structure is final, and is exactly the value
// an external signer must sign; it is never re-hashed downstream.
func (b *TxBuilder) PrepareTransactionForSigning(_ context.Context, req *types.TransferRequest) (*types.PreparedTransaction, error) {
	if len(req.PublicKey) > 0 {
		declared, err := EncodeAddress(req.PublicKey)
		if err != nil {
			return nil, &chains.StageError{Stage: chains.StageBuild, Err: err}
		}
		if declared != req.From {
			return nil, &chains.StageError{
				Stage: chains.StageBuild,
				Err:   fmt.Errorf("signer public key encodes to %s, not source account %s", declared, req.From),
			}
		}
	}

	account, err := b.accounts.loadAccount(req.From)
	if err != nil {
		return nil, &chains.StageError{Stage: chains.StageLoadSource, Err: err}
	}

	fee := req.Fee
	if fee == 0 {
		fee = constants.StellarBaseFee
	}

	var memo txnbuild.Memo
	if req.Memo != "" {
		memo = txnbuild.MemoText(req.Memo)
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount: &txnbuild.SimpleAccount{
			AccountID: account.AccountID,
			Sequence:  account.Sequence,
		},
		IncrementSequenceNum: true,
		Operations: []txnbuild.Operation{
			&txnbuild.Payment{
				Destination: req.To,
				Amount:      req.Amount,
				Asset:       txnbuild.NativeAsset{},
			},
		},
		BaseFee:       fee,
		Memo:          memo,
		Preconditions: txnbuild.Preconditions{TimeBounds: timeBoundsFor(req)},
	})
	if err != nil {
		return nil, &chains.StageError{Stage: chains.StageBuild, Err: err}
	}

	hash, err := tx.Hash(b.passphrase)
	if err != nil {
		return nil, &chains.StageError{Stage: chains.StageBuild, Err: err}
	}

	b.logger.Debug("prepared stellar transaction",
		"source", req.From, "destination", req.To, "sequence", account.Sequence)

	return &types.PreparedTransaction{
		Tx:            tx,
		HashesToSign:  [][]byte{hash[:]},
		SourceAddress: req.From,
	}, nil
}

// timeBoundsFor picks the transaction validity window. An absolute ValidUntil wins over
// a relative timeout so that builds can be reproduced.
func timeBoundsFor(req *types.TransferRequest) txnbuild.TimeBounds {
	switch {
	case req.ValidUntil > 0:
		return txnbuild.NewTimebounds(0, req.ValidUntil)
	case req.TimeoutSeconds > 0:
		return txnbuild.NewTimeout(req.TimeoutSeconds)
	default:
		return txnbuild.NewTimeout(constants.DefaultTransactionTimeoutSeconds)
	}
}
