package stellar

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stellar/go/clients/horizonclient"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/support/render/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigweihq/mpcbridge/pkg/chains"
)

func TestBroadcastTx(t *testing.T) {
	horizon := &mockHorizon{submitted: hProtocol.Transaction{Hash: "deadbeef"}}
	client := &BroadcastClient{horizon: horizon, logger: slog.Default()}

	result, err := client.BroadcastTx(context.Background(), "AAAA...")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", result.Hash)
	assert.Equal(t, "AAAA...", horizon.lastXDR, "the envelope is submitted untouched")
}

func TestBroadcastTxFailureCarriesRemoteBody(t *testing.T) {
	horizonErr := &horizonclient.Error{
		Problem: problem.P{
			Type:   "https://stellar.org/horizon-errors/transaction_failed",
			Title:  "Transaction Failed",
			Status: 400,
			Extras: map[string]interface{}{
				"result_codes": map[string]interface{}{"transaction": "tx_bad_seq"},
			},
		},
	}
	client := &BroadcastClient{horizon: &mockHorizon{submitErr: horizonErr}, logger: slog.Default()}

	result, err := client.BroadcastTx(context.Background(), "malformed")
	require.Error(t, err, "a rejected transaction must never look like a success")
	assert.Nil(t, result)

	var stageErr *chains.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, chains.StageBroadcast, stageErr.Stage)

	var broadcastErr *BroadcastFailedError
	require.ErrorAs(t, err, &broadcastErr)
	assert.Contains(t, broadcastErr.RemoteBody, "tx_bad_seq")
}

func TestBroadcastTxTransportFailure(t *testing.T) {
	client := &BroadcastClient{horizon: &mockHorizon{submitErr: assert.AnError}, logger: slog.Default()}

	_, err := client.BroadcastTx(context.Background(), "AAAA")
	require.Error(t, err)

	var broadcastErr *BroadcastFailedError
	require.ErrorAs(t, err, &broadcastErr)
	assert.Empty(t, broadcastErr.RemoteBody, "non-horizon errors carry no problem document")
	assert.ErrorIs(t, err, assert.AnError)
}
