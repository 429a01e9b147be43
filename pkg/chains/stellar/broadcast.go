package stellar

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/stellar/go/clients/horizonclient"

	"github.com/sigweihq/mpcbridge/pkg/chains"
	"github.com/sigweihq/mpcbridge/pkg/types"
)

// BroadcastClient submits signed transaction envelopes to the Horizon submission
// endpoint.
type BroadcastClient struct {
	horizon horizonclient.ClientInterface
	logger  *slog.Logger
}

var _ chains.Broadcaster = (*BroadcastClient)(nil)

// BroadcastTx implements chains.Broadcaster
func (c *BroadcastClient) BroadcastTx(_ context.Context, envelope string) (*types.BroadcastResult, error) {
	resp, err := c.horizon.SubmitTransactionXDR(envelope)
	if err != nil {
		return nil, &chains.StageError{
			Stage: chains.StageBroadcast,
			Err:   &BroadcastFailedError{RemoteBody: remoteProblemBody(err), Err: err},
		}
	}

	c.logger.Info("broadcast stellar transaction", "hash", resp.Hash)

	return &types.BroadcastResult{Hash: resp.Hash}, nil
}

// remoteProblemBody extracts the raw problem document from a Horizon error, when present.
func remoteProblemBody(err error) string {
	var herr *horizonclient.Error
	if !errors.As(err, &herr) {
		return ""
	}

	body, jsonErr := json.Marshal(herr.Problem)
	if jsonErr != nil {
		return ""
	}
	return string(body)
}
