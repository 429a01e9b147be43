package mpckey

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sigweihq/mpcbridge/pkg/constants"
)

// RPCDeriver derives keys by issuing a read-only call_function query against a node RPC
// endpoint. It serves deployments where no contract collaborator is injected and the
// derivation service is reached over plain HTTP.
type RPCDeriver struct {
	Endpoint   string
	ContractID string
	client     *http.Client
}

// NewRPCDeriver creates a deriver bound to a node RPC endpoint and a signer contract.
func NewRPCDeriver(endpoint, contractID string) *RPCDeriver {
	return &RPCDeriver{
		Endpoint:   endpoint,
		ContractID: contractID,
		client: &http.Client{
			Timeout: constants.DerivationCallTimeout,
		},
	}
}

var _ KeyDeriver = (*RPCDeriver)(nil)

// DeriveKey implements KeyDeriver
func (d *RPCDeriver) DeriveKey(ctx context.Context, path, identity string) ([]byte, error) {
	args, err := marshalDerivationArgs(path, identity)
	if err != nil {
		return nil, err
	}

	req := jsonrpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "query",
		Params: map[string]interface{}{
			"request_type": "call_function",
			"finality":     "optimistic",
			"account_id":   d.ContractID,
			"method_name":  derivedPublicKeyMethod,
			"args_base64":  base64.StdEncoding.EncodeToString(args),
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &DerivationFailedError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &DerivationFailedError{Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, &DerivationFailedError{Err: err}
	}
	defer resp.Body.Close()

	limitedReader := io.LimitReader(resp.Body, int64(constants.MaxResponseBodySize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(limitedReader)
		return nil, &DerivationFailedError{Err: fmt.Errorf("derivation endpoint returned HTTP %d: %s", resp.StatusCode, string(respBody))}
	}

	var rpcResp jsonrpcResponse
	if err := json.NewDecoder(limitedReader).Decode(&rpcResp); err != nil {
		return nil, &DerivationFailedError{Err: fmt.Errorf("decode response: %w", err)}
	}

	if rpcResp.Error != nil {
		return nil, &DerivationFailedError{Err: fmt.Errorf("RPC error: %s", rpcResp.Error.Message)}
	}

	if len(rpcResp.Result) == 0 {
		return nil, &UnexpectedFormatError{Detail: "derivation response has no result"}
	}

	return parseDerivationResult(rpcResp.Result)
}

// jsonrpcRequest represents a JSON-RPC request
type jsonrpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

// jsonrpcResponse represents a JSON-RPC response
type jsonrpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpcError   `json:"error,omitempty"`
}

// jsonrpcError represents a JSON-RPC error
type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
