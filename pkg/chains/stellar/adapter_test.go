package stellar

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigweihq/mpcbridge/pkg/constants"
	"github.com/sigweihq/mpcbridge/pkg/mpckey"
	"github.com/sigweihq/mpcbridge/pkg/types"
)

// mockKeyDeriver implements mpckey.KeyDeriver
type mockKeyDeriver struct {
	key []byte
	err error
}

func (m *mockKeyDeriver) DeriveKey(_ context.Context, _, _ string) ([]byte, error) {
	return m.key, m.err
}

// mockContractCaller implements mpckey.ViewFunctionCaller
type mockContractCaller struct{}

func (m *mockContractCaller) ViewFunction(_ context.Context, _, _ string, _ []byte) ([]byte, error) {
	return json.Marshal("ed25519:11111111111111111111111111111111")
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{Network: "dogecoin", Deriver: &mockKeyDeriver{}})
	require.Error(t, err)
	var networkErr *UnsupportedNetworkError
	assert.ErrorAs(t, err, &networkErr)

	_, err = New(Config{Network: constants.NetworkStellar})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key deriver or a contract collaborator")

	_, err = New(Config{
		Network:  constants.NetworkStellar,
		Deriver:  &mockKeyDeriver{},
		Contract: &mockContractCaller{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestNewSelectsContractInterface(t *testing.T) {
	adapter, err := New(Config{
		Network:    constants.NetworkStellarTestnet,
		Contract:   &mockContractCaller{},
		ContractID: "signer.test",
	})
	require.NoError(t, err)

	derived, err := adapter.DeriveAddressAndPublicKey(context.Background(), "alice.test", "stellar-1")
	require.NoError(t, err)
	assert.Equal(t, byte('G'), derived.Address[0])
}

func TestNewRejectsUnknownContractInterface(t *testing.T) {
	_, err := New(Config{
		Network:  constants.NetworkStellar,
		Contract: 42,
	})
	require.Error(t, err)

	var unsupportedErr *mpckey.UnsupportedContractInterfaceError
	assert.ErrorAs(t, err, &unsupportedErr)
}

func TestAdapterMetadata(t *testing.T) {
	adapter, err := New(Config{Network: constants.NetworkStellarTestnet, Deriver: &mockKeyDeriver{}})
	require.NoError(t, err)

	assert.Equal(t, constants.NetworkStellarTestnet, adapter.Network())
	assert.EqualValues(t, constants.StellarBaseFee, adapter.EstimateFee())

	info := adapter.NetworkInfo()
	assert.Equal(t, constants.NetworkStellarTestnet, info.Network)
	assert.Equal(t, network.TestNetworkPassphrase, info.Passphrase)
	assert.Equal(t, "https://horizon-testnet.stellar.org", info.HorizonURL)
	assert.Equal(t, constants.StellarNativeDecimals, info.Decimals)
}

func TestAdapterCustomHorizonURL(t *testing.T) {
	adapter, err := New(Config{
		Network:    constants.NetworkStellar,
		HorizonURL: "https://horizon.example.com",
		Deriver:    &mockKeyDeriver{},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://horizon.example.com", adapter.NetworkInfo().HorizonURL)
}

func TestDeriveAddressValidatesInputs(t *testing.T) {
	adapter, err := New(Config{Network: constants.NetworkStellar, Deriver: &mockKeyDeriver{key: make([]byte, 32)}})
	require.NoError(t, err)

	_, err = adapter.DeriveAddressAndPublicKey(context.Background(), "", "stellar-1")
	assert.Error(t, err)

	_, err = adapter.DeriveAddressAndPublicKey(context.Background(), "alice.test", "")
	assert.Error(t, err)
}

func TestDeriveAddressRejectsShortKey(t *testing.T) {
	adapter, err := New(Config{Network: constants.NetworkStellar, Deriver: &mockKeyDeriver{key: make([]byte, 31)}})
	require.NoError(t, err)

	_, err = adapter.DeriveAddressAndPublicKey(context.Background(), "alice.test", "stellar-1")
	require.Error(t, err)

	var lengthErr *mpckey.InvalidKeyLengthError
	assert.ErrorAs(t, err, &lengthErr)
}

// fakeHorizon serves just enough of the Horizon REST surface for an end-to-end run.
func fakeHorizon(t *testing.T, accountID string, sequence string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/accounts/"):
			fmt.Fprintf(w, `{
				"account_id": %q,
				"sequence": %q,
				"balances": [{"balance": "25.0000000", "asset_type": "native"}]
			}`, accountID, sequence)
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/transactions"):
			require.NoError(t, r.ParseForm())
			assert.NotEmpty(t, r.PostForm.Get("tx"), "submission is a urlencoded tx blob")
			fmt.Fprint(w, `{"hash": "cafebabe", "successful": true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"type": "https://stellar.org/horizon-errors/not_found", "status": 404}`)
		}
	}))
}

func TestAdapterEndToEnd(t *testing.T) {
	// The derivation capability hands back 32 zero bytes ("ed25519:111...1" in base58)
	derivedKey, err := mpckey.ParseTaggedKey("ed25519:11111111111111111111111111111111")
	require.NoError(t, err)

	server := fakeHorizon(t, mustEncodeAddress(t, derivedKey), "100")
	defer server.Close()

	adapter, err := New(Config{
		Network:    constants.NetworkStellarTestnet,
		HorizonURL: server.URL,
		Deriver:    &mockKeyDeriver{key: derivedKey},
		Logger:     slog.Default(),
	})
	require.NoError(t, err)

	derived, err := adapter.DeriveAddressAndPublicKey(context.Background(), "alice.test", "stellar-1")
	require.NoError(t, err)
	assert.Equal(t, byte('G'), derived.Address[0])
	assert.Len(t, derived.Address, 56)

	balance, err := adapter.GetBalance(context.Background(), derived.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(250_000_000), balance.Amount)

	prepared, err := adapter.PrepareTransactionForSigning(context.Background(), &types.TransferRequest{
		From:       derived.Address,
		To:         keypair.MustRandom().Address(),
		Amount:     "2.5",
		ValidUntil: 1893456000,
		PublicKey:  derived.PublicKey,
	})
	require.NoError(t, err)
	require.Len(t, prepared.HashesToSign, 1)

	unsigned, err := prepared.Tx.(*txnbuild.Transaction).Base64()
	require.NoError(t, err)

	envelope, err := adapter.FinalizeTransactionSigning(
		context.Background(), prepared, []any{make([]byte, mpckey.SignatureSize)})
	require.NoError(t, err)

	unsignedRaw, err := base64.StdEncoding.DecodeString(unsigned)
	require.NoError(t, err)
	signedRaw, err := base64.StdEncoding.DecodeString(envelope)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(signedRaw)-len(unsignedRaw), mpckey.SignatureSize)

	result, err := adapter.BroadcastTx(context.Background(), envelope)
	require.NoError(t, err)
	assert.Equal(t, "cafebabe", result.Hash)
}

func mustEncodeAddress(t *testing.T, key []byte) string {
	t.Helper()
	address, err := EncodeAddress(key)
	require.NoError(t, err)
	return address
}
