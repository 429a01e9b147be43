package constants

import (
	"time"

	"github.com/stellar/go/network"
)

const (
	HorizonTimeout        = 30 * time.Second // timeout for Horizon account and submission calls
	DerivationCallTimeout = 30 * time.Second // timeout for remote key derivation calls
	TLSHandshakeTimeout   = 10 * time.Second // timeout for TLS handshake
	ResponseHeaderTimeout = 20 * time.Second // timeout for response header
	MaxResponseBodySize   = 10 * 1024 * 1024 // maximum response body size in bytes (10MB)
)

const (
	// StellarNativeDecimals is the number of decimal places in the native asset (XLM):
	// one lumen is 10^7 stroops.
	StellarNativeDecimals = 7

	// StellarBaseFee is the network minimum per-operation fee in stroops.
	StellarBaseFee = 100

	// DefaultTransactionTimeoutSeconds bounds a transaction's validity window when the
	// caller does not supply one.
	DefaultTransactionTimeoutSeconds int64 = 300
)

// Network Types
const (
	NetworkStellar        = "stellar"
	NetworkStellarTestnet = "stellar-testnet"
)

var NetworkToHorizonURL = map[string]string{
	NetworkStellar:        "https://horizon.stellar.org",
	NetworkStellarTestnet: "https://horizon-testnet.stellar.org",
}

var NetworkToPassphrase = map[string]string{
	NetworkStellar:        network.PublicNetworkPassphrase,
	NetworkStellarTestnet: network.TestNetworkPassphrase,
}
