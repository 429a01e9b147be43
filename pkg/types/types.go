package types

// DerivedKey is the result of an identity-to-key derivation call.
type DerivedKey struct {
	// Address is the chain-native encoding of PublicKey.
	Address string `json:"address"`

	// PublicKey is the raw 32-byte Ed25519 public key.
	PublicKey []byte `json:"publicKey"`

	// Path is the derivation path the key was derived under.
	Path string `json:"path"`
}

// TransferRequest is a caller's intent to move native-asset value between two accounts.
type TransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"` // decimal string in whole native units (e.g. "1.5")
	Memo   string `json:"memo,omitempty"`

	// Fee is the per-operation fee in the chain's smallest unit; zero selects the
	// chain's base fee.
	Fee int64 `json:"fee,omitempty"`

	// TimeoutSeconds bounds the transaction validity window relative to build time;
	// zero selects the chain default.
	TimeoutSeconds int64 `json:"timeoutSeconds,omitempty"`

	// ValidUntil, when nonzero, pins the validity window to an absolute unix time
	// instead of TimeoutSeconds. Builds with the same ValidUntil are reproducible.
	ValidUntil int64 `json:"validUntil,omitempty"`

	// PublicKey is the signer's raw public key. When set, it must correspond to From;
	// the builder rejects requests that would bind a signature to a different account.
	PublicKey []byte `json:"publicKey,omitempty"`
}

// PreparedTransaction is a built, hash-ready transaction awaiting external signatures.
type PreparedTransaction struct {
	// Tx is the chain-specific unsigned transaction (for Stellar, *txnbuild.Transaction).
	Tx any

	// HashesToSign are the canonical hashes to hand to the external signer, in order.
	// They are final once computed and are never re-hashed downstream.
	HashesToSign [][]byte

	// SourceAddress is the declared source account the signature hint is bound to.
	SourceAddress string
}

// Balance is an account's native-asset balance in the chain's smallest unit.
type Balance struct {
	Amount   int64 `json:"amount"`
	Decimals int   `json:"decimals"`
}

// BroadcastResult reports the remote-assigned identifier of a submitted transaction.
type BroadcastResult struct {
	Hash string `json:"hash"`
}

// NetworkInfo describes the network an adapter was constructed against.
type NetworkInfo struct {
	Network    string `json:"network"`
	Passphrase string `json:"passphrase"`
	HorizonURL string `json:"horizonUrl"`
	Decimals   int    `json:"decimals"`
}
