package stellar

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sigweihq/mpcbridge/pkg/chains"
	"github.com/sigweihq/mpcbridge/pkg/mpckey"
	"github.com/sigweihq/mpcbridge/pkg/types"
)

// DerivationClient resolves an external identity and derivation path to a Stellar
// address through the remote derivation capability.
type DerivationClient struct {
	deriver mpckey.KeyDeriver
	logger  *slog.Logger
}

var _ chains.AddressDeriver = (*DerivationClient)(nil)

// DeriveAddressAndPublicKey implements chains.AddressDeriver
func (c *DerivationClient) DeriveAddressAndPublicKey(ctx context.Context, identity, path string) (*types.DerivedKey, error) {
	if identity == "" {
		return nil, &chains.StageError{Stage: chains.StageDerive, Err: errors.New("identity must not be empty")}
	}
	if path == "" {
		return nil, &chains.StageError{Stage: chains.StageDerive, Err: errors.New("derivation path must not be empty")}
	}

	rawKey, err := c.deriver.DeriveKey(ctx, path, identity)
	if err != nil {
		return nil, &chains.StageError{Stage: chains.StageDerive, Err: err}
	}

	address, err := EncodeAddress(rawKey)
	if err != nil {
		return nil, &chains.StageError{Stage: chains.StageDerive, Err: err}
	}

	c.logger.Debug("derived stellar address", "address", address, "path", path)

	return &types.DerivedKey{
		Address:   address,
		PublicKey: rawKey,
		Path:      path,
	}, nil
}
