package stellar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/clients/horizonclient"
	hProtocol "github.com/stellar/go/protocols/horizon"

	"github.com/sigweihq/mpcbridge/pkg/chains"
	"github.com/sigweihq/mpcbridge/pkg/constants"
	"github.com/sigweihq/mpcbridge/pkg/types"
)

// AccountClient answers account queries against the Horizon ledger endpoints.
type AccountClient struct {
	horizon horizonclient.ClientInterface
	logger  *slog.Logger
}

var _ chains.Ledger = (*AccountClient)(nil)

// GetBalance implements chains.Ledger. An account unknown to the ledger is reported as
// zero balance, not as an error: an account that has never been funded simply does not
// exist on the ledger yet.
func (c *AccountClient) GetBalance(_ context.Context, address string) (*types.Balance, error) {
	account, err := c.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if err != nil {
		if horizonclient.IsNotFoundError(err) {
			return &types.Balance{Amount: 0, Decimals: constants.StellarNativeDecimals}, nil
		}
		return nil, &BalanceQueryFailedError{Address: address, Err: err}
	}

	native, err := account.GetNativeBalance()
	if err != nil {
		return nil, &BalanceQueryFailedError{Address: address, Err: err}
	}

	stroops, err := nativeToStroops(native)
	if err != nil {
		return nil, &BalanceQueryFailedError{Address: address, Err: err}
	}

	c.logger.Debug("queried stellar balance", "address", address, "stroops", stroops)

	return &types.Balance{Amount: stroops, Decimals: constants.StellarNativeDecimals}, nil
}

// loadAccount fetches the source account record; the transaction builder needs its
// current sequence number.
func (c *AccountClient) loadAccount(address string) (*hProtocol.Account, error) {
	account, err := c.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if err != nil {
		return nil, &SourceAccountLoadFailedError{Address: address, Err: err}
	}
	return &account, nil
}

// nativeToStroops converts Horizon's decimal-string balance to stroops. The conversion
// is fixed-point: a float64 round trip can be off by one stroop near unit boundaries.
func nativeToStroops(balance string) (int64, error) {
	d, err := decimal.NewFromString(balance)
	if err != nil {
		return 0, fmt.Errorf("invalid balance string %q: %w", balance, err)
	}
	return d.Shift(constants.StellarNativeDecimals).Round(0).IntPart(), nil
}
