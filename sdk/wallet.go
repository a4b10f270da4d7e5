package sdk

import (
	"context"

	"github.com/arcaid/arcaid-go/bridge"
	"github.com/arcaid/arcaid-go/config"
)

const typeGetWalletBalance = "GET_WALLET_BALANCE"

// Wallet exposes the user's platform wallet.
type Wallet struct {
	bridge *bridge.Bridge
	store  *config.Store
	gate   *ReadyGate
}

// GetBalance fetches the current wallet balance from the platform.
func (w *Wallet) GetBalance(ctx context.Context) (map[string]any, error) {
	if err := w.gate.Await(ctx); err != nil {
		return nil, err
	}
	return w.bridge.Request(ctx, typeGetWalletBalance, nil)
}

// Address returns the wallet address of the negotiated session, empty
// when not logged in.
func (w *Wallet) Address() string {
	return w.store.Current().Session.WalletAddress
}
