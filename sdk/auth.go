package sdk

import (
	"context"

	"github.com/arcaid/arcaid-go/bridge"
	"github.com/arcaid/arcaid-go/config"
)

const typeGetUserInfo = "GET_USER_INFO"

// Auth exposes the platform's authentication surface.
type Auth struct {
	bridge *bridge.Bridge
	store  *config.Store
	gate   *ReadyGate
}

// GetUser fetches the authenticated user's profile from the platform.
func (a *Auth) GetUser(ctx context.Context) (map[string]any, error) {
	if err := a.gate.Await(ctx); err != nil {
		return nil, err
	}
	return a.bridge.Request(ctx, typeGetUserInfo, nil)
}

// IsLoggedIn reports the login flag of the negotiated session.
func (a *Auth) IsLoggedIn() bool {
	return a.store.Current().Session.LoggedIn
}

// Session returns the negotiated user session record.
func (a *Auth) Session() config.UserSession {
	return a.store.Current().Session
}
