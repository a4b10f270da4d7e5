// Package sdk exposes the capability modules a game uses to talk to the
// hosting Arcaid platform: auth, wallet, payments, multiplayer, stats
// and utils. Each module is a thin façade over the shared bridge.
package sdk

import (
	"context"

	"github.com/arcaid/arcaid-go/bridge"
	"github.com/arcaid/arcaid-go/config"
)

// SDK is the assembled instance handed to the game. Modules share one
// bridge, one config store and one readiness gate.
type SDK struct {
	bridge *bridge.Bridge
	store  *config.Store
	gate   *ReadyGate

	Auth        *Auth
	Wallet      *Wallet
	Payments    *Payments
	Multiplayer *Multiplayer
	Stats       *Stats
	Utils       *Utils
}

// New wires the capability modules onto the bridge and config store.
func New(b *bridge.Bridge, store *config.Store) (*SDK, error) {
	gate := NewReadyGate()
	s := &SDK{
		bridge: b,
		store:  store,
		gate:   gate,
	}
	s.Auth = &Auth{bridge: b, store: store, gate: gate}
	s.Wallet = &Wallet{bridge: b, store: store, gate: gate}
	s.Payments = &Payments{bridge: b, store: store}
	s.Multiplayer = NewMultiplayer(b, gate)
	s.Stats = &Stats{bridge: b}
	s.Utils = &Utils{bridge: b}

	if err := b.RegisterEventReceiver(bridge.PrefixPlatform, s); err != nil {
		return nil, err
	}
	if err := b.RegisterEventReceiver(bridge.PrefixMultiplayer, s.Multiplayer); err != nil {
		return nil, err
	}

	// Keeps the gate, the envelope gameId and the origin filter in step
	// with every config replacement, including the initial one.
	store.AddChangeHook(func(_, cfg config.SessionConfig) {
		gate.Evaluate(cfg)
		b.SetGameID(cfg.GameID)
		b.SetPlatformOrigin(cfg.PlatformOrigin)
	})

	return s, nil
}

// OnPlatformEvent handles platform-scoped events; currently only
// session updates. Unknown platform events are ignored.
func (s *SDK) OnPlatformEvent(env *bridge.Envelope) error {
	if env.Type == bridge.TypeUpdateUserSession {
		s.store.ApplySessionUpdate(env.Payload)
	}
	return nil
}

// Ready blocks until a logged-in session with a non-empty token has
// been negotiated. Session-dependent calls should await this first.
func (s *SDK) Ready(ctx context.Context) error {
	return s.gate.Await(ctx)
}

// Config returns the live merged session configuration.
func (s *SDK) Config() config.SessionConfig {
	return s.store.Current()
}

// Close shuts down the bridge, rejecting any in-flight requests.
func (s *SDK) Close() error {
	return s.bridge.Close()
}
