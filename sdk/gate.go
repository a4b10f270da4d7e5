package sdk

import (
	"context"

	"github.com/arcaid/arcaid-go/config"
	"github.com/arcaid/arcaid-go/future"
)

// ReadyGate is a one-shot future that resolves the moment the merged
// configuration carries an active session: login flag true and a
// non-empty session token. It is re-evaluated on every config
// replacement, never rejects, and never un-resolves — a later update
// that clears the session leaves the gate open.
type ReadyGate struct {
	d *future.Deferred[struct{}]
}

// NewReadyGate creates an unresolved gate.
func NewReadyGate() *ReadyGate {
	return &ReadyGate{d: future.New[struct{}]()}
}

// Evaluate resolves the gate if cfg carries an active session.
func (g *ReadyGate) Evaluate(cfg config.SessionConfig) {
	if cfg.Session.Active() {
		g.d.Resolve(struct{}{})
	}
}

// Await blocks until the gate resolves or the context is cancelled.
func (g *ReadyGate) Await(ctx context.Context) error {
	_, err := g.d.Await(ctx)
	return err
}

// Ready reports whether the gate has resolved.
func (g *ReadyGate) Ready() bool {
	return g.d.Settled()
}
