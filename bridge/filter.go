package bridge

import (
	"github.com/arcaid/arcaid-go/metrics"
)

// InboundDelivery is a decoded inbound envelope moving through the
// filter chain, together with its transport-attested origin.
type InboundDelivery struct {
	Env    *Envelope
	Origin string
}

// FilterHandleFunc processes an inbound delivery after filtering.
type FilterHandleFunc func(d *InboundDelivery) error

// Filter is an interceptor in the inbound pipeline. A filter that does
// not call the next handler drops the message; dropping is silent and
// returns nil.
type Filter func(d *InboundDelivery, next FilterHandleFunc) error

// FilterChain applies filters sequentially before the final handler.
type FilterChain []Filter

// Handle runs the delivery through the chain and into the final handler.
func (fc FilterChain) Handle(d *InboundDelivery, f FilterHandleFunc) error {
	if len(fc) == 0 {
		return f(d)
	}
	return fc[0](d, func(d *InboundDelivery) error {
		return fc[1:].Handle(d, f)
	})
}

// sourceFilter drops inbound messages carrying a foreign source tag.
// Messages without a source tag are let through; responses from older
// platform versions omit it.
func (b *Bridge) sourceFilter(d *InboundDelivery, next FilterHandleFunc) error {
	if d.Env.Source != "" && d.Env.Source != SourcePlatform {
		metrics.DroppedMessages.WithLabelValues("wrong_source").Inc()
		return nil
	}
	return next(d)
}

// originFilter drops inbound messages from origins other than the
// negotiated platform origin. With no negotiated origin (or wildcard)
// every origin is accepted.
func (b *Bridge) originFilter(d *InboundDelivery, next FilterHandleFunc) error {
	b.mu.RLock()
	origin := b.origin
	b.mu.RUnlock()

	if origin != "" && origin != "*" && d.Origin != "" && d.Origin != origin {
		metrics.DroppedMessages.WithLabelValues("wrong_origin").Inc()
		return nil
	}
	return next(d)
}
