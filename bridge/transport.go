// Package bridge implements the request/response correlation layer
// between a game and the hosting Arcaid platform. A single unordered,
// untyped message transport carries both correlated responses and
// unsolicited platform events; the bridge keeps the two dispatch paths
// structurally distinct.
package bridge

// Transport is the physical link to the hosting platform. Implementations
// deliver inbound frames to the configured handler strictly in arrival
// order; the bridge relies on that for event ordering.
type Transport interface {
	// Start establishes the link and begins delivering inbound frames
	// to the handler in TransportOption.
	Start(TransportOption) error

	// Stop tears down the link and releases resources.
	Stop() error

	// Send writes one encoded envelope to the platform.
	Send(raw []byte) error

	// Connected reports whether the link is currently established.
	Connected() bool
}

// TransportOption carries the wiring a transport needs at start time.
type TransportOption struct {
	// Handler receives every inbound frame.
	Handler InboundReceiver
}

// TransportDelivery is one inbound frame together with the origin it
// arrived from, as far as the transport can attest it.
type TransportDelivery struct {
	Raw    []byte
	Origin string
}

// InboundReceiver is implemented by the bridge to accept inbound frames
// from a transport.
type InboundReceiver interface {
	// OnRecvTransportMsg processes a single inbound frame. A non-nil
	// error is a processing failure; dropped messages return nil.
	OnRecvTransportMsg(td *TransportDelivery) error
}
