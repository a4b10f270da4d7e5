package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/arcaid/arcaid-go/codec"
	"github.com/arcaid/arcaid-go/future"
	"github.com/arcaid/arcaid-go/log"
	"github.com/arcaid/arcaid-go/metrics"
)

// DefaultRequestTimeout is applied to requests without an explicit one.
const DefaultRequestTimeout = 30 * time.Second

var (
	// ErrNotConnected is returned synchronously when no platform link
	// exists; no pending entry is registered.
	ErrNotConnected = errors.New("no platform connection")

	// ErrRequestTimeout retires a pending request that never received a
	// matching response.
	ErrRequestTimeout = errors.New("request timed out")

	// ErrBridgeClosed rejects requests issued or still pending after
	// Close.
	ErrBridgeClosed = errors.New("bridge closed")
)

// EventReceiver handles unsolicited platform events for one message-type
// prefix. Capability modules implement this to receive their events.
type EventReceiver interface {
	OnPlatformEvent(env *Envelope) error
}

// Bridge multiplexes promise-style requests and pub/sub event delivery
// over a single Transport. Outbound requests are correlated to inbound
// responses by messageId; everything else routes by type prefix to a
// registered EventReceiver or is dropped.
//
// Inbound frames are delivered by the transport in arrival order from a
// single goroutine; the pending table and receiver registry are guarded
// for the concurrent outbound path.
type Bridge struct {
	mu          sync.RWMutex
	transport   Transport
	gameID      string
	origin      string
	receivers   map[string]EventReceiver
	filters     FilterChain
	recvLimiter *RecvLimiter
	pending     *pendingTable

	defaultTimeout time.Duration
	closed         bool
}

// New creates a Bridge over the given transport. The transport may be
// nil (standalone mode); every request then fails with ErrNotConnected.
func New(tr Transport, opts ...Option) *Bridge {
	b := &Bridge{
		transport:      tr,
		receivers:      make(map[string]EventReceiver),
		pending:        newPendingTable(),
		defaultTimeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.filters = append(b.filters, b.sourceFilter, b.originFilter)
	if b.recvLimiter != nil {
		b.filters = append(b.filters, b.recvLimiter.recvLimiterFilter)
	}
	return b
}

// SetGameID sets the game identifier stamped on outbound envelopes.
func (b *Bridge) SetGameID(gameID string) {
	b.mu.Lock()
	b.gameID = gameID
	b.mu.Unlock()
}

// GameID returns the current game identifier, empty until negotiated.
func (b *Bridge) GameID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gameID
}

// SetPlatformOrigin sets the negotiated origin enforced on inbound
// messages.
func (b *Bridge) SetPlatformOrigin(origin string) {
	b.mu.Lock()
	b.origin = origin
	b.mu.Unlock()
}

// RegisterEventReceiver routes unsolicited events whose type carries the
// given prefix to r. Each prefix can have exactly one receiver.
func (b *Bridge) RegisterEventReceiver(prefix string, r EventReceiver) error {
	if r == nil {
		return errors.New("event receiver is nil")
	}
	if prefix == "" {
		return errors.New("event prefix is empty")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.receivers[prefix]; ok {
		return fmt.Errorf("event receiver for prefix %q already registered", prefix)
	}
	b.receivers[prefix] = r
	return nil
}

// RegisterFilter appends a custom filter to the inbound pipeline.
func (b *Bridge) RegisterFilter(f Filter) {
	b.filters = append(b.filters, f)
}

// Send issues a request and returns the Deferred that settles with the
// response payload, a platform-signalled error, or ErrRequestTimeout.
// With no platform connection it rejects synchronously without
// registering a pending entry.
func (b *Bridge) Send(msgType string, payload map[string]any, opts ...RequestOption) *future.Deferred[map[string]any] {
	d := future.New[map[string]any]()

	ro := requestOptions{timeout: b.defaultTimeout, source: SourceSDK}
	for _, opt := range opts {
		opt(&ro)
	}

	b.mu.RLock()
	tr := b.transport
	gameID := b.gameID
	closed := b.closed
	b.mu.RUnlock()

	if closed {
		d.Reject(ErrBridgeClosed)
		return d
	}
	if tr == nil || !tr.Connected() {
		d.Reject(ErrNotConnected)
		return d
	}

	if payload == nil {
		payload = map[string]any{}
	}
	env := &Envelope{
		Source:    ro.source,
		Type:      msgType,
		MessageID: newMessageID(),
		GameID:    gameID,
		Payload:   payload,
	}
	raw, err := codec.Encode(env)
	if err != nil {
		d.Reject(fmt.Errorf("encode request %s: %w", msgType, err))
		return d
	}

	p := &pendingRequest{id: env.MessageID, msgType: msgType, d: d}
	b.pending.add(p, ro.timeout, b.onRequestTimeout)

	if err := tr.Send(raw); err != nil {
		if evicted, ok := b.pending.take(env.MessageID); ok {
			evicted.stopTimer()
			evicted.d.Reject(fmt.Errorf("send %s: %w", msgType, err))
		}
		return d
	}

	metrics.RequestsSent.WithLabelValues(msgType).Inc()
	return d
}

// Request is the blocking form of Send.
func (b *Bridge) Request(ctx context.Context, msgType string, payload map[string]any, opts ...RequestOption) (map[string]any, error) {
	return b.Send(msgType, payload, opts...).Await(ctx)
}

// onRequestTimeout retires a stale pending request. It races the
// response path on the pending table; exactly one side wins.
func (b *Bridge) onRequestTimeout(id string) {
	p, ok := b.pending.take(id)
	if !ok {
		return
	}
	metrics.RequestTimeouts.Inc()
	log.Warn().Str("messageId", id).Str("type", p.msgType).Msg("platform request timed out")
	p.d.Reject(ErrRequestTimeout)
}

// OnRecvTransportMsg implements InboundReceiver. Malformed frames are
// dropped without surfacing an error to any caller.
func (b *Bridge) OnRecvTransportMsg(td *TransportDelivery) error {
	env := &Envelope{}
	if err := codec.Decode(td.Raw, env); err != nil {
		metrics.DroppedMessages.WithLabelValues("malformed").Inc()
		log.Debug().Err(err).Msg("dropping undecodable platform message")
		return nil
	}
	if env.Type == "" {
		metrics.DroppedMessages.WithLabelValues("missing_type").Inc()
		return nil
	}
	return b.filters.Handle(&InboundDelivery{Env: env, Origin: td.Origin}, b.routeInbound)
}

// routeInbound classifies a filtered inbound message: correlated
// response first, then prefix-routed event, otherwise dropped.
func (b *Bridge) routeInbound(d *InboundDelivery) error {
	env := d.Env

	if env.MessageID != "" {
		if p, ok := b.pending.take(env.MessageID); ok {
			p.stopTimer()
			b.settle(p, env)
			return nil
		}
	}

	b.mu.RLock()
	var receiver EventReceiver
	for prefix, r := range b.receivers {
		if strings.HasPrefix(env.Type, prefix) {
			receiver = r
			break
		}
	}
	b.mu.RUnlock()

	if receiver == nil {
		metrics.DroppedMessages.WithLabelValues("unrecognized").Inc()
		log.Debug().Str("type", env.Type).Msg("ignoring unrecognized platform message")
		return nil
	}

	metrics.EventsDispatched.WithLabelValues(env.Type).Inc()
	return receiver.OnPlatformEvent(env)
}

// settle resolves or rejects a matched pending request. An explicit
// payload error field takes priority over failure-suffixed type names.
func (b *Bridge) settle(p *pendingRequest, env *Envelope) {
	if perr := env.PayloadError(); perr != nil {
		metrics.ResponsesReceived.WithLabelValues("error").Inc()
		p.d.Reject(perr)
		return
	}
	if IsErrorType(env.Type) {
		metrics.ResponsesReceived.WithLabelValues("error").Inc()
		p.d.Reject(&PlatformError{Type: env.Type, Payload: env.Payload})
		return
	}
	metrics.ResponsesReceived.WithLabelValues("ok").Inc()
	p.d.Resolve(env.Payload)
}

// PendingCount reports the number of requests awaiting a response.
func (b *Bridge) PendingCount() int {
	return b.pending.size()
}

// Close rejects every outstanding request and stops the transport so no
// caller is left hanging on shutdown.
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	tr := b.transport
	b.mu.Unlock()

	for _, p := range b.pending.drain() {
		p.stopTimer()
		p.d.Reject(ErrBridgeClosed)
	}

	if tr != nil {
		return tr.Stop()
	}
	return nil
}
