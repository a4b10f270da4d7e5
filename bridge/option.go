package bridge

import "time"

// Option configures a Bridge at construction time.
type Option func(*Bridge)

// WithDefaultTimeout sets the timeout applied to requests that do not
// specify their own.
func WithDefaultTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		b.defaultTimeout = d
	}
}

// WithPlatformOrigin sets the expected platform origin; inbound messages
// from other origins are dropped. Empty or "*" accepts any origin.
func WithPlatformOrigin(origin string) Option {
	return func(b *Bridge) {
		b.origin = origin
	}
}

// WithRecvLimit installs a token bucket receive limiter in the inbound
// filter chain.
func WithRecvLimit(limit, burst int) Option {
	return func(b *Bridge) {
		b.recvLimiter = NewRecvLimiter(limit, burst)
	}
}

// requestOptions are the per-request knobs.
type requestOptions struct {
	timeout time.Duration
	source  string
}

// RequestOption adjusts a single outbound request.
type RequestOption func(*requestOptions)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) {
		o.timeout = d
	}
}

// WithSource overrides the envelope source tag. The loader uses this for
// the config handshake.
func WithSource(source string) RequestOption {
	return func(o *requestOptions) {
		o.source = source
	}
}
