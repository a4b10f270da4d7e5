package bridge

import (
	"context"
	"sync/atomic"

	"go.uber.org/ratelimit"
	"golang.org/x/time/rate"
)

// RecvLimiter bounds the rate at which inbound platform messages are
// processed, protecting the game loop from event floods. Token bucket
// semantics; the limiter can be reloaded at runtime without tearing the
// bridge down.
type RecvLimiter struct {
	limiter atomic.Pointer[rate.Limiter]
}

// NewRecvLimiter creates a token bucket limiter allowing limit messages
// per second with the given burst.
func NewRecvLimiter(limit int, burst int) *RecvLimiter {
	l := &RecvLimiter{}
	l.limiter.Store(rate.NewLimiter(rate.Limit(limit), burst))
	return l
}

// Take blocks until a token is available.
func (l *RecvLimiter) Take() error {
	return l.limiter.Load().Wait(context.Background())
}

// Reload replaces the limiter configuration at runtime.
func (l *RecvLimiter) Reload(limit int, burst int) {
	l.limiter.Store(rate.NewLimiter(rate.Limit(limit), burst))
}

// recvLimiterFilter integrates the limiter into the inbound filter chain.
func (l *RecvLimiter) recvLimiterFilter(d *InboundDelivery, next FilterHandleFunc) error {
	if err := l.Take(); err != nil {
		return err
	}
	return next(d)
}

// FunnelRecvLimiter is the leaky bucket alternative. It paces inbound
// processing evenly instead of admitting bursts.
type FunnelRecvLimiter struct {
	limiter atomic.Pointer[ratelimit.Limiter]
}

// NewFunnelRecvLimiter creates a leaky bucket limiter allowing limit
// messages per second.
func NewFunnelRecvLimiter(limit int) *FunnelRecvLimiter {
	limiter := ratelimit.New(limit)
	l := &FunnelRecvLimiter{}
	l.limiter.Store(&limiter)
	return l
}

// Take blocks until the pace allows the next message.
func (l *FunnelRecvLimiter) Take() {
	_ = (*l.limiter.Load()).Take()
}

// Reload replaces the limiter configuration at runtime.
func (l *FunnelRecvLimiter) Reload(limit int) {
	limiter := ratelimit.New(limit)
	l.limiter.Store(&limiter)
}

// recvLimiterFilter integrates the limiter into the inbound filter chain.
func (l *FunnelRecvLimiter) recvLimiterFilter(d *InboundDelivery, next FilterHandleFunc) error {
	l.Take()
	return next(d)
}
