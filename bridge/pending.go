package bridge

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync"
	"time"

	"github.com/arcaid/arcaid-go/future"
	"github.com/arcaid/arcaid-go/metrics"
)

// pendingRequest is one outstanding request awaiting its correlated
// response. It is removed from the table on response arrival or timeout,
// whichever fires first; removal and settlement are mutually exclusive
// because take deletes the entry under the table lock.
type pendingRequest struct {
	id      string
	msgType string
	d       *future.Deferred[map[string]any]
	timer   *time.Timer
}

func (p *pendingRequest) stopTimer() {
	if p.timer != nil {
		p.timer.Stop()
	}
}

// pendingTable maps outstanding messageIds to their pending requests.
type pendingTable struct {
	mu sync.Mutex
	m  map[string]*pendingRequest
}

func newPendingTable() *pendingTable {
	return &pendingTable{m: make(map[string]*pendingRequest)}
}

// add registers a pending request and schedules its timeout eviction.
func (t *pendingTable) add(p *pendingRequest, timeout time.Duration, onTimeout func(id string)) {
	t.mu.Lock()
	t.m[p.id] = p
	t.mu.Unlock()
	metrics.PendingRequests.Inc()

	p.timer = time.AfterFunc(timeout, func() {
		onTimeout(p.id)
	})
}

// take removes and returns the pending request for id. At most one
// caller ever succeeds for a given id.
func (t *pendingTable) take(id string) (*pendingRequest, bool) {
	t.mu.Lock()
	p, ok := t.m[id]
	if ok {
		delete(t.m, id)
	}
	t.mu.Unlock()
	if ok {
		metrics.PendingRequests.Dec()
	}
	return p, ok
}

// drain removes and returns every outstanding request.
func (t *pendingTable) drain() []*pendingRequest {
	t.mu.Lock()
	out := make([]*pendingRequest, 0, len(t.m))
	for id, p := range t.m {
		out = append(out, p)
		delete(t.m, id)
	}
	t.mu.Unlock()
	metrics.PendingRequests.Sub(float64(len(out)))
	return out
}

// size reports the number of outstanding requests.
func (t *pendingTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.m)
}

// newMessageID generates a unique correlation id for one request.
func newMessageID() string {
	var buf [12]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf[:])
}
