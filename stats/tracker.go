// Package stats tracks process-wide bandwidth and request counters,
// aggregated per endpoint. The Tracker owns all mutable state behind a
// mutex; callers never touch counters directly.
package stats

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// UnknownEndpoint buckets requests that matched no configured route.
const UnknownEndpoint = "unknown"

// EndpointCounters holds the raw per-endpoint numbers.
type EndpointCounters struct {
	Requests      int64
	BytesSent     int64
	BytesReceived int64
}

// Snapshot is a point-in-time copy of every counter. Lifecycle: counters
// start at zero at process start, grow on every request, and are never
// persisted or reset.
type Snapshot struct {
	InstanceID    uuid.UUID
	StartedAt     time.Time
	Requests      int64
	BytesSent     int64
	BytesReceived int64
	Endpoints     map[string]EndpointCounters
}

// Tracker accumulates request and byte counts. Safe for concurrent use.
type Tracker struct {
	mu         sync.Mutex
	instanceID uuid.UUID
	startedAt  time.Time
	totals     EndpointCounters
	endpoints  map[string]EndpointCounters
}

// NewTracker creates a Tracker with a fresh instance ID and start time.
func NewTracker() *Tracker {
	return &Tracker{
		instanceID: uuid.New(),
		startedAt:  time.Now(),
		endpoints:  make(map[string]EndpointCounters),
	}
}

// AddReceived adds incoming bytes to the process total. Called before the
// request is handled, so a snapshot taken inside a handler already sees
// its own request body.
func (t *Tracker) AddReceived(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.totals.BytesReceived += n
}

// Record adds one completed request to the totals and to the endpoint's
// entry, creating it lazily. Empty endpoint names fall into the
// UnknownEndpoint bucket. Received bytes go into the endpoint entry only;
// the process total takes them through AddReceived.
func (t *Tracker) Record(endpoint string, bytesReceived, bytesSent int64) {
	if endpoint == "" {
		endpoint = UnknownEndpoint
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.totals.Requests++
	t.totals.BytesSent += bytesSent

	e := t.endpoints[endpoint]
	e.Requests++
	e.BytesReceived += bytesReceived
	e.BytesSent += bytesSent
	t.endpoints[endpoint] = e
}

// Snapshot copies the current counters.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	endpoints := make(map[string]EndpointCounters, len(t.endpoints))
	for name, e := range t.endpoints {
		endpoints[name] = e
	}

	return Snapshot{
		InstanceID:    t.instanceID,
		StartedAt:     t.startedAt,
		Requests:      t.totals.Requests,
		BytesSent:     t.totals.BytesSent,
		BytesReceived: t.totals.BytesReceived,
		Endpoints:     endpoints,
	}
}
