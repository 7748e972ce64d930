package registry

import (
	"math"
	"sync"
	"sync/atomic"
)

const cacheLineSize = 64

// Counter is a monotonically increasing uint64 metric.
type Counter struct {
	value atomic.Uint64
	_     [cacheLineSize - 8]byte
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Counter) Inc() {
	if c == nil {
		return
	}
	c.value.Add(1)
}

// Add describes the add operation and its observable behavior.
//
// Add does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Counter) Add(n uint64) {
	if c == nil {
		return
	}
	c.value.Add(n)
}

// Value describes the value operation and its observable behavior.
//
// Value does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Counter) Value() uint64 {
	if c == nil {
		return 0
	}
	return c.value.Load()
}

// Gauge is a float64 metric that can go up and down.
type Gauge struct {
	bits atomic.Uint64
	_    [cacheLineSize - 8]byte
}

// Set describes the set operation and its observable behavior.
//
// Set does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Gauge) Set(v float64) {
	if g == nil {
		return
	}
	g.bits.Store(math.Float64bits(v))
}

// Value describes the value operation and its observable behavior.
//
// Value does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Gauge) Value() float64 {
	if g == nil {
		return 0
	}
	return math.Float64frombits(g.bits.Load())
}

type entry struct {
	name    string
	help    string
	counter *Counter
	gauge   *Gauge
}

// Registry is a named collection of counters and gauges. Registration order is
// preserved so rendered output is stable across snapshots.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	byName  map[string]int
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Registry {
	return &Registry{
		byName: make(map[string]int),
	}
}

// Counter registers (or returns the already-registered) counter under name.
// Re-registering a name that holds a gauge returns nil.
func (r *Registry) Counter(name, help string) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.byName[name]; ok {
		return r.entries[i].counter
	}

	c := &Counter{}
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, entry{name: name, help: help, counter: c})
	return c
}

// Gauge registers (or returns the already-registered) gauge under name.
// Re-registering a name that holds a counter returns nil.
func (r *Registry) Gauge(name, help string) *Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.byName[name]; ok {
		return r.entries[i].gauge
	}

	g := &Gauge{}
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, entry{name: name, help: help, gauge: g})
	return g
}

// CounterSample defines a public type used by goMetrics APIs.
//
// CounterSample instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterSample struct {
	Name  string
	Help  string
	Value uint64
}

// GaugeSample defines a public type used by goMetrics APIs.
//
// GaugeSample instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GaugeSample struct {
	Name  string
	Help  string
	Value float64
}

// Snapshot defines a public type used by goMetrics APIs.
//
// Snapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Snapshot struct {
	Counters []CounterSample
	Gauges   []GaugeSample
}

// Snapshot returns a point-in-time copy of every registered metric, in
// registration order.
func (r *Registry) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var s Snapshot
	for _, e := range r.entries {
		switch {
		case e.counter != nil:
			s.Counters = append(s.Counters, CounterSample{Name: e.name, Help: e.help, Value: e.counter.Value()})
		case e.gauge != nil:
			s.Gauges = append(s.Gauges, GaugeSample{Name: e.name, Help: e.help, Value: e.gauge.Value()})
		}
	}
	return s
}
