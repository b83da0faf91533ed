// Package search implements search-as-you-type: a per-field debouncer so only the last
// keystroke in a burst reaches the backend, and a loader that shares identical in-flight
// queries and caches their results briefly.
package search

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is delivered to waiters when the debouncer shuts down before their query ran.
var ErrStopped = errors.New("search debouncer stopped")

// DefaultWindow is the quiet period before a query fires.
const DefaultWindow = 500 * time.Millisecond

// Result is the outcome delivered to every waiter of a burst.
type Result[R any] struct {
	Query string
	Value R
	Err   error
}

// Func runs the query that survived the burst.
type Func[R any] func(ctx context.Context, query string) (R, error)

// Debouncer coalesces bursts of queries per key. Each Submit restarts the key's timer;
// when it expires only the latest query runs and every waiter in the burst gets its result.
type Debouncer[R any] struct {
	window time.Duration
	fn     Func[R]

	mu      sync.Mutex
	pending map[string]*burst[R]
	stopped bool
}

type burst[R any] struct {
	gen     uint64
	query   string
	ctx     context.Context
	timer   *time.Timer
	waiters []chan Result[R]
}

// NewDebouncer creates a debouncer. A non-positive window uses DefaultWindow.
func NewDebouncer[R any](window time.Duration, fn Func[R]) *Debouncer[R] {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer[R]{window: window, fn: fn, pending: map[string]*burst[R]{}}
}

// Submit registers query as the latest value for key. The returned channel receives exactly one Result.
// The query runs with ctx's values but not its cancellation, since later waiters share the result.
func (d *Debouncer[R]) Submit(ctx context.Context, key, query string) <-chan Result[R] {
	ch := make(chan Result[R], 1)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		ch <- Result[R]{Query: query, Err: ErrStopped}
		return ch
	}

	b, ok := d.pending[key]
	if !ok {
		b = &burst[R]{}
		d.pending[key] = b
	} else {
		b.timer.Stop()
	}
	b.gen++
	b.query = query
	b.ctx = context.WithoutCancel(ctx)
	b.waiters = append(b.waiters, ch)

	gen := b.gen
	b.timer = time.AfterFunc(d.window, func() { d.fire(key, gen) })
	return ch
}

// Wait submits query and blocks until the burst's result arrives or ctx is done.
func (d *Debouncer[R]) Wait(ctx context.Context, key, query string) (Result[R], error) {
	select {
	case res := <-d.Submit(ctx, key, query):
		return res, res.Err
	case <-ctx.Done():
		var zero Result[R]
		return zero, ctx.Err()
	}
}

// fire runs the burst for key unless a newer Submit superseded generation gen.
func (d *Debouncer[R]) fire(key string, gen uint64) {
	d.mu.Lock()
	b, ok := d.pending[key]
	if !ok || b.gen != gen {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	d.run(b)
}

func (d *Debouncer[R]) run(b *burst[R]) {
	v, err := d.fn(b.ctx, b.query)
	res := Result[R]{Query: b.query, Value: v, Err: err}
	for _, ch := range b.waiters {
		ch <- res
	}
}

// Flush runs every pending burst now, without waiting for the window.
func (d *Debouncer[R]) Flush() {
	d.mu.Lock()
	bursts := d.drain()
	d.mu.Unlock()

	var wg sync.WaitGroup
	for _, b := range bursts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.run(b)
		}()
	}
	wg.Wait()
}

// Stop cancels pending bursts; their waiters receive ErrStopped. Later Submits fail immediately.
func (d *Debouncer[R]) Stop() {
	d.mu.Lock()
	d.stopped = true
	bursts := d.drain()
	d.mu.Unlock()

	for _, b := range bursts {
		for _, ch := range b.waiters {
			ch <- Result[R]{Query: b.query, Err: ErrStopped}
		}
	}
}

// Pending reports how many keys have a burst waiting.
func (d *Debouncer[R]) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// drain removes all bursts and stops their timers. Callers hold d.mu.
func (d *Debouncer[R]) drain() []*burst[R] {
	out := make([]*burst[R], 0, len(d.pending))
	for key, b := range d.pending {
		b.timer.Stop()
		out = append(out, b)
		delete(d.pending, key)
	}
	return out
}
