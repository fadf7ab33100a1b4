package catalog

import (
	"sync"
	"time"
)

// Debouncer delays calls per key so that only the most recently scheduled
// call for a key runs. Scheduling again before the delay elapses voids the
// earlier call.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	seq     uint64
	pending map[string]*debounced
	stopped bool
}

type debounced struct {
	gen   uint64
	timer *time.Timer
}

// NewDebouncer builds a Debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay, pending: make(map[string]*debounced)}
}

// Schedule arranges for fn to run after the delay unless another call for
// the same key is scheduled first.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}
	d.seq++
	gen := d.seq
	entry := &debounced{gen: gen}
	d.pending[key] = entry
	entry.timer = time.AfterFunc(d.delay, func() { d.fire(key, gen, fn) })
}

// Cancel voids the pending call for key. It reports whether one was pending.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	entry, ok := d.pending[key]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(d.pending, key)
	return true
}

// Pending reports whether a call for key is waiting to run.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}

// Stop voids every pending call and rejects future ones.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for key, entry := range d.pending {
		entry.timer.Stop()
		delete(d.pending, key)
	}
}

func (d *Debouncer) fire(key string, gen uint64, fn func()) {
	d.mu.Lock()
	entry, ok := d.pending[key]
	if !ok || entry.gen != gen {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()
	fn()
}
