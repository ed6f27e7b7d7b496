package main

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of parameter updates: every Submit restarts
// the delay, and only the most recent params are delivered once the
// burst goes quiet. Interactive callers (sliders, scripted sweeps) use it
// to avoid recomputing the pipeline on every intermediate value.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending PipelineParams
	fire    func(PipelineParams)
}

// NewDebouncer returns a Debouncer that calls fire with the latest
// submitted params after delay of inactivity. fire runs on a timer
// goroutine and must be safe to call from there.
func NewDebouncer(delay time.Duration, fire func(PipelineParams)) *Debouncer {
	return &Debouncer{delay: delay, fire: fire}
}

// Submit records params as the pending value and restarts the quiet
// timer.
func (d *Debouncer) Submit(p PipelineParams) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = p
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		latest := d.pending
		d.mu.Unlock()
		d.fire(latest)
	})
}

// Stop cancels any pending delivery. A later Submit re-arms the timer.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
