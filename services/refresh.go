package services

import (
	"sync"
	"time"
)

// RefreshCell deduplicates view refreshes. Pushed events and the payment
// poll both Trigger the same cell; the wrapped func runs once per quiet
// window instead of once per source.
type RefreshCell struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	fn    func()
}

func NewRefreshCell(delay time.Duration, fn func()) *RefreshCell {
	return &RefreshCell{delay: delay, fn: fn}
}

// Trigger schedules the refresh, collapsing triggers that land within the
// debounce window into a single run.
func (r *RefreshCell) Trigger() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, r.fn)
}

// Stop cancels any pending refresh.
func (r *RefreshCell) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
