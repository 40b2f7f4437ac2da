// Package polling runs the periodic balance refresh while a session is
// active.
package polling

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/coinbank/internal/logging"
)

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = 2 * time.Second

// Refresher is what a cycle drives: one full refresh when it starts, then
// the balance on every tick.
type Refresher interface {
	RefreshAll(ctx context.Context)
	RefreshBalance(ctx context.Context)
}

// Poller runs at most one refresh cycle at a time. It is safe for
// concurrent use.
type Poller struct {
	refresher Refresher
	interval  time.Duration
	log       logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(refresher Refresher, interval time.Duration, log logging.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{refresher: refresher, interval: interval, log: log}
}

// Start begins a new cycle bound to ctx. A cycle already running is stopped
// first, so starting twice never leaves two cycles alive.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	p.log.Debug(ctx, "polling started", "interval", p.interval)
	go p.run(ctx, done)
}

// Stop ends the running cycle and waits for it to exit. Calling it when
// stopped does nothing.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Running reports whether a cycle is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
	p.log.Debug(context.Background(), "polling stopped")
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.refresher.RefreshAll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresher.RefreshBalance(ctx)
		}
	}
}
