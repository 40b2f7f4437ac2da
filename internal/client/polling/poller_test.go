package polling

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/coinbank/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRefresher struct {
	mu       sync.Mutex
	all      int
	balances []context.Context
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (r *recordingRefresher) enter() func() {
	n := r.inFlight.Add(1)
	for {
		m := r.maxSeen.Load()
		if n <= m || r.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	return func() { r.inFlight.Add(-1) }
}

func (r *recordingRefresher) RefreshAll(ctx context.Context) {
	defer r.enter()()
	r.mu.Lock()
	r.all++
	r.mu.Unlock()
}

func (r *recordingRefresher) RefreshBalance(ctx context.Context) {
	defer r.enter()()
	time.Sleep(time.Millisecond)
	r.mu.Lock()
	r.balances = append(r.balances, ctx)
	r.mu.Unlock()
}

func (r *recordingRefresher) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.all, len(r.balances)
}

func (r *recordingRefresher) contexts() []context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]context.Context(nil), r.balances...)
}

func TestPoller_RefreshesImmediatelyThenPeriodically(t *testing.T) {
	r := &recordingRefresher{}
	p := New(r, 10*time.Millisecond, logging.Nop())

	p.Start(context.Background())
	t.Cleanup(p.Stop)

	require.Eventually(t, func() bool {
		all, balances := r.counts()
		return all == 1 && balances >= 3
	}, time.Second, 5*time.Millisecond)
	assert.True(t, p.Running())
}

func TestPoller_DoubleStartKeepsOneCycle(t *testing.T) {
	r := &recordingRefresher{}
	p := New(r, 5*time.Millisecond, logging.Nop())

	p.Start(context.Background())
	p.Start(context.Background())
	t.Cleanup(p.Stop)

	require.Eventually(t, func() bool {
		_, balances := r.counts()
		return balances >= 5
	}, time.Second, 5*time.Millisecond)

	all, _ := r.counts()
	assert.Equal(t, 2, all, "each start refreshes everything once")
	assert.Equal(t, int32(1), r.maxSeen.Load(), "refreshes never overlap")

	live := map[context.Context]struct{}{}
	for _, ctx := range r.contexts() {
		if ctx.Err() == nil {
			live[ctx] = struct{}{}
		}
	}
	assert.Len(t, live, 1)
}

func TestPoller_StopHaltsRefreshes(t *testing.T) {
	r := &recordingRefresher{}
	p := New(r, 5*time.Millisecond, logging.Nop())

	p.Start(context.Background())
	require.Eventually(t, func() bool {
		_, balances := r.counts()
		return balances >= 2
	}, time.Second, 5*time.Millisecond)

	p.Stop()
	assert.False(t, p.Running())
	_, before := r.counts()

	time.Sleep(30 * time.Millisecond)
	_, after := r.counts()
	assert.Equal(t, before, after)

	p.Stop()
}

func TestPoller_ParentContextCancellation(t *testing.T) {
	r := &recordingRefresher{}
	p := New(r, 5*time.Millisecond, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	require.Eventually(t, func() bool {
		_, a := r.counts()
		time.Sleep(20 * time.Millisecond)
		_, b := r.counts()
		return a == b
	}, time.Second, 10*time.Millisecond)

	p.Stop()
}

func TestNew_DefaultInterval(t *testing.T) {
	p := New(&recordingRefresher{}, 0, logging.Nop())
	assert.Equal(t, DefaultInterval, p.interval)
	assert.False(t, p.Running())
}
