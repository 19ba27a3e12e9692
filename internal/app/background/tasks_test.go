package background

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (p *fakePinger) PingContext(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *fakePinger) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

type fakeHealth struct {
	mu      sync.Mutex
	history []bool
}

func (h *fakeHealth) SetServing(serving bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.history = append(h.history, serving)
}

func (h *fakeHealth) last() (bool, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.history) == 0 {
		return false, false
	}
	return h.history[len(h.history)-1], true
}

func TestProbe(t *testing.T) {
	db := &fakePinger{}
	health := &fakeHealth{}
	bt := NewBackgroundTasks(db, health)

	bt.probe(context.Background())
	serving, ok := health.last()
	require.True(t, ok)
	assert.True(t, serving)

	db.setErr(errors.New("connection refused"))
	bt.probe(context.Background())
	serving, _ = health.last()
	assert.False(t, serving)
}

func TestStartAllProbesUntilCancelled(t *testing.T) {
	db := &fakePinger{err: errors.New("down")}
	health := &fakeHealth{}
	bt := NewBackgroundTasks(db, health)
	bt.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bt.StartAll(ctx)

	require.Eventually(t, func() bool {
		serving, ok := health.last()
		return ok && !serving
	}, time.Second, 5*time.Millisecond)

	db.setErr(nil)
	require.Eventually(t, func() bool {
		serving, _ := health.last()
		return serving
	}, time.Second, 5*time.Millisecond)
}
