package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHealth struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeHealth) Check(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeHealth) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeHealth) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingReporter struct {
	mu       sync.Mutex
	statuses []bool
}

func (r *recordingReporter) SetServing(serving bool) {
	r.mu.Lock()
	r.statuses = append(r.statuses, serving)
	r.mu.Unlock()
}

func (r *recordingReporter) last() (bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return false, false
	}
	return r.statuses[len(r.statuses)-1], true
}

// ── HealthProbe ───────────────────────────────────────────────────────────────

func TestHealthProbe_FirstProbeIsSynchronous(t *testing.T) {
	health := &fakeHealth{}
	reporter := &recordingReporter{}
	probe := NewHealthProbe(health, reporter, time.Hour, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	probe.Run(ctx)

	assert.Equal(t, 1, health.callCount())
	assert.True(t, probe.Healthy())
	serving, ok := reporter.last()
	require.True(t, ok)
	assert.True(t, serving)
}

func TestHealthProbe_ReportsUnreachableStorage(t *testing.T) {
	health := &fakeHealth{err: errors.New("connection refused")}
	reporter := &recordingReporter{}
	probe := NewHealthProbe(health, reporter, time.Hour, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	probe.Run(ctx)

	assert.False(t, probe.Healthy())
	serving, ok := reporter.last()
	require.True(t, ok)
	assert.False(t, serving)
}

func TestHealthProbe_TicksUntilCancelled(t *testing.T) {
	health := &fakeHealth{err: errors.New("down")}
	reporter := &recordingReporter{}
	probe := NewHealthProbe(health, reporter, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	probe.Run(ctx)
	health.setErr(nil)

	assert.Eventually(t, probe.Healthy, 2*time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	calls := health.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, health.callCount(), "probe kept running after cancellation")
}

func TestHealthProbe_NilReporter(t *testing.T) {
	probe := NewHealthProbe(&fakeHealth{}, nil, 0, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.NotPanics(t, func() { probe.Run(ctx) })
	assert.Equal(t, defaultProbeInterval, probe.interval)
}
