//go:build unit
// +build unit

package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recordingObserver struct {
	mu   sync.Mutex
	runs map[string][]error
}

func (o *recordingObserver) JobRun(job string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.runs == nil {
		o.runs = map[string][]error{}
	}
	o.runs[job] = append(o.runs[job], err)
}

func TestScheduler_RunNow(t *testing.T) {
	defer goleak.VerifyNone(t)

	observer := &recordingObserver{}
	s := New(testutil.SetupTestLogger(t), observer)

	calls := 0
	require.NoError(t, s.Add("count", "@daily", func(ctx context.Context) error {
		calls++
		return nil
	}))
	require.NoError(t, s.Add("broken", "@daily", func(ctx context.Context) error {
		return errors.New("boom")
	}))

	require.NoError(t, s.RunNow("count"))
	assert.EqualError(t, s.RunNow("broken"), "boom")
	assert.Error(t, s.RunNow("missing"))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []error{nil}, observer.runs["count"])
	assert.Len(t, observer.runs["broken"], 1)

	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_AddRejectsInvalidAndDuplicate(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New(testutil.SetupTestLogger(t), nil)
	noop := func(ctx context.Context) error { return nil }

	assert.Error(t, s.Add("bad", "not a schedule", noop))
	require.NoError(t, s.Add("job", "0 3 * * *", noop))
	assert.Error(t, s.Add("job", "0 4 * * *", noop))

	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_StartRunsJobsAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New(testutil.SetupTestLogger(t), nil)
	var calls atomic.Int32
	require.NoError(t, s.Add("tick", "@every 1s", func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}))

	s.Start()
	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}
