// Copyright 2025 EduPuzzle Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestBreaker(opts Options) (*Breaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	b := New("test", opts)
	b.now = clock.now
	return b, clock
}

func failing(calls *int) func(context.Context) error {
	return func(context.Context) error {
		*calls++
		return errBoom
	}
}

func succeeding(calls *int) func(context.Context) error {
	return func(context.Context) error {
		*calls++
		return nil
	}
}

func TestOpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(Options{FailureThreshold: 3, RecoveryTimeout: time.Second, MonitoringPeriod: time.Minute})
	ctx := context.Background()

	calls := 0
	for range 3 {
		err := b.Execute(ctx, failing(&calls))
		assert.ErrorIs(t, err, errBoom)
	}
	assert.Equal(t, 3, calls)

	snap := b.State()
	assert.Equal(t, StateOpen, snap.State)
	assert.Equal(t, 3, snap.Failures)
	assert.False(t, snap.NextAttemptTime.IsZero())

	// Fourth call is rejected without invoking the operation.
	err := b.Execute(ctx, failing(&calls))
	assert.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, 3, calls)

	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, snap.NextAttemptTime, openErr.RetryAt)
	assert.Equal(t, "test", openErr.Name)
}

func TestOperationErrorReturnedUnchanged(t *testing.T) {
	b, _ := newTestBreaker(Options{FailureThreshold: 3, RecoveryTimeout: time.Second})

	err := b.Execute(context.Background(), func(context.Context) error { return errBoom })
	assert.Equal(t, errBoom, err)
}

func TestHalfOpenProbeSuccessCloses(t *testing.T) {
	b, clock := newTestBreaker(Options{FailureThreshold: 3, RecoveryTimeout: time.Second, MonitoringPeriod: time.Minute})
	ctx := context.Background()

	calls := 0
	for range 3 {
		_ = b.Execute(ctx, failing(&calls))
	}
	require.Equal(t, StateOpen, b.State().State)

	clock.advance(time.Second)

	err := b.Execute(ctx, succeeding(&calls))
	assert.NoError(t, err)
	assert.Equal(t, 4, calls)

	snap := b.State()
	assert.Equal(t, StateClosed, snap.State)
	assert.Equal(t, 0, snap.Failures)
	assert.True(t, snap.LastFailureTime.IsZero())
	assert.True(t, snap.NextAttemptTime.IsZero())
}

func TestHalfOpenProbeFailureReopens(t *testing.T) {
	b, clock := newTestBreaker(Options{FailureThreshold: 3, RecoveryTimeout: time.Second})
	ctx := context.Background()

	calls := 0
	for range 3 {
		_ = b.Execute(ctx, failing(&calls))
	}
	before := b.State().NextAttemptTime

	clock.advance(time.Second)

	err := b.Execute(ctx, failing(&calls))
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 4, calls)

	snap := b.State()
	assert.Equal(t, StateOpen, snap.State)
	assert.True(t, snap.NextAttemptTime.After(before), "reopen should reschedule the window")

	// Rejected again until the renewed window passes.
	err = b.Execute(ctx, failing(&calls))
	assert.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, 4, calls)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(Options{FailureThreshold: 3, RecoveryTimeout: time.Second})
	ctx := context.Background()

	calls := 0
	_ = b.Execute(ctx, failing(&calls))
	_ = b.Execute(ctx, failing(&calls))
	require.Equal(t, 2, b.State().Failures)

	require.NoError(t, b.Execute(ctx, succeeding(&calls)))
	assert.Equal(t, 0, b.State().Failures)

	// The counter starts over, so two more failures do not trip it.
	_ = b.Execute(ctx, failing(&calls))
	_ = b.Execute(ctx, failing(&calls))
	assert.Equal(t, StateClosed, b.State().State)
}

func TestReset(t *testing.T) {
	b, _ := newTestBreaker(Options{FailureThreshold: 1, RecoveryTimeout: time.Hour})
	ctx := context.Background()

	calls := 0
	_ = b.Execute(ctx, failing(&calls))
	require.Equal(t, StateOpen, b.State().State)

	b.Reset()

	snap := b.State()
	assert.Equal(t, StateClosed, snap.State)
	assert.Equal(t, 0, snap.Failures)
	assert.True(t, snap.NextAttemptTime.IsZero())

	require.NoError(t, b.Execute(ctx, succeeding(&calls)))
	assert.Equal(t, 2, calls)
}

func TestDoReturnsValue(t *testing.T) {
	b, _ := newTestBreaker(Options{FailureThreshold: 1, RecoveryTimeout: time.Hour})
	ctx := context.Background()

	v, err := Do(ctx, b, func(context.Context) (string, error) {
		return "hello", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = Do(ctx, b, func(context.Context) (string, error) {
		return "", errBoom
	})
	require.ErrorIs(t, err, errBoom)

	v, err = Do(ctx, b, func(context.Context) (string, error) {
		return "never", nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.Empty(t, v)
}

func TestDefaults(t *testing.T) {
	b := New("defaults", Options{})
	assert.Equal(t, DefaultFailureThreshold, b.opts.FailureThreshold)
	assert.Equal(t, DefaultRecoveryTimeout, b.opts.RecoveryTimeout)
	assert.Equal(t, DefaultMonitoringPeriod, b.opts.MonitoringPeriod)
	assert.Equal(t, StateClosed, b.State().State)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestHalfOpenSingleProbe(t *testing.T) {
	b, clock := newTestBreaker(Options{FailureThreshold: 1, RecoveryTimeout: time.Second})
	ctx := context.Background()

	calls := 0
	_ = b.Execute(ctx, failing(&calls))
	clock.advance(time.Second)

	release := make(chan struct{})
	probeStarted := make(chan struct{})
	probeDone := make(chan error, 1)
	go func() {
		probeDone <- b.Execute(ctx, func(context.Context) error {
			close(probeStarted)
			<-release
			return nil
		})
	}()
	<-probeStarted

	// While the probe is in flight, other callers are rejected.
	err := b.Execute(ctx, succeeding(&calls))
	assert.ErrorIs(t, err, ErrOpen)

	close(release)
	require.NoError(t, <-probeDone)
	assert.Equal(t, StateClosed, b.State().State)
}
