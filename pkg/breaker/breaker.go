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

// Package breaker implements a three-state circuit breaker that wraps
// calls to a flaky downstream dependency. Repeated failures open the
// circuit; while open, calls fail fast without touching the dependency
// until a recovery window has passed, after which a single probe call
// decides whether the circuit closes again.
//
// One Breaker is intended per protected dependency, constructed at
// process start and handed to whatever performs the outbound calls.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State is the breaker's protection mode.
type State int

const (
	// StateClosed passes operations through and counts failures.
	StateClosed State = iota
	// StateOpen rejects all operations immediately.
	StateOpen
	// StateHalfOpen permits a single probe call to test recovery.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpen reports a call rejected because the circuit is open.
var ErrOpen = errors.New("circuit breaker open")

// OpenError carries the instant past which the next attempt is allowed.
// It wraps ErrOpen, so errors.Is(err, ErrOpen) matches.
type OpenError struct {
	Name    string
	RetryAt time.Time
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("circuit breaker %q open, retry after %s", e.Name, e.RetryAt.Format(time.RFC3339))
}

func (e *OpenError) Unwrap() error {
	return ErrOpen
}

const (
	DefaultFailureThreshold = 5
	DefaultRecoveryTimeout  = 30 * time.Second
	DefaultMonitoringPeriod = time.Minute
)

// Options configures a Breaker. Zero values fall back to the defaults
// above. MonitoringPeriod is carried in the configuration surface but
// does not decay the failure count over time: failures accumulate in the
// closed state until a success resets them or the threshold trips.
type Options struct {
	FailureThreshold int
	RecoveryTimeout  time.Duration
	MonitoringPeriod time.Duration
}

// Snapshot is a read-only view of breaker state for health checks.
type Snapshot struct {
	Name            string
	State           State
	Failures        int
	LastFailureTime time.Time
	NextAttemptTime time.Time
}

// Breaker guards an asynchronous operation. State reads and transitions
// are mutex-protected; the lock is never held across the wrapped call.
type Breaker struct {
	name string
	opts Options

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
	nextAttempt time.Time
	probing     bool

	now func() time.Time
}

func New(name string, opts Options) *Breaker {
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = DefaultFailureThreshold
	}
	if opts.RecoveryTimeout <= 0 {
		opts.RecoveryTimeout = DefaultRecoveryTimeout
	}
	if opts.MonitoringPeriod <= 0 {
		opts.MonitoringPeriod = DefaultMonitoringPeriod
	}
	return &Breaker{
		name: name,
		opts: opts,
		now:  time.Now,
	}
}

// Execute runs op under the breaker. When the circuit is open the call
// is rejected with *OpenError and op is never invoked. Otherwise op runs
// and its error, if any, is returned to the caller unchanged after the
// outcome has been recorded. The breaker imposes no timeout of its own
// on op; pass a context with a deadline for that.
func (b *Breaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := b.admit(); err != nil {
		return err
	}
	err := op(ctx)
	b.record(err)
	return err
}

// Do runs op under b for operations that produce a value. On rejection
// or failure the zero value of T is returned alongside the error.
func Do[T any](ctx context.Context, b *Breaker, op func(context.Context) (T, error)) (T, error) {
	var out T
	err := b.Execute(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// admit decides whether a call may proceed, applying the open to
// half-open transition once the recovery window has passed. Half-open
// admits exactly one probe; concurrent arrivals are rejected.
func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.now().Before(b.nextAttempt) {
			return &OpenError{Name: b.name, RetryAt: b.nextAttempt}
		}
		b.state = StateHalfOpen
		b.probing = true
	case StateHalfOpen:
		if b.probing {
			return &OpenError{Name: b.name, RetryAt: b.nextAttempt}
		}
		b.probing = true
	}
	return nil
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false
	if err == nil {
		b.state = StateClosed
		b.failures = 0
		b.lastFailure = time.Time{}
		b.nextAttempt = time.Time{}
		return
	}

	b.failures++
	b.lastFailure = b.now()
	// A half-open probe failure lands here too: the count is already at
	// or past the threshold, so the circuit reopens with a fresh window.
	if b.failures >= b.opts.FailureThreshold {
		b.state = StateOpen
		b.nextAttempt = b.lastFailure.Add(b.opts.RecoveryTimeout)
	}
}

// State returns a snapshot of the breaker without mutating it.
func (b *Breaker) State() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Name:            b.name,
		State:           b.state,
		Failures:        b.failures,
		LastFailureTime: b.lastFailure,
		NextAttemptTime: b.nextAttempt,
	}
}

// Reset forces the breaker closed and zeroes its counters. This is an
// operational override; normal recovery goes through the half-open
// probe.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.lastFailure = time.Time{}
	b.nextAttempt = time.Time{}
	b.probing = false
}
