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

// Package debounce coalesces bursts of triggers into a single callback
// fired after a quiet period, e.g. saving practice progress only once a
// learner stops typing.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recent callback once no trigger has arrived
// for the configured quiet period.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	wait  time.Duration
}

func New(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Trigger schedules fn to run after the quiet period. A trigger while
// one is pending restarts the timer and replaces the callback. fn runs
// on its own goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, fn)
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush cancels any pending callback and runs fn immediately on the
// calling goroutine.
func (d *Debouncer) Flush(fn func()) {
	d.Cancel()
	fn()
}
