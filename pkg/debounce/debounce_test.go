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

package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBurstCoalescesToOneCall(t *testing.T) {
	d := New(30 * time.Millisecond)

	var calls atomic.Int32
	for range 5 {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 },
		time.Second, 10*time.Millisecond)

	// No stragglers after the quiet period.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCancelDropsPending(t *testing.T) {
	d := New(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestFlushRunsImmediately(t *testing.T) {
	d := New(time.Hour)

	var pending atomic.Int32
	d.Trigger(func() { pending.Add(1) })

	ran := false
	d.Flush(func() { ran = true })

	assert.True(t, ran)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), pending.Load(), "pending callback should have been cancelled")
}

func TestCancelWithoutPending(t *testing.T) {
	d := New(time.Millisecond)
	d.Cancel()
}
