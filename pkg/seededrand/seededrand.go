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

// Package seededrand provides a deterministic pseudo-random generator
// seeded from a string key. A fixed seed string yields the same draw
// sequence on every run, which keeps daily puzzle selection stable for
// a given calendar day. It is not a source of cryptographic randomness.
package seededrand

// Numerical Recipes LCG constants.
const (
	multiplier uint32 = 1664525
	increment  uint32 = 1013904223
)

// Rand is a 32-bit linear congruential generator. Each draw depends on
// and mutates the previous state, so a shared instance is not safe for
// concurrent callers without external serialization.
type Rand struct {
	state uint32
}

// New hashes the seed string with a polynomial rolling hash and uses the
// result as the generator's initial state.
func New(seed string) *Rand {
	var h uint32
	for _, c := range seed {
		h = h*31 + uint32(c)
	}
	return &Rand{state: h}
}

// Float64 advances the generator and returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state = r.state*multiplier + increment
	return float64(r.state) / (1 << 32)
}

// IntN returns an integer in [min, max). It panics if max <= min.
func (r *Rand) IntN(min, max int) int {
	if max <= min {
		panic("seededrand: invalid IntN range")
	}
	return int(r.Float64()*float64(max-min)) + min
}

// Shuffle returns a Fisher-Yates shuffled copy of in. The input slice is
// left unmodified.
func Shuffle[T any](r *Rand, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(0, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
