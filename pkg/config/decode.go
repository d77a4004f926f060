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

package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"
)

// DecodeError wraps a mapstructure decode failure with the name of the
// item being decoded.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode spec for %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewMapstructureDecoder returns a decoder for spec maps. Duration
// fields accept strings like "90s", and unknown keys are rejected.
func NewMapstructureDecoder(target any) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      target,
		ErrorUnused: true,
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
	})
}

// JSONDecode strictly decodes JSON into target, rejecting unknown
// fields. Curriculum documents are author-edited, so typos should fail
// loudly instead of being dropped.
func JSONDecode(j io.Reader, target any) error {
	decoder := json.NewDecoder(j)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}
