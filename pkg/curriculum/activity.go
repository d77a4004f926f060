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

package curriculum

import (
	"errors"
	"fmt"

	"github.com/dadotschwab/EduPuzzle-sub003/pkg/config"
)

var (
	ErrUnknownActivity = errors.New("unknown activity type")
	ErrInvalidSpec     = errors.New("invalid activity spec")
)

// Activity describes how one day's words are rehearsed.
type Activity interface {
	Kind() string
	// Words reports how many words the activity consumes per day.
	Words() int
}

// ShuffleSpec presents the day's words in shuffled order for review.
type ShuffleSpec struct {
	Count int `mapstructure:"count" json:"count"`
}

func (s *ShuffleSpec) Kind() string { return "shuffle" }
func (s *ShuffleSpec) Words() int   { return s.Count }

// MatchSpec pairs terms with definitions.
type MatchSpec struct {
	Pairs int `mapstructure:"pairs" json:"pairs"`
}

func (s *MatchSpec) Kind() string { return "match" }
func (s *MatchSpec) Words() int   { return s.Pairs }

// QuizSpec asks multiple-choice questions, one word per question.
type QuizSpec struct {
	Questions int `mapstructure:"questions" json:"questions"`
	Choices   int `mapstructure:"choices" json:"choices"`
}

func (s *QuizSpec) Kind() string { return "quiz" }
func (s *QuizSpec) Words() int   { return s.Questions }

// CreateActivity decodes a typed activity from its kind and spec map.
func CreateActivity(name, kind string, spec map[string]any) (Activity, error) {
	switch kind {
	case "shuffle":
		s := &ShuffleSpec{Count: 10}
		if err := decodeSpec(name, s, spec); err != nil {
			return nil, err
		}
		if s.Count <= 0 {
			return nil, fmt.Errorf("%w: shuffle count %d", ErrInvalidSpec, s.Count)
		}
		return s, nil
	case "match":
		s := &MatchSpec{Pairs: 6}
		if err := decodeSpec(name, s, spec); err != nil {
			return nil, err
		}
		if s.Pairs <= 0 {
			return nil, fmt.Errorf("%w: match pairs %d", ErrInvalidSpec, s.Pairs)
		}
		return s, nil
	case "quiz":
		s := &QuizSpec{Questions: 10, Choices: 4}
		if err := decodeSpec(name, s, spec); err != nil {
			return nil, err
		}
		if s.Questions <= 0 {
			return nil, fmt.Errorf("%w: quiz questions %d", ErrInvalidSpec, s.Questions)
		}
		if s.Choices < 2 {
			return nil, fmt.Errorf("%w: quiz needs at least 2 choices, got %d", ErrInvalidSpec, s.Choices)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownActivity, kind)
	}
}

func decodeSpec(name string, target any, spec map[string]any) error {
	if spec == nil {
		return nil
	}
	decoder, err := config.NewMapstructureDecoder(target)
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(spec); err != nil {
		return &config.DecodeError{Name: name, Err: err}
	}
	return nil
}
