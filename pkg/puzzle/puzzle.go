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

// Package puzzle selects the daily word puzzle from a word list. The
// selection is seeded by the calendar date, so every learner sees the
// same words on the same day without any stored schedule.
package puzzle

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/dadotschwab/EduPuzzle-sub003/pkg/seededrand"
)

var (
	ErrEmptyList      = errors.New("word list has no words")
	ErrNotEnoughWords = errors.New("word list has fewer words than requested")
	ErrInvalidCount   = errors.New("word count must be positive")
)

// DateFormat is the seed date layout.
const DateFormat = "2006-01-02"

type Word struct {
	Term       string `mapstructure:"term" yaml:"term" json:"term"`
	Definition string `mapstructure:"definition" yaml:"definition" json:"definition"`
	Difficulty int    `mapstructure:"difficulty,omitempty" yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
}

type List struct {
	Name     string `mapstructure:"name" yaml:"name" json:"name"`
	Language string `mapstructure:"language,omitempty" yaml:"language,omitempty" json:"language,omitempty"`
	Words    []Word `mapstructure:"words" yaml:"words" json:"words"`
}

// Puzzle is one day's selection from a list.
type Puzzle struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	List  string `json:"list"`
	Words []Word `json:"words"`
}

// Daily returns the puzzle for the given date (formatted as DateFormat).
// The same date and list always yield the same words in the same order;
// the list itself is never modified.
func Daily(list *List, date string, count int) (*Puzzle, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if len(list.Words) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyList, list.Name)
	}
	if count > len(list.Words) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughWords, count, len(list.Words))
	}

	r := seededrand.New(date + "|" + list.Name)
	words := seededrand.Shuffle(r, list.Words)

	return &Puzzle{
		ID:    MakeID(list.Name, date),
		Date:  date,
		List:  list.Name,
		Words: words[:count],
	}, nil
}

// MakeID derives a stable identifier for a list/date pair.
func MakeID(list, date string) string {
	x := xxhash.Sum64([]byte(list + "|" + date))
	return strconv.FormatUint(x, 32)
}
