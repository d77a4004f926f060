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

// Package curriculum compiles an author-written curriculum document into
// a concrete plan of daily puzzles. The document groups word lists into
// dated units; compilation expands each unit into one scheduled puzzle
// per day, each selected deterministically by date.
package curriculum

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/dadotschwab/EduPuzzle-sub003/pkg/config"
	"github.com/dadotschwab/EduPuzzle-sub003/pkg/puzzle"
)

var (
	ErrNoUnits     = errors.New("curriculum has no units")
	ErrUnknownList = errors.New("unknown word list")
)

// Curriculum is the parsed document.
type Curriculum struct {
	Name  string `json:"name"`
	Units []Unit `json:"units"`
}

// Unit schedules one word list across a run of consecutive days.
type Unit struct {
	Name     string      `json:"name"`
	List     string      `json:"list"`
	Start    string      `json:"start"`
	Days     int         `json:"days"`
	Activity ActivityRef `json:"activity"`
}

// ActivityRef is the untyped activity reference as written in the
// document; the spec map is decoded into a typed activity at compile
// time.
type ActivityRef struct {
	Type string         `json:"type"`
	Spec map[string]any `json:"spec,omitempty"`
}

// Plan is the compiled schedule.
type Plan struct {
	Curriculum string  `json:"curriculum"`
	Entries    []Entry `json:"entries"`
}

// Entry is one day's assignment.
type Entry struct {
	PuzzleID string        `json:"puzzleId"`
	Date     string        `json:"date"`
	Unit     string        `json:"unit"`
	Activity string        `json:"activity"`
	Words    []puzzle.Word `json:"words"`
}

// Parse strictly decodes a curriculum document.
func Parse(b []byte) (*Curriculum, error) {
	var c Curriculum
	if err := config.JSONDecode(bytes.NewReader(b), &c); err != nil {
		return nil, err
	}
	if len(c.Units) == 0 {
		return nil, ErrNoUnits
	}
	return &c, nil
}

// Compile expands every unit into dated entries against the given word
// lists. Entries come out in document order, day by day within a unit.
func (c *Curriculum) Compile(lists map[string]*puzzle.List) (*Plan, error) {
	plan := &Plan{Curriculum: c.Name}
	for _, unit := range c.Units {
		entries, err := compileUnit(unit, lists)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", unit.Name, err)
		}
		plan.Entries = append(plan.Entries, entries...)
	}
	return plan, nil
}

func compileUnit(unit Unit, lists map[string]*puzzle.List) ([]Entry, error) {
	list, ok := lists[unit.List]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownList, unit.List)
	}
	if unit.Days <= 0 {
		return nil, fmt.Errorf("unit must span at least one day, got %d", unit.Days)
	}

	start, err := time.Parse(puzzle.DateFormat, unit.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", unit.Start, err)
	}

	activity, err := CreateActivity(unit.Name, unit.Activity.Type, unit.Activity.Spec)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, unit.Days)
	for day := range unit.Days {
		date := start.AddDate(0, 0, day).Format(puzzle.DateFormat)
		p, err := puzzle.Daily(list, date, activity.Words())
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			PuzzleID: p.ID,
			Date:     date,
			Unit:     unit.Name,
			Activity: activity.Kind(),
			Words:    p.Words,
		})
	}
	return entries, nil
}
