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

package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadotschwab/EduPuzzle-sub003/pkg/curriculum"
	"github.com/dadotschwab/EduPuzzle-sub003/pkg/puzzle"
)

func writeWordList(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "core-vocab.yaml")
	body := `
words:
  - term: ephemeral
    definition: lasting a very short time
  - term: lucid
    definition: clearly expressed
  - term: candor
    definition: frank honesty
  - term: terse
    definition: brief and to the point
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDailyCommand(t *testing.T) {
	path := writeWordList(t)

	var buf bytes.Buffer
	require.NoError(t, Daily(path, "2024-01-15", 3, &buf))

	var p puzzle.Puzzle
	require.NoError(t, json.Unmarshal(buf.Bytes(), &p))
	assert.Equal(t, "2024-01-15", p.Date)
	assert.Equal(t, "core-vocab", p.List)
	assert.Len(t, p.Words, 3)

	// Same date, same list, same puzzle.
	var again bytes.Buffer
	require.NoError(t, Daily(path, "2024-01-15", 3, &again))
	assert.Equal(t, buf.String(), again.String())
}

func TestDailyCommandRejectsBadDate(t *testing.T) {
	path := writeWordList(t)
	assert.Error(t, Daily(path, "January 15th", 3, &bytes.Buffer{}))
}

func TestDailyCommandMissingList(t *testing.T) {
	assert.Error(t, Daily(filepath.Join(t.TempDir(), "nope.yaml"), "2024-01-15", 3, &bytes.Buffer{}))
}

func TestPlanCommand(t *testing.T) {
	listPath := writeWordList(t)
	curriculumPath := filepath.Join(t.TempDir(), "curriculum.json")
	doc := `{"name": "intensive", "units": [{"name": "week-1", "list": "core-vocab", "start": "2024-01-15", "days": 2, "activity": {"type": "shuffle", "spec": {"count": 3}}}]}`
	require.NoError(t, os.WriteFile(curriculumPath, []byte(doc), 0o644))

	var buf bytes.Buffer
	require.NoError(t, Plan(curriculumPath, []string{listPath}, &buf))

	var plan curriculum.Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &plan))
	assert.Equal(t, "intensive", plan.Curriculum)
	require.Len(t, plan.Entries, 2)
	assert.Equal(t, "2024-01-15", plan.Entries[0].Date)
	assert.Equal(t, "2024-01-16", plan.Entries[1].Date)
}

func TestPlanCommandBadCurriculum(t *testing.T) {
	listPath := writeWordList(t)
	curriculumPath := filepath.Join(t.TempDir(), "curriculum.json")
	require.NoError(t, os.WriteFile(curriculumPath, []byte(`{"units": []}`), 0o644))

	assert.Error(t, Plan(curriculumPath, []string{listPath}, &bytes.Buffer{}))
}
