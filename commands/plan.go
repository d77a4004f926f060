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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dadotschwab/EduPuzzle-sub003/pkg/curriculum"
	"github.com/dadotschwab/EduPuzzle-sub003/pkg/puzzle"
)

var PlanCmd = &cobra.Command{
	Use:   "plan <curriculum.json> <wordlist.yaml> [wordlist.yaml...]",
	Short: "Compile a curriculum into a daily puzzle schedule",
	Long:  `Compile a curriculum document into a concrete schedule of daily puzzles, one entry per unit per day.`,
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) < 2 {
			return errors.New("need a curriculum file and at least one word list")
		}
		return Plan(args[0], args[1:], os.Stdout)
	},
}

func Plan(curriculumPath string, listPaths []string, out io.Writer) error {
	b, err := os.ReadFile(curriculumPath)
	if err != nil {
		return fmt.Errorf("error reading curriculum: %w", err)
	}

	c, err := curriculum.Parse(b)
	if err != nil {
		return fmt.Errorf("error parsing curriculum: %w", err)
	}

	lists, err := puzzle.LoadLists(listPaths)
	if err != nil {
		return fmt.Errorf("error loading word lists: %w", err)
	}

	plan, err := c.Compile(lists)
	if err != nil {
		return fmt.Errorf("error compiling curriculum: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
