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
	"time"

	"github.com/spf13/cobra"

	"github.com/dadotschwab/EduPuzzle-sub003/pkg/puzzle"
)

var (
	dailyDate  string
	dailyCount int
)

var DailyCmd = &cobra.Command{
	Use:   "daily <wordlist.yaml>",
	Short: "Select the daily puzzle from a word list",
	Long:  `Select the daily puzzle from a word list. Selection is seeded by the date, so the same date always yields the same puzzle.`,
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("no word list provided")
		}
		return Daily(args[0], dailyDate, dailyCount, os.Stdout)
	},
}

func init() {
	DailyCmd.Flags().StringVar(&dailyDate, "date", "", "puzzle date (YYYY-MM-DD, default today)")
	DailyCmd.Flags().IntVar(&dailyCount, "count", 10, "number of words to select")
}

func Daily(path, date string, count int, out io.Writer) error {
	list, err := puzzle.LoadList(path)
	if err != nil {
		return fmt.Errorf("error loading word list: %w", err)
	}

	if date == "" {
		date = time.Now().Format(puzzle.DateFormat)
	} else if _, err := time.Parse(puzzle.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	p, err := puzzle.Daily(list, date, count)
	if err != nil {
		return fmt.Errorf("error selecting puzzle: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
