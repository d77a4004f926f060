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

package puzzle

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadList reads a YAML word list. A list without an explicit name takes
// the file's base name. The name feeds the daily seed, so renaming an
// unnamed list file changes its puzzles.
func LoadList(path string) (*List, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list List
	if err := yaml.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	if list.Name == "" {
		base := filepath.Base(path)
		list.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return &list, nil
}

// LoadLists reads several word lists and indexes them by name.
func LoadLists(paths []string) (map[string]*List, error) {
	lists := make(map[string]*List, len(paths))
	for _, path := range paths {
		list, err := LoadList(path)
		if err != nil {
			return nil, err
		}
		lists[list.Name] = list
	}
	return lists, nil
}
