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

package supabase

import (
	"context"

	"github.com/dadotschwab/EduPuzzle-sub003/pkg/puzzle"
)

// SharedList is a word list another learner has published.
type SharedList struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Owner     string `json:"owner"`
	Language  string `json:"language"`
	WordCount int    `json:"word_count"`
}

// ShareList publishes a local word list and returns its shared ID.
func (c *Client) ShareList(ctx context.Context, list *puzzle.List) (string, error) {
	var reply struct {
		ID string `json:"id"`
	}
	params := map[string]any{
		"name":     list.Name,
		"language": list.Language,
		"words":    list.Words,
	}
	if err := c.mutate(ctx, "share_word_list", params, &reply); err != nil {
		return "", err
	}
	return reply.ID, nil
}

// SharedLists returns the word lists shared with the caller.
func (c *Client) SharedLists(ctx context.Context) ([]SharedList, error) {
	var lists []SharedList
	if err := c.rpc(ctx, "list_shared_word_lists", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// ImportSharedList fetches a shared word list as a local list.
func (c *Client) ImportSharedList(ctx context.Context, id string) (*puzzle.List, error) {
	var list puzzle.List
	if err := c.rpc(ctx, "get_shared_word_list", map[string]any{"list_id": id}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
