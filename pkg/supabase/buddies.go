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

import "context"

// Buddy is a study partner in the accountability system.
type Buddy struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"` // "pending" or "active"
	Streak      int    `json:"streak"`
}

// InviteBuddy sends a buddy invitation to the given email address.
func (c *Client) InviteBuddy(ctx context.Context, email string) error {
	return c.mutate(ctx, "invite_buddy", map[string]any{"invitee_email": email}, nil)
}

// AcceptBuddy accepts a pending invitation.
func (c *Client) AcceptBuddy(ctx context.Context, inviteID string) error {
	return c.mutate(ctx, "accept_buddy_invite", map[string]any{"invite_id": inviteID}, nil)
}

// ListBuddies returns the caller's buddies, pending invitations
// included.
func (c *Client) ListBuddies(ctx context.Context) ([]Buddy, error) {
	var buddies []Buddy
	if err := c.rpc(ctx, "list_buddies", nil, &buddies); err != nil {
		return nil, err
	}
	return buddies, nil
}

// NudgeBuddy pokes a buddy who has not practiced today.
func (c *Client) NudgeBuddy(ctx context.Context, userID string) error {
	return c.mutate(ctx, "nudge_buddy", map[string]any{"buddy_user_id": userID}, nil)
}
