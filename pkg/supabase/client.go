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

// Package supabase is a thin client for the backing service's RPC
// functions. Every outbound call goes through a caller-owned circuit
// breaker; mutating calls are additionally serialized through a task
// queue so writes apply in the order they were issued.
//
// Authentication, schema, and billing are the backend's concern; the
// client only carries the credentials it is given.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dadotschwab/EduPuzzle-sub003/pkg/breaker"
	"github.com/dadotschwab/EduPuzzle-sub003/pkg/taskqueue"
)

var ErrMissingURL = errors.New("supabase url not configured")

// RPCError reports a non-2xx reply from an RPC function.
type RPCError struct {
	Func   string
	Status int
	Body   string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc %q returned status %d: %s", e.Func, e.Status, e.Body)
}

// Options configures a Client.
type Options struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Client invokes PostgREST-style RPC functions:
// POST {url}/rest/v1/rpc/{fn} with a JSON body and JSON reply.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *breaker.Breaker
	queue   *taskqueue.Queue
}

// NewClient builds a client around the given breaker. queue may be nil,
// in which case mutating calls are not serialized.
func NewClient(opts Options, b *breaker.Breaker, queue *taskqueue.Queue) (*Client, error) {
	if opts.URL == "" {
		return nil, ErrMissingURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(opts.URL, "/"),
		apiKey:  opts.APIKey,
		http:    &http.Client{Timeout: opts.Timeout},
		breaker: b,
		queue:   queue,
	}, nil
}

// Breaker exposes the client's breaker for health-check callers.
func (c *Client) Breaker() *breaker.Breaker {
	return c.breaker
}

// rpc invokes a read-only RPC function under the breaker and decodes
// the JSON reply into out (which may be nil).
func (c *Client) rpc(ctx context.Context, fn string, params, out any) error {
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.call(ctx, fn, params, out)
	})
}

// mutate is rpc for write functions, run through the queue so that
// writes reach the backend strictly in submission order.
func (c *Client) mutate(ctx context.Context, fn string, params, out any) error {
	if c.queue == nil {
		return c.rpc(ctx, fn, params, out)
	}
	return c.queue.Do(ctx, func(ctx context.Context) error {
		return c.rpc(ctx, fn, params, out)
	})
}

func (c *Client) call(ctx context.Context, fn string, params, out any) error {
	body := []byte("{}")
	if params != nil {
		var err error
		body, err = json.Marshal(params)
		if err != nil {
			return fmt.Errorf("failed to marshal params for %q: %w", fn, err)
		}
	}

	url := c.baseURL + "/rest/v1/rpc/" + fn
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request for %q: %w", fn, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rpc %q failed: %w", fn, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		slog.Warn("rpc call failed", "fn", fn, "status", resp.StatusCode)
		return &RPCError{Func: fn, Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode reply from %q: %w", fn, err)
	}
	return nil
}
