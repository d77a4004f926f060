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
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dadotschwab/EduPuzzle-sub003/pkg/breaker"
	"github.com/dadotschwab/EduPuzzle-sub003/pkg/config"
	"github.com/dadotschwab/EduPuzzle-sub003/pkg/supabase"
	"github.com/dadotschwab/EduPuzzle-sub003/pkg/taskqueue"
	"github.com/dadotschwab/EduPuzzle-sub003/pkg/telemetry"
)

var buddiesConfigs []string

var BuddiesCmd = &cobra.Command{
	Use:   "buddies",
	Short: "Manage study buddies",
	Long:  `Manage the buddy accountability system: list buddies, send invitations, and nudge partners who skipped today's puzzle.`,
}

var buddiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List buddies and pending invitations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd.Context(), func(ctx context.Context, c *supabase.Client) error {
			buddies, err := c.ListBuddies(ctx)
			if err != nil {
				return err
			}
			printBuddies(os.Stdout, buddies)
			return nil
		})
	},
}

var buddiesInviteCmd = &cobra.Command{
	Use:   "invite <email>",
	Short: "Invite a study buddy",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("no email provided")
		}
		return withClient(cmd.Context(), func(ctx context.Context, c *supabase.Client) error {
			return c.InviteBuddy(ctx, args[0])
		})
	},
}

var buddiesNudgeCmd = &cobra.Command{
	Use:   "nudge <user-id>",
	Short: "Nudge a buddy who has not practiced today",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("no user id provided")
		}
		return withClient(cmd.Context(), func(ctx context.Context, c *supabase.Client) error {
			return c.NudgeBuddy(ctx, args[0])
		})
	},
}

func init() {
	BuddiesCmd.PersistentFlags().StringArrayVar(&buddiesConfigs, "config", nil, "config file (repeatable, merged in order)")
	BuddiesCmd.AddCommand(buddiesListCmd)
	BuddiesCmd.AddCommand(buddiesInviteCmd)
	BuddiesCmd.AddCommand(buddiesNudgeCmd)
}

// withClient wires the breaker, queue, and client from configuration,
// runs fn, and reports the breaker's final state if telemetry is
// configured.
func withClient(ctx context.Context, fn func(context.Context, *supabase.Client) error) error {
	cfg, err := config.LoadConfigs(buddiesConfigs)
	if err != nil {
		return fmt.Errorf("error loading config files: %w", err)
	}

	queue := taskqueue.New(ctx, cfg.Supabase.QueueDepth)
	defer queue.Close()

	b := breaker.New("supabase", breaker.Options{
		FailureThreshold: cfg.Supabase.Breaker.FailureThreshold,
		RecoveryTimeout:  cfg.Supabase.Breaker.RecoveryTimeout,
		MonitoringPeriod: cfg.Supabase.Breaker.MonitoringPeriod,
	})

	client, err := supabase.NewClient(supabase.Options{
		URL:     cfg.Supabase.URL,
		APIKey:  cfg.Supabase.APIKey,
		Timeout: cfg.Supabase.Timeout,
	}, b, queue)
	if err != nil {
		return err
	}

	opErr := fn(ctx, client)

	if cfg.Telemetry.Endpoint != "" {
		httpClient := &http.Client{Timeout: cfg.Telemetry.Timeout}
		reporter := telemetry.NewReporter("edupuzzle-cli",
			telemetry.NewOTLPEmitter(httpClient, cfg.Telemetry.Endpoint, cfg.Telemetry.Headers))
		if err := reporter.ReportBreaker(ctx, b.State(), time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to report breaker state: %v\n", err)
		}
	}

	return opErr
}

func printBuddies(out io.Writer, buddies []supabase.Buddy) {
	if len(buddies) == 0 {
		fmt.Fprintln(out, "no buddies yet")
		return
	}
	for _, b := range buddies {
		fmt.Fprintf(out, "%s\t%s\t%s\tstreak %d\n", b.UserID, b.DisplayName, b.Status, b.Streak)
	}
}
