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

package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/cardinalhq/oteltools/signalbuilder"
	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/pmetric"

	"github.com/dadotschwab/EduPuzzle-sub003/pkg/breaker"
	"github.com/dadotschwab/EduPuzzle-sub003/pkg/puzzle"
)

const (
	metricBreakerState    = "edupuzzle.breaker.state"
	metricBreakerFailures = "edupuzzle.breaker.failures"
	metricPuzzleWords     = "edupuzzle.puzzle.words"
)

// Reporter builds OTLP metric payloads from breaker snapshots and
// generated puzzles and hands them to its emitters.
type Reporter struct {
	service  string
	emitters []Emitter
}

func NewReporter(service string, emitters ...Emitter) *Reporter {
	return &Reporter{
		service:  service,
		emitters: emitters,
	}
}

// ReportBreaker emits the breaker's state (0 closed, 1 open, 2
// half-open) and its current failure count as gauges.
func (r *Reporter) ReportBreaker(ctx context.Context, snap breaker.Snapshot, ts time.Time) error {
	mb := signalbuilder.NewMetricsBuilder()

	rattr := pcommon.NewMap()
	if err := rattr.FromRaw(map[string]any{"service.name": r.service}); err != nil {
		return fmt.Errorf("failed to create resource attributes: %w", err)
	}
	res := mb.Resource(rattr)
	scope := res.Scope(pcommon.NewMap())

	dattr := pcommon.NewMap()
	if err := dattr.FromRaw(map[string]any{"breaker.name": snap.Name}); err != nil {
		return fmt.Errorf("failed to create datapoint attributes: %w", err)
	}

	stamp := pcommon.NewTimestampFromTime(ts)

	stateMetric, err := scope.Metric(metricBreakerState, "1", pmetric.MetricTypeGauge)
	if err != nil {
		return fmt.Errorf("failed to create metric: %w", err)
	}
	dp, _, _ := stateMetric.Datapoint(dattr, stamp)
	dp.SetDoubleValue(float64(snap.State))

	failMetric, err := scope.Metric(metricBreakerFailures, "1", pmetric.MetricTypeGauge)
	if err != nil {
		return fmt.Errorf("failed to create metric: %w", err)
	}
	dp, _, _ = failMetric.Datapoint(dattr, stamp)
	dp.SetDoubleValue(float64(snap.Failures))

	return r.emit(ctx, mb.Build())
}

// ReportPuzzle emits the size of a generated daily puzzle, tagged by
// list and date.
func (r *Reporter) ReportPuzzle(ctx context.Context, p *puzzle.Puzzle, ts time.Time) error {
	mb := signalbuilder.NewMetricsBuilder()

	rattr := pcommon.NewMap()
	if err := rattr.FromRaw(map[string]any{"service.name": r.service}); err != nil {
		return fmt.Errorf("failed to create resource attributes: %w", err)
	}
	res := mb.Resource(rattr)
	scope := res.Scope(pcommon.NewMap())

	dattr := pcommon.NewMap()
	if err := dattr.FromRaw(map[string]any{"puzzle.list": p.List, "puzzle.date": p.Date}); err != nil {
		return fmt.Errorf("failed to create datapoint attributes: %w", err)
	}

	wordsMetric, err := scope.Metric(metricPuzzleWords, "1", pmetric.MetricTypeGauge)
	if err != nil {
		return fmt.Errorf("failed to create metric: %w", err)
	}
	dp, _, _ := wordsMetric.Datapoint(dattr, pcommon.NewTimestampFromTime(ts))
	dp.SetDoubleValue(float64(len(p.Words)))

	return r.emit(ctx, mb.Build())
}

func (r *Reporter) emit(ctx context.Context, md pmetric.Metrics) error {
	for _, e := range r.emitters {
		if err := e.Emit(ctx, md); err != nil {
			return err
		}
	}
	return nil
}
