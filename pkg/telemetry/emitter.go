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

// Package telemetry turns circuit-breaker snapshots and puzzle activity
// into OTLP metrics for the collector that watches the edge functions.
package telemetry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/collector/pdata/pmetric"
	"go.opentelemetry.io/collector/pdata/pmetric/pmetricotlp"
)

// Emitter delivers a built metrics payload somewhere.
type Emitter interface {
	Emit(ctx context.Context, md pmetric.Metrics) error
}

// OTLPEmitter posts metrics to an OTLP/HTTP collector endpoint.
type OTLPEmitter struct {
	client   *http.Client
	endpoint string
	headers  map[string]string
}

func NewOTLPEmitter(client *http.Client, endpoint string, headers map[string]string) *OTLPEmitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &OTLPEmitter{
		client:   client,
		endpoint: endpoint,
		headers:  headers,
	}
}

func (e *OTLPEmitter) Emit(ctx context.Context, md pmetric.Metrics) error {
	if md.DataPointCount() == 0 {
		return nil
	}

	req := pmetricotlp.NewExportRequestFromMetrics(md)

	body, err := req.MarshalProto()
	if err != nil {
		return fmt.Errorf("failed to marshal metrics to protobuf: %w", err)
	}

	url := strings.TrimRight(e.endpoint, "/") + "/v1/metrics"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for k, v := range e.headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Content-Type", "application/x-protobuf")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send metrics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("collector returned %s: %s", resp.Status, string(respBody))
	}

	return nil
}

// DebugEmitter writes metrics as JSON lines, one payload per line.
type DebugEmitter struct {
	out io.Writer
}

func NewDebugEmitter(out io.Writer) *DebugEmitter {
	return &DebugEmitter{
		out: out,
	}
}

func (e *DebugEmitter) Emit(_ context.Context, md pmetric.Metrics) error {
	if md.DataPointCount() == 0 {
		return nil
	}

	marshaller := pmetric.JSONMarshaler{}

	msgBody, err := marshaller.MarshalMetrics(md)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	if _, err := e.out.Write(msgBody); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	if _, err := e.out.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}
