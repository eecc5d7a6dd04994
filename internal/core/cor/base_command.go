// Copyright 2025 Zunetech
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cor

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// MeterNamespace is the shared OpenTelemetry meter scope for every workflow
// command in the application.
const MeterNamespace = "github.com/zunetech/content-console"

// BaseCommand is the default implementation of the Command interface.
// Concrete commands embed it to inherit naming, telemetry instrumentation,
// and the input/output parameter defaults that make chain piping work.
type BaseCommand struct {
	Name            string              // Unique name, used for tracing and metrics.
	InputParamName  string              // Context key for the primary input; defaults to CtxIn.
	OutputParamName string              // Context key for the primary output; defaults to CtxOut.
	Tracer          trace.Tracer        // Tracer for creating spans.
	Meter           metric.Meter        // Meter for creating metrics.
	SuccessCounter  metric.Int64Counter // Incremented on successful execution.
	ErrorCounter    metric.Int64Counter // Incremented on failed execution.
}

// NewBaseCommand creates a command with the given name and wires up its
// OpenTelemetry tracer and counters from the global providers.
//
// Inputs:
//   - name: the command name.
//
// Outputs:
//   - *BaseCommand: the instrumented command.
func NewBaseCommand(name string) *BaseCommand {
	meter := otel.Meter(MeterNamespace)

	successCounter, err := meter.Int64Counter(fmt.Sprintf("%s.counter.success", name))
	if err != nil {
		slog.Warn("failed to create success counter", "command", name, "error", err)
	}
	errorCounter, err := meter.Int64Counter(fmt.Sprintf("%s.counter.error", name))
	if err != nil {
		slog.Warn("failed to create error counter", "command", name, "error", err)
	}

	return &BaseCommand{
		Name:           name,
		Tracer:         otel.Tracer(name),
		Meter:          meter,
		SuccessCounter: successCounter,
		ErrorCounter:   errorCounter,
	}
}

// GetName returns the name of the command.
func (c *BaseCommand) GetName() string {
	return c.Name
}

// IsExecutable is the default readiness check: the context must be valid,
// carry a Go context, and hold a value under the command's input key.
func (c *BaseCommand) IsExecutable(context Context) bool {
	return context != nil && context.Get(c.GetInputParam()) != nil && context.GetContext() != nil
}

// GetInputParam returns the key for the command's primary input. When no
// custom key is set it falls back to CtxIn, which is what lets a chain pipe
// one command's output into the next command's input.
func (c *BaseCommand) GetInputParam() string {
	if len(c.InputParamName) == 0 {
		return CtxIn
	}
	return c.InputParamName
}

// GetOutputParam returns the key for the command's primary output, defaulting
// to CtxOut.
func (c *BaseCommand) GetOutputParam() string {
	if len(c.OutputParamName) == 0 {
		return CtxOut
	}
	return c.OutputParamName
}

// GetTracer returns the OpenTelemetry tracer for this command.
func (c *BaseCommand) GetTracer() trace.Tracer {
	return c.Tracer
}

// GetMeter returns the OpenTelemetry meter for this command.
func (c *BaseCommand) GetMeter() metric.Meter {
	return c.Meter
}

// GetSuccessCounter returns the success counter for this command.
func (c *BaseCommand) GetSuccessCounter() metric.Int64Counter {
	return c.SuccessCounter
}

// GetErrorCounter returns the error counter for this command.
func (c *BaseCommand) GetErrorCounter() metric.Int64Counter {
	return c.ErrorCounter
}
