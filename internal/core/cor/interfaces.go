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

// Package cor (Chain of Responsibility) provides the building blocks used to
// assemble the content-generation workflows. A workflow is a sequence of
// small commands, each reading its input from a shared context and writing
// its output back for the next command. Interfaces keep the framework open:
// any implementation of Command, Chain, or Context can participate.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the reserved keys that drive the data pipeline inside
// a chain: a command's output under CtxOut becomes the next command's input
// under CtxIn.
const (
	// CtxIn is the default key a command reads its primary input from.
	CtxIn = "__IN__"
	// CtxOut is the default key a command writes its primary output to.
	CtxOut = "__OUT__"
)

// Context is the shared state passed through a chain. It carries workflow
// data, collected errors, and the standard Go context for cancellation and
// trace propagation.
type Context interface {
	// SetContext sets the standard Go context, carrying deadlines and
	// OpenTelemetry span information.
	SetContext(context context.Context)

	// GetContext retrieves the standard Go context.
	GetContext() context.Context

	// Add stores a key-value pair. It returns the Context so calls can be
	// fluently chained.
	Add(key string, value interface{}) Context

	// AddError records an error produced by a command. The key should be the
	// name of the command that failed.
	AddError(key string, err error)

	// GetErrors returns every error recorded during the workflow.
	GetErrors() map[string]error

	// Get retrieves a value by key, or nil when absent.
	Get(key string) interface{}

	// Remove deletes a key-value pair.
	Remove(key string)

	// HasErrors reports whether any command has recorded an error.
	HasErrors() bool
}

// Executable is any object with a core execution routine.
type Executable interface {
	// Execute runs the business logic, reading inputs from and writing
	// outputs to the supplied Context.
	Execute(context Context)
}

// Command is an atomic, testable unit of work and the fundamental building
// block of a workflow.
type Command interface {
	Executable

	// GetName returns the command's unique name for logging and telemetry.
	GetName() string

	// GetInputParam returns the context key this command reads its primary
	// input from.
	GetInputParam() string

	// GetOutputParam returns the context key this command writes its primary
	// output to.
	GetOutputParam() string

	// IsExecutable reports whether the command can run against the current
	// context state. It is a precondition check before Execute.
	IsExecutable(context Context) bool

	// GetTracer returns the OpenTelemetry tracer for this command.
	GetTracer() trace.Tracer

	// GetMeter returns the OpenTelemetry meter for this command.
	GetMeter() metric.Meter

	// GetSuccessCounter returns the counter incremented on success.
	GetSuccessCounter() metric.Int64Counter

	// GetErrorCounter returns the counter incremented on failure.
	GetErrorCounter() metric.Int64Counter
}

// Chain is an ordered sequence of commands. A Chain is itself a Command, so
// chains can be nested inside other chains.
type Chain interface {
	Command

	// ContinueOnFailure configures whether the chain keeps executing after a
	// command records an error.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
