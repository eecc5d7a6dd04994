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

	"go.opentelemetry.io/otel/codes"
)

// BaseChain is the default implementation of the Chain interface. It executes
// its commands in order, opening a telemetry span per command and piping each
// command's output into the next command's input. Because BaseChain embeds
// BaseCommand it can itself be added to a larger chain.
type BaseChain struct {
	BaseCommand
	continueOnFailure bool
	commands          []Command
}

// NewBaseChain creates an empty chain with the given name.
func NewBaseChain(name string) *BaseChain {
	return &BaseChain{BaseCommand: *NewBaseCommand(name)}
}

// ContinueOnFailure configures the chain's error handling. When false (the
// default) the chain stops at the first command that records an error.
func (c *BaseChain) ContinueOnFailure(continueOnFailure bool) Chain {
	c.continueOnFailure = continueOnFailure
	return c
}

// AddCommand appends a command to the chain and returns the chain so builds
// can be fluently composed.
func (c *BaseChain) AddCommand(command Command) Chain {
	c.commands = append(c.commands, command)
	return c
}

// IsExecutable for a chain only requires a valid Go context; individual
// commands perform their own input checks.
func (c *BaseChain) IsExecutable(context Context) bool {
	return context.GetContext() != nil
}

// Execute runs each command in order under its own child span. After a
// command finishes, the value it stored under CtxOut is moved to CtxIn so the
// next command sees it as input. The chain stops early when the context holds
// errors and continueOnFailure is false.
func (c *BaseChain) Execute(chCtx Context) {
	parentCtx := chCtx.GetContext()

	outerCtx, chainSpan := c.Tracer.Start(parentCtx, fmt.Sprintf("%s_execute", c.GetName()))
	defer chainSpan.End()

	for _, command := range c.commands {
		commandContext, commandSpan := c.Tracer.Start(outerCtx, command.GetName())

		if chCtx.HasErrors() && !c.continueOnFailure {
			commandSpan.SetStatus(codes.Error, "previous error on chain; skipping execution")
			commandSpan.End()
			break
		}

		if command.IsExecutable(chCtx) {
			// Scope the command under its own span, then restore the chain's
			// context so sibling commands stay at the same trace depth.
			chCtx.SetContext(commandContext)
			command.Execute(chCtx)
			chCtx.SetContext(outerCtx)
		} else {
			commandSpan.SetStatus(codes.Error, fmt.Sprintf("command not executable: %s", command.GetName()))
		}

		if chCtx.HasErrors() {
			commandSpan.SetStatus(codes.Error, "error during or after command execution")
		} else {
			commandSpan.SetStatus(codes.Ok, "command completed successfully")
		}
		commandSpan.End()

		// Pipe the output of this command into the input of the next.
		outputValue := chCtx.Get(CtxOut)
		chCtx.Remove(CtxIn)
		if outputValue != nil {
			chCtx.Add(CtxIn, outputValue)
		}
		chCtx.Remove(CtxOut)
	}

	if !chCtx.HasErrors() {
		chainSpan.SetStatus(codes.Ok, "chain completed successfully")
	} else {
		chainSpan.SetStatus(codes.Error, "chain failed to execute")
	}
}
