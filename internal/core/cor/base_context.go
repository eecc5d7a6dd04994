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
	"context"
)

// BaseContext is the default implementation of the Context interface. It is a
// simple property bag holding the workflow data, any collected errors, and
// the Go context for the current execution. It is not safe for concurrent use
// by multiple goroutines; each workflow execution gets its own instance.
type BaseContext struct {
	data    map[string]interface{}
	errors  map[string]error
	context context.Context
}

// NewBaseContext creates an empty context ready for a single workflow run.
//
// Outputs:
//   - Context: a new, empty context object.
func NewBaseContext() Context {
	return &BaseContext{
		data:   make(map[string]interface{}),
		errors: make(map[string]error),
	}
}

// SetContext sets the underlying Go context. The chain uses this to scope
// each command under its own telemetry span.
func (c *BaseContext) SetContext(context context.Context) {
	c.context = context
}

// GetContext retrieves the underlying Go context.
func (c *BaseContext) GetContext() context.Context {
	return c.context
}

// Add stores a key-value pair and returns the context for fluent chaining.
func (c *BaseContext) Add(key string, value interface{}) Context {
	c.data[key] = value
	return c
}

// AddError records an error under the name of the command that produced it.
func (c *BaseContext) AddError(key string, err error) {
	c.errors[key] = err
}

// GetErrors returns the map of all errors collected during the workflow.
func (c *BaseContext) GetErrors() map[string]error {
	return c.errors
}

// Get retrieves a stored value, or nil when the key does not exist.
func (c *BaseContext) Get(key string) interface{} {
	return c.data[key]
}

// Remove deletes a key-value pair from the context.
func (c *BaseContext) Remove(key string) {
	delete(c.data, key)
}

// HasErrors reports whether any error has been recorded.
func (c *BaseContext) HasErrors() bool {
	return len(c.errors) > 0
}
