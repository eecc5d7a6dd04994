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

// Package commands provides the concrete command implementations for the
// content-generation workflows. This file defines the first step of the
// script pipeline: turning a user request plus the stored persona into the
// system instruction and user prompt for the generative call.
//
// Logic Flow:
//  1. It reads the script request (topic, duration, CTA placement) from its
//     input parameter and the persona profile from a named context key.
//  2. It renders the rules template with the request's duration and placement
//     labels and the persona's serialized context memory.
//  3. It joins the persona's system instruction with the rendered rules to
//     form the full system instruction, and renders the request template to
//     form the user prompt.
//  4. It places a ScriptPrompt on the context for the generator command.
package commands

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/zunetech/content-console/internal/cloud"
	"github.com/zunetech/content-console/internal/core/cor"
	"github.com/zunetech/content-console/internal/core/model"
)

// Named context keys shared between the services layer and the script
// commands. The request also travels on the default input key; these exist
// for values a command needs outside the linear pipeline.
const (
	// ScriptRequestParam holds the original *model.ScriptRequest so the
	// assembler can stamp identity fields after generation.
	ScriptRequestParam = "__script_request__"
	// PersonaParam holds the *model.PersonaProfile conditioning this run.
	PersonaParam = "__persona__"
)

// ScriptPrompt is the assembled prompt pair handed from the builder to the
// generator command.
type ScriptPrompt struct {
	SystemInstruction string
	UserText          string
}

// ScriptPromptBuilder is the command that renders the prompt templates for a
// script generation run.
type ScriptPromptBuilder struct {
	cor.BaseCommand
	config          *cloud.Config
	rulesTemplate   *template.Template
	requestTemplate *template.Template
}

// NewScriptPromptBuilder is the constructor for the ScriptPromptBuilder
// command.
//
// Inputs:
//   - name: a string name for this command instance.
//   - config: the application configuration carrying the language setting.
//   - rulesTemplate: parsed template for the rules block of the system instruction.
//   - requestTemplate: parsed template for the user prompt.
//
// Outputs:
//   - *ScriptPromptBuilder: the instantiated command.
func NewScriptPromptBuilder(
	name string,
	config *cloud.Config,
	rulesTemplate *template.Template,
	requestTemplate *template.Template) *ScriptPromptBuilder {
	return &ScriptPromptBuilder{
		BaseCommand:     *cor.NewBaseCommand(name),
		config:          config,
		rulesTemplate:   rulesTemplate,
		requestTemplate: requestTemplate,
	}
}

// IsExecutable additionally requires a persona on the context; the prompt is
// meaningless without one.
func (t *ScriptPromptBuilder) IsExecutable(context cor.Context) bool {
	if !t.BaseCommand.IsExecutable(context) {
		return false
	}
	_, ok := context.Get(PersonaParam).(*model.PersonaProfile)
	return ok
}

// GenerateParams creates the substitution map for the templates.
//
// Inputs:
//   - request: the script request for this run.
//   - persona: the persona profile conditioning the run.
//
// Outputs:
//   - map[string]interface{}: keys and values for template substitution.
func (t *ScriptPromptBuilder) GenerateParams(request *model.ScriptRequest, persona *model.PersonaProfile) map[string]interface{} {
	return map[string]interface{}{
		"CONTEXT_MEMORY": persona.MemoryDump(),
		"DURATION":       request.Duration.Label(),
		"CTA_PLACEMENT":  request.CtaPlacement.Label(),
		"LANGUAGE":       t.config.Application.Language,
		"TOPIC":          request.Topic,
	}
}

// Execute renders both templates and emits the combined ScriptPrompt.
//
// Inputs:
//   - context: the shared workflow context.
func (t *ScriptPromptBuilder) Execute(context cor.Context) {
	request := context.Get(t.GetInputParam()).(*model.ScriptRequest)
	persona := context.Get(PersonaParam).(*model.PersonaProfile)
	params := t.GenerateParams(request, persona)

	var rules bytes.Buffer
	if err := t.rulesTemplate.Execute(&rules, params); err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("failed to execute rules template: %w", err))
		return
	}

	var userText bytes.Buffer
	if err := t.requestTemplate.Execute(&userText, params); err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("failed to execute request template: %w", err))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), &ScriptPrompt{
		SystemInstruction: persona.SystemInstruction + "\n" + rules.String(),
		UserText:          userText.String(),
	})
}
