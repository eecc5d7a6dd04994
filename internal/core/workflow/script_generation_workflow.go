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

// Package workflow defines the high-level orchestrations that combine
// individual commands into coherent pipelines. This file implements the
// script generation workflow, the core operation of the console.
package workflow

import (
	"text/template"

	"github.com/zunetech/content-console/internal/cloud"
	"github.com/zunetech/content-console/internal/core/commands"
	"github.com/zunetech/content-console/internal/core/cor"
)

// Command names inside the script chain. The services layer uses these to
// tell a transport failure (generator) from an unusable payload (assembler)
// when mapping chain errors to the operation's error taxonomy.
const (
	ScriptPromptBuilderName = "build-script-prompt"
	ScriptGeneratorName     = "generate-script"
	ScriptAssemblerName     = "assemble-script"

	// ScriptOutputParamName is the context key the finished script document
	// lands under after a successful run.
	ScriptOutputParamName = "__script_output__"
)

// ScriptGenerationWorkflow orchestrates one persona-conditioned script
// generation: prompt assembly, the structured model call, and decoding plus
// validation of the response. It is structured as a Chain of Responsibility
// so each step stays independently testable and traced.
type ScriptGenerationWorkflow struct {
	cor.BaseCommand
	config          *cloud.Config
	genaiModel      cloud.ContentModel
	rulesTemplate   *template.Template
	requestTemplate *template.Template
	chain           cor.Chain
}

// NewScriptGenerationWorkflow is the constructor for the workflow.
//
// Inputs:
//   - name: a string name for this workflow instance.
//   - config: the application configuration.
//   - genaiModel: the rate-limited script-writer model role.
//
// Outputs:
//   - *ScriptGenerationWorkflow: the workflow with its chain initialized.
func NewScriptGenerationWorkflow(
	name string,
	config *cloud.Config,
	genaiModel cloud.ContentModel) *ScriptGenerationWorkflow {

	out := &ScriptGenerationWorkflow{
		BaseCommand:     *cor.NewBaseCommand(name),
		config:          config,
		genaiModel:      genaiModel,
		rulesTemplate:   template.Must(template.New("script-rules").Parse(config.PromptTemplates.ScriptRules)),
		requestTemplate: template.Must(template.New("script-request").Parse(config.PromptTemplates.ScriptRequest)),
	}
	out.initializeChain()
	return out
}

// Execute runs the workflow by invoking the underlying chain. The caller is
// expected to have placed the script request on the default input key plus
// the named request key, and the persona on the persona key.
//
// Inputs:
//   - context: the chain of responsibility context for this execution.
func (m *ScriptGenerationWorkflow) Execute(context cor.Context) {
	m.chain.Execute(context)
}

// IsExecutable requires only a valid Go context; the chain's first command
// checks the request and persona inputs.
func (m *ScriptGenerationWorkflow) IsExecutable(context cor.Context) bool {
	return context.GetContext() != nil
}

// initializeChain builds the three-step script pipeline. The output of each
// command pipes into the next; the finished document is stored under
// ScriptOutputParamName.
func (m *ScriptGenerationWorkflow) initializeChain() {
	out := cor.NewBaseChain(m.GetName())

	// Step 1: render the persona and request into the prompt pair.
	out.AddCommand(commands.NewScriptPromptBuilder(
		ScriptPromptBuilderName, m.config, m.rulesTemplate, m.requestTemplate))

	// Step 2: run the structured generation call.
	out.AddCommand(commands.NewScriptGenerator(ScriptGeneratorName, m.genaiModel))

	// Step 3: decode, validate, and stamp the script document.
	out.AddCommand(commands.NewScriptJsonToStruct(ScriptAssemblerName, ScriptOutputParamName))

	m.chain = out
}
