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
// content-generation workflows. This file defines the command that performs
// the structured generation call for a video script.
//
// Logic Flow:
//  1. It receives the assembled ScriptPrompt from the prompt builder.
//  2. It derives a per-call config from the model role's base config: the
//     system instruction comes from the prompt, the response is pinned to
//     JSON, and the script schema constrains the output shape.
//  3. It sends the user prompt to the model, updating token counters.
//  4. It places the raw JSON payload on the context for the assembler.
package commands

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/zunetech/content-console/internal/cloud"
	"github.com/zunetech/content-console/internal/core/cor"
	"google.golang.org/genai"
)

// ScriptGenerator is the command that executes the structured script
// generation request.
type ScriptGenerator struct {
	cor.BaseCommand
	generativeAIModel        cloud.ContentModel  // The rate-limited generative model role.
	geminiInputTokenCounter  metric.Int64Counter // OTel counter for input tokens.
	geminiOutputTokenCounter metric.Int64Counter // OTel counter for output tokens.
}

// NewScriptGenerator is the constructor for the ScriptGenerator command.
//
// Inputs:
//   - name: a string name for this command instance.
//   - generativeAIModel: the rate-limited model role for script writing.
//
// Outputs:
//   - *ScriptGenerator: the instantiated command with telemetry counters.
func NewScriptGenerator(name string, generativeAIModel cloud.ContentModel) *ScriptGenerator {
	out := &ScriptGenerator{
		BaseCommand:       *cor.NewBaseCommand(name),
		generativeAIModel: generativeAIModel,
	}
	out.geminiInputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.input", out.GetName()))
	out.geminiOutputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.output", out.GetName()))
	return out
}

// Execute sends the prompt to the model and stores the raw JSON response.
//
// Inputs:
//   - context: the shared workflow context.
func (t *ScriptGenerator) Execute(context cor.Context) {
	prompt := context.Get(t.GetInputParam()).(*ScriptPrompt)

	config := t.generativeAIModel.Config()
	config.SystemInstruction = &genai.Content{
		Parts: []*genai.Part{{Text: prompt.SystemInstruction}},
	}
	config.ResponseMIMEType = "application/json"
	config.ResponseSchema = ScriptResponseSchema()

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt.UserText}}},
	}

	out, err := cloud.GenerateText(
		context.GetContext(),
		t.geminiInputTokenCounter,
		t.geminiOutputTokenCounter,
		t.generativeAIModel,
		contents,
		config)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("script generation request failed: %w", err))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), out)
}
