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

// Package workflow_test exercises the script generation chain end to end
// against a scripted model fake: prompt rendering, the structured generation
// call, and the decode-validate-stamp step.
package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zunetech/content-console/internal/core/commands"
	"github.com/zunetech/content-console/internal/core/cor"
	"github.com/zunetech/content-console/internal/core/model"
	"github.com/zunetech/content-console/internal/core/workflow"
	test "github.com/zunetech/content-console/internal/testutil"
)

// newChainContext builds a workflow context carrying the request on both the
// default input key and the named request key, plus the default persona.
func newChainContext(request *model.ScriptRequest) cor.Context {
	chCtx := cor.NewBaseContext()
	chCtx.SetContext(context.Background())
	chCtx.Add(cor.CtxIn, request)
	chCtx.Add(commands.ScriptRequestParam, request)
	chCtx.Add(commands.PersonaParam, model.DefaultPersona())
	return chCtx
}

// TestScriptWorkflowEndToEnd drives the full chain and checks both the call
// the model receives and the stamped document that comes out.
func TestScriptWorkflowEndToEnd(t *testing.T) {
	fake := &test.FakeContentModel{}
	fake.Responses = append(fake.Responses, test.TextResponse(test.GetTestScriptPayload()))

	wf := workflow.NewScriptGenerationWorkflow("script-workflow-test", test.NewTestConfig(), fake)

	request := &model.ScriptRequest{
		Topic:        "Senha Wi-Fi (QR Code)",
		Duration:     model.DurationMedium,
		CtaPlacement: model.PlacementStart,
	}
	chCtx := newChainContext(request)
	wf.Execute(chCtx)

	require.False(t, chCtx.HasErrors(), "chain errors: %v", chCtx.GetErrors())

	// The generation call carries the structured-output contract and the
	// persona-conditioned system instruction.
	require.Len(t, fake.Calls, 1)
	call := fake.Calls[0]
	assert.Equal(t, "application/json", call.Config.ResponseMIMEType)
	require.NotNil(t, call.Config.ResponseSchema)
	require.NotNil(t, call.Config.SystemInstruction)
	system := call.Config.SystemInstruction.Parts[0].Text
	assert.Contains(t, system, "Social GOD")
	assert.Contains(t, system, "30s")
	assert.Contains(t, system, "Inicio")
	assert.Contains(t, call.Contents[0].Parts[0].Text, "Senha Wi-Fi (QR Code)")

	script, ok := chCtx.Get(workflow.ScriptOutputParamName).(*model.ScriptContent)
	require.True(t, ok, "chain produced no script document")
	assert.NotEmpty(t, script.ID)
	assert.Equal(t, request.Topic, script.Topic)
	assert.Equal(t, "30s", script.Duration)
	assert.Equal(t, "Inicio", script.CtaPlacement)
	assert.Equal(t, "Descubra a senha do Wi-Fi em 5 segundos", script.Title)
	assert.Len(t, script.ScriptScenes, 2)
}

// TestScriptWorkflowMissingPersona verifies the chain degrades to no output
// when the persona is absent: the prompt builder refuses to run, so the
// downstream commands never see an input.
func TestScriptWorkflowMissingPersona(t *testing.T) {
	fake := &test.FakeContentModel{}
	wf := workflow.NewScriptGenerationWorkflow("script-workflow-test", test.NewTestConfig(), fake)

	request := &model.ScriptRequest{
		Topic: "tema", Duration: model.DurationShort, CtaPlacement: model.PlacementEnd,
	}
	chCtx := cor.NewBaseContext()
	chCtx.SetContext(context.Background())
	chCtx.Add(cor.CtxIn, request)
	chCtx.Add(commands.ScriptRequestParam, request)

	wf.Execute(chCtx)

	assert.Empty(t, fake.Calls)
	assert.Nil(t, chCtx.Get(workflow.ScriptOutputParamName))
}

// TestScriptWorkflowModelFailure verifies a failing generation call stops the
// chain with the error recorded under the generator step.
func TestScriptWorkflowModelFailure(t *testing.T) {
	fake := &test.FakeContentModel{Err: errors.New("connection reset by peer")}
	wf := workflow.NewScriptGenerationWorkflow("script-workflow-test", test.NewTestConfig(), fake)

	chCtx := newChainContext(&model.ScriptRequest{
		Topic: "tema", Duration: model.DurationShort, CtaPlacement: model.PlacementEnd,
	})
	wf.Execute(chCtx)

	require.True(t, chCtx.HasErrors())
	assert.Contains(t, chCtx.GetErrors(), workflow.ScriptGeneratorName)
	assert.Nil(t, chCtx.Get(workflow.ScriptOutputParamName))
}

// TestScriptWorkflowIncompletePayload verifies the assembler rejects a
// payload that decodes but misses required fields.
func TestScriptWorkflowIncompletePayload(t *testing.T) {
	fake := &test.FakeContentModel{}
	fake.Responses = append(fake.Responses, test.TextResponse(`{"title": "só o título", "hashtags": []}`))
	wf := workflow.NewScriptGenerationWorkflow("script-workflow-test", test.NewTestConfig(), fake)

	chCtx := newChainContext(&model.ScriptRequest{
		Topic: "tema", Duration: model.DurationShort, CtaPlacement: model.PlacementEnd,
	})
	wf.Execute(chCtx)

	require.True(t, chCtx.HasErrors())
	assert.Contains(t, chCtx.GetErrors(), workflow.ScriptAssemblerName)
	assert.Nil(t, chCtx.Get(workflow.ScriptOutputParamName))
}
