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
// content-generation workflows. This file defines the final step of the
// script pipeline: decoding the model's JSON payload into a script document,
// validating it, and stamping the identity fields the model does not own.
//
// Logic Flow:
//  1. It receives the raw JSON string from the generator command.
//  2. It decodes the payload into a model.ScriptContent.
//  3. It verifies every required creative field is present and that the scene
//     list is non-empty with fully populated scenes. A payload that decodes
//     but fails validation is rejected; a partial script is never emitted.
//  4. It stamps ID, topic, duration, CTA placement, and timestamp from the
//     original request, then places the finished document on the context.
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zunetech/content-console/internal/core/cor"
	"github.com/zunetech/content-console/internal/core/model"
)

// ScriptJsonToStruct is the command that converts the model's raw JSON
// response into a validated, fully stamped script document.
type ScriptJsonToStruct struct {
	cor.BaseCommand
	clock func() time.Time
}

// NewScriptJsonToStruct is the constructor for the ScriptJsonToStruct command.
//
// Inputs:
//   - name: a string name for this command instance.
//   - outputParamName: the context key to store the finished document under.
//
// Outputs:
//   - *ScriptJsonToStruct: the instantiated command.
func NewScriptJsonToStruct(name string, outputParamName string) *ScriptJsonToStruct {
	out := &ScriptJsonToStruct{
		BaseCommand: *cor.NewBaseCommand(name),
		clock:       time.Now,
	}
	out.OutputParamName = outputParamName
	return out
}

// Execute decodes, validates, and stamps the script document.
//
// Inputs:
//   - context: the shared workflow context.
func (t *ScriptJsonToStruct) Execute(context cor.Context) {
	payload := context.Get(t.GetInputParam()).(string)
	request, ok := context.Get(ScriptRequestParam).(*model.ScriptRequest)
	if !ok {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("missing script request on context"))
		return
	}

	var script model.ScriptContent
	if err := json.Unmarshal([]byte(payload), &script); err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("failed to decode script payload: %w", err))
		return
	}

	if err := validateScript(&script); err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	// The model owns the creative fields; the application owns identity.
	script.ID = uuid.NewString()
	script.Topic = request.Topic
	script.Duration = request.Duration.Label()
	script.CtaPlacement = request.CtaPlacement.Label()
	script.Timestamp = t.clock().UTC()

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), &script)
}

// validateScript enforces the required-field contract of the response schema.
// Declaring a schema does not guarantee the model honors it.
func validateScript(script *model.ScriptContent) error {
	required := map[string]string{
		"title":            script.Title,
		"video_start_text": script.VideoStartText,
		"hook_visual_desc": script.HookVisualDesc,
		"veo_prompt":       script.VeoPrompt,
		"alternative_hook": script.AlternativeHook,
		"cta_text":         script.CtaText,
		"cta_placement":    script.CtaPlacement,
		"outro":            script.Outro,
		"caption_seo":      script.CaptionSEO,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("script payload missing required field %q", field)
		}
	}
	if len(script.ScriptScenes) == 0 {
		return fmt.Errorf("script payload contains no scenes")
	}
	for i, scene := range script.ScriptScenes {
		if strings.TrimSpace(scene.TimeSegment) == "" ||
			strings.TrimSpace(scene.VisualCue) == "" ||
			strings.TrimSpace(scene.AudioNarration) == "" {
			return fmt.Errorf("script scene %d is incomplete", i)
		}
	}
	if len(script.Hashtags) == 0 {
		return fmt.Errorf("script payload contains no hashtags")
	}
	return nil
}
