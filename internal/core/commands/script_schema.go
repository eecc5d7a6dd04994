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

// Package commands provides the concrete implementations of the Chain of
// Responsibility Command interface for the content-generation workflows.
// This file defines the structured-output schemas sent with generative
// requests. Declaring the shape server-side keeps the model from drifting
// into prose and lets responses decode directly into the model package types.
package commands

import "google.golang.org/genai"

// ScriptResponseSchema returns the structured-output schema for a full video
// script. The required list pins down every creative field; main_content
// stays optional for compatibility with the older single-block format.
func ScriptResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":            {Type: genai.TypeString},
			"video_start_text": {Type: genai.TypeString},
			"hook_visual_desc": {Type: genai.TypeString},
			"veo_prompt":       {Type: genai.TypeString},
			"alternative_hook": {Type: genai.TypeString},
			"cta_text":         {Type: genai.TypeString},
			"cta_placement":    {Type: genai.TypeString},
			"script_scenes": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"time_segment":    {Type: genai.TypeString},
						"visual_cue":      {Type: genai.TypeString},
						"audio_narration": {Type: genai.TypeString},
					},
					Required: []string{"time_segment", "visual_cue", "audio_narration"},
				},
			},
			"main_content": {Type: genai.TypeString},
			"outro":        {Type: genai.TypeString},
			"caption_seo":  {Type: genai.TypeString},
			"hashtags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{
			"title", "video_start_text", "hook_visual_desc", "veo_prompt",
			"alternative_hook", "cta_text", "cta_placement", "script_scenes",
			"outro", "caption_seo", "hashtags",
		},
	}
}

// TrendResponseSchema returns the structured-output schema for the trend
// discovery call: an array of title/reason pairs.
func TrendResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":  {Type: genai.TypeString},
				"reason": {Type: genai.TypeString},
			},
		},
	}
}
