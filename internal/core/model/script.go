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

// Package model defines the core data structures for the application: the
// generated script documents, the persona profile that conditions every
// generation, trending topics, and the request objects that drive the
// workflows. The JSON tags on the script types mirror the structured output
// schema sent to the generative model, so a model response decodes straight
// into these structs.
package model

import "time"

// VideoDuration is the requested length class of a short-form video.
type VideoDuration string

// CtaPlacement selects where the call to action lands inside the script.
type CtaPlacement string

const (
	DurationShort  VideoDuration = "short"
	DurationMedium VideoDuration = "medium"
	DurationLong   VideoDuration = "long"

	PlacementStart  CtaPlacement = "start"
	PlacementMiddle CtaPlacement = "middle"
	PlacementEnd    CtaPlacement = "end"
)

// Label returns the duration wording used inside prompts and stored on
// generated scripts.
func (d VideoDuration) Label() string {
	switch d {
	case DurationMedium:
		return "30s"
	case DurationLong:
		return "60s"
	default:
		return "10s"
	}
}

// Valid reports whether the value is one of the recognized duration classes.
func (d VideoDuration) Valid() bool {
	return d == DurationShort || d == DurationMedium || d == DurationLong
}

// Label returns the placement wording used inside prompts and stored on
// generated scripts. The labels are in the persona's working language.
func (p CtaPlacement) Label() string {
	switch p {
	case PlacementStart:
		return "Inicio"
	case PlacementMiddle:
		return "Meio"
	default:
		return "Fim"
	}
}

// Valid reports whether the value is one of the recognized placements.
func (p CtaPlacement) Valid() bool {
	return p == PlacementStart || p == PlacementMiddle || p == PlacementEnd
}

// ScriptScene is one timed beat of a structured script: the moment it covers,
// what appears on screen, and what is spoken over it.
type ScriptScene struct {
	TimeSegment    string `json:"time_segment"`    // e.g., "0-3s".
	VisualCue      string `json:"visual_cue"`      // What appears on screen.
	AudioNarration string `json:"audio_narration"` // What is spoken.
}

// ScriptContent is the full generated script document. It is both the decode
// target for the model's structured output and the record persisted in the
// local history. The model fills the creative fields; the application stamps
// the identity fields (ID, Topic, Duration, CtaPlacement, Timestamp) after a
// successful generation.
type ScriptContent struct {
	ID                string        `json:"id"`
	Topic             string        `json:"topic"`
	Title             string        `json:"title"`
	VideoStartText    string        `json:"video_start_text"`
	HookVisualDesc    string        `json:"hook_visual_desc"`
	VeoPrompt         string        `json:"veo_prompt"`
	AlternativeHook   string        `json:"alternative_hook"`
	CtaText           string        `json:"cta_text"`
	CtaPlacement      string        `json:"cta_placement"`
	MainContent       string        `json:"main_content"` // Kept for compatibility with older records.
	ScriptScenes      []ScriptScene `json:"script_scenes,omitempty"`
	Outro             string        `json:"outro"`
	CaptionSEO        string        `json:"caption_seo"`
	Hashtags          []string      `json:"hashtags"`
	GeneratedImageURL string        `json:"generated_image_url,omitempty"`
	Timestamp         time.Time     `json:"timestamp"`
	Duration          string        `json:"duration,omitempty"`
}

// Clone returns a deep copy of the script so callers can hand out records
// without sharing the backing slices.
func (s *ScriptContent) Clone() *ScriptContent {
	out := *s
	if s.ScriptScenes != nil {
		out.ScriptScenes = make([]ScriptScene, len(s.ScriptScenes))
		copy(out.ScriptScenes, s.ScriptScenes)
	}
	if s.Hashtags != nil {
		out.Hashtags = make([]string, len(s.Hashtags))
		copy(out.Hashtags, s.Hashtags)
	}
	return &out
}

// ScriptRequest carries the user's inputs for one script generation.
type ScriptRequest struct {
	Topic        string        `json:"topic"`
	Duration     VideoDuration `json:"duration"`
	CtaPlacement CtaPlacement  `json:"cta_placement"`
}

// TrendingTopic is a single discovered trend: a short headline and the
// reason it matters to the persona's audience right now.
type TrendingTopic struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// MediaAnalysisRequest carries an uploaded media sample and the optional
// user question for the critique operation.
type MediaAnalysisRequest struct {
	MimeType string
	Data     []byte
	Prompt   string
}
