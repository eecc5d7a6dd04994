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

// Package model_test covers the domain types: the duration and placement
// enumerations with their prompt labels, deep copies of script and persona
// documents, and the persona's deterministic memory serialization.
package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zunetech/content-console/internal/core/model"
)

func TestVideoDurationLabels(t *testing.T) {
	tests := []struct {
		duration model.VideoDuration
		label    string
		valid    bool
	}{
		{model.DurationShort, "10s", true},
		{model.DurationMedium, "30s", true},
		{model.DurationLong, "60s", true},
		{model.VideoDuration("epic"), "10s", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.label, tc.duration.Label())
		assert.Equal(t, tc.valid, tc.duration.Valid())
	}
}

func TestCtaPlacementLabels(t *testing.T) {
	tests := []struct {
		placement model.CtaPlacement
		label     string
		valid     bool
	}{
		{model.PlacementStart, "Inicio", true},
		{model.PlacementMiddle, "Meio", true},
		{model.PlacementEnd, "Fim", true},
		{model.CtaPlacement("nowhere"), "Fim", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.label, tc.placement.Label())
		assert.Equal(t, tc.valid, tc.placement.Valid())
	}
}

// TestScriptContentClone verifies a clone shares no mutable state with its
// source.
func TestScriptContentClone(t *testing.T) {
	original := model.GetExampleScript()
	clone := original.Clone()

	require.Equal(t, original, clone)

	clone.ScriptScenes[0].AudioNarration = "alterado"
	clone.Hashtags[0] = "#alterado"
	clone.Title = "outro título"

	assert.NotEqual(t, original.ScriptScenes[0].AudioNarration, clone.ScriptScenes[0].AudioNarration)
	assert.NotEqual(t, original.Hashtags[0], clone.Hashtags[0])
	assert.NotEqual(t, original.Title, clone.Title)
}

// TestPersonaClone verifies the context memory is deep-copied.
func TestPersonaClone(t *testing.T) {
	original := model.DefaultPersona()
	clone := original.Clone()

	clone.ContextMemory["avatar_profile"] = "mutated"
	assert.NotEqual(t, original.ContextMemory["avatar_profile"], clone.ContextMemory["avatar_profile"])
}

// TestPersonaMemoryDump verifies the serialization is deterministic so the
// rendered prompt is stable across runs.
func TestPersonaMemoryDump(t *testing.T) {
	persona := model.DefaultPersona()
	first := persona.MemoryDump()
	second := persona.MemoryDump()
	assert.Equal(t, first, second)
	assert.Contains(t, first, "avatar_profile")
	assert.Contains(t, first, "capcut_technical_rules")

	empty := &model.PersonaProfile{}
	assert.Equal(t, "{}", empty.MemoryDump())
}

// TestDefaultPersonaContent spot-checks the shipped strategist profile.
func TestDefaultPersonaContent(t *testing.T) {
	persona := model.DefaultPersona()
	assert.Equal(t, "Zunetech - Dominação Digital", persona.Project)
	assert.Contains(t, persona.SystemInstruction, "Social GOD")
	assert.NotEmpty(t, persona.ContextMemory["content_log_scripts"])
}
