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

// Package services_test contains the test suite for the services package.
// This file tests the generator service end to end against scripted model
// fakes: the script pipeline with its stamping and persistence rules, the
// never-failing trend path, hook-image synthesis, and media critique.
package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zunetech/content-console/internal/cloud"
	"github.com/zunetech/content-console/internal/core/model"
	"github.com/zunetech/content-console/internal/core/services"
	"github.com/zunetech/content-console/internal/core/workflow"
	test "github.com/zunetech/content-console/internal/testutil"
)

// newTestGenerator wires a full generator service over a throwaway store and
// the given model fakes. The probe fake always succeeds, so credential
// availability is controlled purely by the GEMINI_API_KEY test environment.
func newTestGenerator(
	t *testing.T,
	scriptModel, trendModel, imageModel, criticModel cloud.ContentModel) (*services.GeneratorService, *services.ScriptRepository) {
	t.Helper()

	config := test.NewTestConfig()
	db := test.OpenTestDB(t)

	repo, err := services.NewScriptRepository(db)
	require.NoError(t, err)
	personaStore, err := services.NewPersonaStore(db)
	require.NoError(t, err)

	gate := services.NewCredentialGate(config, &test.FakeContentModel{})
	wf := workflow.NewScriptGenerationWorkflow("script-generation-test", config, scriptModel)

	return services.NewGeneratorService(
		config, gate, wf, trendModel, imageModel, criticModel, personaStore, repo), repo
}

// pngSample returns bytes that sniff as a PNG image.
func pngSample() []byte {
	return append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
}

// TestGenerateScriptSuccess verifies the full pipeline: the creative fields
// come from the model payload while topic, duration, CTA placement, and a
// fresh unique id are stamped by the application, and the record lands at the
// head of the history.
func TestGenerateScriptSuccess(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	fake := &test.FakeContentModel{}
	fake.Responses = append(fake.Responses,
		test.TextResponse(test.GetTestScriptPayload()),
		test.TextResponse(test.GetTestScriptPayload()))
	generator, repo := newTestGenerator(t, fake, nil, nil, nil)

	request := &model.ScriptRequest{
		Topic:        "Senha Wi-Fi (QR Code)",
		Duration:     model.DurationShort,
		CtaPlacement: model.PlacementEnd,
	}
	script, err := generator.GenerateScript(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, "Senha Wi-Fi (QR Code)", script.Topic)
	assert.Equal(t, "10s", script.Duration)
	assert.Equal(t, "Fim", script.CtaPlacement)
	assert.NotEmpty(t, script.ID)
	assert.NotEmpty(t, script.Title)
	assert.NotEmpty(t, script.ScriptScenes)
	assert.False(t, script.Timestamp.IsZero())

	all := repo.LoadAll()
	require.Len(t, all, 1)
	assert.Equal(t, script.ID, all[0].ID)

	// A second generation must mint a different id.
	second, err := generator.GenerateScript(context.Background(), request)
	require.NoError(t, err)
	assert.NotEqual(t, script.ID, second.ID)
	assert.Len(t, repo.LoadAll(), 2)
}

// TestGenerateScriptEmptyTopic verifies a blank topic is rejected as caller
// error before the gate or any model call.
func TestGenerateScriptEmptyTopic(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	fake := &test.FakeContentModel{}
	generator, repo := newTestGenerator(t, fake, nil, nil, nil)

	_, err := generator.GenerateScript(context.Background(), &model.ScriptRequest{
		Topic: "   ", Duration: model.DurationShort, CtaPlacement: model.PlacementEnd,
	})
	assert.ErrorIs(t, err, services.ErrInvalidRequest)
	assert.NotErrorIs(t, err, services.ErrGenerationFailed)
	assert.Empty(t, repo.LoadAll())
	assert.Empty(t, fake.Calls)
}

// TestGenerateScriptNoCredential verifies the gate blocks generation and no
// partial record reaches the repository.
func TestGenerateScriptNoCredential(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "")

	fake := &test.FakeContentModel{}
	generator, repo := newTestGenerator(t, fake, nil, nil, nil)

	_, err := generator.GenerateScript(context.Background(), &model.ScriptRequest{
		Topic: "qualquer tema", Duration: model.DurationShort, CtaPlacement: model.PlacementEnd,
	})
	assert.ErrorIs(t, err, services.ErrCredentialMissing)
	assert.Empty(t, repo.LoadAll())
	assert.Empty(t, fake.Calls)
}

// TestGenerateScriptMalformedPayload verifies an undecodable or incomplete
// payload is reported as a generation failure and nothing is persisted.
func TestGenerateScriptMalformedPayload(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	malformed := &test.FakeContentModel{}
	malformed.Responses = append(malformed.Responses, test.TextResponse(`{"title": "só o título"}`))
	generator, repo := newTestGenerator(t, malformed, nil, nil, nil)

	_, err := generator.GenerateScript(context.Background(), &model.ScriptRequest{
		Topic: "tema", Duration: model.DurationShort, CtaPlacement: model.PlacementEnd,
	})
	assert.ErrorIs(t, err, services.ErrGenerationFailed)
	assert.Empty(t, repo.LoadAll())
}

// TestGenerateScriptTransportFailure verifies a transport error surfaces as
// a connection failure.
func TestGenerateScriptTransportFailure(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	fake := &test.FakeContentModel{Err: errors.New("dial tcp: connection refused")}
	generator, repo := newTestGenerator(t, fake, nil, nil, nil)

	_, err := generator.GenerateScript(context.Background(), &model.ScriptRequest{
		Topic: "tema", Duration: model.DurationShort, CtaPlacement: model.PlacementEnd,
	})
	assert.ErrorIs(t, err, services.ErrConnectionFailed)
	assert.Empty(t, repo.LoadAll())
}

// TestFetchTrendsNoCredential verifies the evergreen fallback is served
// without any model call.
func TestFetchTrendsNoCredential(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "")

	trendModel := &test.FakeContentModel{}
	generator, _ := newTestGenerator(t, nil, trendModel, nil, nil)

	trends := generator.FetchTrends(context.Background())
	require.Len(t, trends, 4)
	assert.Equal(t, "Libertar Memória WhatsApp", trends[0].Title)
	assert.Empty(t, trendModel.Calls)
}

// TestFetchTrendsSuccess verifies a live payload decodes into the full list.
func TestFetchTrendsSuccess(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	trendModel := &test.FakeContentModel{}
	trendModel.Responses = append(trendModel.Responses, test.TextResponse(test.GetTestTrendPayload()))
	generator, _ := newTestGenerator(t, nil, trendModel, nil, nil)

	trends := generator.FetchTrends(context.Background())
	require.Len(t, trends, 4)
	assert.Equal(t, "Bug do WhatsApp apagando fotos", trends[0].Title)
	assert.NotEmpty(t, trends[0].Reason)
}

// TestFetchTrendsFailureFallback verifies the degraded fallback replaces any
// live failure instead of an error or empty list.
func TestFetchTrendsFailureFallback(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	trendModel := &test.FakeContentModel{Err: errors.New("503 service unavailable")}
	generator, _ := newTestGenerator(t, nil, trendModel, nil, nil)

	trends := generator.FetchTrends(context.Background())
	require.Len(t, trends, 4)
	assert.Equal(t, "Limpar Cache do Android", trends[0].Title)
}

// TestGenerateHookImage verifies the inline image payload comes back as a
// PNG data URI.
func TestGenerateHookImage(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	imageModel := &test.FakeContentModel{}
	imageModel.Responses = append(imageModel.Responses, test.ImageResponse("image/png", []byte("fake-image-bytes")))
	generator, _ := newTestGenerator(t, nil, nil, imageModel, nil)

	uri, err := generator.GenerateHookImage(context.Background(), "QR code na tela do celular")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

// TestGenerateHookImageMimeType verifies the data URI carries the MIME type
// the model actually returned instead of assuming PNG.
func TestGenerateHookImageMimeType(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	imageModel := &test.FakeContentModel{}
	imageModel.Responses = append(imageModel.Responses, test.ImageResponse("image/jpeg", []byte("jpeg-bytes")))
	generator, _ := newTestGenerator(t, nil, nil, imageModel, nil)

	uri, err := generator.GenerateHookImage(context.Background(), "prompt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
}

// TestGenerateHookImageNoCredential verifies the empty-string, no-error
// contract when no credential is configured.
func TestGenerateHookImageNoCredential(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "")

	generator, _ := newTestGenerator(t, nil, nil, &test.FakeContentModel{}, nil)

	uri, err := generator.GenerateHookImage(context.Background(), "qualquer prompt")
	require.NoError(t, err)
	assert.Empty(t, uri)
}

// TestGenerateHookImageNoPayload verifies a response without inline image
// data is a generation failure, not a silent empty result.
func TestGenerateHookImageNoPayload(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	imageModel := &test.FakeContentModel{}
	imageModel.Responses = append(imageModel.Responses, test.TextResponse("sorry, no image"))
	generator, _ := newTestGenerator(t, nil, nil, imageModel, nil)

	_, err := generator.GenerateHookImage(context.Background(), "prompt")
	assert.ErrorIs(t, err, services.ErrGenerationFailed)
}

// TestAttachHookImage verifies the image lands on the stored record via an
// in-place replace.
func TestAttachHookImage(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	imageModel := &test.FakeContentModel{}
	imageModel.Responses = append(imageModel.Responses, test.ImageResponse("image/png", []byte("fake-image-bytes")))
	generator, repo := newTestGenerator(t, nil, nil, imageModel, nil)

	script := model.GetExampleScript()
	require.NoError(t, repo.Prepend(script))

	updated, err := generator.AttachHookImage(context.Background(), script.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.GeneratedImageURL, "data:image/png;base64,"))

	all := repo.LoadAll()
	require.Len(t, all, 1)
	assert.Equal(t, updated.GeneratedImageURL, all[0].GeneratedImageURL)
}

// TestAnalyzeMedia verifies the multimodal critique path: the payload is
// sniffed as an image, the persona's system instruction rides along, and the
// critique text comes back verbatim. The canned critique mentions bracketed
// editing cues, which the free-text cleanup must not cut away.
func TestAnalyzeMedia(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	critique := "Nota 6/10. O gancho [TELA] demora demais. Corte os 2 primeiros segundos e termine com o CTA."
	critic := &test.FakeContentModel{}
	critic.Responses = append(critic.Responses, test.TextResponse(critique))
	generator, _ := newTestGenerator(t, nil, nil, nil, critic)

	out, err := generator.AnalyzeMedia(context.Background(), &model.MediaAnalysisRequest{
		Data:   pngSample(),
		Prompt: "isso vai viralizar?",
	})
	require.NoError(t, err)
	assert.Equal(t, critique, out)

	require.Len(t, critic.Calls, 1)
	call := critic.Calls[0]
	require.NotNil(t, call.Config.SystemInstruction)
	assert.Contains(t, call.Config.SystemInstruction.Parts[0].Text, "Social GOD")
	assert.Equal(t, "image/png", call.Contents[0].Parts[0].InlineData.MIMEType)
}

// TestAnalyzeMediaUnsupportedPayload verifies non-media bytes are rejected
// before any model call.
func TestAnalyzeMediaUnsupportedPayload(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")

	critic := &test.FakeContentModel{}
	generator, _ := newTestGenerator(t, nil, nil, nil, critic)

	_, err := generator.AnalyzeMedia(context.Background(), &model.MediaAnalysisRequest{
		Data: []byte("plain text, not media"),
	})
	assert.ErrorIs(t, err, services.ErrGenerationFailed)
	assert.Empty(t, critic.Calls)
}
