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

// Package test provides utility functions and mock data to support the
// application's test suite: an in-code test configuration, a fake generative
// model with a scripted response queue, canned payloads matching the
// structured-output schemas, and a throwaway local store.
package test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
	"google.golang.org/genai"

	"github.com/zunetech/content-console/internal/cloud"
)

// NewTestConfig builds the application configuration in code rather than
// loading TOML files, so tests do not depend on the working directory. The
// prompt templates mirror the shipped configuration.
//
// Outputs:
//   - *cloud.Config: a configuration suitable for unit tests.
func NewTestConfig() *cloud.Config {
	config := cloud.NewConfig()
	config.Application.Name = "content-console-test"
	config.Application.Language = "Português (Brasil)"
	config.Application.Port = 8080
	config.Timeouts.GenerateSeconds = 10
	config.Timeouts.ProbeSeconds = 2
	config.PromptTemplates = cloud.PromptTemplates{
		ScriptRules: "CONTEXTO ZUNETECH:\n{{ .CONTEXT_MEMORY }}\n\nREGRAS:\n" +
			"- Duração: {{ .DURATION }}.\n- CTA em: {{ .CTA_PLACEMENT }}.\n" +
			"- Idioma: {{ .LANGUAGE }}.\n- Use ganchos de curiosidade agressivos.\n",
		ScriptRequest:  "Gere um roteiro épico sobre: {{ .TOPIC }}",
		TrendDiscovery: "Pesquise na web em português Brasil por temas para vídeos curtos e virais.",
		HookImage:      "Social media impact image: {{ .PROMPT }}. Aspect Ratio 9:16.",
		MediaCritique:  "Analise esta mídia. Dê exatamente 3 sugestões concretas de melhoria.{{ if .QUESTION }} Pergunta do criador: {{ .QUESTION }}{{ end }}",
	}
	config.AgentModels["script-writer"] = cloud.GeminiModel{
		Model: "test-script-model", Temperature: 0.9, TopP: 0.95, TopK: 40,
		MaxTokens: 8192, OutputFormat: "application/json", RateLimit: 10,
	}
	return config
}

// OpenTestDB opens a throwaway local store in the test's temp directory. The
// handle is closed automatically when the test finishes.
func OpenTestDB(t *testing.T) *bolt.DB {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "console-test.db"), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// FakeCall records one request issued against the FakeContentModel.
type FakeCall struct {
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// FakeContentModel is a scripted stand-in for a generative model role. Each
// GenerateContent call consumes the next queued response; when Err is set it
// is returned instead. Every call is recorded for assertions.
type FakeContentModel struct {
	mu        sync.Mutex
	Responses []*genai.GenerateContentResponse
	Err       error
	Calls     []FakeCall
}

// GenerateContent records the call and pops the next scripted response.
func (f *FakeContentModel) GenerateContent(_ context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, FakeCall{Contents: contents, Config: config})
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.Responses) == 0 {
		return &genai.GenerateContentResponse{}, nil
	}
	next := f.Responses[0]
	f.Responses = f.Responses[1:]
	return next, nil
}

// Config returns an empty per-call config, matching the production contract
// of handing the caller a private copy to decorate.
func (f *FakeContentModel) Config() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{}
}

// TextResponse builds a single-candidate response carrying the given text.
func TextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 20,
		},
	}
}

// ImageResponse builds a single-candidate response carrying inline image
// bytes with the given MIME type, as the image synthesis model returns them.
func ImageResponse(mimeType string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			}}},
		},
	}
}

// GetTestScriptPayload returns a hardcoded JSON string in the exact shape the
// script response schema produces. It is used to drive the script workflow
// without a live model.
//
// Returns:
//   - a string containing the JSON payload of a generated script.
func GetTestScriptPayload() string {
	return `{
  "title": "Descubra a senha do Wi-Fi em 5 segundos",
  "video_start_text": "Seu vizinho NÃO quer que você saiba disso.",
  "hook_visual_desc": "Close em uma tela de Android mostrando um QR Code de Wi-Fi.",
  "veo_prompt": "Extreme close-up of an Android phone screen scanning a glowing Wi-Fi QR code, vertical video.",
  "alternative_hook": "Pare de digitar senha de Wi-Fi. Existe um jeito secreto.",
  "cta_text": "Segue a Zunetech pra mais segredos do Android.",
  "cta_placement": "Fim",
  "script_scenes": [
    {
      "time_segment": "0-3s",
      "visual_cue": "QR Code gigante na tela com zoom in agressivo.",
      "audio_narration": "Seu vizinho NÃO quer que você saiba disso."
    },
    {
      "time_segment": "3-8s",
      "visual_cue": "Screen recording: Configurações > Wi-Fi > Compartilhar.",
      "audio_narration": "Entra nas configurações de Wi-Fi e toca em compartilhar."
    }
  ],
  "main_content": "",
  "outro": "Testa agora e me conta nos comentários.",
  "caption_seo": "Aprenda a compartilhar a senha do Wi-Fi por QR Code em qualquer Android.",
  "hashtags": ["#android", "#wifi", "#zunetech"]
}`
}

// GetTestTrendPayload returns a hardcoded JSON string in the shape the trend
// response schema produces.
//
// Returns:
//   - a string containing the JSON payload of a trend discovery call.
func GetTestTrendPayload() string {
	return `[
  {"title": "Bug do WhatsApp apagando fotos", "reason": "Medo imediato de perda de dados"},
  {"title": "IA que cria figurinhas", "reason": "Alta compartilhabilidade"},
  {"title": "Modo turbo escondido do Android", "reason": "Curiosidade sobre funções secretas"},
  {"title": "Bateria viciada: mito ou verdade", "reason": "Dor constante do avatar alvo"}
]`
}
