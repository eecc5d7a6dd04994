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

// Package services exposes the application's operations to the transport
// layer. This file implements the GeneratorService, which fronts every
// generative capability: script generation, trend discovery, hook-image
// synthesis, and media critique.
package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/h2non/filetype"
	"github.com/zunetech/content-console/internal/cloud"
	"github.com/zunetech/content-console/internal/core/commands"
	"github.com/zunetech/content-console/internal/core/cor"
	"github.com/zunetech/content-console/internal/core/model"
	"github.com/zunetech/content-console/internal/core/workflow"
	"google.golang.org/genai"
)

// GeneratorService fronts the generative operations. Every call is gated on
// the credential check and conditioned on the stored persona; the script path
// runs through the generation workflow while the simpler single-call
// operations talk to their model roles directly.
type GeneratorService struct {
	config         *cloud.Config
	gate           *CredentialGate
	scriptWorkflow *workflow.ScriptGenerationWorkflow
	trendModel     cloud.ContentModel
	imageModel     cloud.ContentModel
	criticModel    cloud.ContentModel
	personaStore   *PersonaStore
	repository     *ScriptRepository

	hookTemplate     *template.Template
	critiqueTemplate *template.Template
}

// NewGeneratorService is the constructor for the GeneratorService.
//
// Inputs:
//   - config: the application configuration.
//   - gate: the credential gate.
//   - scriptWorkflow: the script generation pipeline.
//   - trendModel, imageModel, criticModel: the model roles for the
//     single-call operations; nil when no credential was configured.
//   - personaStore: the persisted persona.
//   - repository: the script history store.
//
// Outputs:
//   - *GeneratorService: the assembled service.
func NewGeneratorService(
	config *cloud.Config,
	gate *CredentialGate,
	scriptWorkflow *workflow.ScriptGenerationWorkflow,
	trendModel cloud.ContentModel,
	imageModel cloud.ContentModel,
	criticModel cloud.ContentModel,
	personaStore *PersonaStore,
	repository *ScriptRepository) *GeneratorService {

	return &GeneratorService{
		config:           config,
		gate:             gate,
		scriptWorkflow:   scriptWorkflow,
		trendModel:       trendModel,
		imageModel:       imageModel,
		criticModel:      criticModel,
		personaStore:     personaStore,
		repository:       repository,
		hookTemplate:     template.Must(template.New("hook-image").Parse(config.PromptTemplates.HookImage)),
		critiqueTemplate: template.Must(template.New("media-critique").Parse(config.PromptTemplates.MediaCritique)),
	}
}

// GenerateScript runs the full persona-conditioned script pipeline and
// persists the result at the head of the history.
//
// Inputs:
//   - ctx: the caller's context; the generation deadline is layered on top.
//   - request: the topic, duration class, and CTA placement.
//
// Outputs:
//   - *model.ScriptContent: the finished, stamped script document.
//   - error: ErrInvalidRequest, ErrCredentialMissing, ErrConnectionFailed,
//     or ErrGenerationFailed.
func (s *GeneratorService) GenerateScript(ctx context.Context, request *model.ScriptRequest) (*model.ScriptContent, error) {
	if strings.TrimSpace(request.Topic) == "" {
		return nil, fmt.Errorf("%w: empty topic", ErrInvalidRequest)
	}
	if !request.Duration.Valid() {
		request.Duration = model.DurationShort
	}
	if !request.CtaPlacement.Valid() {
		request.CtaPlacement = model.PlacementEnd
	}
	if !s.gate.Available(ctx) {
		return nil, ErrCredentialMissing
	}

	persona, err := s.personaStore.Load()
	if err != nil {
		return nil, generationError("failed to load persona: %v", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.config.GenerateTimeout())
	defer cancel()

	chCtx := cor.NewBaseContext()
	chCtx.SetContext(genCtx)
	chCtx.Add(cor.CtxIn, request)
	chCtx.Add(commands.ScriptRequestParam, request)
	chCtx.Add(commands.PersonaParam, persona)

	s.scriptWorkflow.Execute(chCtx)

	if chCtx.HasErrors() {
		return nil, s.classifyChainErrors(chCtx.GetErrors())
	}

	script, ok := chCtx.Get(workflow.ScriptOutputParamName).(*model.ScriptContent)
	if !ok {
		return nil, generationError("workflow produced no script")
	}

	if err := s.repository.Prepend(script); err != nil {
		slog.Error("failed to persist generated script", "id", script.ID, "error", err)
		return nil, fmt.Errorf("failed to persist script: %w", err)
	}
	slog.Info("script generated", "id", script.ID, "topic", script.Topic, "scenes", len(script.ScriptScenes))
	return script, nil
}

// classifyChainErrors maps the errors collected on a workflow context into
// the operation taxonomy. A failure in the generator command is a transport
// problem unless the service answered with nothing; everything else in the
// chain means the payload was unusable.
func (s *GeneratorService) classifyChainErrors(errMap map[string]error) error {
	for name, err := range errMap {
		slog.Error("script workflow step failed", "step", name, "error", err)
	}
	if err, ok := errMap[workflow.ScriptGeneratorName]; ok {
		if errors.Is(err, cloud.ErrEmptyResponse) {
			return generationError("%v", err)
		}
		return classifyTransportError(err)
	}
	for _, err := range errMap {
		return generationError("%v", err)
	}
	return ErrGenerationFailed
}

// FetchTrends discovers current topic candidates for the persona's audience.
// It never returns an error: without a credential it serves the evergreen
// fallback list, and when the live call fails in any way it serves the
// degraded fallback list.
//
// Outputs:
//   - []model.TrendingTopic: between two and four topic candidates.
func (s *GeneratorService) FetchTrends(ctx context.Context) []model.TrendingTopic {
	if !s.gate.Available(ctx) || s.trendModel == nil {
		return evergreenTrends()
	}

	genCtx, cancel := context.WithTimeout(ctx, s.config.GenerateTimeout())
	defer cancel()

	config := s.trendModel.Config()
	config.ResponseMIMEType = "application/json"
	config.ResponseSchema = commands.TrendResponseSchema()
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: s.config.PromptTemplates.TrendDiscovery}}},
	}

	out, err := cloud.GenerateText(genCtx, nil, nil, s.trendModel, contents, config)
	if err != nil {
		slog.Warn("trend discovery failed, serving fallback", "error", err)
		return degradedTrends()
	}

	var trends []model.TrendingTopic
	if err := json.Unmarshal([]byte(out), &trends); err != nil || len(trends) == 0 {
		slog.Warn("trend payload unusable, serving fallback", "error", err)
		return degradedTrends()
	}
	return trends
}

// evergreenTrends is served when no credential is configured. The topics are
// perennial performers for the audience, not live trends.
func evergreenTrends() []model.TrendingTopic {
	return []model.TrendingTopic{
		{Title: "Libertar Memória WhatsApp", Reason: "Sempre em alta no Brasil"},
		{Title: "IA Grátis para Fotos", Reason: "Tendência de produtividade"},
		{Title: "Funções Escondidas do Android", Reason: "Curiosidade sobre o próprio aparelho"},
		{Title: "Golpes no WhatsApp", Reason: "Medo de ser passado para trás"},
	}
}

// degradedTrends is served when the live discovery call fails.
func degradedTrends() []model.TrendingTopic {
	return []model.TrendingTopic{
		{Title: "Limpar Cache do Android", Reason: "Solução para travamentos"},
		{Title: "Novas Vozes do TikTok", Reason: "Engajamento visual"},
		{Title: "Modo Fantasma do WhatsApp", Reason: "Privacidade gera compartilhamento"},
		{Title: "Carregar a Bateria Mais Rápido", Reason: "Dor constante do avatar alvo"},
	}
}

// AttachHookImage synthesizes a hook image for a stored script from its
// visual description and persists the result on the record.
//
// Inputs:
//   - ctx: the caller's context.
//   - id: the script identifier.
//
// Outputs:
//   - *model.ScriptContent: the updated script with GeneratedImageURL set.
//   - error: ErrCredentialMissing, ErrGenerationFailed, or a not-found error.
func (s *GeneratorService) AttachHookImage(ctx context.Context, id string) (*model.ScriptContent, error) {
	script, err := s.repository.Get(id)
	if err != nil {
		return nil, err
	}
	if script == nil {
		return nil, fmt.Errorf("script %s not found", id)
	}

	dataURI, err := s.GenerateHookImage(ctx, script.HookVisualDesc)
	if err != nil {
		return nil, err
	}
	if dataURI == "" {
		// No credential: the script stays untouched.
		return script, ErrCredentialMissing
	}

	script.GeneratedImageURL = dataURI
	if _, err := s.repository.Replace(script); err != nil {
		return nil, fmt.Errorf("failed to persist hook image: %w", err)
	}
	return script, nil
}

// GenerateHookImage synthesizes a vertical hook image from a visual
// description and returns it as a data URI carrying the blob's MIME type.
// Without a credential it returns an empty string and no error; any other
// failure is ErrGenerationFailed.
func (s *GeneratorService) GenerateHookImage(ctx context.Context, prompt string) (string, error) {
	if !s.gate.Available(ctx) || s.imageModel == nil {
		return "", nil
	}

	genCtx, cancel := context.WithTimeout(ctx, s.config.GenerateTimeout())
	defer cancel()

	var buffer strings.Builder
	if err := s.hookTemplate.Execute(&buffer, map[string]interface{}{"PROMPT": prompt}); err != nil {
		return "", generationError("failed to execute hook image template: %v", err)
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: buffer.String()}}},
	}

	resp, err := s.imageModel.GenerateContent(genCtx, contents, s.imageModel.Config())
	if err != nil {
		return "", generationError("hook image request failed: %v", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = "image/png"
				}
				encoded := base64.StdEncoding.EncodeToString(part.InlineData.Data)
				return "data:" + mimeType + ";base64," + encoded, nil
			}
		}
	}
	return "", generationError("hook image response carried no image data")
}

// AnalyzeMedia critiques an uploaded media sample in the persona's voice.
// The MIME type is sniffed from the payload when the caller does not supply
// one; unsupported payloads are rejected before any model call.
//
// Inputs:
//   - ctx: the caller's context.
//   - request: the media bytes, optional declared MIME type, and the
//     optional user question.
//
// Outputs:
//   - string: the critique text.
//   - error: ErrInvalidRequest, ErrCredentialMissing, ErrConnectionFailed,
//     or ErrGenerationFailed.
func (s *GeneratorService) AnalyzeMedia(ctx context.Context, request *model.MediaAnalysisRequest) (string, error) {
	if len(request.Data) == 0 {
		return "", fmt.Errorf("%w: empty media payload", ErrInvalidRequest)
	}
	if !s.gate.Available(ctx) {
		return "", ErrCredentialMissing
	}

	mimeType := request.MimeType
	if mimeType == "" {
		kind, err := filetype.Match(request.Data)
		if err != nil || kind == filetype.Unknown {
			return "", generationError("could not determine media type")
		}
		mimeType = kind.MIME.Value
	}
	if !filetype.IsImage(request.Data) && !filetype.IsVideo(request.Data) {
		return "", generationError("unsupported media type %q", mimeType)
	}

	persona, err := s.personaStore.Load()
	if err != nil {
		return "", generationError("failed to load persona: %v", err)
	}

	question := strings.TrimSpace(request.Prompt)
	var buffer strings.Builder
	if err := s.critiqueTemplate.Execute(&buffer, map[string]interface{}{"QUESTION": question}); err != nil {
		return "", generationError("failed to execute critique template: %v", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.config.GenerateTimeout())
	defer cancel()

	config := s.criticModel.Config()
	config.SystemInstruction = &genai.Content{
		Parts: []*genai.Part{{Text: persona.SystemInstruction}},
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: request.Data}},
			{Text: buffer.String()},
		}},
	}

	out, err := cloud.GenerateText(genCtx, nil, nil, s.criticModel, contents, config)
	if err != nil {
		if errors.Is(err, cloud.ErrEmptyResponse) {
			return "", generationError("%v", err)
		}
		return "", classifyTransportError(err)
	}
	return out, nil
}
