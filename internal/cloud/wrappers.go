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

// Package cloud provides components for interacting with the external
// generative service. This file implements a decorator around the genai
// model handle that adds rate limiting without altering the call shape.
//
// The persona document travels with every request, so unlike a fixed
// assistant the generation config cannot be bound once at construction time:
// callers derive a per-call config from the role's base config and pass it in.
//
// Structs:
//   - QuotaAwareGenerativeAIModel: wraps the genai model handle with a rate limiter.
//
// Functions:
//   - NewQuotaAwareModel: constructor for the wrapped model.
//   - NewModelConfig: builds a base GenerateContentConfig from a GeminiModel role.
package cloud

import (
	"context"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ContentModel is the narrow surface the services depend on. The production
// implementation is QuotaAwareGenerativeAIModel; tests substitute a fake that
// returns canned responses.
type ContentModel interface {
	// GenerateContent issues a single generation request. Exactly one logical
	// attempt is made per call: retry policy is a caller (user) concern.
	GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

	// Config returns a copy of the role's base generation config that the
	// caller may decorate with per-call fields before the request.
	Config() *genai.GenerateContentConfig
}

// QuotaAwareGenerativeAIModel decorates the genai model handle with a rate
// limiter so that bursts of user actions cannot exceed the service quota for
// a model role.
type QuotaAwareGenerativeAIModel struct {
	ModelName   string             // The Gemini model this role resolves to.
	ModelHandle *genai.Models      // The underlying genai model surface.
	BaseConfig  *genai.GenerateContentConfig // The role's base generation config.
	limiter     *rate.Limiter
}

// NewQuotaAwareModel is a constructor function that creates a new
// QuotaAwareGenerativeAIModel for a model role.
//
// Inputs:
//   - name: the Gemini model name.
//   - handle: the genai model surface from the client.
//   - base: the role's base generation config (see NewModelConfig).
//   - requestsPerSecond: the maximum number of API calls allowed per second.
func NewQuotaAwareModel(name string, handle *genai.Models, base *genai.GenerateContentConfig, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &QuotaAwareGenerativeAIModel{
		ModelName:   name,
		ModelHandle: handle,
		BaseConfig:  base,
		limiter:     rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// Config returns a shallow copy of the role's base generation config that a
// caller may decorate with per-call fields (system instruction, response
// schema, tools) without affecting other callers.
func (q *QuotaAwareGenerativeAIModel) Config() *genai.GenerateContentConfig {
	if q.BaseConfig == nil {
		return &genai.GenerateContentConfig{}
	}
	cp := *q.BaseConfig
	return &cp
}

// GenerateContent waits for a rate-limiter token, then issues exactly one
// request against the underlying model. A cancelled or expired context aborts
// the wait and is returned to the caller unchanged.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if err := q.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if config == nil {
		config = q.BaseConfig
	}
	return q.ModelHandle.GenerateContent(ctx, q.ModelName, contents, config)
}

// NewModelConfig builds the base GenerateContentConfig for a configured model
// role, applying the role's sampling parameters, the default safety settings,
// and the optional web-search tool.
func NewModelConfig(values GeminiModel) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](values.Temperature),
		TopP:             genai.Ptr[float32](values.TopP),
		TopK:             genai.Ptr[float32](values.TopK),
		MaxOutputTokens:  values.MaxTokens,
		SafetySettings:   DefaultSafetySettings,
		ResponseMIMEType: values.OutputFormat,
	}
	if values.EnableSearch {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return config
}
