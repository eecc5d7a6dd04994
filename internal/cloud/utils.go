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
// generative service. This file contains general-purpose helpers supporting
// the package: hierarchical configuration loading, response text extraction,
// and defensive cleanup of structured payloads returned by the models.
//
// Functions:
//   - LoadConfig: hierarchical configuration loader (base file + runtime override).
//   - GenerateText: executes a model call, records token metrics, and returns
//     the concatenated, cleaned text of the response.
//   - CleanStructuredPayload: strips markdown fences, control characters, and
//     surrounding prose from a payload that is expected to be JSON.
//   - CleanResponseText: the character-level cleanup shared by structured and
//     free-text responses.
package cloud

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// Configuration loading constants. The loader reads a base file and then an
// environment-specific override, so local and test runs can redefine models
// or storage paths without touching the base file.
const (
	ConfigFileBaseName  = ".env"
	ConfigFileExtension = ".toml"
	ConfigSeparator     = "."
	EnvConfigFilePrefix = "ZUNETECH_CONFIG_PREFIX" // Directory holding the config files.
	EnvConfigRuntime    = "ZUNETECH_RUNTIME"       // Runtime context: "local", "test", ...
)

// ErrEmptyResponse is returned when the model call succeeds at the transport
// level but yields no usable text content.
var ErrEmptyResponse = errors.New("model returned an empty response")

// fileExists checks if a file or directory exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig provides a hierarchical configuration loading mechanism. It first
// loads a base configuration file and then overwrites its values with an
// environment-specific file. The directory and runtime are selected by
// environment variables; missing files are skipped silently so a bare process
// can still start on defaults.
//
// Inputs:
//   - baseConfig: pointer to the target configuration struct to populate.
func LoadConfig(baseConfig interface{}) {
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix += string(os.PathSeparator)
	}

	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "local"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		if _, err := toml.DecodeFile(baseConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}
	if fileExists(envConfigFileName) {
		if _, err := toml.DecodeFile(envConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode environment configuration file %s with error: %s", envConfigFileName, err)
		}
	}
}

// GenerateText is a helper for executing a request against a generative model
// role. It records token usage metrics when counters are supplied, then
// concatenates all text parts of the response. When the call declared a JSON
// response the structured-payload cleanup runs over the result; free-text
// responses only get character-level cleanup, so prose that happens to
// mention brackets comes back intact.
//
// Inputs:
//   - ctx: the request context, carrying the call deadline.
//   - inputTokenCounter, outputTokenCounter: optional OTel counters.
//   - model: the rate-limited model role (or a test fake).
//   - contents: the request contents.
//   - config: the per-call generation config.
//
// Outputs:
//   - string: the cleaned response text.
//   - error: the transport error, or ErrEmptyResponse when no text came back.
func GenerateText(
	ctx context.Context,
	inputTokenCounter metric.Int64Counter,
	outputTokenCounter metric.Int64Counter,
	model ContentModel,
	contents []*genai.Content,
	config *genai.GenerateContentConfig) (string, error) {

	resp, err := model.GenerateContent(ctx, contents, config)
	if err != nil {
		return "", err
	}

	if resp.UsageMetadata != nil {
		if inputTokenCounter != nil {
			inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
		}
		if outputTokenCounter != nil {
			outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
		}
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			builder.WriteString(part.Text)
		}
	}

	var value string
	if config != nil && config.ResponseMIMEType == "application/json" {
		value = CleanStructuredPayload(builder.String())
	} else {
		value = CleanResponseText(builder.String())
	}
	if value == "" {
		return "", ErrEmptyResponse
	}
	return value, nil
}

// CleanStructuredPayload sanitizes a model response that is expected to carry
// a JSON document. Models occasionally wrap payloads in markdown fences,
// prepend prose, or emit stray control characters; all of that is stripped
// before the payload reaches the JSON decoder. It must only be applied to
// responses declared as JSON: the delimiter slicing would mangle free text
// that mentions brackets.
func CleanStructuredPayload(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	// When the payload contains a JSON object or array, cut away anything
	// outside the outermost matching delimiters.
	firstBrace := strings.Index(cleaned, "{")
	lastBrace := strings.LastIndex(cleaned, "}")
	firstBracket := strings.Index(cleaned, "[")
	lastBracket := strings.LastIndex(cleaned, "]")
	isObject := firstBrace != -1 && lastBrace > firstBrace
	isArray := firstBracket != -1 && lastBracket > firstBracket

	if isObject && (!isArray || firstBrace < firstBracket) {
		cleaned = cleaned[firstBrace : lastBrace+1]
	} else if isArray && (!isObject || firstBracket < firstBrace) {
		cleaned = cleaned[firstBracket : lastBracket+1]
	}

	return CleanResponseText(cleaned)
}

// CleanResponseText strips invalid UTF-8 sequences, stray control characters,
// a leading byte order mark, and surrounding whitespace from a response. The
// text itself is left untouched.
func CleanResponseText(raw string) string {
	cleaned := raw
	if !utf8.ValidString(cleaned) {
		cleaned = strings.ToValidUTF8(cleaned, "")
	}

	var sb strings.Builder
	for _, r := range cleaned {
		if (r >= 0 && r < 9) || (r > 10 && r < 13) || (r > 13 && r < 32) || r == 127 {
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimSpace(strings.TrimPrefix(sb.String(), "\uFEFF"))
}
