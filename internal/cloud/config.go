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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files, and the client container for the external
// generative service and the local snapshot store.
//
// Structs:
//   - PromptTemplates: The text templates for prompts sent to the GenAI models.
//   - GeminiModel: Configuration for a single generative model role.
//   - Config: The top-level struct aggregating all configuration sections.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with empty maps.
package cloud

import (
	"os"
	"time"

	"google.golang.org/genai"
)

// EnvGeminiAPIKey is the environment variable holding the credential for the
// generative service. The credential is provisioned out-of-band; the
// application only checks for its presence and degrades gracefully without it.
const EnvGeminiAPIKey = "GEMINI_API_KEY"

// DefaultSafetySettings defines the default content safety thresholds for the
// generative models. The console is a single-user tool operating on the
// owner's own topics, so all categories are left unblocked.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// PromptTemplates holds the templates for the different generation requests.
// Each is a Go text/template; the vocabulary injected into each template is
// documented on the command or service that executes it.
type PromptTemplates struct {
	ScriptRules    string `toml:"script_rules"`    // Appended to the persona system instruction; carries duration/CTA/language constraints.
	ScriptRequest  string `toml:"script_request"`  // The user-facing request wrapping the topic.
	TrendDiscovery string `toml:"trend_discovery"` // The web-search-augmented trend research request.
	HookImage      string `toml:"hook_image"`      // The image synthesis request wrapping the hook description.
	MediaCritique  string `toml:"media_critique"`  // The multimodal critique request.
}

// GeminiModel represents the configuration for one generative model role.
type GeminiModel struct {
	Model        string  `toml:"model"`         // The name of the Gemini model.
	Temperature  float32 `toml:"temperature"`   // The temperature parameter for the model.
	TopP         float32 `toml:"top_p"`         // The top_p parameter for the model.
	TopK         float32 `toml:"top_k"`         // The top_k parameter for the model.
	MaxTokens    int32   `toml:"max_tokens"`    // The maximum number of output tokens.
	OutputFormat string  `toml:"output_format"` // The desired response MIME type (e.g. "application/json").
	EnableSearch bool    `toml:"enable_search"` // Whether to attach the Google Search tool.
	RateLimit    int     `toml:"rate_limit"`    // Allowed requests per second for this role.
}

// Config represents the overall configuration for the console, loaded from
// TOML files. It acts as the root container for all other configuration
// structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name     string `toml:"name"`     // The name of the application.
		Language string `toml:"language"` // The target natural language for generated content (e.g. "Português (Brasil)").
		Port     int    `toml:"port"`     // The HTTP listen port.
	} `toml:"application"`

	// Credentials holds the fallback slot for the generative service key.
	// The GEMINI_API_KEY environment variable always takes precedence.
	Credentials struct {
		GeminiAPIKey string `toml:"gemini_api_key"`
	} `toml:"credentials"`

	// Storage configures the local snapshot store.
	Storage struct {
		DatabasePath string `toml:"database_path"` // Path to the bbolt database file.
	} `toml:"storage"`

	// Timeouts bound every external call. An expired deadline is reported as
	// a connection failure.
	Timeouts struct {
		GenerateSeconds int `toml:"generate_seconds"` // Deadline for generation calls.
		ProbeSeconds    int `toml:"probe_seconds"`    // Deadline for the capability probe.
	} `toml:"timeouts"`

	PromptTemplates PromptTemplates        `toml:"prompt_templates"` // Prompt templates configuration.
	AgentModels     map[string]GeminiModel `toml:"agent_models"`     // Model roles keyed by a logical name (e.g. "script-writer").
}

// NewConfig is a constructor function that creates a new, initialized Config
// instance. The map fields must be initialized before the TOML decoder
// populates them.
func NewConfig() *Config {
	return &Config{
		AgentModels: make(map[string]GeminiModel),
	}
}

// GeminiAPIKey resolves the credential for the generative service. The
// environment variable wins over the TOML fallback; an empty result means no
// credential is configured and every generation feature must be gated off.
func (c *Config) GeminiAPIKey() string {
	if key := os.Getenv(EnvGeminiAPIKey); key != "" {
		return key
	}
	return c.Credentials.GeminiAPIKey
}

// GenerateTimeout returns the deadline for generation calls, defaulting to
// two minutes when unset.
func (c *Config) GenerateTimeout() time.Duration {
	if c.Timeouts.GenerateSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.Timeouts.GenerateSeconds) * time.Second
}

// ProbeTimeout returns the deadline for the capability probe, defaulting to
// fifteen seconds when unset.
func (c *Config) ProbeTimeout() time.Duration {
	if c.Timeouts.ProbeSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Timeouts.ProbeSeconds) * time.Second
}
