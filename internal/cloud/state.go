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

package cloud

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"
	"google.golang.org/genai"
)

// ServiceClients holds the long-lived handles the application shares across
// requests: the generative client, the local database, and the per-role,
// rate-limited model wrappers built from configuration. One instance is
// created at startup and threaded through the services.
type ServiceClients struct {
	GenAIClient *genai.Client
	DB          *bolt.DB
	AgentModels map[string]*QuotaAwareGenerativeAIModel
}

// NewServiceClients creates the shared service handles from the configuration.
//
// When no credential is present, the generative client and agent models are
// left nil; the caller decides how to degrade. The local database is always
// opened, since persistence does not depend on the credential.
//
// Inputs:
//   - ctx: the startup context.
//   - config: the loaded application configuration.
//
// Outputs:
//   - *ServiceClients: the initialized handles.
//   - error: non-nil when the database cannot be opened or the generative
//     client fails to initialize despite a credential being present.
func NewServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	out := &ServiceClients{
		AgentModels: make(map[string]*QuotaAwareGenerativeAIModel),
	}

	db, err := bolt.Open(config.Storage.DatabasePath, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open local database at %s: %w", config.Storage.DatabasePath, err)
	}
	out.DB = db

	apiKey := config.GeminiAPIKey()
	if apiKey == "" {
		slog.Warn("no credential configured, generative features are disabled")
		return out, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create the generative client: %w", err)
	}
	out.GenAIClient = client

	for name, values := range config.AgentModels {
		out.AgentModels[name] = NewQuotaAwareModel(
			values.Model,
			client.Models,
			NewModelConfig(values),
			values.RateLimit)
		slog.Info("registered agent model", "role", name, "model", values.Model)
	}

	return out, nil
}

// Agent returns the rate-limited model for the given role name, or nil when
// the role is not configured or the credential was absent at startup.
func (s *ServiceClients) Agent(name string) *QuotaAwareGenerativeAIModel {
	if s == nil || s.AgentModels == nil {
		return nil
	}
	return s.AgentModels[name]
}

// Close releases the local database handle. The generative client holds no
// resources that need explicit shutdown.
func (s *ServiceClients) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
