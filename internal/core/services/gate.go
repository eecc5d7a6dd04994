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

package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zunetech/content-console/internal/cloud"
	"google.golang.org/genai"
)

// CredentialGate answers one question for the rest of the application: can
// generative calls be made right now? It checks for a configured credential
// and proves it with a minimal live request. Probing never returns an error;
// a failure of any kind just means the capability is off.
type CredentialGate struct {
	config *cloud.Config
	probe  cloud.ContentModel

	mu        sync.RWMutex
	available bool
	checked   bool
}

// NewCredentialGate is the constructor for the CredentialGate.
//
// Inputs:
//   - config: the application configuration carrying the credential.
//   - probe: the model role used for the validation request, nil when no
//     credential was configured at startup.
//
// Outputs:
//   - *CredentialGate: the gate, not yet probed.
func NewCredentialGate(config *cloud.Config, probe cloud.ContentModel) *CredentialGate {
	return &CredentialGate{config: config, probe: probe}
}

// Validate runs the capability check: a credential must be present and a
// one-token generation must succeed within the probe deadline. The result is
// cached; Available returns it without re-probing.
//
// Inputs:
//   - ctx: the caller's context; the probe deadline is layered on top.
//
// Outputs:
//   - bool: true when generative calls can be made.
func (g *CredentialGate) Validate(ctx context.Context) bool {
	result := g.runProbe(ctx)

	g.mu.Lock()
	g.available = result
	g.checked = true
	g.mu.Unlock()

	return result
}

// Available returns the cached probe result, running the probe first if it
// has never been run.
func (g *CredentialGate) Available(ctx context.Context) bool {
	g.mu.RLock()
	if g.checked {
		defer g.mu.RUnlock()
		return g.available
	}
	g.mu.RUnlock()
	return g.Validate(ctx)
}

func (g *CredentialGate) runProbe(ctx context.Context) bool {
	if g.config.GeminiAPIKey() == "" || g.probe == nil {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, g.config.ProbeTimeout())
	defer cancel()

	// The cheapest possible request: one token in, one token out.
	config := g.probe.Config()
	config.MaxOutputTokens = 1
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: "ping"}}},
	}

	if _, err := g.probe.GenerateContent(probeCtx, contents, config); err != nil {
		slog.Warn("credential probe failed", "error", err)
		return false
	}
	return true
}
