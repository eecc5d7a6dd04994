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
// This file tests the credential gate: the probe must prove the credential
// works, and failures of any kind just turn the capability off.
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zunetech/content-console/internal/cloud"
	"github.com/zunetech/content-console/internal/core/services"
	test "github.com/zunetech/content-console/internal/testutil"
)

// TestGateNoCredential verifies the gate reports unavailable without probing
// when no credential is configured.
func TestGateNoCredential(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "")
	config := test.NewTestConfig()

	probe := &test.FakeContentModel{}
	gate := services.NewCredentialGate(config, probe)

	assert.False(t, gate.Validate(context.Background()))
	assert.Empty(t, probe.Calls)
}

// TestGateProbeSuccess verifies a working credential turns the gate on and
// that the probe request is capped at one output token.
func TestGateProbeSuccess(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")
	config := test.NewTestConfig()

	probe := &test.FakeContentModel{}
	gate := services.NewCredentialGate(config, probe)

	assert.True(t, gate.Validate(context.Background()))
	if assert.Len(t, probe.Calls, 1) {
		assert.Equal(t, int32(1), probe.Calls[0].Config.MaxOutputTokens)
		assert.Equal(t, "ping", probe.Calls[0].Contents[0].Parts[0].Text)
	}
}

// TestGateProbeFailure verifies any probe error reads as unavailable, never
// as a raised error.
func TestGateProbeFailure(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")
	config := test.NewTestConfig()

	probe := &test.FakeContentModel{Err: errors.New("401 unauthorized")}
	gate := services.NewCredentialGate(config, probe)

	assert.False(t, gate.Validate(context.Background()))
}

// TestGateAvailableCachesResult verifies Available does not re-probe once a
// result is cached.
func TestGateAvailableCachesResult(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")
	config := test.NewTestConfig()

	probe := &test.FakeContentModel{}
	gate := services.NewCredentialGate(config, probe)

	assert.True(t, gate.Available(context.Background()))
	assert.True(t, gate.Available(context.Background()))
	assert.Len(t, probe.Calls, 1)
}

// TestGateValidateReprobesAfterFailure verifies Validate is the recovery
// path: a gate that failed its first probe flips to available once the
// credential starts working, and the cached answer follows it.
func TestGateValidateReprobesAfterFailure(t *testing.T) {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-key")
	config := test.NewTestConfig()

	probe := &test.FakeContentModel{Err: errors.New("401 unauthorized")}
	gate := services.NewCredentialGate(config, probe)

	assert.False(t, gate.Validate(context.Background()))
	assert.False(t, gate.Available(context.Background()))

	probe.Err = nil
	assert.True(t, gate.Validate(context.Background()))
	assert.True(t, gate.Available(context.Background()))
	assert.Len(t, probe.Calls, 2)
}
