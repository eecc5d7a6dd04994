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

// Package main contains the setup and initialization logic for the console
// server's state. This file creates the centralized state manager holding the
// configuration, the service clients, and the application services, and wires
// them together at startup.
//
// Functions:
//   - SetupOS: points the configuration loader at the configs directory.
//   - GetConfig: singleton loader for the TOML configuration.
//   - InitState: creates the service clients, the stores, the credential
//     gate, and the generator service.
package main

import (
	"context"
	"log"
	"os"

	"github.com/zunetech/content-console/internal/cloud"
	"github.com/zunetech/content-console/internal/core/services"
	"github.com/zunetech/content-console/internal/core/workflow"
)

// Agent role names as they appear in the configuration's [agent_models]
// tables. Each role carries its own model, sampling parameters, and quota.
const (
	RoleScriptWriter = "script-writer"
	RoleTrendScout   = "trend-scout"
	RoleHookArtist   = "hook-artist"
	RoleMediaCritic  = "media-critic"
	RoleProbe        = "probe"
)

// StateManager holds the shared dependencies for the server: configuration,
// service clients, stores, and the application services. A single instance is
// built at startup.
type StateManager struct {
	config       *cloud.Config
	cloud        *cloud.ServiceClients
	gate         *services.CredentialGate
	generator    *services.GeneratorService
	repository   *services.ScriptRepository
	personaStore *services.PersonaStore
}

// state is the package-level singleton instance of StateManager.
var state = &StateManager{}

// SetupOS sets the environment variables the configuration loader uses to
// find the TOML files. The runtime environment is only defaulted, so an
// externally supplied value wins.
//
// Outputs:
//   - error: non-nil if setting an environment variable fails.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	if os.Getenv(cloud.EnvConfigRuntime) == "" {
		err = os.Setenv(cloud.EnvConfigRuntime, "local")
	}
	return err
}

// GetConfig provides a singleton instance of the application configuration,
// loading it from the TOML files on first call.
//
// Outputs:
//   - *cloud.Config: the loaded configuration.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to set up configuration environment: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// InitState initializes the entire server state: the generative client and
// agent model roles, the local store with the script history and persona
// snapshots, the credential gate, and the generator service that fronts
// every operation.
//
// Inputs:
//   - ctx: the root context for the application.
func InitState(ctx context.Context) {
	config := GetConfig()

	serviceClients, err := cloud.NewServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = serviceClients

	repository, err := services.NewScriptRepository(serviceClients.DB)
	if err != nil {
		panic(err)
	}
	state.repository = repository

	personaStore, err := services.NewPersonaStore(serviceClients.DB)
	if err != nil {
		panic(err)
	}
	state.personaStore = personaStore

	var probe cloud.ContentModel
	if m := serviceClients.Agent(RoleProbe); m != nil {
		probe = m
	}
	state.gate = services.NewCredentialGate(config, probe)

	var scriptModel, trendModel, imageModel, criticModel cloud.ContentModel
	if m := serviceClients.Agent(RoleScriptWriter); m != nil {
		scriptModel = m
	}
	if m := serviceClients.Agent(RoleTrendScout); m != nil {
		trendModel = m
	}
	if m := serviceClients.Agent(RoleHookArtist); m != nil {
		imageModel = m
	}
	if m := serviceClients.Agent(RoleMediaCritic); m != nil {
		criticModel = m
	}

	scriptWorkflow := workflow.NewScriptGenerationWorkflow("script-generation", config, scriptModel)

	state.generator = services.NewGeneratorService(
		config,
		state.gate,
		scriptWorkflow,
		trendModel,
		imageModel,
		criticModel,
		personaStore,
		repository)
}
