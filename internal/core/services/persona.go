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
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	bolt "go.etcd.io/bbolt"

	"github.com/zunetech/content-console/internal/core/model"
)

// PersonaStore holds the persona profile that conditions every generative
// call. The persisted snapshot wins when it deserializes; otherwise, and on
// first run, the built-in default applies. No field-level validation is
// performed on Set: the persona is embedded as text into prompts, so any
// shape that deserializes is accepted.
type PersonaStore struct {
	db *bolt.DB

	mu      sync.RWMutex
	persona *model.PersonaProfile
}

// NewPersonaStore opens the store over the given handle and loads the
// persisted persona, falling back to the built-in default when the snapshot
// is absent or corrupt.
func NewPersonaStore(db *bolt.DB) (*PersonaStore, error) {
	out := &PersonaStore{db: db, persona: model.DefaultPersona()}

	err := db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(ConsoleBucket))
		if err != nil {
			return err
		}
		raw := bucket.Get([]byte(PersonaKey))
		if raw == nil {
			return nil
		}
		var persona model.PersonaProfile
		if err := json.Unmarshal(raw, &persona); err != nil {
			slog.Warn("persona snapshot is corrupt, using the default profile", "error", err)
			return nil
		}
		out.persona = &persona
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize persona store: %w", err)
	}
	return out, nil
}

// Load returns a copy of the current persona.
func (p *PersonaStore) Load() (*model.PersonaProfile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.persona.Clone(), nil
}

// Set replaces the persona wholesale and persists it.
func (p *PersonaStore) Set(persona *model.PersonaProfile) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	previous := p.persona
	p.persona = persona.Clone()
	if err := p.persistLocked(); err != nil {
		p.persona = previous
		return err
	}
	return nil
}

// Reset restores the built-in default persona and persists it.
func (p *PersonaStore) Reset() (*model.PersonaProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	previous := p.persona
	p.persona = model.DefaultPersona()
	if err := p.persistLocked(); err != nil {
		p.persona = previous
		return nil, err
	}
	return p.persona.Clone(), nil
}

// persistLocked serializes the persona to the store. Callers must hold the
// write lock.
func (p *PersonaStore) persistLocked() error {
	raw, err := json.Marshal(p.persona)
	if err != nil {
		return fmt.Errorf("failed to serialize persona: %w", err)
	}
	return p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ConsoleBucket)).Put([]byte(PersonaKey), raw)
	})
}
