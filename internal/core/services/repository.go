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
// layer. This file implements the script history repository on top of the
// local key-value store.
//
// Persistence model: the entire ordered collection is serialized as one JSON
// blob under a stable key and rewritten on every mutation. At the expected
// scale (tens to low hundreds of records) full-snapshot writes are simpler
// and safer than incremental updates. A snapshot that fails to decode is
// treated as an empty history; losing data is acceptable, crashing is not.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	bolt "go.etcd.io/bbolt"

	"github.com/zunetech/content-console/internal/core/model"
)

// Storage keys for the console's local state.
const (
	ConsoleBucket = "console"
	ScriptsKey    = "scripts"
	PersonaKey    = "persona"
)

// ScriptRepository maintains the ordered script history: newest first,
// in-memory for reads, with every mutation flushed to the local store. A
// mutex serializes mutations so close-together completions of in-flight
// generations cannot corrupt the collection.
type ScriptRepository struct {
	db *bolt.DB

	mu      sync.RWMutex
	scripts []*model.ScriptContent
}

// NewScriptRepository opens the repository over the given store handle,
// creating the bucket if needed and loading the persisted snapshot. A corrupt
// snapshot is logged and replaced with an empty history.
//
// Inputs:
//   - db: the open local store handle.
//
// Outputs:
//   - *ScriptRepository: the loaded repository.
//   - error: non-nil only when the bucket cannot be created; decode failures
//     are swallowed per the silent-recovery policy.
func NewScriptRepository(db *bolt.DB) (*ScriptRepository, error) {
	out := &ScriptRepository{db: db}

	err := db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(ConsoleBucket))
		if err != nil {
			return err
		}
		raw := bucket.Get([]byte(ScriptsKey))
		if raw == nil {
			return nil
		}
		var scripts []*model.ScriptContent
		if err := json.Unmarshal(raw, &scripts); err != nil {
			slog.Warn("script snapshot is corrupt, starting with empty history", "error", err)
			return nil
		}
		out.scripts = scripts
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize script repository: %w", err)
	}
	return out, nil
}

// LoadAll returns the full history, newest first. Records are deep copies so
// callers cannot mutate the repository's state through them.
func (r *ScriptRepository) LoadAll() []*model.ScriptContent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.ScriptContent, len(r.scripts))
	for i, s := range r.scripts {
		out[i] = s.Clone()
	}
	return out
}

// Get returns a copy of the record with the given id, or nil when absent.
func (r *ScriptRepository) Get(id string) (*model.ScriptContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.scripts {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return nil, nil
}

// Prepend adds a record to the front of the history and persists the full
// collection. On a persistence failure the in-memory state is rolled back so
// memory and disk never disagree.
func (r *ScriptRepository) Prepend(script *model.ScriptContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scripts = append([]*model.ScriptContent{script.Clone()}, r.scripts...)
	if err := r.persistLocked(); err != nil {
		r.scripts = r.scripts[1:]
		return err
	}
	return nil
}

// Replace overwrites the record whose id matches the given script, in place,
// and persists the full collection. A missing id is a silent no-op reported
// through the boolean so the caller can distinguish the two outcomes.
//
// Outputs:
//   - bool: true when a record was found and replaced.
//   - error: non-nil when persistence failed; the in-memory state is rolled
//     back in that case.
func (r *ScriptRepository) Replace(script *model.ScriptContent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.scripts {
		if s.ID == script.ID {
			previous := r.scripts[i]
			r.scripts[i] = script.Clone()
			if err := r.persistLocked(); err != nil {
				r.scripts[i] = previous
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// persistLocked serializes the whole collection to the store. Callers must
// hold the write lock.
func (r *ScriptRepository) persistLocked() error {
	raw, err := json.Marshal(r.scripts)
	if err != nil {
		return fmt.Errorf("failed to serialize script history: %w", err)
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ConsoleBucket)).Put([]byte(ScriptsKey), raw)
	})
}
