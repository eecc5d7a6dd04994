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
// This file tests the script history repository: ordering, round-trip
// persistence, in-place replacement, and recovery from a corrupt snapshot.
package services_test

import (
	"testing"

	bolt "go.etcd.io/bbolt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zunetech/content-console/internal/core/model"
	"github.com/zunetech/content-console/internal/core/services"
	test "github.com/zunetech/content-console/internal/testutil"
)

// TestRepositoryRoundTrip verifies that a prepended script survives a full
// reload from the store and comes back first, deep-equal to the original.
func TestRepositoryRoundTrip(t *testing.T) {
	db := test.OpenTestDB(t)

	repo, err := services.NewScriptRepository(db)
	require.NoError(t, err)

	script := model.GetExampleScript()
	require.NoError(t, repo.Prepend(script))

	// Reopen over the same handle to simulate a process restart.
	reloaded, err := services.NewScriptRepository(db)
	require.NoError(t, err)

	all := reloaded.LoadAll()
	require.Len(t, all, 1)
	assert.Equal(t, script, all[0])
}

// TestRepositoryOrdering verifies that Prepend puts the newest record first.
func TestRepositoryOrdering(t *testing.T) {
	repo, err := services.NewScriptRepository(test.OpenTestDB(t))
	require.NoError(t, err)

	first := model.GetExampleScript()
	first.ID = "first"
	second := model.GetExampleScript()
	second.ID = "second"

	require.NoError(t, repo.Prepend(first))
	require.NoError(t, repo.Prepend(second))

	all := repo.LoadAll()
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].ID)
	assert.Equal(t, "first", all[1].ID)
}

// TestRepositoryLoadAllIsDeepCopy verifies that mutating a returned record
// does not leak back into the repository's state.
func TestRepositoryLoadAllIsDeepCopy(t *testing.T) {
	repo, err := services.NewScriptRepository(test.OpenTestDB(t))
	require.NoError(t, err)
	require.NoError(t, repo.Prepend(model.GetExampleScript()))

	all := repo.LoadAll()
	all[0].Title = "mutated"
	all[0].Hashtags[0] = "#mutated"

	again := repo.LoadAll()
	assert.NotEqual(t, "mutated", again[0].Title)
	assert.NotEqual(t, "#mutated", again[0].Hashtags[0])
	assert.Equal(t, repo.LoadAll(), again)
}

// TestRepositoryReplace verifies in-place replacement by id: the length is
// unchanged, the record is updated, and an unknown id is a silent no-op.
func TestRepositoryReplace(t *testing.T) {
	repo, err := services.NewScriptRepository(test.OpenTestDB(t))
	require.NoError(t, err)

	script := model.GetExampleScript()
	require.NoError(t, repo.Prepend(script))

	updated := script.Clone()
	updated.GeneratedImageURL = "data:image/png;base64,aGVsbG8="
	found, err := repo.Replace(updated)
	require.NoError(t, err)
	assert.True(t, found)

	all := repo.LoadAll()
	require.Len(t, all, 1)
	assert.Equal(t, updated.GeneratedImageURL, all[0].GeneratedImageURL)

	missing := script.Clone()
	missing.ID = "no-such-id"
	found, err = repo.Replace(missing)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, all, repo.LoadAll())
}

// TestRepositoryCorruptSnapshot verifies the silent-recovery policy: a
// snapshot that does not decode yields an empty history, not an error.
func TestRepositoryCorruptSnapshot(t *testing.T) {
	db := test.OpenTestDB(t)

	err := db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(services.ConsoleBucket))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(services.ScriptsKey), []byte("{not json"))
	})
	require.NoError(t, err)

	repo, err := services.NewScriptRepository(db)
	require.NoError(t, err)
	assert.Empty(t, repo.LoadAll())

	// The repository must be writable again after recovery.
	require.NoError(t, repo.Prepend(model.GetExampleScript()))
	assert.Len(t, repo.LoadAll(), 1)
}
