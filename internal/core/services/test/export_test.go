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

package services_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/zunetech/content-console/internal/core/model"
	"github.com/zunetech/content-console/internal/core/services"
)

// TestWriteCSV verifies the header row and the one-row-per-script layout.
func TestWriteCSV(t *testing.T) {
	script := model.GetExampleScript()

	var buffer bytes.Buffer
	require.NoError(t, services.WriteCSV(&buffer, []*model.ScriptContent{script, script.Clone()}))

	rows, err := csv.NewReader(&buffer).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "timestamp", rows[0][len(rows[0])-1])
	assert.Equal(t, script.ID, rows[1][0])
	assert.Equal(t, script.Topic, rows[1][1])
	// Scenes fold into one cell per script.
	assert.Contains(t, rows[1][11], script.ScriptScenes[0].TimeSegment)
}

// TestWriteJSON verifies the export decodes back into equal documents.
func TestWriteJSON(t *testing.T) {
	script := model.GetExampleScript()

	var buffer bytes.Buffer
	require.NoError(t, services.WriteJSON(&buffer, []*model.ScriptContent{script}))

	var decoded []*model.ScriptContent
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, script.ID, decoded[0].ID)
	assert.Equal(t, script.Hashtags, decoded[0].Hashtags)
}

// TestWriteXLSX verifies the workbook opens with the expected sheet and
// cell contents.
func TestWriteXLSX(t *testing.T) {
	script := model.GetExampleScript()

	var buffer bytes.Buffer
	require.NoError(t, services.WriteXLSX(&buffer, []*model.ScriptContent{script}))

	book, err := excelize.OpenReader(&buffer)
	require.NoError(t, err)
	defer func() { _ = book.Close() }()

	assert.Equal(t, []string{"Scripts"}, book.GetSheetList())

	header, err := book.GetCellValue("Scripts", "A1")
	require.NoError(t, err)
	assert.Equal(t, "id", header)

	id, err := book.GetCellValue("Scripts", "A2")
	require.NoError(t, err)
	assert.Equal(t, script.ID, id)
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "zunetech-scripts-20250310-143005.csv", services.ExportFileName("csv", now))
	assert.Equal(t, "zunetech-scripts-20250310-143005.xlsx", services.ExportFileName("xlsx", now))
}
