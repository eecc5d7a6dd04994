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
// layer. This file implements the history export formats: delimited text,
// structured JSON, and a spreadsheet workbook. Export is pure serialization
// over the repository snapshot; it never mutates state.
package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zunetech/content-console/internal/core/model"
)

// exportHeader is the column order shared by the CSV and XLSX exports.
var exportHeader = []string{
	"id", "topic", "title", "duration", "cta_placement",
	"video_start_text", "alternative_hook", "cta_text",
	"outro", "caption_seo", "hashtags", "scenes", "timestamp",
}

// exportRow flattens one script into the shared column order. Scenes are
// folded into a single readable cell, since spreadsheet consumers want one
// row per script.
func exportRow(s *model.ScriptContent) []string {
	sceneParts := make([]string, 0, len(s.ScriptScenes))
	for _, scene := range s.ScriptScenes {
		sceneParts = append(sceneParts, fmt.Sprintf("[%s] %s | %s", scene.TimeSegment, scene.VisualCue, scene.AudioNarration))
	}
	return []string{
		s.ID,
		s.Topic,
		s.Title,
		s.Duration,
		s.CtaPlacement,
		s.VideoStartText,
		s.AlternativeHook,
		s.CtaText,
		s.Outro,
		s.CaptionSEO,
		strings.Join(s.Hashtags, " "),
		strings.Join(sceneParts, "\n"),
		s.Timestamp.Format(time.RFC3339),
	}
}

// WriteCSV serializes the history as delimited text.
//
// Inputs:
//   - w: the destination writer.
//   - scripts: the history snapshot, newest first.
//
// Outputs:
//   - error: non-nil when the writer fails.
func WriteCSV(w io.Writer, scripts []*model.ScriptContent) error {
	out := csv.NewWriter(w)
	if err := out.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, s := range scripts {
		if err := out.Write(exportRow(s)); err != nil {
			return fmt.Errorf("failed to write export row for %s: %w", s.ID, err)
		}
	}
	out.Flush()
	return out.Error()
}

// WriteJSON serializes the history as an indented JSON array.
func WriteJSON(w io.Writer, scripts []*model.ScriptContent) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scripts)
}

// WriteXLSX serializes the history as a single-sheet spreadsheet workbook.
func WriteXLSX(w io.Writer, scripts []*model.ScriptContent) error {
	book := excelize.NewFile()
	defer func() { _ = book.Close() }()

	const sheet = "Scripts"
	index, err := book.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create export sheet: %w", err)
	}
	book.SetActiveSheet(index)
	if err := book.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, name := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := book.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for row, s := range scripts {
		for col, value := range exportRow(s) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := book.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell for %s: %w", s.ID, err)
			}
		}
	}

	return book.Write(w)
}

// ExportFileName builds a timestamped download name for the given format.
func ExportFileName(format string, now time.Time) string {
	return "zunetech-scripts-" + now.Format("20060102-150405") + "." + format
}
