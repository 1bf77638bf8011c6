// Copyright 2025 Cywil Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zeddq/cywil-sub002/core"
)

// ValidationIssue names one record that failed a field check.
type ValidationIssue struct {
	Line   int
	Reason string
}

// ValidationReport summarizes a post-run check of a corpus file.
// Invalid records are reported, never removed.
type ValidationReport struct {
	Total   int
	Valid   int
	Invalid int
	Issues  []ValidationIssue
}

// ValidateRulingJSONL checks every record in a rulings corpus file for
// non-empty text, a positive paragraph number, and a section label.
func ValidateRulingJSONL(r io.Reader) (ValidationReport, error) {
	return validateLines(r, func(line []byte) error {
		var rec core.RulingRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("not a ruling record: %w", err)
		}
		return core.ValidateRulingRecord(&rec)
	})
}

// ValidateChunkJSONL checks every record in a statutes corpus file.
func ValidateChunkJSONL(r io.Reader) (ValidationReport, error) {
	return validateLines(r, func(line []byte) error {
		var chunk core.Chunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return fmt.Errorf("not a chunk record: %w", err)
		}
		return core.ValidateChunk(&chunk)
	})
}

func validateLines(r io.Reader, check func([]byte) error) (ValidationReport, error) {
	report := ValidationReport{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		report.Total++
		if err := check([]byte(line)); err != nil {
			report.Invalid++
			report.Issues = append(report.Issues, ValidationIssue{Line: lineNo, Reason: err.Error()})
			continue
		}
		report.Valid++
	}
	if err := scanner.Err(); err != nil {
		return report, err
	}
	return report, nil
}
