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


package core

import "fmt"

// ValidateUnit validates a StructuralUnit according to domain rules.
//
// Validation rules:
//   - Code and UnitID must not be empty
//   - Status must be active or deleted
//
// NOT validated:
//   - Content (deleted articles legitimately carry empty content)
//   - Title and Hierarchy (best-effort, may be absent)
func ValidateUnit(unit *StructuralUnit) error {
	if unit == nil {
		return fmt.Errorf("%w: unit is nil", ErrInvalidUnit)
	}
	if unit.Code == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUnit, ErrEmptyCode)
	}
	if unit.UnitID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUnit, ErrEmptyUnitID)
	}
	if err := ValidateStatus(unit.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUnit, err)
	}
	return nil
}

// ValidateStatus checks that status is one of the known values.
func ValidateStatus(status UnitStatus) error {
	switch status {
	case UnitActive, UnitDeleted:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
}

// ValidateEntity checks an entity span against the text of its owning
// paragraph. The invariant is 0 <= Start < End <= len(text) and
// text[Start:End] == entity.Text.
func ValidateEntity(entity LegalEntity, paragraphText string) error {
	if entity.Start < 0 || entity.End <= entity.Start || entity.End > len(paragraphText) {
		return fmt.Errorf("%w: [%d:%d) in %d bytes", ErrInvalidSpan, entity.Start, entity.End, len(paragraphText))
	}
	if paragraphText[entity.Start:entity.End] != entity.Text {
		return fmt.Errorf("%w: %q at [%d:%d)", ErrSpanMismatch, entity.Text, entity.Start, entity.End)
	}
	return nil
}

// ValidateRulingRecord checks the fields every output record must carry.
// Used by the post-run validation step; failures are reported, not fatal.
func ValidateRulingRecord(rec *RulingRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if rec.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyText)
	}
	if rec.ParaNo <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrInvalidParaNo)
	}
	if rec.Section == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptySection)
	}
	return nil
}

// ValidateChunk validates a Chunk before it is persisted.
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}
	if chunk.ChunkID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyUnitID)
	}
	if chunk.Metadata.Code == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyCode)
	}
	if err := ValidateStatus(chunk.Metadata.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}
	return nil
}
