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

import "errors"

// Domain validation errors
var (
	// ErrInvalidUnit indicates a StructuralUnit failed validation.
	ErrInvalidUnit = errors.New("invalid structural unit")

	// ErrInvalidEntity indicates a LegalEntity failed validation.
	ErrInvalidEntity = errors.New("invalid legal entity")

	// ErrInvalidRecord indicates a JSONL output record failed validation.
	ErrInvalidRecord = errors.New("invalid output record")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyCode indicates the Code field is empty.
	ErrEmptyCode = errors.New("code cannot be empty")

	// ErrEmptyUnitID indicates the UnitID field is empty.
	ErrEmptyUnitID = errors.New("unit id cannot be empty")

	// ErrEmptyText indicates a required text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEmptySection indicates the Section field is empty.
	ErrEmptySection = errors.New("section cannot be empty")

	// ErrInvalidParaNo indicates a paragraph number is missing or negative.
	ErrInvalidParaNo = errors.New("para_no must be positive")

	// ErrInvalidSpan indicates an entity span does not satisfy
	// 0 <= start < end <= len(paragraph text).
	ErrInvalidSpan = errors.New("entity span out of range")

	// ErrSpanMismatch indicates paragraph text at [start:end] does not
	// equal the entity text.
	ErrSpanMismatch = errors.New("entity span does not match paragraph text")

	// ErrInvalidStatus indicates an unknown UnitStatus value.
	ErrInvalidStatus = errors.New("invalid unit status")
)
