package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for records persisted in the chunk store. Field order is
// part of the storage format; append new fields at the end only.

var stringSliceMUS = ord.NewSliceSer[string](ord.String)

// ChunkMetadataMUS serializes ChunkMetadata.
var ChunkMetadataMUS = chunkMetadataMUS{}

type chunkMetadataMUS struct{}

func (s chunkMetadataMUS) Marshal(v ChunkMetadata, bs []byte) (n int) {
	n = ord.String.Marshal(v.Code, bs)
	n += ord.String.Marshal(v.Article, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Section, bs[n:])
	n += ord.String.Marshal(v.Book, bs[n:])
	n += ord.String.Marshal(v.Chapter, bs[n:])
	n += ord.String.Marshal(string(v.Status), bs[n:])
	n += ord.String.Marshal(v.Paragraph, bs[n:])
	n += varint.Int.Marshal(v.ChunkIndex, bs[n:])
	n += ord.Bool.Marshal(v.Partial, bs[n:])
	n += ord.String.Marshal(v.IndexingDate, bs[n:])
	return n
}

func (s chunkMetadataMUS) Unmarshal(bs []byte) (v ChunkMetadata, n int, err error) {
	var n1 int
	if v.Code, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Article, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Section, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Book, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Chapter, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var status string
	if status, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.Status = UnitStatus(status)
	n += n1
	if v.Paragraph, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Partial, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.IndexingDate, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s chunkMetadataMUS) Size(v ChunkMetadata) (size int) {
	size = ord.String.Size(v.Code)
	size += ord.String.Size(v.Article)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Section)
	size += ord.String.Size(v.Book)
	size += ord.String.Size(v.Chapter)
	size += ord.String.Size(string(v.Status))
	size += ord.String.Size(v.Paragraph)
	size += varint.Int.Size(v.ChunkIndex)
	size += ord.Bool.Size(v.Partial)
	size += ord.String.Size(v.IndexingDate)
	return size
}

func (s chunkMetadataMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

// ChunkMUS serializes a Chunk.
var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (s chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = ord.String.Marshal(v.ChunkID, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += ChunkMetadataMUS.Marshal(v.Metadata, bs[n:])
	return n
}

func (s chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	var n1 int
	if v.ChunkID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Metadata, n1, err = ChunkMetadataMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s chunkMUS) Size(v Chunk) int {
	return ord.String.Size(v.ChunkID) + ord.String.Size(v.Text) + ChunkMetadataMUS.Size(v.Metadata)
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

// LegalEntityMUS serializes a LegalEntity.
var LegalEntityMUS = legalEntityMUS{}

type legalEntityMUS struct{}

func (s legalEntityMUS) Marshal(v LegalEntity, bs []byte) (n int) {
	n = ord.String.Marshal(v.Text, bs)
	n += ord.String.Marshal(string(v.Label), bs[n:])
	n += varint.Int.Marshal(v.Start, bs[n:])
	n += varint.Int.Marshal(v.End, bs[n:])
	return n
}

func (s legalEntityMUS) Unmarshal(bs []byte) (v LegalEntity, n int, err error) {
	var n1 int
	if v.Text, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	var label string
	if label, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.Label = EntityLabel(label)
	n += n1
	if v.Start, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.End, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s legalEntityMUS) Size(v LegalEntity) int {
	return ord.String.Size(v.Text) + ord.String.Size(string(v.Label)) +
		varint.Int.Size(v.Start) + varint.Int.Size(v.End)
}

func (s legalEntityMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

var entitySliceMUS = ord.NewSliceSer[LegalEntity](LegalEntityMUS)

// EnrichedParagraphMUS serializes an EnrichedParagraph.
var EnrichedParagraphMUS = enrichedParagraphMUS{}

type enrichedParagraphMUS struct{}

func (s enrichedParagraphMUS) Marshal(v EnrichedParagraph, bs []byte) (n int) {
	n = varint.Int.Marshal(v.ParaNo, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += ord.String.Marshal(string(v.Section), bs[n:])
	n += entitySliceMUS.Marshal(v.Entities, bs[n:])
	return n
}

func (s enrichedParagraphMUS) Unmarshal(bs []byte) (v EnrichedParagraph, n int, err error) {
	var n1 int
	if v.ParaNo, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	if v.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var section string
	if section, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.Section = Section(section)
	n += n1
	if v.Entities, n1, err = entitySliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s enrichedParagraphMUS) Size(v EnrichedParagraph) int {
	return varint.Int.Size(v.ParaNo) + ord.String.Size(v.Text) +
		ord.String.Size(string(v.Section)) + entitySliceMUS.Size(v.Entities)
}

func (s enrichedParagraphMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

var paragraphSliceMUS = ord.NewSliceSer[EnrichedParagraph](EnrichedParagraphMUS)

// RulingMUS serializes a Ruling, including metadata and all paragraphs.
var RulingMUS = rulingMUS{}

type rulingMUS struct{}

func (s rulingMUS) Marshal(v Ruling, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += ord.String.Marshal(v.Meta.Docket, bs[n:])
	n += ord.String.Marshal(v.Meta.Date, bs[n:])
	n += stringSliceMUS.Marshal(v.Meta.Panel, bs[n:])
	n += paragraphSliceMUS.Marshal(v.Paragraphs, bs[n:])
	return n
}

func (s rulingMUS) Unmarshal(bs []byte) (v Ruling, n int, err error) {
	var n1 int
	if v.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Meta.Docket, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Meta.Date, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Meta.Panel, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Paragraphs, n1, err = paragraphSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s rulingMUS) Size(v Ruling) int {
	return ord.String.Size(v.Name) + ord.String.Size(v.Meta.Docket) +
		ord.String.Size(v.Meta.Date) + stringSliceMUS.Size(v.Meta.Panel) +
		paragraphSliceMUS.Size(v.Paragraphs)
}

func (s rulingMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}
