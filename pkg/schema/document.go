package schema

import (
	"context"
	"errors"
)

// ErrEmptyDocument is returned when a loader produced no bytes.
var ErrEmptyDocument = errors.New("schema: document is empty")

// Document is a raw schema payload together with its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw so later mutation by the caller has no effect.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src.IsZero() {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, ErrEmptyDocument
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument is NewDocument for tests and fixtures.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

func (d Document) Location() string { return d.source.Location }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Loader fetches documents. internal/loader provides the file, fs.FS and HTTP
// implementation.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}
