// Package store persists the raw register values submitted per form.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no values have been stored for a form.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict is returned when a write names a revision other than the
	// stored one.
	ErrConflict = errors.New("store: revision conflict")
)

// Record is the stored state of one form.
type Record struct {
	FormID    string         `json:"formId"`
	Revision  uint64         `json:"revision"`
	Values    map[string]any `json:"values"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Store keeps the latest values per form. Every successful Put bumps the
// record revision by one.
type Store interface {
	Get(ctx context.Context, formID string) (Record, error)
	// Put merges values over the stored ones. A non-zero revision must match
	// the stored revision or ErrConflict is returned.
	Put(ctx context.Context, formID string, values map[string]any, revision uint64) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, formID string) error
	Close() error
}

// Merge copies src over dst, descending into nested objects present on
// both sides. dst is modified and returned; a nil dst is allocated.
func Merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, value := range src {
		incoming, ok := value.(map[string]any)
		if !ok {
			dst[key] = value
			continue
		}
		existing, ok := dst[key].(map[string]any)
		if !ok {
			existing = nil
		}
		dst[key] = Merge(existing, incoming)
	}
	return dst
}
