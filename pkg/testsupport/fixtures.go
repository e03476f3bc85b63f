package testsupport

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

//go:embed fixtures/*
var fixtures embed.FS

const (
	// ZoneSchemaPath is the json-editor schema used across package tests.
	ZoneSchemaPath = "fixtures/zone.schema.json"
	// ControllerOpenAPIPath describes the same zone through an OpenAPI operation.
	ControllerOpenAPIPath = "fixtures/controller.openapi.yaml"
)

// FS exposes the embedded fixtures, suitable for loader.WithFS.
func FS() embed.FS {
	return fixtures
}

// Fixture returns the raw bytes of an embedded fixture.
func Fixture(t testing.TB, name string) []byte {
	t.Helper()
	data, err := fixtures.ReadFile(name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// Document wraps an embedded fixture as a schema.Document with an fs source.
func Document(t testing.TB, name string) schema.Document {
	t.Helper()
	doc, err := schema.NewDocument(schema.FSSource(name), Fixture(t, name))
	if err != nil {
		t.Fatalf("fixture document %s: %v", name, err)
	}
	return doc
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file relative to the calling test package.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden rewrites path when UPDATE_GOLDENS is set and reports
// whether it did, so the caller can skip the comparison.
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MarshalGolden renders value as indented JSON for golden comparisons.
func MarshalGolden(t testing.TB, value any) []byte {
	t.Helper()
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	return append(payload, '\n')
}

// CaptureOutput runs render against a buffer and returns what it wrote.
func CaptureOutput(t testing.TB, render func(io.Writer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}
