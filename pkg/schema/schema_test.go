package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSource(t *testing.T) {
	src, err := ParseSource("https://controller.local/schemas/ssi9000.json")
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if src.Kind != SourceKindURL {
		t.Fatalf("expected url source, got %s", src.Kind)
	}

	src, err = ParseSource("./testdata/../schema.json")
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if diff := cmp.Diff(Source{Kind: SourceKindFile, Location: "schema.json"}, src); diff != "" {
		t.Fatalf("file source mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseSource("  "); err == nil {
		t.Fatal("expected error for empty source")
	}
	if _, err := URLSource("ftp://controller.local/x"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func TestNewDocumentCopiesPayload(t *testing.T) {
	raw := []byte(`{"type":"object"}`)
	doc, err := NewDocument(FSSource("/forms/a.json"), raw)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	raw[0] = 'X'
	if got := string(doc.Raw()); got != `{"type":"object"}` {
		t.Fatalf("document shares caller buffer: %s", got)
	}
	if doc.Location() != "forms/a.json" {
		t.Fatalf("unexpected location %q", doc.Location())
	}

	if _, err := NewDocument(FileSource("a.json"), nil); err != ErrEmptyDocument {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := NewDocument(Source{}, raw); err == nil {
		t.Fatal("expected error for zero source")
	}
}

func TestSchemaIRFormRefs(t *testing.T) {
	ir := NewSchemaIR()
	ir.Add(Form{ID: "zone", Title: "Zone"})
	ir.Add(Form{ID: "alarms", Title: "Alarms"})

	want := []FormRef{{ID: "alarms", Title: "Alarms"}, {ID: "zone", Title: "Zone"}}
	if diff := cmp.Diff(want, ir.FormRefs()); diff != "" {
		t.Fatalf("form refs mismatch (-want +got):\n%s", diff)
	}
	if _, ok := ir.Form("missing"); ok {
		t.Fatal("unexpected form")
	}
}
