package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-ssi/pkg/render"
)

func TestSortedHiddenFields(t *testing.T) {
	fields := []render.HiddenField{
		render.Hidden(" _csrf ", "token123"),
		render.RevisionField(4),
		render.Hidden("  ", "skip"),
		render.Hidden("_csrf", "token456"),
	}

	got := render.SortedHiddenFields(fields)
	want := []render.HiddenField{
		{Name: "_csrf", Value: "token456"},
		{Name: "_revision", Value: "4"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}

	if render.SortedHiddenFields(nil) != nil {
		t.Fatalf("expected nil for no fields")
	}
}

func TestSubmissionValid(t *testing.T) {
	if !(render.Submission{Values: map[string]any{"a": 1}}).Valid() {
		t.Fatalf("expected submission without errors to be valid")
	}
	if (render.Submission{Errors: map[string][]string{"root.a": {"bad"}}}).Valid() {
		t.Fatalf("expected submission with errors to be invalid")
	}
}
