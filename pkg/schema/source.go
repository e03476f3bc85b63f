package schema

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// SourceKind enumerates where a document can be read from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies the origin of a schema document.
type Source struct {
	Kind     SourceKind
	Location string
}

// String returns "kind:location".
func (s Source) String() string {
	return string(s.Kind) + ":" + s.Location
}

// IsZero reports whether the source was never set.
func (s Source) IsZero() bool {
	return s.Kind == "" && s.Location == ""
}

// FileSource points at a file on disk.
func FileSource(path string) Source {
	return Source{Kind: SourceKindFile, Location: filepath.Clean(path)}
}

// FSSource points at an entry inside an fs.FS.
func FSSource(name string) Source {
	return Source{Kind: SourceKindFS, Location: strings.TrimPrefix(name, "/")}
}

// URLSource validates raw as an absolute http(s) URL.
func URLSource(raw string) (Source, error) {
	parsed, err := url.ParseRequestURI(strings.TrimSpace(raw))
	if err != nil {
		return Source{}, fmt.Errorf("schema: invalid url %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Source{}, fmt.Errorf("schema: unsupported url scheme %q", parsed.Scheme)
	}
	return Source{Kind: SourceKindURL, Location: parsed.String()}, nil
}

// ParseSource treats http(s) locations as URLs and anything else as a file
// path. Used by the command line where the user passes a single argument.
func ParseSource(location string) (Source, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return Source{}, fmt.Errorf("schema: empty source")
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return URLSource(trimmed)
	}
	return FileSource(trimmed), nil
}
