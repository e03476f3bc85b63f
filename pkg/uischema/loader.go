package uischema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS parses every .json, .yaml and .yml file under fsys as an overlay
// document, in lexical path order. A nil fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Overlay)}
	if fsys == nil {
		return store, nil
	}

	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err == nil && !entry.IsDir() && decoderFor(path) != nil {
			files = append(files, path)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, path := range files {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("uischema: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return nil, err
		}
		if err := store.add(doc, path); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (s *Store) add(doc documentFile, source string) error {
	for formID, raw := range doc.Forms {
		id := strings.TrimSpace(formID)
		if id == "" {
			return fmt.Errorf("uischema: file %s defines an empty form id", source)
		}
		if prior, taken := s.forms[id]; taken {
			return fmt.Errorf("uischema: duplicate form %q (file %s, first in %s)", id, source, prior.Source)
		}
		overlay, err := normaliseOverlay(raw, id, source)
		if err != nil {
			return err
		}
		s.forms[id] = overlay
	}
	return nil
}

// Overlay returns the overrides for a form id.
func (s *Store) Overlay(id string) (Overlay, bool) {
	if s == nil {
		return Overlay{}, false
	}
	overlay, ok := s.forms[strings.TrimSpace(id)]
	return overlay, ok
}

func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]overlayFile `json:"forms" yaml:"forms"`
}

type overlayFile struct {
	Form   FormConfig             `json:"form" yaml:"form"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

type decodeFunc func([]byte, any) error

func decoderFor(path string) decodeFunc {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal
	case ".yaml", ".yml":
		return yaml.Unmarshal
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, fmt.Errorf("uischema: file %s is empty", source)
	}
	if err := decoderFor(source)(data, &doc); err != nil {
		return doc, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseOverlay(raw overlayFile, id, source string) (Overlay, error) {
	fields := make(map[string]FieldConfig, len(raw.Fields))
	for key, cfg := range raw.Fields {
		path := NormalizeFieldPath(key)
		switch _, taken := fields[path]; {
		case path == "":
			return Overlay{}, fmt.Errorf("uischema: form %q (file %s) field key %q normalises to empty path", id, source, key)
		case taken:
			return Overlay{}, fmt.Errorf("uischema: form %q (file %s) defines duplicate field path %q", id, source, path)
		}
		cfg.OriginalPath = key
		fields[path] = cfg
	}
	return Overlay{ID: id, Source: source, Form: raw.Form, Fields: fields}, nil
}
