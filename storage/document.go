// Package storage implements attribute persistence hosts and the document
// format they share.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"cblocks/attrs"
	"cblocks/collection"
	"cblocks/common"
)

// Format of the serialized document.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf selects document format by file extension, everything which is not
// json is treated as yaml.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// IsDocument reports whether file name looks like block document.
func IsDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

const idField = "id"

type rawDocument struct {
	Kind       string         `yaml:"kind" json:"kind"`
	ID         string         `yaml:"id" json:"id"`
	Attributes map[string]any `yaml:"attributes" json:"attributes"`
}

// Decode parses block document. JSON is accepted as well since it is subset
// of yaml. Arrays of objects become collections, entries without id are
// assigned fresh one.
func Decode(data []byte) (*attrs.Document, error) {
	var raw rawDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode block document: %w", err)
	}
	kind, err := common.ParseBlockKind(raw.Kind)
	if err != nil {
		return nil, fmt.Errorf("bad block document: %w", err)
	}
	doc := &attrs.Document{
		Kind:       kind,
		ID:         raw.ID,
		Attributes: toFields(raw.Attributes),
	}
	if doc.ID == "" {
		doc.ID = collection.NewID()
	}
	return doc, nil
}

// Encode serializes block document in requested format.
func Encode(doc *attrs.Document, format Format) ([]byte, error) {
	raw := rawDocument{
		Kind:       doc.Kind.String(),
		ID:         doc.ID,
		Attributes: fromFields(doc.Attributes),
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode block document: %w", err)
		}
		return append(data, '\n'), nil
	default:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(raw); err != nil {
			return nil, fmt.Errorf("failed to encode block document: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode block document: %w", err)
		}
		return buf.Bytes(), nil
	}
}

func toFields(m map[string]any) collection.Fields {
	f := make(collection.Fields, len(m))
	for k, v := range m {
		f[k] = toValue(v)
	}
	return f
}

func toValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return toFields(t)
	case []any:
		if !allObjects(t) {
			out := make([]any, len(t))
			for i := range t {
				out[i] = toValue(t[i])
			}
			return out
		}
		c := make(collection.Collection, 0, len(t))
		seen := make(map[string]bool, len(t))
		for _, item := range t {
			m := item.(map[string]any)
			// hand edited documents may repeat ids, later entries get new ones
			id := idOf(m[idField])
			for seen[id] {
				id = collection.NewID()
			}
			seen[id] = true
			fields := make(collection.Fields, len(m))
			for k, v := range m {
				if k != idField {
					fields[k] = toValue(v)
				}
			}
			c = append(c, &collection.Entry{ID: id, Fields: fields})
		}
		return c
	default:
		return v
	}
}

// allObjects is true for empty arrays too, all array attributes of blocks are
// collections.
func allObjects(a []any) bool {
	for _, v := range a {
		if _, ok := v.(map[string]any); !ok {
			return false
		}
	}
	return true
}

func idOf(v any) string {
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case int:
		return strconv.Itoa(t)
	}
	return collection.NewID()
}

func fromFields(f collection.Fields) map[string]any {
	m := make(map[string]any, len(f))
	for k, v := range f {
		m[k] = fromValue(v)
	}
	return m
}

func fromValue(v any) any {
	switch t := v.(type) {
	case collection.Fields:
		return fromFields(t)
	case map[string]any:
		return fromFields(collection.Fields(t))
	case collection.Collection:
		out := make([]any, 0, len(t))
		for _, e := range t {
			m := fromFields(e.Fields)
			m[idField] = e.ID
			out = append(out, m)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = fromValue(t[i])
		}
		return out
	default:
		return v
	}
}
