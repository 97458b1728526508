package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cblocks/attrs"
)

// FileHost keeps every block document in its own file inside a directory.
// Block id is the file name without extension unless the document names its
// own id.
type FileHost struct {
	dir   string
	paths map[string]string
	log   *zap.Logger
}

func NewFileHost(dir string, log *zap.Logger) *FileHost {
	return &FileHost{dir: dir, paths: make(map[string]string), log: log.Named("files")}
}

// LoadFile reads document from arbitrary path and remembers where it came from
// so Replace writes it back there.
func (h *FileHost) LoadFile(path string) (*attrs.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read block document: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	h.paths[doc.ID] = path
	return doc, nil
}

func (h *FileHost) Load(_ context.Context, id string) (*attrs.Document, error) {
	if path, ok := h.paths[id]; ok {
		return h.LoadFile(path)
	}
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(h.dir, id+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		doc, err := h.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if doc.ID != id {
			h.paths[id] = path
		}
		return doc, nil
	}
	return nil, fmt.Errorf("block %q: %w", id, os.ErrNotExist)
}

// Replace writes the whole document atomically: new content goes to temporary
// file in the same directory which is then renamed over the old one.
func (h *FileHost) Replace(_ context.Context, doc *attrs.Document) error {
	path, ok := h.paths[doc.ID]
	if !ok {
		path = filepath.Join(h.dir, doc.ID+".yaml")
	}
	data, err := Encode(doc, FormatOf(path))
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return err
	}
	h.paths[doc.ID] = path
	h.log.Debug("Block document replaced", zap.String("block", doc.ID), zap.String("path", path))
	return nil
}

// WriteFileAtomic replaces file content so readers never observe partial
// writes.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(name, filepath.Ext(name))+"-*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp.Name()))
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to write temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("unable to close temporary file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("unable to replace %s: %w", path, err)
	}
	return nil
}
