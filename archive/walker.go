// Package archive reads block documents packed into zip bundles.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// MaxEntrySize limits size of single unpacked entry, block documents are
// small and anything bigger is most likely not what we are looking for.
const MaxEntrySize = 8 << 20

var (
	ErrUnsafePath = errors.New("unsafe path (absolute or contains path traversal)")
	ErrTooLarge   = errors.New("entry too large")
)

// WalkFunc is called for every matching file in archive with its slash
// separated name and unpacked content. If an error is returned, processing
// stops.
type WalkFunc func(name string, data []byte) error

// IsArchive reports whether file name looks like zip bundle.
func IsArchive(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".zip")
}

// Walk visits all files in the archive for which match returns true in
// natural name order. Nil match selects every file. Entries with ".."
// components or absolute paths fail the walk to prevent Zip Slip.
func Walk(archive string, match func(name string) bool, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return err
	}
	// insecure names are reported below, reader is usable
	defer r.Close()

	files := make(map[string]*zip.File, len(r.File))
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		name := f.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: %w", name, ErrUnsafePath)
		}
		if f.FileInfo().IsDir() || (match != nil && !match(name)) {
			continue
		}
		if _, dup := files[name]; !dup {
			names = append(names, name)
		}
		files[name] = f
	}
	sort.Sort(natural.StringSlice(names))

	for _, name := range names {
		data, err := read(files[name])
		if err != nil {
			return fmt.Errorf("zip entry %q: %w", name, err)
		}
		if err := walkFn(name, data); err != nil {
			return err
		}
	}
	return nil
}

func read(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > MaxEntrySize {
		return nil, ErrTooLarge
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	// header could lie about size
	data, err := io.ReadAll(io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxEntrySize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// isSafePath returns false for paths that could escape the output
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) || filepath.VolumeName(name) != "" {
		return false
	}
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return false
		}
	}
	return true
}
