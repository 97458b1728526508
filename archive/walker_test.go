package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type zipEntry struct {
	name    string
	content string
	dir     bool
}

func writeZip(t *testing.T, entries []zipEntry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "bundle.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		if e.dir {
			h := &zip.FileHeader{Name: e.name}
			h.SetMode(os.ModeDir | 0755)
			if _, err := w.CreateHeader(h); err != nil {
				t.Fatalf("Failed to create directory %s: %v", e.name, err)
			}
			continue
		}
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return zipPath
}

func yamlOnly(name string) bool {
	return strings.HasSuffix(name, ".yaml")
}

func TestWalk(t *testing.T) {
	zipPath := writeZip(t, []zipEntry{
		{name: "pages/", dir: true},
		{name: "pages/faq-10.yaml", content: "kind: faq"},
		{name: "pages/faq-2.yaml", content: "kind: faq"},
		{name: "hero.yaml", content: "kind: hero"},
		{name: "readme.txt", content: "not a document"},
	})

	tests := []struct {
		name  string
		match func(string) bool
		want  []string
	}{
		{"documents only", yamlOnly, []string{"hero.yaml", "pages/faq-2.yaml", "pages/faq-10.yaml"}},
		{"everything", nil, []string{"hero.yaml", "pages/faq-2.yaml", "pages/faq-10.yaml", "readme.txt"}},
		{"nothing", func(string) bool { return false }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.match, func(name string, data []byte) error {
				visited = append(visited, name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, visited); diff != "" {
				t.Errorf("Walk() visited mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalk_Content(t *testing.T) {
	zipPath := writeZip(t, []zipEntry{{name: "stats.yaml", content: "kind: stats-card\n"}})

	err := Walk(zipPath, nil, func(name string, data []byte) error {
		if string(data) != "kind: stats-card\n" {
			t.Errorf("content = %q", data)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	zipPath := writeZip(t, []zipEntry{
		{name: "a.yaml"}, {name: "b.yaml"}, {name: "c.yaml"},
	})

	var visited int
	stopErr := errors.New("stop walking")
	err := Walk(zipPath, nil, func(name string, data []byte) error {
		visited++
		if visited == 2 {
			return stopErr
		}
		return nil
	})
	if !errors.Is(err, stopErr) {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if visited != 2 {
		t.Errorf("visited %d files, want 2", visited)
	}
}

func TestWalk_UnsafePath(t *testing.T) {
	for _, name := range []string{"../escape.yaml", "docs/../../escape.yaml", "/abs.yaml", `\win.yaml`, `docs\..\..\x.yaml`} {
		t.Run(name, func(t *testing.T) {
			zipPath := writeZip(t, []zipEntry{{name: "ok.yaml"}, {name: name}})

			var visited int
			err := Walk(zipPath, nil, func(string, []byte) error {
				visited++
				return nil
			})
			if !errors.Is(err, ErrUnsafePath) {
				t.Errorf("Walk() error = %v, want %v", err, ErrUnsafePath)
			}
			if visited != 0 {
				t.Errorf("visited %d files before rejecting archive", visited)
			}
		})
	}
}

func TestWalk_TooLarge(t *testing.T) {
	zipPath := writeZip(t, []zipEntry{{name: "big.yaml", content: strings.Repeat("x", MaxEntrySize+1)}})

	err := Walk(zipPath, nil, func(string, []byte) error { return nil })
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Walk() error = %v, want %v", err, ErrTooLarge)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		if err := Walk("/nonexistent/file.zip", nil, func(string, []byte) error { return nil }); err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		invalidZip := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalidZip, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("Failed to create invalid zip: %v", err)
		}
		if err := Walk(invalidZip, nil, func(string, []byte) error { return nil }); err == nil {
			t.Error("Expected error for invalid zip file")
		}
	})
}

func TestIsArchive(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"bundle.zip", true},
		{"BUNDLE.ZIP", true},
		{"bundle.yaml", false},
		{"zip", false},
	}
	for _, tt := range tests {
		if got := IsArchive(tt.name); got != tt.want {
			t.Errorf("IsArchive(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
