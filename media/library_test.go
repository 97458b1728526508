package media

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"cblocks/config"
)

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("Save(%s) error = %v", path, err)
	}
}

func newLibrary(t *testing.T, mode config.ThumbnailMode) (*Library, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.MediaConfig{
		Library: dir,
		BaseURL: "/media/",
		Thumbnail: config.ThumbnailConfig{
			Width:  32,
			Height: 32,
			Mode:   mode,
		},
	}
	lib, err := NewLibrary(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	return lib, dir
}

func TestNewLibrary_NotConfigured(t *testing.T) {
	_, err := NewLibrary(&config.MediaConfig{BaseURL: "/media"}, zaptest.NewLogger(t))
	if !errors.Is(err, ErrNoLibrary) {
		t.Fatalf("NewLibrary() error = %v, want %v", err, ErrNoLibrary)
	}
}

func TestSelect(t *testing.T) {
	lib, dir := newLibrary(t, config.ThumbnailModeFit)
	writeImage(t, filepath.Join(dir, "people", "team-photo_2.png"), 10, 10)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	a, err := lib.Select("people/team-photo_2.png")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if a.URL != "/media/people/team-photo_2.png" {
		t.Errorf("URL = %q", a.URL)
	}
	if a.Alt != "Team Photo 2" {
		t.Errorf("Alt = %q", a.Alt)
	}
	if a.ID == "" {
		t.Errorf("empty ID")
	}

	// by URL gives the same asset
	again, err := lib.Select(a.URL)
	if err != nil {
		t.Fatalf("Select(url) error = %v", err)
	}
	if diff := cmp.Diff(a, again); diff != "" {
		t.Errorf("Select(url) mismatch (-want +got):\n%s", diff)
	}

	if _, err := lib.Select("notes.txt"); !errors.Is(err, ErrNotImage) {
		t.Errorf("Select(notes.txt) error = %v, want %v", err, ErrNotImage)
	}
	for _, ref := range []string{"", "../outside.png", "missing.png"} {
		if _, err := lib.Select(ref); err == nil {
			t.Errorf("Select(%q) expected error", ref)
		}
	}
}

func TestList(t *testing.T) {
	lib, dir := newLibrary(t, config.ThumbnailModeFit)
	writeImage(t, filepath.Join(dir, "img10.png"), 4, 4)
	writeImage(t, filepath.Join(dir, "img2.jpg"), 4, 4)
	writeImage(t, filepath.Join(dir, "img1.png"), 4, 4)
	writeImage(t, filepath.Join(dir, thumbDir, "img1-32x32.png"), 4, 4)
	if err := os.WriteFile(filepath.Join(dir, "logo.svg"), []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"></svg>`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("# media"), 0644); err != nil {
		t.Fatal(err)
	}

	names, err := lib.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"img1.png", "img2.jpg", "img10.png", "logo.svg"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name   string
		mode   config.ThumbnailMode
		file   string
		w, h   int
		want   string
		bounds image.Point
	}{
		{"fit_landscape", config.ThumbnailModeFit, "wide.jpg", 128, 64, ".thumbnails/wide-32x32.jpg", image.Pt(32, 16)},
		{"fit_small", config.ThumbnailModeFit, "small.png", 8, 8, ".thumbnails/small-32x32.png", image.Pt(8, 8)},
		{"fill", config.ThumbnailModeFill, "wide.png", 128, 64, ".thumbnails/wide-32x32.png", image.Pt(32, 32)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, dir := newLibrary(t, tt.mode)
			writeImage(t, filepath.Join(dir, tt.file), tt.w, tt.h)

			got, err := lib.Thumbnail(tt.file)
			if err != nil {
				t.Fatalf("Thumbnail() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Thumbnail() = %q, want %q", got, tt.want)
			}
			img, err := imaging.Open(filepath.Join(dir, filepath.FromSlash(got)))
			if err != nil {
				t.Fatalf("unable to open thumbnail: %v", err)
			}
			if size := img.Bounds().Size(); size != tt.bounds {
				t.Errorf("thumbnail size = %v, want %v", size, tt.bounds)
			}
		})
	}
}

func TestThumbnail_SVG(t *testing.T) {
	lib, dir := newLibrary(t, config.ThumbnailModeFit)
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50" fill="#1976D2"/></svg>`
	if err := os.WriteFile(filepath.Join(dir, "logo.svg"), []byte(svg), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := lib.Thumbnail("logo.svg")
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	img, err := imaging.Open(filepath.Join(dir, filepath.FromSlash(got)))
	if err != nil {
		t.Fatalf("unable to open thumbnail: %v", err)
	}
	if size := img.Bounds().Size(); size != image.Pt(32, 16) {
		t.Errorf("thumbnail size = %v", size)
	}
}

func TestThumbnail_Fresh(t *testing.T) {
	lib, dir := newLibrary(t, config.ThumbnailModeFit)
	writeImage(t, filepath.Join(dir, "a.png"), 64, 64)

	first, err := lib.Thumbnail("a.png")
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	path := filepath.Join(dir, filepath.FromSlash(first))
	before, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Thumbnail("a.png"); err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Errorf("fresh thumbnail was regenerated")
	}
}

func TestAsset_Fields(t *testing.T) {
	a := Asset{URL: "/media/a.png", ID: "x", Alt: "A"}
	f := a.Fields()
	if f.String("url", "") != a.URL || f.String("id", "") != a.ID || f.String("alt", "") != a.Alt {
		t.Errorf("Fields() = %v", f)
	}
}
