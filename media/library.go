// Package media resolves images authors pick for blocks from local media
// library and prepares their thumbnails.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cblocks/collection"
	"cblocks/config"
	"cblocks/utils/images"
)

var (
	ErrNoLibrary = errors.New("media library is not configured")
	ErrNotImage  = errors.New("not an image")
)

// thumbnails are kept inside library so they move together with it
const thumbDir = ".thumbnails"

// Asset is image reference stored in block attributes.
type Asset struct {
	URL string `yaml:"url" json:"url"`
	ID  string `yaml:"id" json:"id"`
	Alt string `yaml:"alt" json:"alt"`
}

// Fields returns asset in the shape block attributes keep it.
func (a Asset) Fields() collection.Fields {
	return collection.Fields{"url": a.URL, "id": a.ID, "alt": a.Alt}
}

// Library is directory of images published under base URL.
type Library struct {
	dir     string
	baseURL string
	thumb   config.ThumbnailConfig
	log     *zap.Logger
}

func NewLibrary(cfg *config.MediaConfig, log *zap.Logger) (*Library, error) {
	if cfg.Library == "" {
		return nil, ErrNoLibrary
	}
	fi, err := os.Stat(cfg.Library)
	if err != nil {
		return nil, fmt.Errorf("unable to access media library: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("media library %q is not a directory", cfg.Library)
	}
	return &Library{
		dir:     cfg.Library,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		thumb:   cfg.Thumbnail,
		log:     log.Named("media"),
	}, nil
}

// Select resolves library relative file name into asset. Asset id is derived
// from its URL so selecting the same file twice gives the same id.
func (l *Library) Select(ref string) (Asset, error) {
	name, err := l.name(ref)
	if err != nil {
		return Asset{}, err
	}
	if _, err := l.sniff(name); err != nil {
		return Asset{}, err
	}
	u := l.baseURL + "/" + name
	a := Asset{
		URL: u,
		ID:  uuid.NewSHA1(uuid.NameSpaceURL, []byte(u)).String(),
		Alt: altText(name),
	}
	l.log.Debug("Media selected", zap.String("ref", ref), zap.String("url", a.URL))
	return a, nil
}

// List returns library relative names of all images in natural order.
func (l *Library) List() ([]string, error) {
	var names []string
	err := filepath.WalkDir(l.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == thumbDir {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(l.dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if _, err := l.sniff(rel); err != nil {
			l.log.Debug("Skipping file", zap.String("name", rel), zap.Error(err))
			return nil
		}
		names = append(names, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list media library: %w", err)
	}
	sort.Sort(natural.StringSlice(names))
	return names, nil
}

// Thumbnail makes sure thumbnail of referenced image exists and is not older
// than the image and returns its library relative name.
func (l *Library) Thumbnail(ref string) (string, error) {
	name, err := l.name(ref)
	if err != nil {
		return "", err
	}
	src := filepath.Join(l.dir, filepath.FromSlash(name))
	svg, err := l.sniff(name)
	if err != nil {
		return "", err
	}

	ext := ".jpg"
	if svg || strings.EqualFold(path.Ext(name), ".png") {
		ext = ".png"
	}
	thumb := path.Join(thumbDir, fmt.Sprintf("%s-%dx%d%s", strings.TrimSuffix(name, path.Ext(name)), l.thumb.Width, l.thumb.Height, ext))
	dst := filepath.Join(l.dir, filepath.FromSlash(thumb))

	if fresh(src, dst) {
		return thumb, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("unable to read image: %w", err)
	}
	img, err := l.resize(data, svg)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	out, err := images.Encode(img, ext, 85)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("unable to create thumbnail directory: %w", err)
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return "", fmt.Errorf("unable to write thumbnail: %w", err)
	}
	l.log.Debug("Thumbnail created", zap.String("name", name), zap.String("thumbnail", thumb),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	return thumb, nil
}

func (l *Library) resize(data []byte, svg bool) (image.Image, error) {
	w, h := l.thumb.Width, l.thumb.Height

	var (
		img image.Image
		err error
	)
	if svg {
		// rasterize big enough for fill to crop
		if l.thumb.Mode == config.ThumbnailModeFill {
			img, err = images.RasterizeSVG(data, max(w, h)*2, 0, nil)
		} else {
			img, err = images.RasterizeSVG(data, w, h, nil)
		}
	} else {
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, fmt.Errorf("unable to decode image: %w", err)
	}

	switch l.thumb.Mode {
	case config.ThumbnailModeFill:
		return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos), nil
	default:
		b := img.Bounds()
		if b.Dx() <= w && b.Dy() <= h {
			return img, nil
		}
		return imaging.Fit(img, w, h, imaging.Lanczos), nil
	}
}

// name validates reference and turns it into clean slash separated name
// inside the library.
func (l *Library) name(ref string) (string, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), l.baseURL+"/")
	if ref == "" || !filepath.IsLocal(filepath.FromSlash(ref)) {
		return "", fmt.Errorf("bad media reference %q: %w", ref, fs.ErrNotExist)
	}
	return path.Clean(filepath.ToSlash(ref)), nil
}

// sniff checks file content and reports whether it is SVG.
func (l *Library) sniff(name string) (bool, error) {
	f, err := os.Open(filepath.Join(l.dir, filepath.FromSlash(name)))
	if err != nil {
		return false, fmt.Errorf("unable to open media: %w", err)
	}
	defer f.Close()

	head := make([]byte, 1024)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("unable to read media: %w", err)
	}
	head = head[:n]
	if images.IsSVG(head) {
		return true, nil
	}
	if !filetype.IsImage(head) {
		return false, fmt.Errorf("%s: %w", name, ErrNotImage)
	}
	return false, nil
}

func fresh(src, dst string) bool {
	si, err := os.Stat(src)
	if err != nil {
		return false
	}
	di, err := os.Stat(dst)
	if err != nil {
		return false
	}
	return !di.ModTime().Before(si.ModTime())
}

// altText makes readable description out of file name: "team-photo_2.jpg"
// becomes "Team Photo 2".
func altText(name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || r == '.' {
			return ' '
		}
		return r
	}, base)
	return cases.Title(language.English).String(strings.Join(strings.Fields(base), " "))
}
