package images

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const (
	// used when SVG viewBox has no size
	defaultSVGSize = 1024
	// keeps enormous viewBox values from allocating gigabytes
	maxRasterDim = 8192
)

// IsSVG reports whether data looks like SVG document. Content sniffing
// libraries do not recognize SVG since it is text.
func IsSVG(data []byte) bool {
	head := data[:min(len(data), 1024)]
	head = bytes.TrimSpace(bytes.TrimPrefix(head, []byte("\xef\xbb\xbf")))
	return bytes.HasPrefix(head, []byte("<")) && bytes.Contains(head, []byte("<svg"))
}

// FitSize returns raster size for image of intrinsic size w x h:
//   - no target: intrinsic size
//   - one of targets: scaled by that dimension keeping aspect ratio
//   - both targets: fit into the box keeping aspect ratio
//
// Result never exceeds maxRasterDim and is at least 1x1.
func FitSize(w, h, targetW, targetH int) (int, int) {
	if w <= 0 {
		w = defaultSVGSize
	}
	if h <= 0 {
		h = defaultSVGSize
	}

	scale := 1.0
	switch {
	case targetW <= 0 && targetH <= 0:
	case targetH <= 0:
		scale = float64(targetW) / float64(w)
	case targetW <= 0:
		scale = float64(targetH) / float64(h)
	default:
		scale = math.Min(float64(targetW)/float64(w), float64(targetH)/float64(h))
	}
	fw, fh := float64(w)*scale, float64(h)*scale
	if limit := float64(maxRasterDim); fw > limit || fh > limit {
		s := math.Min(limit/fw, limit/fh)
		fw, fh = fw*s, fh*s
	}
	return max(int(math.Round(fw)), 1), max(int(math.Round(fh)), 1)
}

// RasterizeSVG renders SVG sized by FitSize rules. Nil background keeps
// image transparent.
func RasterizeSVG(svgData []byte, targetW, targetH int, background color.Color) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}

	w, h := FitSize(int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H)), targetW, targetH)
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}
